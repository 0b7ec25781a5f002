package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html"
	"io"

	"github.com/condagraph/condagraph/pkg/analysis"
	"github.com/condagraph/condagraph/pkg/conda"
)

// WriteReport renders the report in the named format, which must be one of
// [ReportFormats]. Graph formats (dot, svg, png) have their own entry
// points because they need the dependency graph, not the report.
func WriteReport(w io.Writer, r *analysis.Report, format string) error {
	switch format {
	case FormatText:
		return WriteText(w, r)
	case FormatJSON:
		return WriteJSON(w, r)
	case FormatMarkdown:
		return WriteMarkdown(w, r)
	case FormatHTML:
		return WriteHTML(w, r)
	case FormatCSV:
		return WriteCSV(w, r)
	default:
		return ValidateReportFormat(format)
	}
}

// WriteText renders the report as plain text: summary header,
// recommendations, conflicts, then one line per package.
func WriteText(w io.Writer, r *analysis.Report) error {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Environment: %s\n", displayName(r))
	fmt.Fprintf(&buf, "Packages: %d\n", len(r.Packages))
	if r.TotalSize > 0 {
		fmt.Fprintf(&buf, "Total size: %s\n", analysis.FormatSize(r.TotalSize))
	}
	fmt.Fprintf(&buf, "Pinned packages: %d\n", r.PinnedCount)
	fmt.Fprintf(&buf, "Outdated packages: %d\n", r.OutdatedCount)

	if len(r.Recommendations) > 0 {
		buf.WriteString("\nRecommendations:\n")
		for _, rec := range r.Recommendations {
			fmt.Fprintf(&buf, "- %s\n", rec)
		}
	}

	if len(r.Conflicts) > 0 {
		buf.WriteString("\nConflicts:\n")
		for _, c := range r.Conflicts {
			fmt.Fprintf(&buf, "- %s vs %s: %s\n", c.PackageA, c.PackageB, c.Description)
		}
	}

	buf.WriteString("\nPackage list:\n")
	for _, p := range r.Packages {
		fmt.Fprintf(&buf, "- %s %s", p.Name, displayVersion(p))
		if status := textStatus(p); status != "" {
			buf.WriteString(" " + status)
		}
		buf.WriteByte('\n')
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// WriteJSON renders the report as indented JSON.
func WriteJSON(w io.Writer, r *analysis.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteMarkdown renders the report as a Markdown document with a package
// status table.
func WriteMarkdown(w io.Writer, r *analysis.Report) error {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# Environment Analysis: %s\n\n", displayName(r))
	fmt.Fprintf(&buf, "- **Packages**: %d\n", len(r.Packages))
	if r.TotalSize > 0 {
		fmt.Fprintf(&buf, "- **Total size**: %s\n", analysis.FormatSize(r.TotalSize))
	}
	fmt.Fprintf(&buf, "- **Pinned packages**: %d\n", r.PinnedCount)
	fmt.Fprintf(&buf, "- **Outdated packages**: %d\n", r.OutdatedCount)

	if len(r.Recommendations) > 0 {
		buf.WriteString("\n## Recommendations\n\n")
		for _, rec := range r.Recommendations {
			fmt.Fprintf(&buf, "- %s\n", rec)
		}
	}

	if len(r.Conflicts) > 0 {
		buf.WriteString("\n## Conflicts\n\n")
		for _, c := range r.Conflicts {
			fmt.Fprintf(&buf, "- %s vs %s: %s\n", c.PackageA, c.PackageB, c.Description)
		}
	}

	buf.WriteString("\n## Package list\n\n")
	buf.WriteString("| Package | Version | Status |\n")
	buf.WriteString("|---------|---------|--------|\n")
	for _, p := range r.Packages {
		fmt.Fprintf(&buf, "| %s | %s | %s |\n", p.Name, displayVersion(p), markdownStatus(p))
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// WriteHTML renders the report as a self-contained HTML page. Package
// names, versions, and advice lines are escaped before embedding.
func WriteHTML(w io.Writer, r *analysis.Report) error {
	var buf bytes.Buffer

	buf.WriteString("<!DOCTYPE html>\n")
	buf.WriteString("<html lang=\"en\">\n")
	buf.WriteString("<head>\n")
	buf.WriteString("  <meta charset=\"UTF-8\">\n")
	buf.WriteString("  <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	buf.WriteString("  <title>Conda Environment Analysis</title>\n")
	buf.WriteString("  <style>\n")
	buf.WriteString("    body { font-family: Arial, sans-serif; margin: 20px; }\n")
	buf.WriteString("    table { border-collapse: collapse; width: 100%; }\n")
	buf.WriteString("    th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }\n")
	buf.WriteString("    th { background-color: #f2f2f2; }\n")
	buf.WriteString("    tr:nth-child(even) { background-color: #f9f9f9; }\n")
	buf.WriteString("    .outdated { color: #e74c3c; }\n")
	buf.WriteString("    .pinned { color: #3498db; }\n")
	buf.WriteString("    .uptodate { color: #2ecc71; }\n")
	buf.WriteString("  </style>\n")
	buf.WriteString("</head>\n")
	buf.WriteString("<body>\n")

	fmt.Fprintf(&buf, "  <h1>Environment Analysis: %s</h1>\n", html.EscapeString(displayName(r)))

	buf.WriteString("  <div class=\"summary\">\n")
	fmt.Fprintf(&buf, "    <p><strong>Packages:</strong> %d</p>\n", len(r.Packages))
	if r.TotalSize > 0 {
		fmt.Fprintf(&buf, "    <p><strong>Total size:</strong> %s</p>\n", analysis.FormatSize(r.TotalSize))
	}
	fmt.Fprintf(&buf, "    <p><strong>Pinned packages:</strong> %d</p>\n", r.PinnedCount)
	fmt.Fprintf(&buf, "    <p><strong>Outdated packages:</strong> %d</p>\n", r.OutdatedCount)
	buf.WriteString("  </div>\n")

	if len(r.Recommendations) > 0 {
		buf.WriteString("  <h2>Recommendations</h2>\n")
		buf.WriteString("  <ul>\n")
		for _, rec := range r.Recommendations {
			fmt.Fprintf(&buf, "    <li>%s</li>\n", html.EscapeString(rec))
		}
		buf.WriteString("  </ul>\n")
	}

	if len(r.Conflicts) > 0 {
		buf.WriteString("  <h2>Conflicts</h2>\n")
		buf.WriteString("  <ul>\n")
		for _, c := range r.Conflicts {
			fmt.Fprintf(&buf, "    <li>%s vs %s: %s</li>\n",
				html.EscapeString(c.PackageA), html.EscapeString(c.PackageB), html.EscapeString(c.Description))
		}
		buf.WriteString("  </ul>\n")
	}

	buf.WriteString("  <h2>Package list</h2>\n")
	buf.WriteString("  <table>\n")
	buf.WriteString("    <tr>\n")
	buf.WriteString("      <th>Package</th>\n")
	buf.WriteString("      <th>Version</th>\n")
	buf.WriteString("      <th>Status</th>\n")
	buf.WriteString("    </tr>\n")
	for _, p := range r.Packages {
		class, status := htmlStatus(p)
		buf.WriteString("    <tr>\n")
		fmt.Fprintf(&buf, "      <td>%s</td>\n", html.EscapeString(p.Name))
		fmt.Fprintf(&buf, "      <td>%s</td>\n", html.EscapeString(displayVersion(p)))
		fmt.Fprintf(&buf, "      <td class=%q>%s</td>\n", class, html.EscapeString(status))
		buf.WriteString("    </tr>\n")
	}
	buf.WriteString("  </table>\n")

	buf.WriteString("  <footer>\n")
	buf.WriteString("    <p><em>Generated by condagraph</em></p>\n")
	buf.WriteString("  </footer>\n")
	buf.WriteString("</body>\n")
	buf.WriteString("</html>\n")

	_, err := w.Write(buf.Bytes())
	return err
}

// WriteCSV renders one row per package with human-readable sizes.
func WriteCSV(w io.Writer, r *analysis.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Package", "Version", "Channel", "Size", "Status", "Latest Version"}); err != nil {
		return err
	}
	for _, p := range r.Packages {
		size := ""
		if p.Size > 0 {
			size = analysis.FormatSize(p.Size)
		}
		if err := cw.Write([]string{p.Name, p.Version, p.Channel, size, csvStatus(p), p.LatestVersion}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func displayName(r *analysis.Report) string {
	if r.Name == "" {
		return "unknown"
	}
	return r.Name
}

func displayVersion(p conda.Package) string {
	if p.Version == "" {
		return "unknown"
	}
	return p.Version
}

func textStatus(p conda.Package) string {
	switch {
	case p.IsOutdated && p.LatestVersion != "":
		return fmt.Sprintf("[outdated: %s]", p.LatestVersion)
	case p.IsOutdated:
		return "[outdated]"
	case p.IsPinned:
		return "[pinned]"
	default:
		return ""
	}
}

func markdownStatus(p conda.Package) string {
	switch {
	case p.IsOutdated && p.LatestVersion != "":
		return fmt.Sprintf("⚠️ Outdated (latest: %s)", p.LatestVersion)
	case p.IsOutdated:
		return "⚠️ Outdated"
	case p.IsPinned:
		return "📌 Pinned"
	default:
		return "✅ Up-to-date"
	}
}

func htmlStatus(p conda.Package) (class, text string) {
	switch {
	case p.IsOutdated && p.LatestVersion != "":
		return "outdated", fmt.Sprintf("Outdated (latest: %s)", p.LatestVersion)
	case p.IsOutdated:
		return "outdated", "Outdated"
	case p.IsPinned:
		return "pinned", "Pinned"
	default:
		return "uptodate", "Up-to-date"
	}
}

func csvStatus(p conda.Package) string {
	switch {
	case p.IsOutdated:
		return "outdated"
	case p.IsPinned:
		return "pinned"
	default:
		return "up-to-date"
	}
}
