package export

import (
	"fmt"
	"strings"
)

// Canonical format names.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatCSV      = "csv"
	FormatDOT      = "dot"
	FormatSVG      = "svg"
	FormatPNG      = "png"
)

// ReportFormats is the set of formats [WriteReport] accepts.
var ReportFormats = map[string]bool{
	FormatText:     true,
	FormatJSON:     true,
	FormatMarkdown: true,
	FormatHTML:     true,
	FormatCSV:      true,
}

// GraphFormats is the set of formats the graph exporters accept.
var GraphFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
	FormatPNG: true,
}

// Normalize folds a user-supplied format name to its canonical spelling.
// Unknown names come back lowercased for the validators to reject.
func Normalize(format string) string {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case "txt":
		return FormatText
	case "md":
		return FormatMarkdown
	default:
		return f
	}
}

// ValidateReportFormat checks that a format is valid for report export.
func ValidateReportFormat(format string) error {
	if !ReportFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: text, json, markdown, html, csv)", format)
	}
	return nil
}

// ValidateGraphFormat checks that a format is valid for graph export.
func ValidateGraphFormat(format string) error {
	if !GraphFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: dot, svg, png)", format)
	}
	return nil
}
