package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/condagraph/condagraph/pkg/analysis"
	"github.com/condagraph/condagraph/pkg/conda"
	"github.com/condagraph/condagraph/pkg/graph"
	"github.com/condagraph/condagraph/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// Tabs of the interactive browser.
const (
	tabSummary = iota
	tabPackages
	tabGraph
	tabRecommendations
)

var tabNames = []string{"Summary", "Packages", "Graph", "Recommendations"}

// =============================================================================
// AnalysisModel - Interactive analysis browser
// =============================================================================

// AnalysisModel is the bubbletea model for browsing one analysis result.
// The Summary, Packages, and Recommendations tabs read the report; the
// Graph tab pans a character-grid rendering of the layered layout.
type AnalysisModel struct {
	report    *analysis.Report
	depMap    map[string][]string
	conflicts []graph.ConflictRecord
	graph     *graph.DependencyGraph
	layout    graph.Layout
	direct    map[string]bool

	tab     int
	cursor  int
	offset  int
	scrollX int
	scrollY int
	width   int
	height  int
}

// NewAnalysisModel creates the browser model over a pipeline result.
func NewAnalysisModel(result *pipeline.Result) AnalysisModel {
	return AnalysisModel{
		report:    result.Report,
		depMap:    result.DepMap,
		conflicts: result.Conflicts,
		graph:     result.Graph,
		layout:    result.Graph.Layout(),
		direct:    result.Graph.DirectDeps(),
		width:     80,
		height:    24,
	}
}

func (m AnalysisModel) Init() tea.Cmd {
	return nil
}

func (m AnalysisModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.tab = (m.tab + 1) % len(tabNames)
		case "shift+tab":
			m.tab = (m.tab + len(tabNames) - 1) % len(tabNames)
		case "right", "l":
			if m.tab == tabGraph {
				m.scrollX += 5
			} else {
				m.tab = (m.tab + 1) % len(tabNames)
			}
		case "left", "h":
			if m.tab == tabGraph {
				m.scrollX -= 5
				if m.scrollX < 0 {
					m.scrollX = 0
				}
			} else {
				m.tab = (m.tab + len(tabNames) - 1) % len(tabNames)
			}
		case "up", "k":
			if m.tab == tabGraph {
				m.scrollY -= 3
				if m.scrollY < 0 {
					m.scrollY = 0
				}
			} else if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.tab == tabGraph {
				m.scrollY += 3
			} else if m.cursor < len(m.report.Packages)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.listHeight() {
					m.offset = m.cursor - m.listHeight() + 1
				}
			}
		case "home":
			m.scrollX = 0
			m.scrollY = 0
		case "enter":
			if m.tab == tabPackages && len(m.report.Packages) > 0 {
				m.centerGraphOn(m.report.Packages[m.cursor].Name)
				m.tab = tabGraph
				return m, nil
			}
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// listHeight is the number of visible package rows.
func (m AnalysisModel) listHeight() int {
	h := m.height - 10
	if h < 5 {
		h = 5
	}
	return h
}

// centerGraphOn scrolls the graph viewport so the named node sits near the
// middle of the screen.
func (m *AnalysisModel) centerGraphOn(name string) {
	for _, pos := range m.layout.Positions {
		if pos.Node != name {
			continue
		}
		m.scrollX = pos.X - m.width/2
		m.scrollY = pos.Y - m.graphHeight()/2
		if m.scrollX < 0 {
			m.scrollX = 0
		}
		if m.scrollY < 0 {
			m.scrollY = 0
		}
		return
	}
}

func (m AnalysisModel) View() string {
	var b strings.Builder

	b.WriteString(m.viewTabs())
	b.WriteString("\n\n")

	switch m.tab {
	case tabSummary:
		b.WriteString(m.viewSummary())
	case tabPackages:
		b.WriteString(m.viewPackages())
	case tabGraph:
		b.WriteString(m.viewGraph())
	case tabRecommendations:
		b.WriteString(m.viewRecommendations())
	}

	return b.String()
}

// viewTabs renders the tab bar with the active tab highlighted.
func (m AnalysisModel) viewTabs() string {
	parts := make([]string, len(tabNames))
	for i, name := range tabNames {
		if i == m.tab {
			parts[i] = listSelectedStyle.Render("[" + name + "]")
		} else {
			parts[i] = listDimStyle.Render(" " + name + " ")
		}
	}
	return strings.Join(parts, listDimStyle.Render(" │ "))
}

// =============================================================================
// Summary Tab
// =============================================================================

func (m AnalysisModel) viewSummary() string {
	var b strings.Builder
	r := m.report

	b.WriteString(StyleTitle.Render("Environment: " + r.Name))
	b.WriteString("\n\n")

	writeStat := func(label string, value string, style lipgloss.Style) {
		b.WriteString(fmt.Sprintf("  %-16s %s\n", label, style.Render(value)))
	}

	writeStat("Total packages:", fmt.Sprintf("%d", len(r.Packages)), StyleSuccess)
	writeStat("Total size:", analysis.FormatSize(r.TotalSize), lipgloss.NewStyle().Foreground(colorBlue))
	writeStat("Outdated:", fmt.Sprintf("%d", r.OutdatedCount), StyleWarning)
	writeStat("Pinned:", fmt.Sprintf("%d", r.PinnedCount), StyleHighlight)
	conflictStyle := StyleDim
	if len(r.Conflicts) > 0 {
		conflictStyle = StyleError
	}
	writeStat("Conflicts:", fmt.Sprintf("%d", len(r.Conflicts)), conflictStyle)

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("Created: " + r.CreatedAt.Format("2006-01-02 15:04 UTC")))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("ID: " + r.ID.String()))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render("tab: switch view  q: quit"))
	return b.String()
}

// =============================================================================
// Packages Tab
// =============================================================================

func (m AnalysisModel) viewPackages() string {
	if len(m.report.Packages) == 0 {
		return listDimStyle.Render("No packages in this environment.")
	}

	list := m.viewPackageList()
	detail := m.viewPackageDetail(m.report.Packages[m.cursor])
	body := lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", detail)

	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.report.Packages))))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ show in graph  tab: switch view  q: quit"))
	return b.String()
}

func (m AnalysisModel) viewPackageList() string {
	packages := m.report.Packages
	end := m.offset + m.listHeight()
	if end > len(packages) {
		end = len(packages)
	}

	rows := [][]string{}
	for i := m.offset; i < end; i++ {
		p := packages[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, p.Name, p.Version, packageStatus(p)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Package", "Version", "Status").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			actualIdx := m.offset + row
			if actualIdx >= len(packages) {
				return lipgloss.NewStyle()
			}
			p := packages[actualIdx]

			base := lipgloss.NewStyle()
			if actualIdx == m.cursor {
				base = base.Bold(true).Foreground(colorCyan)
			} else if col == 3 && p.IsOutdated {
				base = base.Foreground(colorYellow)
			} else if col == 3 {
				base = base.Foreground(colorDim)
			} else {
				base = base.Foreground(colorWhite)
			}
			return base
		})

	return t.Render()
}

// packageStatus summarizes one package for the list's status column.
func packageStatus(p conda.Package) string {
	switch {
	case p.IsOutdated:
		return "outdated"
	case p.IsPinned:
		return "pinned"
	default:
		return "ok"
	}
}

func (m AnalysisModel) viewPackageDetail(p conda.Package) string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(p.Name))
	b.WriteString("\n\n")

	writeField := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(listDimStyle.Render(fmt.Sprintf("%-9s", label)))
		b.WriteString(StyleValue.Render(value))
		b.WriteString("\n")
	}

	writeField("Version", p.Version)
	writeField("Build", p.Build)
	writeField("Channel", p.Channel)
	if p.Size > 0 {
		writeField("Size", analysis.FormatSize(p.Size))
	}
	if p.LatestVersion != "" && p.LatestVersion != p.Version {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("%-9s", "Latest")))
		b.WriteString(StyleWarning.Render(p.LatestVersion))
		b.WriteString("\n")
	}

	if specs := m.depMap[p.Name]; len(specs) > 0 {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("Depends on"))
		b.WriteString("\n")
		shown := specs
		if len(shown) > 8 {
			shown = shown[:8]
		}
		for _, spec := range shown {
			b.WriteString("  " + StyleValue.Render(spec) + "\n")
		}
		if extra := len(specs) - len(shown); extra > 0 {
			b.WriteString(listDimStyle.Render(fmt.Sprintf("  +%d more", extra)) + "\n")
		}
	}

	if involved := conflictsInvolving(m.conflicts, p.Name); len(involved) > 0 {
		b.WriteString("\n")
		b.WriteString(StyleError.Render("Conflicts"))
		b.WriteString("\n")
		for _, c := range involved {
			b.WriteString("  " + StyleError.Render(c.Description) + "\n")
		}
	}

	return b.String()
}

// conflictsInvolving filters conflicts down to the ones naming pkg.
func conflictsInvolving(conflicts []graph.ConflictRecord, pkg string) []graph.ConflictRecord {
	var out []graph.ConflictRecord
	for _, c := range conflicts {
		if c.PackageA == pkg || c.PackageB == pkg {
			out = append(out, c)
		}
	}
	return out
}

// =============================================================================
// Recommendations Tab
// =============================================================================

func (m AnalysisModel) viewRecommendations() string {
	recs := m.report.Recommendations
	if len(recs) == 0 {
		return listDimStyle.Render("No recommendations available for this environment.")
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Recommendations"))
	b.WriteString("\n\n")
	for i, rec := range recs {
		b.WriteString(fmt.Sprintf("%s %s\n", StyleNumber.Render(fmt.Sprintf("%d.", i+1)), rec))
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("tab: switch view  q: quit"))
	return b.String()
}
