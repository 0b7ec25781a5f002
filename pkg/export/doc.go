// Package export serializes analysis reports and dependency graphs.
//
// Report writers ([WriteText], [WriteJSON], [WriteMarkdown], [WriteHTML],
// [WriteCSV], or [WriteReport] to dispatch by name) render an
// [analysis.Report] to an io.Writer. Graph exporters work from the graph
// itself: [ToDOT] produces Graphviz DOT with conflict highlighting, and
// [RenderSVG]/[RenderPNG] rasterize it through goccy/go-graphviz.
//
// Format names are plain strings; [Normalize] folds common aliases (txt,
// md) and the Validate helpers reject anything outside [ReportFormats] or
// [GraphFormats].
package export
