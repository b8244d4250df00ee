package report

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = SuccessColorFG
	InfoStyleBG    = SuccessStyleBG
)

// PrintErrorMessage prints a standard Go error to the console
func PrintErrorMessage(tag string, err error) {
	fprintErrorMessage(os.Stdout, tag, err)
}

// PrintInfoMessage prints an informational message to the user
func PrintInfoMessage(tag, msg string) {
	fprintTagged(os.Stdout, InfoStyleBG, InfoColorFG, tag, msg)
}

func fprintErrorMessage(w io.Writer, tag string, err error) {
	fprintTagged(w, ErrorStyleBG, ErrorColorFG, tag, err.Error())
}

func fprintTagged(w io.Writer, tagStyle *pterm.Style, msgColor pterm.Color, tag, msg string) {
	fmt.Fprintln(w, tagStyle.Sprint(tag)+" "+msgColor.Sprint(msg))
}

// -----------------------------------------------------------------------------

var phaseTitles = map[Phase]string{
	PhaseLexical:   "Lexical",
	PhaseSyntactic: "Syntax",
	PhaseSemantic:  "Semantic",
}

// formatDiagnostic renders a diagnostic with its banner and, if a line index
// is available, the offending source text underlined with carets.
func formatDiagnostic(fileName string, li *LineIndex, d *Diagnostic) string {
	sb := &strings.Builder{}

	// banner
	sb.WriteString("-- ")
	title := phaseTitles[d.Phase]
	if d.IsError() {
		title += " Error"
		sb.WriteString(ErrorStyleBG.Sprint(title))
	} else {
		title += " Warning"
		sb.WriteString(WarnStyleBG.Sprint(title))
	}

	location := fmt.Sprintf("%s:%d:%d", fileName, d.Line, d.Column)
	dashCount := 50 - len(title) - len(location) - 5
	if dashCount < 3 {
		dashCount = 3
	}

	sb.WriteString(" " + strings.Repeat("-", dashCount) + " ")
	sb.WriteString(InfoColorFG.Sprint(location))
	sb.WriteString("\n")
	sb.WriteString(d.Message)
	sb.WriteString("\n")

	if li != nil && d.Line >= 1 && d.Line <= li.LineCount() {
		sb.WriteString("\n")
		writeSourceText(sb, li, d)
	}

	return sb.String()
}

// writeSourceText writes the line a diagnostic occurs on followed by a line of
// carets underlining the diagnostic's span.  Spans running past the end of the
// line are cut at the line's end; empty spans get a single caret.
func writeSourceText(sb *strings.Builder, li *LineIndex, d *Diagnostic) {
	line := strings.ReplaceAll(li.LineText(d.Line), "\t", " ")

	caretStart := d.Column - 1
	if caretStart > len(line) {
		caretStart = len(line)
	}

	// Trim the leading indentation so deeply nested code stays readable.
	minIndent := len(line) - len(strings.TrimLeft(line, " "))
	if caretStart < minIndent {
		minIndent = caretStart
	}

	caretCount := d.Length
	if caretStart+caretCount > len(line) {
		caretCount = len(line) - caretStart
	}
	if caretCount < 1 {
		caretCount = 1
	}

	lineNumLen := len(strconv.Itoa(d.Line))
	lineNumFmtStr := "%-" + strconv.Itoa(lineNumLen) + "v | "

	sb.WriteString(InfoColorFG.Sprint(fmt.Sprintf(lineNumFmtStr, d.Line)))
	sb.WriteString(line[minIndent:])
	sb.WriteString("\n")

	sb.WriteString(strings.Repeat(" ", lineNumLen) + " | ")
	sb.WriteString(strings.Repeat(" ", caretStart-minIndent))
	if d.IsError() {
		sb.WriteString(ErrorColorFG.Sprint(strings.Repeat("^", caretCount)))
	} else {
		sb.WriteString(WarnColorFG.Sprint(strings.Repeat("^", caretCount)))
	}
	sb.WriteString("\n")
}

// -----------------------------------------------------------------------------

// formatTable renders rows as a table whose first row is the header.
func formatTable(rows [][]string) string {
	out, err := pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData(rows)).Srender()
	if err != nil {
		ReportICE("failed to render table: %s", err)
	}

	return out
}

// TreeItem is a single line of an indented tree.
type TreeItem struct {
	Level int
	Text  string
}

// formatTree renders a leveled list of items as a tree.
func formatTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	var ll pterm.LeveledList
	for _, item := range items {
		ll = append(ll, pterm.LeveledListItem{Level: item.Level, Text: item.Text})
	}

	out, err := pterm.DefaultTree.WithRoot(pterm.NewTreeFromLeveledList(ll)).Srender()
	if err != nil {
		ReportICE("failed to render tree: %s", err)
	}

	return out
}

// formatCompilationFinished renders the closing summary line.
func formatCompilationFinished(success bool, errorCount, warningCount int) string {
	sb := &strings.Builder{}

	if success {
		sb.WriteString(SuccessColorFG.Sprint("All done! "))
	} else {
		sb.WriteString(ErrorColorFG.Sprint("Oh no! "))
	}

	sb.WriteString("(")

	switch errorCount {
	case 0:
		sb.WriteString(SuccessColorFG.Sprint(0) + " errors, ")
	case 1:
		sb.WriteString(ErrorColorFG.Sprint(1) + " error, ")
	default:
		sb.WriteString(ErrorColorFG.Sprint(errorCount) + " errors, ")
	}

	switch warningCount {
	case 0:
		sb.WriteString(SuccessColorFG.Sprint(0) + " warnings)")
	case 1:
		sb.WriteString(WarnColorFG.Sprint(1) + " warning)")
	default:
		sb.WriteString(WarnColorFG.Sprint(warningCount) + " warnings)")
	}

	return sb.String()
}
