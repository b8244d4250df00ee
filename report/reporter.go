package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Reporter is responsible for reporting diagnostics, errors, and other kinds
// of messages to the user.  The reporter respects the set log level and is
// synchronized: its methods can be safely called from multiple goroutines.
type Reporter struct {
	// The mutex used to synchronize different report method calls.
	m *sync.Mutex

	// The destination of all output.
	out io.Writer

	// The selected log level of the reporter.  This must be one of the
	// enumerated log levels below.
	logLevel int

	errorCount   int
	warningCount int
}

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors to the user.
	LogLevelWarn           // Displays only warnings and errors to the user.
	LogLevelVerbose        // Displays all messages to the user (default).
)

var logLevelNames = map[string]int{
	"silent":  LogLevelSilent,
	"error":   LogLevelError,
	"warn":    LogLevelWarn,
	"verbose": LogLevelVerbose,
}

// LogLevelNames is the list of valid log level names in increasing order of
// verbosity.
var LogLevelNames = []string{"silent", "error", "warn", "verbose"}

// ParseLogLevel converts the name of a log level into its enumerated value.
func ParseLogLevel(name string) (int, error) {
	if level, ok := logLevelNames[strings.ToLower(name)]; ok {
		return level, nil
	}

	return 0, fmt.Errorf("unknown log level: `%s`", name)
}

// NewReporter creates a new reporter writing to out.  If out is nil, the
// reporter writes to standard out.
func NewReporter(out io.Writer, logLevel int) *Reporter {
	if out == nil {
		out = os.Stdout
	}

	return &Reporter{
		m:        &sync.Mutex{},
		out:      out,
		logLevel: logLevel,
	}
}

// LogLevel returns the reporter's log level.
func (r *Reporter) LogLevel() int {
	return r.logLevel
}

// ReportDiagnostics reports a batch of diagnostics for a single source file.
// The batch is written as a unit so that the output of concurrent reports
// never interleaves.  The line index may be nil if no source text is
// available.
func (r *Reporter) ReportDiagnostics(fileName string, li *LineIndex, diags []*Diagnostic) {
	r.m.Lock()
	defer r.m.Unlock()

	sb := &strings.Builder{}
	for _, d := range diags {
		if d.IsError() {
			r.errorCount++

			if r.logLevel < LogLevelError {
				continue
			}
		} else {
			r.warningCount++

			if r.logLevel < LogLevelWarn {
				continue
			}
		}

		sb.WriteString(formatDiagnostic(fileName, li, d))
		sb.WriteString("\n")
	}

	io.WriteString(r.out, sb.String())
}

// ReportStdError reports a standard Go error.  These are always counted as
// errors.
func (r *Reporter) ReportStdError(tag string, err error) {
	r.m.Lock()
	defer r.m.Unlock()

	r.errorCount++

	if r.logLevel >= LogLevelError {
		fprintErrorMessage(r.out, tag, err)
	}
}

// ReportInfo reports an informational message.  It only displays at the
// verbose log level.
func (r *Reporter) ReportInfo(tag, msg string, args ...interface{}) {
	r.m.Lock()
	defer r.m.Unlock()

	if r.logLevel >= LogLevelVerbose {
		fprintTagged(r.out, InfoStyleBG, InfoColorFG, tag, fmt.Sprintf(msg, args...))
	}
}

// ReportTable displays a table whose first row is the header.
func (r *Reporter) ReportTable(rows [][]string) {
	r.display(formatTable(rows))
}

// ReportTree displays a leveled list of items as a tree.
func (r *Reporter) ReportTree(items []TreeItem) {
	r.display(formatTree(items))
}

// ReportText displays raw text.
func (r *Reporter) ReportText(text string) {
	r.display(text)
}

// display writes requested output.  Requested output is only suppressed by the
// silent log level.
func (r *Reporter) display(text string) {
	r.m.Lock()
	defer r.m.Unlock()

	if r.logLevel > LogLevelSilent {
		io.WriteString(r.out, text)
		if !strings.HasSuffix(text, "\n") {
			io.WriteString(r.out, "\n")
		}
	}
}

// ReportFinished displays the closing summary of a run.
func (r *Reporter) ReportFinished() {
	r.m.Lock()
	defer r.m.Unlock()

	if r.logLevel >= LogLevelVerbose || (r.logLevel > LogLevelSilent && r.errorCount > 0) {
		fmt.Fprintln(r.out, formatCompilationFinished(r.errorCount == 0, r.errorCount, r.warningCount))
	}
}

// AnyErrors returns whether any errors have been reported.
func (r *Reporter) AnyErrors() bool {
	r.m.Lock()
	defer r.m.Unlock()

	return r.errorCount > 0
}

// Counts returns the number of errors and warnings reported so far.
func (r *Reporter) Counts() (int, int) {
	r.m.Lock()
	defer r.m.Unlock()

	return r.errorCount, r.warningCount
}

// ReportICE reports an internal compiler error.  These indicate a bug in the
// front end itself rather than in the user's program.
func ReportICE(msg string, args ...interface{}) {
	panic(fmt.Sprintf("internal compiler error: "+msg, args...))
}
