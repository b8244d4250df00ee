package walk

import "minic/report"

// logError reports a semantic error.
func (w *Walker) logError(pos report.Position, length int, msg string, a ...interface{}) {
	w.diags = append(w.diags, report.Raise(report.PhaseSemantic, pos, length, msg, a...))
}

// logWarning reports a semantic warning.
func (w *Walker) logWarning(pos report.Position, length int, msg string, a ...interface{}) {
	w.diags = append(w.diags, report.Warn(report.PhaseSemantic, pos, length, msg, a...))
}
