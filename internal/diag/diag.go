// Package diag collects non-fatal warnings produced while resolving and
// bundling, as an explicit value returned to the caller rather than global
// log side effects. Tests assert on it directly.
package diag

import "fmt"

// Warning codes. They mirror the discovery-phase error taxonomy: the fatal
// variants of these conditions surface as errors instead.
const (
	CodeUnresolvableReference = "unresolvable-reference"
	CodeSchemaNotFound        = "schema-not-found"
)

// Warning is one recoverable problem encountered during a run.
type Warning struct {
	// Code is one of the Code* constants.
	Code string
	// Subject identifies what the warning is about, usually a reference key
	// or the raw reference string.
	Subject string
	// Message is the human-readable explanation.
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s: %s", w.Code, w.Subject, w.Message)
}

// Diagnostics is an ordered list of warnings. The zero value is ready to use.
type Diagnostics struct {
	warnings []Warning
}

// Warnf records a warning.
func (d *Diagnostics) Warnf(code, subject, format string, args ...any) {
	d.warnings = append(d.warnings, Warning{
		Code:    code,
		Subject: subject,
		Message: fmt.Sprintf(format, args...),
	})
}

// Warnings returns the recorded warnings in the order they were raised.
func (d *Diagnostics) Warnings() []Warning {
	return d.warnings
}

// Empty reports whether no warnings were recorded.
func (d *Diagnostics) Empty() bool {
	return len(d.warnings) == 0
}

// Merge appends all warnings from other.
func (d *Diagnostics) Merge(other *Diagnostics) {
	if other == nil {
		return
	}
	d.warnings = append(d.warnings, other.warnings...)
}
