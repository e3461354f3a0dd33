package domain

import "fmt"

// Failure is a policy or validation failure surfaced through the response
// envelope. It is a value, not a Go error: no failure ever escapes a tool
// entry point as a panic or error return.
//
// Halt failures carry the "Halt:" prefix in their rendered text and mark
// policy-level stops (missing mandatory fields, unauthorized actor,
// referential misses, transition violations). Plain failures mark input
// validation errors. TransferToHuman marks halts the harness is expected to
// escalate.
type Failure struct {
	Message         string
	Halt            bool
	TransferToHuman bool
}

// Invalidf builds a plain validation failure.
func Invalidf(format string, args ...any) *Failure {
	return &Failure{Message: fmt.Sprintf(format, args...)}
}

// Haltf builds a policy-level halt.
func Haltf(format string, args ...any) *Failure {
	return &Failure{Message: fmt.Sprintf(format, args...), Halt: true}
}

// Escalatef builds a halt that also requests human escalation.
func Escalatef(format string, args ...any) *Failure {
	return &Failure{Message: fmt.Sprintf(format, args...), Halt: true, TransferToHuman: true}
}

// Text renders the failure message with the Halt prefix when applicable.
func (f *Failure) Text() string {
	if f.Halt {
		return "Halt: " + f.Message
	}
	return f.Message
}
