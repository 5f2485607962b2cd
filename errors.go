package fluentexpr

import "fmt"

// InvalidRangeError reports a malformed character range: a bound that
// is not exactly one character, an inverted pair, or an odd number of
// range bounds.
type InvalidRangeError struct {
	Lo, Hi string
	Reason string
}

func (e *InvalidRangeError) Error() string {
	if e.Lo == "" && e.Hi == "" {
		return fmt.Sprintf("invalid character range: %s", e.Reason)
	}
	return fmt.Sprintf("invalid character range %q-%q: %s", e.Lo, e.Hi, e.Reason)
}

// InvalidGroupNameError reports a capture-group name outside the
// engine's grammar (ASCII word characters, not starting with a digit).
type InvalidGroupNameError struct{ Name string }

func (e *InvalidGroupNameError) Error() string {
	return fmt.Sprintf("invalid capture group name %q", e.Name)
}

// UnsupportedQuantifierRangeError reports a repetition whose minimum
// exceeds its finite maximum.
type UnsupportedQuantifierRangeError struct{ Min, Max int }

func (e *UnsupportedQuantifierRangeError) Error() string {
	return fmt.Sprintf("unsupported quantifier range {%d,%d}: min exceeds max", e.Min, e.Max)
}
