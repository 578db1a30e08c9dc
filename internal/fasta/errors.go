package fasta

import "fmt"

// MalformedError reports sequence data that appears before any header line.
// Line is 1-based and counts every input line, blank ones included.
type MalformedError struct {
	Line int
	Text string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("fasta: line %d: sequence data before any header: %q", e.Line, e.Text)
}
