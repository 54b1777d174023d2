// Package mode defines the closed set of search strategies.
package mode

import "fmt"

// Mode is the search strategy.
type Mode string

// Search mode constants.
const (
	// Vector ranks by embedding similarity only.
	Vector Mode = "vector"
	// Hybrid fuses embedding similarity with lexical relevance.
	Hybrid Mode = "hybrid"
)

// Parse validates a raw mode string. Unrecognized values are rejected
// rather than silently defaulted.
func Parse(s string) (Mode, error) {
	switch Mode(s) {
	case Vector, Hybrid:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unsupported search type %q", s)
	}
}

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Vector || m == Hybrid
}
