package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidClassification is returned when a value is not one of the three
// probability classifications.
var ErrInvalidClassification = errors.New("invalid classification")

// Classification is the three-valued probability judgment for an outcome.
type Classification string

const (
	Impossible Classification = "impossible"
	Possible   Classification = "possible"
	Certain    Classification = "certain"
)

// AllClassifications returns the classifications in display order.
func AllClassifications() []Classification {
	return []Classification{Impossible, Possible, Certain}
}

// Valid reports whether c is one of the three classifications.
func (c Classification) Valid() bool {
	switch c {
	case Impossible, Possible, Certain:
		return true
	}
	return false
}

// DisplayName returns a title-cased label for c.
func (c Classification) DisplayName() string {
	switch c {
	case Impossible:
		return "Impossible"
	case Possible:
		return "Possible"
	case Certain:
		return "Certain"
	}
	return string(c)
}

// ParseClassification accepts "impossible", "possible" or "certain",
// ignoring case and surrounding whitespace.
func ParseClassification(s string) (Classification, error) {
	c := Classification(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidClassification, s)
	}
	return c, nil
}
