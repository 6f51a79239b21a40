// Package catalog holds the fixed, ordered list of probability experiments
// served by a quiz session.
package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	// ErrIndexOutOfRange is returned by Get for an index outside [0, Len()).
	ErrIndexOutOfRange = errors.New("experiment index out of range")

	// ErrInvalidCatalog is returned when catalog data fails validation.
	ErrInvalidCatalog = errors.New("invalid experiment catalog")
)

//go:embed experiments.json
var experimentsJSON []byte

// Item is a single quiz experiment.
type Item struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Visual      []string       `json:"visual"` // glyph tokens, render only
	Outcome     string         `json:"outcome"`
	Correct     Classification `json:"correct"`
}

// clone returns a copy of the item that does not share the Visual slice.
func (it Item) clone() Item {
	it.Visual = append([]string(nil), it.Visual...)
	return it
}

// Catalog is an immutable ordered sequence of experiments.
type Catalog struct {
	items []Item
}

// New builds a catalog from items. The slice is copied.
func New(items []Item) (*Catalog, error) {
	if err := validateItems(items); err != nil {
		return nil, err
	}
	cp := make([]Item, len(items))
	for i, it := range items {
		cp[i] = it.clone()
	}
	return &Catalog{items: cp}, nil
}

// Parse validates raw JSON against the catalog schema and builds a catalog.
func Parse(raw []byte) (*Catalog, error) {
	if err := validateDocument(raw); err != nil {
		return nil, err
	}
	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidCatalog, err)
	}
	return New(items)
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the reference catalog compiled into the binary.
// It panics if the embedded data is invalid.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(experimentsJSON)
		if err != nil {
			panic(fmt.Sprintf("catalog: embedded experiments: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Len returns the number of experiments.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Get returns the experiment at index.
func (c *Catalog) Get(index int) (Item, error) {
	if index < 0 || index >= len(c.items) {
		return Item{}, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, len(c.items))
	}
	return c.items[index].clone(), nil
}

// Items returns a copy of every experiment in order.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	for i, it := range c.items {
		out[i] = it.clone()
	}
	return out
}

// validateItems performs the structural checks on a set of items.
// Returns a combined error describing all problems found, or nil if valid.
func validateItems(items []Item) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: no experiments", ErrInvalidCatalog)
	}

	var errs []string
	for i, it := range items {
		if strings.TrimSpace(it.Title) == "" {
			errs = append(errs, fmt.Sprintf("experiment %d: empty title", i))
		}
		if strings.TrimSpace(it.Outcome) == "" {
			errs = append(errs, fmt.Sprintf("experiment %d: empty outcome", i))
		}
		if !it.Correct.Valid() {
			errs = append(errs, fmt.Sprintf("experiment %d: invalid classification %q", i, it.Correct))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w:\n  %s", ErrInvalidCatalog, strings.Join(errs, "\n  "))
	}
	return nil
}
