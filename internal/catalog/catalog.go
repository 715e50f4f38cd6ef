package catalog

import (
	"errors"
	"strings"
	"sync"
)

var (
	// ErrEmptyName is returned when a product name is blank after trimming.
	ErrEmptyName = errors.New("product name is empty")
	// ErrDuplicateName is returned when the name already exists in the catalog.
	ErrDuplicateName = errors.New("product already exists")
	// ErrNotFound is returned when a position is outside the catalog bounds.
	ErrNotFound = errors.New("product not found")
)

// Catalog is an ordered, insertion-preserving set of unique product names
// owned by a single billing session. Mutations report whether the catalog
// actually changed so the caller decides when to re-render; there is no
// implicit refresh.
type Catalog struct {
	mu    sync.Mutex
	names []string
}

// New builds a catalog from the seed list, dropping blanks and duplicates
// while preserving first-seen order.
func New(seed []string) *Catalog {
	c := &Catalog{names: make([]string, 0, len(seed))}
	for _, name := range seed {
		_, _ = c.Add(name)
	}
	return c
}

// Add appends a product name. Blank names and duplicates are rejected.
func (c *Catalog) Add(name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, ErrEmptyName
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.indexOf(name) >= 0 {
		return false, ErrDuplicateName
	}
	c.names = append(c.names, name)
	return true, nil
}

// Rename replaces the name at the given position. Renaming to the current
// name is a no-op; renaming onto another existing product is rejected.
func (c *Catalog) Rename(index int, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, ErrEmptyName
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.names) {
		return false, ErrNotFound
	}
	if c.names[index] == name {
		return false, nil
	}
	if c.indexOf(name) >= 0 {
		return false, ErrDuplicateName
	}
	c.names[index] = name
	return true, nil
}

// Remove deletes the product at the given position and returns its name.
func (c *Catalog) Remove(index int) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.names) {
		return "", ErrNotFound
	}
	removed := c.names[index]
	c.names = append(c.names[:index], c.names[index+1:]...)
	return removed, nil
}

// Name returns the product name at the given position.
func (c *Catalog) Name(index int) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.names) {
		return "", ErrNotFound
	}
	return c.names[index], nil
}

// Names returns a snapshot of the product names in insertion order.
func (c *Catalog) Names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Len reports the number of products.
func (c *Catalog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.names)
}

func (c *Catalog) indexOf(name string) int {
	for i, existing := range c.names {
		if existing == name {
			return i
		}
	}
	return -1
}
