package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"
)

//go:embed data/muscles.md
var defaultSource []byte

// ErrEmpty is returned when a catalog source contains no muscles.
var ErrEmpty = errors.New("catalog contains no muscles")

// Catalog is an immutable, ordered set of muscles. It is safe for
// concurrent readers.
type Catalog struct {
	muscles []*Muscle
	byID    map[string]*Muscle
	groups  []string
}

// New builds a catalog from already parsed records. Records keep their
// order; a record with an empty ID is given the next "muscle-N" ID.
func New(muscles []Muscle) (*Catalog, error) {
	if len(muscles) == 0 {
		return nil, ErrEmpty
	}
	c := &Catalog{
		muscles: make([]*Muscle, 0, len(muscles)),
		byID:    make(map[string]*Muscle, len(muscles)),
	}
	seenGroup := make(map[string]bool)
	for i := range muscles {
		m := muscles[i]
		if m.ID == "" {
			m.ID = fmt.Sprintf("muscle-%d", i+1)
		}
		if _, dup := c.byID[m.ID]; dup {
			return nil, fmt.Errorf("duplicate muscle id %q", m.ID)
		}
		c.muscles = append(c.muscles, &m)
		c.byID[m.ID] = &m
		if !seenGroup[m.Group] {
			seenGroup[m.Group] = true
			c.groups = append(c.groups, m.Group)
		}
	}
	return c, nil
}

// Load parses a catalog source.
func Load(r io.Reader) (*Catalog, error) {
	muscles, err := Parse(r)
	if err != nil {
		return nil, err
	}
	return New(muscles)
}

// LoadFile parses the catalog file at path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return c, nil
}

var loadDefault = sync.OnceValue(func() *Catalog {
	c, err := Load(bytes.NewReader(defaultSource))
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
})

// Default returns the catalog compiled into the binary.
func Default() *Catalog {
	return loadDefault()
}

// Open returns the catalog at path, or the embedded catalog when path is empty.
func Open(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// Len returns the number of muscles.
func (c *Catalog) Len() int {
	return len(c.muscles)
}

// All returns every muscle in source order.
func (c *Catalog) All() []*Muscle {
	return slices.Clone(c.muscles)
}

// Get returns the muscle with the given ID.
func (c *Catalog) Get(id string) (*Muscle, error) {
	m, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("muscle not found: %q", id)
	}
	return m, nil
}

// Groups returns the group names in order of first appearance.
func (c *Catalog) Groups() []string {
	return slices.Clone(c.groups)
}

// ByGroup returns the muscles of one group in source order.
func (c *Catalog) ByGroup(group string) []*Muscle {
	var out []*Muscle
	for _, m := range c.muscles {
		if m.Group == group {
			out = append(out, m)
		}
	}
	return out
}

// Search returns muscles whose name, Latin name or group contains the
// query, case-insensitively. An empty query matches everything.
func (c *Catalog) Search(query string) []*Muscle {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.All()
	}
	var out []*Muscle
	for _, m := range c.muscles {
		if strings.Contains(strings.ToLower(m.Name), q) ||
			strings.Contains(strings.ToLower(m.LatinName.String()), q) ||
			strings.Contains(strings.ToLower(m.Group), q) {
			out = append(out, m)
		}
	}
	return out
}
