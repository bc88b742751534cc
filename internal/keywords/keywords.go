// Package keywords decides whether a SQL identifier collides with a reserved
// word and must be quoted.
package keywords

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed sql_keywords_postgresql.yaml
var postgresKeywords []byte

// document is the on-disk format of a keyword list.
type document struct {
	SQLKeywords []string `yaml:"sql_keywords"`
}

// Set is a read-only set of reserved words. Create it once at startup and
// share it; it is safe for concurrent use.
type Set struct {
	words map[string]struct{}
}

// New builds a Set from words. Words are compared upper-cased.
func New(words ...string) *Set {
	s := &Set{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		w = strings.ToUpper(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		s.words[w] = struct{}{}
	}
	return s
}

// Load reads a YAML document with a single list field "sql_keywords".
func Load(r io.Reader) (*Set, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode keywords: %w", err)
	}
	if len(doc.SQLKeywords) == 0 {
		return nil, fmt.Errorf("decode keywords: sql_keywords is empty")
	}
	return New(doc.SQLKeywords...), nil
}

// LoadFile reads a keyword document from path.
func LoadFile(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open keywords: %w", err)
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Default returns the built-in PostgreSQL reserved word list.
func Default() (*Set, error) {
	return Load(bytes.NewReader(postgresKeywords))
}

// Contains reports whether name is reserved, ignoring case.
func (s *Set) Contains(name string) bool {
	_, ok := s.words[strings.ToUpper(name)]
	return ok
}

// Len returns the number of reserved words.
func (s *Set) Len() int {
	return len(s.words)
}

// Escape returns name double-quoted when it is reserved, unchanged otherwise.
// Callers pass names already lower-cased.
func (s *Set) Escape(name string) string {
	if s.Contains(name) {
		return `"` + name + `"`
	}
	return name
}
