// Package synonyms decides whether two task descriptions share a domain concept
// using a fixed table of canonical keywords and their synonyms.
//
// Matching is plain case-insensitive substring containment on the whole
// string, not word-boundary matching: "gym" matches "gymnastics" and "run"
// matches "brunch". This is deliberate and kept for compatibility.
package synonyms

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entry maps one canonical keyword to its synonyms
type Entry struct {
	Keyword  string   `yaml:"keyword"`
	Synonyms []string `yaml:"synonyms"`
}

// Table is an ordered, read-only list of entries.
// Build it with New, Default or LoadFile; it is never mutated afterwards.
type Table struct {
	entries []Entry
}

// New builds a table from entries, lowercasing every term.
// The entries are copied so later changes by the caller have no effect.
func New(entries []Entry) *Table {
	copied := make([]Entry, 0, len(entries))
	for _, e := range entries {
		syns := make([]string, 0, len(e.Synonyms))
		for _, s := range e.Synonyms {
			syns = append(syns, strings.ToLower(s))
		}
		copied = append(copied, Entry{
			Keyword:  strings.ToLower(e.Keyword),
			Synonyms: syns,
		})
	}
	return &Table{entries: copied}
}

// Default returns the built-in table
func Default() *Table {
	return New([]Entry{
		{Keyword: "gym", Synonyms: []string{"workout", "exercise", "fitness", "training", "cardio", "weights"}},
		{Keyword: "homework", Synonyms: []string{"hw", "assignment", "study", "schoolwork", "project"}},
		{Keyword: "shopping", Synonyms: []string{"groceries", "buy", "purchase", "store", "market"}},
		{Keyword: "cleaning", Synonyms: []string{"clean", "tidy", "organize", "vacuum", "dust"}},
		{Keyword: "cooking", Synonyms: []string{"cook", "meal", "dinner", "lunch", "breakfast", "recipe"}},
		{Keyword: "work", Synonyms: []string{"job", "office", "meeting", "project", "task", "deadline"}},
		{Keyword: "reading", Synonyms: []string{"read", "book", "novel", "article", "study"}},
		{Keyword: "walking", Synonyms: []string{"walk", "stroll", "jog", "run", "hike"}},
	})
}

// fileFormat is the on-disk YAML layout for a synonym table
type fileFormat struct {
	Synonyms []Entry `yaml:"synonyms"`
}

// LoadFile reads a table from a YAML file of the form:
//
//	synonyms:
//	  - keyword: gym
//	    synonyms: [workout, exercise]
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read synonym file: %w", err)
	}

	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse synonym file %s: %w", path, err)
	}

	for i, e := range f.Synonyms {
		if strings.TrimSpace(e.Keyword) == "" {
			return nil, fmt.Errorf("synonym entry %d has no keyword", i)
		}
	}

	return New(f.Synonyms), nil
}

// Entries returns a copy of the table's entries in enumeration order
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	for i, e := range t.entries {
		out[i] = Entry{Keyword: e.Keyword, Synonyms: append([]string(nil), e.Synonyms...)}
	}
	return out
}

// Len returns the number of entries
func (t *Table) Len() int {
	return len(t.entries)
}

// SharesConcept reports whether a and b both mention the same entry, possibly
// through different terms of that entry (one says "gym", the other "workout").
// Entries are visited in order and the first entry matching both sides wins.
func (t *Table) SharesConcept(a, b string) bool {
	_, ok := t.Concept(a, b)
	return ok
}

// Concept is SharesConcept that also returns the keyword of the matching entry
func (t *Table) Concept(a, b string) (string, bool) {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	for _, e := range t.entries {
		if e.mentionedIn(a) && e.mentionedIn(b) {
			return e.Keyword, true
		}
	}
	return "", false
}

func (e Entry) mentionedIn(s string) bool {
	if e.Keyword != "" && strings.Contains(s, e.Keyword) {
		return true
	}
	for _, syn := range e.Synonyms {
		if syn != "" && strings.Contains(s, syn) {
			return true
		}
	}
	return false
}
