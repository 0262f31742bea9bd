package synonyms

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSharesConcept(t *testing.T) {
	table := Default()

	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"keyword and synonym", "time for the gym", "great workout today", true},
		{"no shared entry", "buy milk", "clean the house", false},
		{"synonym on both sides", "cook dinner", "prepare lunch", true},
		{"case insensitive", "GYM session", "Cardio", true},
		{"substring not word boundary", "gymnastics class", "weights", true},
		{"one side only", "read a novel", "call mom", false},
		{"empty strings", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, table.SharesConcept(tt.a, tt.b))
			// existential match is symmetric
			assert.Equal(t, tt.want, table.SharesConcept(tt.b, tt.a))
		})
	}
}

func TestConceptReturnsFirstQualifyingEntry(t *testing.T) {
	table := Default()

	// "project" belongs to both homework and work; homework comes first
	keyword, ok := table.Concept("finish project", "project review")
	require.True(t, ok)
	assert.Equal(t, "homework", keyword)
}

func TestNewCopiesAndLowercases(t *testing.T) {
	entries := []Entry{{Keyword: "Garden", Synonyms: []string{"Weeding", "Plants"}}}
	table := New(entries)

	entries[0].Synonyms[0] = "changed"

	assert.True(t, table.SharesConcept("garden day", "weeding"))
	assert.Equal(t, "garden", table.Entries()[0].Keyword)
}

func TestEntriesIsACopy(t *testing.T) {
	table := Default()
	got := table.Entries()
	got[0].Keyword = "mutated"
	got[0].Synonyms[0] = "mutated"

	assert.Equal(t, "gym", table.Entries()[0].Keyword)
	assert.Equal(t, "workout", table.Entries()[0].Synonyms[0])
	assert.Equal(t, 8, table.Len())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "synonyms.yaml")
	content := `synonyms:
  - keyword: laundry
    synonyms: [wash, clothes, iron]
  - keyword: bills
    synonyms: [pay, invoice, rent]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	table, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
	assert.True(t, table.SharesConcept("do laundry", "iron shirts"))
	assert.True(t, table.SharesConcept("pay rent", "electricity bills"))
	assert.False(t, table.SharesConcept("go to the gym", "workout"))
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("synonyms: [[["), 0644))
	_, err = LoadFile(bad)
	assert.Error(t, err)

	noKeyword := filepath.Join(dir, "nokey.yaml")
	require.NoError(t, os.WriteFile(noKeyword, []byte("synonyms:\n  - synonyms: [a]\n"), 0644))
	_, err = LoadFile(noKeyword)
	assert.Error(t, err)
}
