// Package classcodes holds the list of known class codes and answers
// prefix lookups against it.
package classcodes

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// SuggestionLimit is the number of suggestions shown while typing a class code.
const SuggestionLimit = 5

// Catalog is an immutable, sorted set of uppercase class codes.
type Catalog struct {
	codes []string
}

// New builds a catalog from codes, normalizing and de-duplicating them.
func New(codes []string) *Catalog {
	seen := make(map[string]bool, len(codes))
	normalized := make([]string, 0, len(codes))
	for _, code := range codes {
		code = normalize(code)
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		normalized = append(normalized, code)
	}
	sort.Strings(normalized)
	return &Catalog{codes: normalized}
}

// Parse reads one code per record from r. Extra CSV columns are ignored.
func Parse(r io.Reader) (*Catalog, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var codes []string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse class codes: %w", err)
		}
		if len(record) > 0 {
			codes = append(codes, record[0])
		}
	}
	return New(codes), nil
}

// Load reads a catalog from the file at path.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open class codes: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

func (c *Catalog) Len() int { return len(c.codes) }

// Contains reports whether code, ignoring case and surrounding space, is known.
func (c *Catalog) Contains(code string) bool {
	code = normalize(code)
	i := sort.SearchStrings(c.codes, code)
	return i < len(c.codes) && c.codes[i] == code
}

// Suggest returns up to limit known codes starting with prefix, ignoring
// case. An empty prefix matches nothing.
func (c *Catalog) Suggest(prefix string, limit int) []string {
	prefix = normalize(prefix)
	if prefix == "" || limit <= 0 {
		return []string{}
	}

	matches := []string{}
	for i := sort.SearchStrings(c.codes, prefix); i < len(c.codes) && len(matches) < limit; i++ {
		if !strings.HasPrefix(c.codes[i], prefix) {
			break
		}
		matches = append(matches, c.codes[i])
	}
	return matches
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
