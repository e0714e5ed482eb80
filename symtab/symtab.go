// Package symtab is the variable store shared by the interpreter and the
// machine. A fresh table is created for every run.
package symtab

import (
	"fmt"
	"io"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pontaoski/dendron/errors"
)

// maxSuggestDistance is the largest edit distance between a misspelt name and
// the bound name suggested for it.
const maxSuggestDistance = 2

type Table struct {
	vals map[string]int64
}

func New() *Table {
	return &Table{
		vals: make(map[string]int64),
	}
}

// Get returns the value bound to name. Reading an unbound name is an
// Uninitialized error, never a default value.
func (t *Table) Get(name string) (int64, error) {
	if val, ok := t.vals[name]; ok {
		return val, nil
	}

	return 0, errors.Uninitialized{
		Name:       name,
		Suggestion: t.closest(name),
	}
}

func (t *Table) Lookup(name string) (int64, bool) {
	val, ok := t.vals[name]
	return val, ok
}

// Set binds name, replacing any earlier binding.
func (t *Table) Set(name string, val int64) {
	t.vals[name] = val
}

func (t *Table) Len() int {
	return len(t.vals)
}

// Names returns the bound names in sorted order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.vals))
	for name := range t.vals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Map returns a copy of the bindings.
func (t *Table) Map() map[string]int64 {
	ret := make(map[string]int64, len(t.vals))
	for k, v := range t.vals {
		ret[k] = v
	}
	return ret
}

func (t *Table) closest(name string) string {
	names := t.Names()
	if len(names) == 0 {
		return ""
	}

	ranks := fuzzy.RankFindFold(name, names)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		if ranks[0].Distance <= maxSuggestDistance {
			return ranks[0].Target
		}
	}

	best, bestDistance := "", maxSuggestDistance+1
	for _, candidate := range names {
		if d := fuzzy.LevenshteinDistance(name, candidate); d < bestDistance {
			best, bestDistance = candidate, d
		}
	}
	return best
}

// Dump writes every binding in sorted name order.
func (t *Table) Dump(w io.Writer) error {
	if _, err := fmt.Fprint(w, "Symbol Table Contents\n=====================\n\n"); err != nil {
		return err
	}
	for _, name := range t.Names() {
		if _, err := fmt.Fprintf(w, "%12s : %11d\n", name, t.vals[name]); err != nil {
			return err
		}
	}
	return nil
}
