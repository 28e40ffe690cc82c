package contents

import "sort"

// Entry is one row of a ranking: a package name and the number of files it
// installs according to the index.
type Entry struct {
	Name  string `json:"name"`
	Files int    `json:"files"`
}

// Counter accumulates file counts per package over the lines of one index.
// A Counter belongs to exactly one pipeline run and is not safe for
// concurrent use.
type Counter struct {
	counts map[string]int
}

// NewCounter creates an empty Counter.
func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int)}
}

// Record increments the count of every name in refs by one. A name listed
// twice on one line counts twice: the index attributes one file to the
// package per reference. An empty refs is a no-op.
func (c *Counter) Record(refs []string) {
	for _, name := range refs {
		c.counts[name]++
	}
}

// Len returns the number of distinct packages recorded.
func (c *Counter) Len() int { return len(c.counts) }

// Count returns the recorded count for name, zero if absent.
func (c *Counter) Count(name string) int { return c.counts[name] }

// TopN returns up to n entries ordered by count descending. Ties are broken
// by ascending package name so that repeated runs over the same index
// produce identical output. n <= 0 yields an empty slice; n larger than the
// number of distinct packages yields all of them.
func (c *Counter) TopN(n int) []Entry {
	if n <= 0 || len(c.counts) == 0 {
		return nil
	}

	entries := make([]Entry, 0, len(c.counts))
	for name, count := range c.counts {
		entries = append(entries, Entry{Name: name, Files: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Files != entries[j].Files {
			return entries[i].Files > entries[j].Files
		}
		return entries[i].Name < entries[j].Name
	})

	if n < len(entries) {
		entries = entries[:n]
	}
	return entries
}
