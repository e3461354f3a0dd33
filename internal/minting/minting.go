package minting

import (
	"strconv"

	"agentbench/internal/store"
)

// defaultStarts carries the table-local starting IDs inherited from the
// benchmark fixtures. Tables not listed start at 1.
var defaultStarts = map[string]int{
	"documents":           9001,
	"payments":            10001,
	"benefit_enrollments": 11001,
}

const fallbackStart = 1

// Minter assigns the next record ID for a table. It is a pure function of the
// snapshot and the table identity: no counters, no persistence. Two mints in a
// row return the same ID unless the first one was committed.
type Minter struct {
	starts map[string]int
}

// Option configures a Minter.
type Option func(*Minter)

// WithStart overrides the starting ID for one table.
func WithStart(table string, start int) Option {
	return func(m *Minter) { m.starts[table] = start }
}

// WithStarts overrides starting IDs for several tables at once.
func WithStarts(starts map[string]int) Option {
	return func(m *Minter) {
		for table, start := range starts {
			m.starts[table] = start
		}
	}
}

// New returns a Minter with the fixture's default start IDs, with options
// applied.
func New(opts ...Option) *Minter {
	m := &Minter{starts: map[string]int{}}
	for table, start := range defaultStarts {
		m.starts[table] = start
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start returns the configured starting ID for a table.
func (m *Minter) Start(table string) int {
	if s, ok := m.starts[table]; ok {
		return s
	}
	return fallbackStart
}

// Mint returns the next ID for the table as a decimal string: the configured
// start when the table is empty, otherwise max(numeric keys)+1. Keys that do
// not parse as integers are ignored.
func (m *Minter) Mint(snap store.Snapshot, table string) string {
	max := -1
	for id := range snap.Table(table) {
		n, err := strconv.Atoi(id)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	if max < 0 {
		return strconv.Itoa(m.Start(table))
	}
	return strconv.Itoa(max + 1)
}
