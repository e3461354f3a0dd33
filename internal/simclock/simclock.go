package simclock

import "time"

// Layouts for the two canonical string forms used across the fixture. All
// timestamps are second precision, no zone suffix.
const (
	TimestampLayout = "2006-01-02T15:04:05"
	DateLayout      = "2006-01-02"
)

// defaultNow is the simulated "today" of the benchmark fixture. Every
// created_at/updated_at and audit timestamp flows through a Clock seeded with
// this instant unless a scenario overrides it.
var defaultNow = time.Date(2025, time.October, 1, 12, 0, 0, 0, time.UTC)

// Clock is the single time source for the core. It never reads the system
// clock; the fixture's notion of "now" is fixed so runs are reproducible.
type Clock struct {
	now time.Time
}

// Option configures a Clock.
type Option func(*Clock)

// WithNow overrides the simulated instant.
func WithNow(now time.Time) Option {
	return func(c *Clock) { c.now = now }
}

// New returns a Clock at the fixture's default simulated instant, with
// options applied.
func New(opts ...Option) *Clock {
	c := &Clock{now: defaultNow}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Now returns the simulated instant.
func (c *Clock) Now() time.Time { return c.now }

// Stamp returns the simulated instant as an ISO-8601 timestamp string.
func (c *Clock) Stamp() string { return c.now.Format(TimestampLayout) }

// Today returns the simulated date as YYYY-MM-DD.
func (c *Clock) Today() string { return c.now.Format(DateLayout) }
