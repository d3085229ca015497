package models

// CountersTable holds the atomic id counters, one row per resource name.
const CountersTable = "Counters"

// Counter names for id allocation
const (
	CounterUsers       = "users"
	CounterMatches     = "matches"
	CounterMessages    = "messages"
	CounterEvents      = "events"
	CounterCompliments = "compliments"
)
