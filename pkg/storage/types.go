package storage

import "time"

// Run is one saved calculation.
type Run struct {
	ID        int64
	Directory string
	CreatedAt time.Time
	Status    string
	// Clubs is the number of clubs in the saved standings.
	Clubs int
}
