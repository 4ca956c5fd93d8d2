package location

import (
	"sync/atomic"
	"time"
)

var current atomic.Pointer[time.Location]

// Set loads the named zone and makes it the location used for event start times.
// An empty name selects UTC.
func Set(name string) error {
	if name == "" {
		current.Store(time.UTC)
		return nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return err
	}
	current.Store(loc)
	return nil
}

func Location() *time.Location {
	if loc := current.Load(); loc != nil {
		return loc
	}
	return time.UTC
}
