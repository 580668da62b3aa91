package handlers

import "time"

// Deps holds the narrow dependencies required by event handlers.
type Deps struct {
	now func() time.Time
}

// NewDeps builds a dependency bundle for handler calls.
func NewDeps(now func() time.Time) Deps {
	return Deps{now: now}
}

func (d Deps) Now() time.Time {
	if d.now != nil {
		return d.now()
	}
	return time.Now()
}
