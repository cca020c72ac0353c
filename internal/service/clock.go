package service

import "time"

// Clock supplies "today" so reports, the expiry job and tests agree on it.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now().UTC() }
