package helpers

import (
	"time"

	"golang.org/x/time/rate"
)

// OnceAMinute throttles repetitive log records, e.g. a dashboard refresh failing on every tick.
var OnceAMinute = onceAMinute()

func onceAMinute() *rate.Sometimes {
	return &rate.Sometimes{
		Interval: time.Minute,
	}
}

// NewLimiter returns a limiter allowing perSecond events with a burst of one. A non-positive rate disables limiting.
func NewLimiter(perSecond float64) *rate.Limiter {
	if perSecond <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(perSecond), 1)
}
