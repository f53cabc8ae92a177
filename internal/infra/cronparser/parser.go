package cronparser

import (
	"fmt"
	"strings"
	"time"

	cron "github.com/netresearch/go-cron"
)

var _parser = cron.MustNewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Schedule yields the activation time following a given time.
type Schedule interface {
	Next(after time.Time) time.Time
}

// Parse parses a five-field cron expression or a descriptor such as
// "@every 5m" or "@hourly". Specs without CRON_TZ=/TZ= prefix run in UTC.
func Parse(spec string) (Schedule, error) {
	schedule, err := _parser.Parse(buildSpec(spec))
	if err != nil {
		return nil, fmt.Errorf("parse cron spec %q: %w", spec, err)
	}

	if schedule.Next(time.Now()).IsZero() {
		return nil, fmt.Errorf("parse cron spec %q: %w", spec, ErrNeverFires)
	}

	return schedule, nil
}

// EverySpec returns the descriptor for a fixed interval.
func EverySpec(interval time.Duration) string {
	return "@every " + interval.String()
}

// NextAfter returns the first activation of schedule strictly after now,
// stepping from base. Stepping from a fixed base keeps the cadence anchored to
// base instead of to the time the previous activation finished. It returns
// ErrNeverFires when the schedule has no further activation.
func NextAfter(schedule Schedule, base, now time.Time) (time.Time, error) {
	next := schedule.Next(base)
	for !next.IsZero() && !next.After(now) {
		next = schedule.Next(next)
	}

	if next.IsZero() {
		return time.Time{}, ErrNeverFires
	}

	return next, nil
}

func buildSpec(spec string) string {
	spec = strings.TrimSpace(spec)

	hasTZPrefix := strings.HasPrefix(spec, "CRON_TZ=") ||
		strings.HasPrefix(spec, "TZ=")

	if !hasTZPrefix {
		return "CRON_TZ=UTC " + spec
	}

	return spec
}
