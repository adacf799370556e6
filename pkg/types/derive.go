package types

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

// Sentinel display values for the derived duration column.
const (
	DurationEmpty   = "-"
	DurationInvalid = "Invalid dates"
)

// durationPattern recovers the day count from a persisted duration string.
var durationPattern = regexp.MustCompile(`(\d+)\s*days`)

// Recompute derives the duration and warning state from the schema's date
// pair. With both dates set and end >= start the duration is the ceiling of
// the day difference, flagged as a warning when at most warnDays remain.
// End before start (or an unparseable date) yields the invalid sentinel and
// a warning. With either date absent the column shows "-" and no warning.
// Registers without a duration column are left untouched.
func Recompute(r *Record, s Schema, warnDays int) {
	if !s.HasDuration() {
		return
	}
	startVal := r.Values[s.StartField]
	endVal := r.Values[s.EndField]
	if startVal == "" || endVal == "" {
		r.Duration = DurationEmpty
		r.Warning = false
		return
	}
	start, errStart := time.Parse(DateLayout, startVal)
	end, errEnd := time.Parse(DateLayout, endVal)
	if errStart != nil || errEnd != nil || end.Before(start) {
		r.Duration = DurationInvalid
		r.Warning = true
		return
	}
	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	r.Duration = FormatDuration(days)
	r.Warning = days <= warnDays
}

// FormatDuration renders a day count in the persisted display form.
func FormatDuration(days int) string {
	return fmt.Sprintf("%d days left", days)
}

// ParseDurationDays recovers the day count from a persisted duration string.
func ParseDurationDays(duration string) (int, bool) {
	m := durationPattern.FindStringSubmatch(duration)
	if m == nil {
		return 0, false
	}
	days, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return days, true
}

// RestoreDerived re-installs a persisted duration string on a rehydrated
// record, recovering the warning flag by re-parsing the display value. The
// load path runs Recompute afterwards for every record; when both dates are
// present the recomputed state is authoritative over the parsed one.
func RestoreDerived(r *Record, s Schema, stored string, warnDays int) {
	if !s.HasDuration() {
		return
	}
	if stored == "" {
		stored = DurationEmpty
	}
	r.Duration = stored
	if days, ok := ParseDurationDays(stored); ok {
		r.Warning = days <= warnDays
	} else {
		r.Warning = stored == DurationInvalid
	}
}
