package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// durationUnits converts tracker durations ("1w 2d 3h 30m") to seconds and
// back using the configured working hours per day and days per week.
type durationUnits struct {
	hoursPerDay int
	daysPerWeek int
}

func (u durationUnits) unitSeconds(unit rune) (int64, bool) {
	minute := int64(60)
	hour := 60 * minute
	day := int64(u.hoursPerDay) * hour
	week := int64(u.daysPerWeek) * day
	switch unit {
	case 'w':
		return week, true
	case 'd':
		return day, true
	case 'h':
		return hour, true
	case 'm':
		return minute, true
	}
	return 0, false
}

// parse accepts space separated number+unit tokens. A bare number is minutes.
func (u durationUnits) parse(value string) (int64, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return 0, fmt.Errorf("duration is empty")
	}
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("duration %q is negative", value)
		}
		if n > math.MaxInt64/60 {
			return 0, fmt.Errorf("duration %q is too large", value)
		}
		return n * 60, nil
	}
	var total int64
	seen := map[rune]bool{}
	for _, field := range strings.Fields(value) {
		unit := rune(field[len(field)-1])
		number := field[:len(field)-1]
		size, ok := u.unitSeconds(unit)
		if !ok || number == "" || !allDigits(number) {
			return 0, fmt.Errorf("duration %q: invalid component %q", value, field)
		}
		if seen[unit] {
			return 0, fmt.Errorf("duration %q repeats unit %q", value, string(unit))
		}
		seen[unit] = true
		n, err := strconv.ParseInt(number, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("duration %q: %w", value, err)
		}
		if (size > 0 && n > math.MaxInt64/size) || total > math.MaxInt64-n*size {
			return 0, fmt.Errorf("duration %q: invalid component %q", value, field)
		}
		total += n * size
	}
	return total, nil
}

// format renders seconds with the largest units first, dropping zero parts.
func (u durationUnits) format(seconds int64) string {
	if seconds <= 0 {
		return "0m"
	}
	var parts []string
	for _, unit := range []rune{'w', 'd', 'h', 'm'} {
		size, _ := u.unitSeconds(unit)
		if size <= 0 {
			continue
		}
		if n := seconds / size; n > 0 {
			parts = append(parts, strconv.FormatInt(n, 10)+string(unit))
			seconds -= n * size
		}
	}
	if len(parts) == 0 {
		return "0m"
	}
	return strings.Join(parts, " ")
}

func allDigits(value string) bool {
	for _, r := range value {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func (t *Tracker) durations() durationUnits {
	return durationUnits{hoursPerDay: t.cfg.HoursPerDay, daysPerWeek: t.cfg.DaysPerWeek}
}
