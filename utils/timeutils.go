package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	// SurveyDayLayout is the DD/MM/YYYY layout of ENTD day fields.
	SurveyDayLayout = "02/01/2006"
	// UnknownClock replaces a missing clock value. The trailing second keeps
	// it distinguishable from a real midnight.
	UnknownClock = "00:00:01"
	// UnknownDay replaces a missing day value.
	UnknownDay = "01/01/1900"
)

// ParseSurveyDay parses a DD/MM/YYYY day at midnight UTC.
func ParseSurveyDay(day string) (time.Time, error) {
	return time.ParseInLocation(SurveyDayLayout, strings.TrimSpace(day), time.UTC)
}

// ParseClock splits an HH:MM[:SS] clock string. Hours may exceed 23 for
// events logged past midnight under the previous day.
func ParseClock(clock string) (hours, minutes, seconds int, err error) {
	clock = strings.TrimSpace(clock)
	parts := strings.Split(clock, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, 0, 0, fmt.Errorf("invalid clock %q", clock)
	}
	values := [3]int{}
	for i, p := range parts {
		// Some extracts carry fractional seconds ("10:00:00.0")
		if i == 2 {
			if dot := strings.IndexByte(p, '.'); dot >= 0 {
				p = p[:dot]
			}
		}
		v, convErr := strconv.Atoi(p)
		if convErr != nil || v < 0 {
			return 0, 0, 0, fmt.Errorf("invalid clock %q", clock)
		}
		values[i] = v
	}
	if values[1] > 59 || values[2] > 59 {
		return 0, 0, 0, fmt.Errorf("invalid clock %q", clock)
	}
	return values[0], values[1], values[2], nil
}

// SurveyTimestamp combines a raw day and clock into one instant. Empty
// fields fall back to UnknownDay and UnknownClock; an hour of 24 or more
// rolls over onto the following day(s).
func SurveyTimestamp(day, clock string) (time.Time, error) {
	if strings.TrimSpace(day) == "" {
		day = UnknownDay
	}
	if strings.TrimSpace(clock) == "" {
		clock = UnknownClock
	}
	d, err := ParseSurveyDay(day)
	if err != nil {
		return time.Time{}, err
	}
	h, m, s, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	extraDays := h / 24
	h = h % 24
	d = d.AddDate(0, 0, extraDays)
	return time.Date(d.Year(), d.Month(), d.Day(), h, m, s, 0, time.UTC), nil
}

// ElapsedSeconds returns the seconds from origin to ts.
func ElapsedSeconds(origin, ts time.Time) float64 {
	return ts.Sub(origin).Seconds()
}

// IsUnknownTimeSentinel reports whether an elapsed time carries the
// unknown-clock marker (last digit 1), using floored modulo so negative
// values behave like positive ones.
func IsUnknownTimeSentinel(elapsed float64) bool {
	if math.IsNaN(elapsed) || math.IsInf(elapsed, 0) {
		return false
	}
	mod := math.Mod(elapsed, 10)
	if mod < 0 {
		mod += 10
	}
	return mod == 1
}

// FormatSurveyClock renders an instant as HH:MM:SS.
func FormatSurveyClock(ts time.Time) string {
	return ts.Format("15:04:05")
}

// FormatSurveyDay renders an instant as DD/MM/YYYY.
func FormatSurveyDay(ts time.Time) string {
	return ts.Format(SurveyDayLayout)
}
