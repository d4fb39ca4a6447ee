package planner

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	// MaxWeeks caps how long a generated program can run.
	MaxWeeks = 12
	// DefaultWeeks is used when the request doesn't name a duration.
	DefaultWeeks = 2
)

var weekPattern = regexp.MustCompile(`(\d+)[\s-]?week`)

// WeekCount extracts an explicit week count from the request text, matching
// forms like "4 week", "4-week" and "4weeks". Counts above MaxWeeks are
// capped; there is no lower clamp, so "0 week" yields 0. Requests with no
// week count default to DefaultWeeks.
func WeekCount(prompt string) int {
	m := weekPattern.FindStringSubmatch(strings.ToLower(prompt))
	if m == nil {
		return DefaultWeeks
	}
	weeks, err := strconv.Atoi(m[1])
	if err != nil {
		return DefaultWeeks
	}
	if weeks > MaxWeeks {
		return MaxWeeks
	}
	return weeks
}
