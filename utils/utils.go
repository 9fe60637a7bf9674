package utils

import (
	"errors"
	"sort"
	"strings"
	"time"
)

const Layout = "2006-01-02"

var NYSE = []string{"2022-01-17", "2022-02-21", "2022-04-15", "2022-05-30", "2022-06-20", "2022-07-04", "2022-09-05", "2022-11-24", "2022-12-26", "2023-01-02", "2023-01-16", "2023-02-20", "2023-04-07", "2023-05-29", "2023-06-19", "2023-07-04", "2023-09-04", "2023-11-23", "2023-12-25", "2024-01-01", "2024-01-15", "2024-02-19", "2024-03-29", "2024-05-27", "2024-06-19", "2024-07-04", "2024-09-02", "2024-11-28", "2024-12-25", "2025-01-01", "2025-01-20", "2025-02-17", "2025-04-18", "2025-05-26", "2025-06-19", "2025-07-04", "2025-09-01", "2025-11-27", "2025-12-25"}

// Convert holidays from string to time.Time format
func Hols(s []string) ([]time.Time, error) {
	h := make([]time.Time, len(s))
	for i, v := range s {
		d, err := time.Parse(Layout, v)
		if err != nil {
			return nil, err
		}
		h[i] = d
	}
	return h, nil
}

func IsHol(d time.Time, hols []time.Time) bool {
	for _, v := range hols {
		if d.Equal(v) {
			return true
		}
	}
	return false
}

func IsWeekday(d time.Time) bool {
	return d.Weekday() > 0 && d.Weekday() < 6
}

func AdjustFollowing(d time.Time, hols []time.Time) time.Time {
	for IsHol(d, hols) || !IsWeekday(d) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// Return a list of business days from (and including) a start date to (and including) an end date according to a holiday calendar
func ListBusinessDates(start time.Time, end time.Time, hols []time.Time) ([]time.Time, error) {
	if end.Before(start) {
		return nil, errors.New("end date must be later than start date")
	}
	start = AdjustFollowing(start, hols)
	var out []time.Time
	for !start.After(end) {
		out = append(out, start)
		start = AdjustFollowing(start.AddDate(0, 0, 1), hols)
	}
	return out, nil
}

// BusinessDates returns n consecutive business days starting on or after start.
func BusinessDates(start time.Time, n int, hols []time.Time) []time.Time {
	if n <= 0 {
		return []time.Time{}
	}
	end := start.AddDate(0, 0, 2*n+7)
	for {
		out, _ := ListBusinessDates(start, end, hols)
		if len(out) >= n {
			return out[:n]
		}
		end = end.AddDate(0, 0, n)
	}
}

func format(labels []string) []string {
	if len(labels) == 0 {
		return []string{}
	}
	out := make([]string, 0, len(labels))
	for _, s := range labels {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	var unique []string
	for i, v := range out {
		if i == 0 || v != out[i-1] {
			unique = append(unique, v)
		}
	}
	return unique
}

// Filter keeps the entries of all that appear in selected, in the order of all.
// Selection is case-insensitive. The map gives each kept entry's position in all.
func Filter(selected, all []string) ([]string, map[string]int, error) {
	selected = format(selected)
	index := map[string]int{}
	var out []string
	for i, v := range all {
		j := sort.SearchStrings(selected, v)
		if j < len(selected) && selected[j] == v {
			index[v] = i
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil, nil, errors.New("no matching entries")
	}
	return out, index, nil
}
