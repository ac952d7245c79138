package model

import "strconv"

// ComputeKeyResultProgress derives a normalized completion percentage from a
// key result's baseline, target, and current values.
//
// Values are stored as text; unparsable values are treated as 0. A missing
// current value defaults to the baseline, so a key result with no check-ins
// shows 0% progress rather than an error. When target equals baseline the
// result is 0 — a defined edge case, not a failure.
//
// The result is always clamped to [0,100]. Pure computation, safe to call
// repeatedly.
func ComputeKeyResultProgress(baseline, target, current string) float64 {
	b := parseMetric(baseline)
	t := parseMetric(target)

	var c float64
	if current == "" {
		c = b
	} else {
		c = parseMetric(current)
	}

	if t == b {
		return 0
	}

	progress := (c - b) / (t - b) * 100
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}

// parseMetric parses a stored metric value, treating unparsable input as 0.
func parseMetric(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
