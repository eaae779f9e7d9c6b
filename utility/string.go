package utility

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ToFloat parses a float query value, returning the fallback when the value
// is empty or malformed.
func ToFloat(s string, fallback float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fallback
	}
	return f
}

// ToInt parses an integer query value, accepting float notation the way the
// upstream APIs do, returning the fallback when malformed.
func ToInt(s string, fallback int) int {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fallback
	}
	return int(f)
}

// Clamp keeps v inside [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampFloat keeps v inside [lo, hi].
func ClampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SplitCSV splits a comma-separated list, trimming blanks and dropping
// empty entries.
func SplitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func NewUUID() string {
	return uuid.New().String()
}
