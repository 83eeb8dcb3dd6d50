package routing

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatDuration renders whole seconds as "Xh Ym" or "Ym", flooring minutes.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// ParseDuration reads a FormatDuration string back into seconds.
func ParseDuration(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("parse duration: empty")
	}
	total := 0
	for _, f := range strings.Fields(s) {
		if len(f) < 2 {
			return 0, fmt.Errorf("parse duration %q: bad field %q", s, f)
		}
		n, err := strconv.Atoi(f[:len(f)-1])
		if err != nil || n < 0 {
			return 0, fmt.Errorf("parse duration %q: bad field %q", s, f)
		}
		switch f[len(f)-1] {
		case 'h':
			total += n * 3600
		case 'm':
			total += n * 60
		default:
			return 0, fmt.Errorf("parse duration %q: unknown unit in %q", s, f)
		}
	}
	return total, nil
}

// FormatDistance renders meters as "Nm" below one kilometre, "N.Nkm" otherwise.
func FormatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%dm", int(math.Round(meters)))
	}
	return fmt.Sprintf("%.1fkm", meters/1000)
}
