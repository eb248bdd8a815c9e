package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseMillis parses a delay given either as a bare integer number of
// milliseconds ("15") or as a Go duration string ("15ms", "1.5s").
func ParseMillis(input string) (time.Duration, error) {
	input = strings.TrimSpace(input)
	if ms, err := strconv.ParseUint(input, 10, 32); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}

	d, err := time.ParseDuration(input)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid delay format: %q\n\nValid formats:\n"+
			"• whole milliseconds (e.g., '10', '250')\n"+
			"• duration string (e.g., '15ms', '1.5s')", input)
	}
	return d, nil
}
