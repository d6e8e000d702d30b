package odds

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseTrials converts the raw text of a hit-count control into a trial count.
// Empty, non-integer and non-positive input is rejected with ErrInvalidTrials;
// the caller decides whether to keep its previous table or substitute a default.
func ParseTrials(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("empty hit count: %w", ErrInvalidTrials)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("hit count %q: %w", raw, ErrInvalidTrials)
	}
	if err := validateTrials(n); err != nil {
		return 0, fmt.Errorf("hit count %d: %w", n, err)
	}
	return n, nil
}
