package season

import (
	"fmt"
	"strings"
	"time"
)

// Season is one competition cycle. At most one season is active at a time.
type Season struct {
	ID       string
	Name     string
	Active   bool
	StartsOn time.Time
	EndsOn   time.Time
	ClosedAt *time.Time
}

func (s Season) IsClosed() bool {
	return s.ClosedAt != nil
}

func (s Season) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("season id is required")
	}
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("season name is required")
	}
	if !s.StartsOn.IsZero() && !s.EndsOn.IsZero() && s.EndsOn.Before(s.StartsOn) {
		return fmt.Errorf("season end must not be before start")
	}

	return nil
}
