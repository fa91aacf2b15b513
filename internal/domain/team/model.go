package team

import "fmt"

// Team is a persistent competitor. Popularity only breaks otherwise exact ties.
type Team struct {
	ID         string
	Name       string
	Short      string
	Popularity int
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if t.Popularity < 0 {
		return fmt.Errorf("team popularity must be >= 0")
	}

	return nil
}
