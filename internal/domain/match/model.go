package match

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusLive      = "LIVE"
	StatusFinished  = "FINISHED"
	StatusPostponed = "POSTPONED"
	StatusCancelled = "CANCELLED"
)

// Round labels one elimination stage.
type Round string

const (
	RoundNone         Round = ""
	RoundQuarterfinal Round = "Quarterfinal"
	RoundSemifinal    Round = "Semifinal"
	RoundFinal        Round = "Final"
)

var roundDepth = map[Round]int{
	RoundQuarterfinal: 1,
	RoundSemifinal:    2,
	RoundFinal:        3,
}

// Next returns the round that follows r.
func (r Round) Next() (Round, bool) {
	switch r {
	case RoundQuarterfinal:
		return RoundSemifinal, true
	case RoundSemifinal:
		return RoundFinal, true
	default:
		return RoundNone, false
	}
}

// Before reports whether r is played earlier in the bracket than other.
func (r Round) Before(other Round) bool {
	return roundDepth[r] < roundDepth[other]
}

func ParseRound(value string) Round {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "quarterfinal":
		return RoundQuarterfinal
	case "semifinal":
		return RoundSemifinal
	case "final":
		return RoundFinal
	default:
		return RoundNone
	}
}

// Match is one fixture between two teams in a group and season.
type Match struct {
	ID           string
	GroupID      string
	SeasonID     string
	HomeTeamID   string
	AwayTeamID   string
	ScheduledAt  time.Time
	Status       string
	HomeScore    *int
	AwayScore    *int
	IsPlayoff    bool
	PlayoffRound Round
	PlayoffSlot  int
	FinishedAt   *time.Time
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

func IsFinishedStatus(status string) bool {
	return NormalizeStatus(status) == StatusFinished
}

func (m Match) IsFinished() bool {
	return IsFinishedStatus(m.Status) && m.HomeScore != nil && m.AwayScore != nil
}

// IsPending reports whether the fixture still has to be played.
// Cancelled fixtures are never played and do not hold up a schedule.
func (m Match) IsPending() bool {
	return !m.IsFinished() && NormalizeStatus(m.Status) != StatusCancelled
}

// CountsForTable reports whether the match feeds the regular classification.
func (m Match) CountsForTable() bool {
	return !m.IsPlayoff && m.IsFinished()
}

// SlotKey identifies the bracket position a playoff fixture occupies; it is
// empty for regular fixtures.
func (m Match) SlotKey() string {
	if !m.IsPlayoff {
		return ""
	}
	return m.SeasonID + "|" + m.GroupID + "|" + string(m.PlayoffRound) + "|" + strconv.Itoa(m.PlayoffSlot)
}

func (m Match) Involves(teamID string) bool {
	return m.HomeTeamID == teamID || m.AwayTeamID == teamID
}

func Regular(items []Match) []Match {
	out := make([]Match, 0, len(items))
	for _, item := range items {
		if !item.IsPlayoff {
			out = append(out, item)
		}
	}
	return out
}

func Playoffs(items []Match) []Match {
	out := make([]Match, 0)
	for _, item := range items {
		if item.IsPlayoff {
			out = append(out, item)
		}
	}
	return out
}

func CountPending(items []Match) int {
	count := 0
	for _, item := range items {
		if item.IsPending() {
			count++
		}
	}
	return count
}

// LatestScheduled returns the latest kickoff among items.
func LatestScheduled(items []Match) time.Time {
	var latest time.Time
	for _, item := range items {
		if item.ScheduledAt.After(latest) {
			latest = item.ScheduledAt
		}
	}
	return latest
}

// SortChronological orders matches by kickoff, then id.
func SortChronological(items []Match) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].ScheduledAt.Equal(items[j].ScheduledAt) {
			return items[i].ScheduledAt.Before(items[j].ScheduledAt)
		}
		return items[i].ID < items[j].ID
	})
}
