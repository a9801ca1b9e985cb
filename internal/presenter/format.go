// Package presenter turns normalized matches into display-ready view models.
// Every function is pure: callers pass the clock reading and display location.
package presenter

import (
	"fmt"
	"strconv"
	"time"

	"github.com/preston-bernstein/matchintel-service/internal/domain/matches"
)

const (
	LabelLive      = "● Live"
	LabelUpcoming  = "Upcoming"
	LabelCompleted = "Completed"

	ClassLive      = "live"
	ClassUpcoming  = "upcoming"
	ClassCompleted = "completed"

	TimeUnknown = "Time TBA"
	TimeStarted = "Started"

	// absoluteLayout is used once a match is a day or more away.
	absoluteLayout = "Jan 2, 03:04 PM"
	detailDate     = "Mon Jan 02 2006"
	detailTime     = "3:04:05 PM"

	zeroRunRate = "0.00"
)

// StatusLabel returns the badge text for the derived match status.
func StatusLabel(m matches.Match) string {
	switch m.Status() {
	case matches.StatusLive:
		return LabelLive
	case matches.StatusCompleted:
		return LabelCompleted
	default:
		return LabelUpcoming
	}
}

// StatusClass returns the style hint paired with StatusLabel.
func StatusClass(m matches.Match) string {
	switch m.Status() {
	case matches.StatusLive:
		return ClassLive
	case matches.StatusCompleted:
		return ClassCompleted
	default:
		return ClassUpcoming
	}
}

// RunRate reports the run rate of the last innings for live matches.
// The second return is false when the match is not live or has no innings.
func RunRate(m matches.Match) (string, bool) {
	if !m.IsLive() {
		return "", false
	}
	last, ok := m.LastInnings()
	if !ok {
		return "", false
	}
	if last.Overs <= 0 {
		return zeroRunRate, true
	}
	return fmt.Sprintf("%.2f", float64(last.Runs)/last.Overs), true
}

// TimeLabel describes when target starts relative to now.
// Hours and minutes are truncated, never rounded.
func TimeLabel(target, now time.Time, loc *time.Location) string {
	if target.IsZero() {
		return TimeUnknown
	}
	diff := target.Sub(now)
	if diff < 0 {
		return TimeStarted
	}
	hours := int(diff / time.Hour)
	minutes := int((diff % time.Hour) / time.Minute)
	switch {
	case hours < 1:
		return fmt.Sprintf("Starts in %dm", minutes)
	case hours < 24:
		return fmt.Sprintf("Starts in %dh %dm", hours, minutes)
	default:
		return target.In(location(loc)).Format(absoluteLayout)
	}
}

// ScoreLine renders runs/wickets, e.g. 285/7.
func ScoreLine(in matches.Innings) string {
	return fmt.Sprintf("%d/%d", in.Runs, in.Wickets)
}

// ScoreRow renders runs/wickets with overs, e.g. 285/7 (85.4).
func ScoreRow(in matches.Innings) string {
	return fmt.Sprintf("%s (%s)", ScoreLine(in), formatOvers(in.Overs))
}

// formatOvers keeps cricket notation as-is: 50 stays 50, 85.4 stays 85.4.
func formatOvers(overs float64) string {
	return strconv.FormatFloat(overs, 'f', -1, 64)
}

func location(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}
