package score

import (
	"fmt"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/oomph-ac/aimbench/game"
)

const notAvailable = "N/A"

// Scoreboard keeps the statistics shown in the banner. Shots at the reference target are never counted.
type Scoreboard struct {
	destroyed   int
	targetTimes []float64
	shots, hits int
}

// Shot records a shot. It is ignored while the reference target is shown.
func (s *Scoreboard) Shot(reference bool) {
	if !reference {
		s.shots++
	}
}

// Hit records a shot that hit a target. It is ignored while the reference target is shown.
func (s *Scoreboard) Hit(reference bool) {
	if !reference {
		s.hits++
	}
}

// Destroyed records a destroyed target that lived for age seconds.
func (s *Scoreboard) Destroyed(age float32) {
	s.destroyed++
	s.targetTimes = append(s.targetTimes, float64(age))
}

func (s *Scoreboard) Shots() int          { return s.shots }
func (s *Scoreboard) Hits() int           { return s.hits }
func (s *Scoreboard) DestroyedCount() int { return s.destroyed }

// MeanTime returns the mean time to destroy a target in seconds, or false if no target was destroyed yet.
func (s *Scoreboard) MeanTime() (float64, bool) {
	if len(s.targetTimes) == 0 {
		return 0, false
	}
	return game.Mean(s.targetTimes), true
}

// Accuracy returns the hit percentage as displayed: "N/A" without any shot, 100×hits/shots otherwise.
func (s *Scoreboard) Accuracy() string {
	if s.shots == 0 {
		return notAvailable
	}
	return fmt.Sprintf("%.1f%%", 100*float64(s.hits)/float64(s.shots))
}

// Banner returns the banner rows in display order.
func (s *Scoreboard) Banner(reference bool) *orderedmap.OrderedMap[string, string] {
	rows := orderedmap.NewOrderedMap[string, string]()
	if reference {
		rows.Set("Message", "Click to destroy the target!")
		return rows
	}

	rows.Set("Destroyed", fmt.Sprint(s.destroyed))
	if mean, ok := s.MeanTime(); ok {
		rows.Set("Avg Time", fmt.Sprintf("%.3fs", mean))
	} else {
		rows.Set("Avg Time", notAvailable)
	}
	rows.Set("Accuracy", s.Accuracy())
	return rows
}

// Reset clears every statistic.
func (s *Scoreboard) Reset() {
	*s = Scoreboard{}
}
