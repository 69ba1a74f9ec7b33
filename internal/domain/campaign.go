package domain

import "time"

// CampaignStats aggregates the public numbers shown above the donation buttons.
type CampaignStats struct {
	Participants int64
	RaisedMinor  int64
	GoalMinor    int64
	UpdatedAt    time.Time
}

// DefaultCampaignStats is served when no database is configured.
var DefaultCampaignStats = CampaignStats{
	Participants: 15958,
	RaisedMinor:  52970000,
	GoalMinor:    196000000,
}

// ProgressPercent returns the share of the goal already raised, floored and capped at 100.
func (s CampaignStats) ProgressPercent() int {
	if s.GoalMinor <= 0 || s.RaisedMinor <= 0 {
		return 0
	}
	p := s.RaisedMinor * 100 / s.GoalMinor
	if p > 100 {
		return 100
	}
	return int(p)
}
