package daemon

import (
	"git.home.luguber.info/inful/filesync/internal/profile"
)

// StatusResponse is served on /status.
type StatusResponse struct {
	Status          Status          `json:"status"`
	IntervalMinutes int             `json:"interval_minutes"`
	Profiles        []ProfileStatus `json:"profiles"`
	LastPass        *Summary        `json:"last_pass,omitempty"`
	LastStatusLine  string          `json:"last_status_line,omitempty"`
}

// ProfileStatus describes one configured profile.
type ProfileStatus struct {
	ID           int      `json:"id"`
	Source       string   `json:"source"`
	Destinations []string `json:"destinations"`
}

// Snapshot collects the data for /status.
func (c *Coordinator) Snapshot() StatusResponse {
	resp := StatusResponse{
		Status:          c.Status(),
		IntervalMinutes: c.Interval(),
	}
	c.profiles.Each(func(id int, p *profile.Profile) {
		snap := p.Snapshot()
		dests := snap.Destinations
		if dests == nil {
			dests = []string{}
		}
		resp.Profiles = append(resp.Profiles, ProfileStatus{ID: id, Source: snap.Source, Destinations: dests})
	})
	if last, ok := c.LastSummary(); ok {
		resp.LastPass = &last
		resp.LastStatusLine = last.String()
	}
	return resp
}
