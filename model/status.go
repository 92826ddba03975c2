package model

import "time"

// SyncStatus describes the most recent sync run for the status endpoint.
type SyncStatus struct {
	Started  time.Time `json:"started"`
	Finished time.Time `json:"finished"`
	Error    string    `json:"error,omitempty"`
}

func (s SyncStatus) Running() bool {
	return !s.Started.IsZero() && s.Finished.IsZero()
}
