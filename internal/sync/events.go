package sync

import "time"

const RecordSavedEvent = "record.saved"

// RecordEvent is broadcast to websocket listeners after a record is stored.
type RecordEvent struct {
	Type        string    `json:"type"`
	NameSlug    string    `json:"nameSlug"`
	Version     int       `json:"version"`
	CaughtCount int       `json:"caughtCount"`
	At          time.Time `json:"at"`
}
