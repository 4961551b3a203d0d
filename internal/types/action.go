package types

type (
	// Action reports what handling an open event did.
	Action string

	// SyncReport summarizes a batch synthesis run.
	SyncReport struct {
		Scanned int      `json:"scanned"`
		Updated []string `json:"updated"`
		Failed  []string `json:"failed,omitempty"`
	}
)

const (
	ActionSkipped     Action = "skipped"
	ActionBacklink    Action = "backlink"
	ActionSynthesized Action = "synthesized"
)
