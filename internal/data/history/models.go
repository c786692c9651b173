package history

import "time"

const SchemaVersion = 1

// Check names recorded in snapshots.
const (
	CheckKeys = "keys"
	CheckText = "text"
)

// Snapshot summarizes one check run.
type Snapshot struct {
	RunID           string        `json:"run_id"`
	SchemaVersion   int           `json:"schema_version"`
	ProjectKey      string        `json:"project_key"`
	Timestamp       time.Time     `json:"timestamp"`
	Check           string        `json:"check"`
	CommitHash      string        `json:"commit_hash,omitempty"`
	CommitTimestamp time.Time     `json:"commit_timestamp,omitempty"`
	KeysVerified    int           `json:"keys_verified"`
	MissingCount    int           `json:"missing_count"`
	ExtraCount      int           `json:"extra_count"`
	FilesScanned    int           `json:"files_scanned"`
	FindingCount    int           `json:"finding_count"`
	Passed          bool          `json:"passed"`
	Duration        time.Duration `json:"duration"`
}

// Problems is the number of report entries the run produced.
func (s Snapshot) Problems() int {
	return s.MissingCount + s.ExtraCount + s.FindingCount
}

type TrendPoint struct {
	Snapshot
	// Change in problem count against the previous run of the same check.
	DeltaProblems int `json:"delta_problems"`
}

type TrendReport struct {
	Since      time.Time    `json:"since"`
	Until      time.Time    `json:"until"`
	RunCount   int          `json:"run_count"`
	PassCount  int          `json:"pass_count"`
	FailCount  int          `json:"fail_count"`
	LastFailed *time.Time   `json:"last_failed,omitempty"`
	Points     []TrendPoint `json:"points"`
}
