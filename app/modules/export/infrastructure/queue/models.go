package exportqueue

import "github.com/google/uuid"

// ExportMatchJob renders and uploads the files of a finished match.
type ExportMatchJob struct {
	SessionID uuid.UUID `json:"session_id"`
}

// Kind returns the job type identifier for River
func (ExportMatchJob) Kind() string { return "export_match" }

// Queue is the dedicated River queue for export jobs.
const Queue = "export"
