// Package exportevents declares the messages the export module emits.
package exportevents

import (
	"time"

	"github.com/google/uuid"
)

// ExportPublishedV1 is published once the files of a finished match are in
// object storage.
const ExportPublishedV1 = "belote.export.published.v1"

// ExportPublishedPayload points at the published files.
type ExportPublishedPayload struct {
	SessionID   uuid.UUID `json:"session_id"`
	WorkbookURL string    `json:"workbook_url"`
	ChartURL    string    `json:"chart_url"`
	PublishedAt time.Time `json:"published_at"`
}
