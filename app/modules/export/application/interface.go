package exportservice

import (
	"context"
	"errors"

	exportdomain "github.com/Black-And-White-Club/belote-bot/app/modules/export/domain"
	sessionservice "github.com/Black-And-White-Club/belote-bot/app/modules/session/application"
	"github.com/google/uuid"
)

// ErrStorageDisabled is returned by Publish when no bucket is configured.
var ErrStorageDisabled = errors.New("export storage is not configured")

// Service renders and publishes the files of a match.
type Service interface {
	Workbook(ctx context.Context, id uuid.UUID) (*File, error)
	Chart(ctx context.Context, id uuid.UUID) (*File, error)
	Publish(ctx context.Context, id uuid.UUID) (*Published, error)
}

// SessionReader is the part of the session service exports read from.
type SessionReader interface {
	GetSession(ctx context.Context, id uuid.UUID) (*sessionservice.SessionSnapshot, error)
}

// Storage puts a rendered file somewhere public and returns its URL.
type Storage interface {
	Upload(ctx context.Context, key, contentType string, body []byte) (string, error)
}

// File is a rendered export.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Published lists the URLs of the uploaded files of a session.
type Published struct {
	SessionID   uuid.UUID `json:"session_id"`
	WorkbookURL string    `json:"workbook_url"`
	ChartURL    string    `json:"chart_url"`
}

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePNG  = "image/png"
)

// IsValidationError reports whether err is a rejected request rather than
// an infrastructure failure.
func IsValidationError(err error) bool {
	return errors.Is(err, exportdomain.ErrNothingToExport) || sessionservice.IsValidationError(err)
}
