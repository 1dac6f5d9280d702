package exporthandlers

import (
	"context"

	exportservice "github.com/Black-And-White-Club/belote-bot/app/modules/export/application"
	"github.com/google/uuid"
)

// FakeService implements exportservice.Service with per-method hooks.
type FakeService struct {
	WorkbookFunc func(ctx context.Context, id uuid.UUID) (*exportservice.File, error)
	ChartFunc    func(ctx context.Context, id uuid.UUID) (*exportservice.File, error)
	PublishFunc  func(ctx context.Context, id uuid.UUID) (*exportservice.Published, error)
}

func (f *FakeService) Workbook(ctx context.Context, id uuid.UUID) (*exportservice.File, error) {
	return f.WorkbookFunc(ctx, id)
}

func (f *FakeService) Chart(ctx context.Context, id uuid.UUID) (*exportservice.File, error) {
	return f.ChartFunc(ctx, id)
}

func (f *FakeService) Publish(ctx context.Context, id uuid.UUID) (*exportservice.Published, error) {
	return f.PublishFunc(ctx, id)
}

// FakeQueue records enqueued sessions.
type FakeQueue struct {
	Enqueued []uuid.UUID
	Err      error
}

func (f *FakeQueue) EnqueueExport(_ context.Context, id uuid.UUID) error {
	if f.Err != nil {
		return f.Err
	}
	f.Enqueued = append(f.Enqueued, id)
	return nil
}

var (
	_ exportservice.Service = (*FakeService)(nil)
	_ Enqueuer              = (*FakeQueue)(nil)
)
