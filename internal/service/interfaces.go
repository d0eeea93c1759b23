package service

import (
	"context"

	"github.com/spystrach/interimBot/internal/domain"
	"github.com/spystrach/interimBot/internal/mail"
)

// DeletionEntry is one selectable row of the deletion menu.
type DeletionEntry struct {
	Label string // short mission form
	Key   string // stored date key
}

// MissionService orchestrates the read-side operations over the store:
// listing, deletion, the email summary, and the spreadsheet export.
type MissionService interface {
	Count(ctx context.Context) (int, error)
	ListText(ctx context.Context) (string, error)
	DeletionEntries(ctx context.Context) ([]DeletionEntry, error)
	Delete(ctx context.Context, key string) error

	// SendSummary mails the per-agency hours summary for every stored
	// mission.
	SendSummary(ctx context.Context, cfg mail.SMTP) error

	// Export writes every stored mission to the workbook at path and
	// returns what was written, so the caller can clean up after the file
	// is safely handed off.
	Export(ctx context.Context, path string) ([]*domain.Mission, error)

	// CleanupExported deletes the given missions from the store.
	// Individual failures are logged and skipped; the survivor count is
	// returned.
	CleanupExported(ctx context.Context, exported []*domain.Mission) int
}
