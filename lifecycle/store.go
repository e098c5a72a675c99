package lifecycle

import (
	"context"

	"github.com/lostfound-hub/api-go/models"
)

// Store is the persistence boundary of the engine. The gorm implementation
// backs production; tests use an in-memory fake. Lookups return ErrNotFound
// when the row does not exist.
type Store interface {
	ReportByID(ctx context.Context, id uint) (*models.Report, error)
	// ReportForUpdate re-reads a report with a write lock. Only meaningful
	// inside Atomically; rules call it before branching on status so that
	// concurrent decisions on the same report serialize.
	ReportForUpdate(ctx context.Context, id uint) (*models.Report, error)
	CreateReport(ctx context.Context, report *models.Report) error
	SetReportStatus(ctx context.Context, id uint, status string) error
	DeleteReportCascade(ctx context.Context, report *models.Report) error

	ClaimByID(ctx context.Context, id uint) (*models.Claim, error)
	ClaimsByReport(ctx context.Context, reportID uint) ([]models.Claim, error)
	ClaimCountByReport(ctx context.Context, reportID uint) (int64, error)
	CreateClaim(ctx context.Context, claim *models.Claim) error
	SetClaimStatus(ctx context.Context, id uint, status, adminNotes string) error

	ItemByID(ctx context.Context, id uint) (*models.Item, error)
	SaveItem(ctx context.Context, item *models.Item) error
	FindOrCreateLocation(ctx context.Context, name string) (uint, error)
	AddItemImages(ctx context.Context, itemID uint, urls []string) error
	DeleteItemImages(ctx context.Context, itemID uint, imageIDs []uint) error

	CreateHandover(ctx context.Context, log *models.HandoverLog) error
	CreateNotification(ctx context.Context, n *models.Notification) error

	// Atomically runs fn against a transactional view of the store. All
	// writes commit together or not at all. Serialization conflicts are
	// reported as ErrSerialization after rollback.
	Atomically(ctx context.Context, fn func(Store) error) error
}
