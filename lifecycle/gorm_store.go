package lifecycle

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lostfound-hub/api-go/models"
)

// GormStore is the Postgres-backed Store. Atomically opens a serializable
// transaction; SQLSTATE 40001 surfaces as ErrSerialization so the engine can
// retry.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (g *GormStore) Atomically(ctx context.Context, fn func(Store) error) error {
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "40001" {
		return ErrSerialization
	}
	return err
}

func (g *GormStore) ReportByID(ctx context.Context, id uint) (*models.Report, error) {
	var report models.Report
	err := g.db.WithContext(ctx).
		Preload("Item").Preload("Item.Category").Preload("Item.Location").Preload("Item.Images").
		First(&report, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &report, nil
}

func (g *GormStore) ReportForUpdate(ctx context.Context, id uint) (*models.Report, error) {
	var report models.Report
	err := g.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&report, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &report, nil
}

func (g *GormStore) CreateReport(ctx context.Context, report *models.Report) error {
	return translate(g.db.WithContext(ctx).Create(report).Error)
}

func (g *GormStore) SetReportStatus(ctx context.Context, id uint, status string) error {
	return translate(g.db.WithContext(ctx).
		Model(&models.Report{}).Where("id = ?", id).
		Update("status", status).Error)
}

func (g *GormStore) DeleteReportCascade(ctx context.Context, report *models.Report) error {
	db := g.db.WithContext(ctx)
	err := db.Where("claim_id IN (?)",
		db.Model(&models.Claim{}).Select("id").Where("report_id = ?", report.ID),
	).Delete(&models.HandoverLog{}).Error
	if err != nil {
		return translate(err)
	}
	if err := db.Where("report_id = ?", report.ID).Delete(&models.Claim{}).Error; err != nil {
		return translate(err)
	}
	if err := db.Delete(&models.Report{}, report.ID).Error; err != nil {
		return translate(err)
	}
	if err := db.Where("item_id = ?", report.ItemID).Delete(&models.ItemImage{}).Error; err != nil {
		return translate(err)
	}
	return translate(db.Delete(&models.Item{}, report.ItemID).Error)
}

func (g *GormStore) ClaimByID(ctx context.Context, id uint) (*models.Claim, error) {
	var claim models.Claim
	if err := g.db.WithContext(ctx).First(&claim, id).Error; err != nil {
		return nil, translate(err)
	}
	return &claim, nil
}

func (g *GormStore) ClaimsByReport(ctx context.Context, reportID uint) ([]models.Claim, error) {
	var claims []models.Claim
	err := g.db.WithContext(ctx).
		Where("report_id = ?", reportID).
		Order("created_at ASC").
		Find(&claims).Error
	if err != nil {
		return nil, translate(err)
	}
	return claims, nil
}

func (g *GormStore) ClaimCountByReport(ctx context.Context, reportID uint) (int64, error) {
	var n int64
	err := g.db.WithContext(ctx).
		Model(&models.Claim{}).
		Where("report_id = ?", reportID).
		Count(&n).Error
	return n, translate(err)
}

func (g *GormStore) CreateClaim(ctx context.Context, claim *models.Claim) error {
	return translate(g.db.WithContext(ctx).Create(claim).Error)
}

func (g *GormStore) SetClaimStatus(ctx context.Context, id uint, status, adminNotes string) error {
	return translate(g.db.WithContext(ctx).
		Model(&models.Claim{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "admin_notes": adminNotes}).Error)
}

func (g *GormStore) ItemByID(ctx context.Context, id uint) (*models.Item, error) {
	var item models.Item
	if err := g.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (g *GormStore) SaveItem(ctx context.Context, item *models.Item) error {
	return translate(g.db.WithContext(ctx).Save(item).Error)
}

func (g *GormStore) FindOrCreateLocation(ctx context.Context, name string) (uint, error) {
	var loc models.Location
	err := g.db.WithContext(ctx).
		Where(models.Location{Name: name}).
		FirstOrCreate(&loc).Error
	if err != nil {
		return 0, translate(err)
	}
	return loc.ID, nil
}

func (g *GormStore) AddItemImages(ctx context.Context, itemID uint, urls []string) error {
	images := make([]models.ItemImage, 0, len(urls))
	for _, url := range urls {
		images = append(images, models.ItemImage{ItemID: itemID, ImageURL: url})
	}
	return translate(g.db.WithContext(ctx).Create(&images).Error)
}

func (g *GormStore) DeleteItemImages(ctx context.Context, itemID uint, imageIDs []uint) error {
	return translate(g.db.WithContext(ctx).
		Where("item_id = ? AND id IN ?", itemID, imageIDs).
		Delete(&models.ItemImage{}).Error)
}

func (g *GormStore) CreateHandover(ctx context.Context, entry *models.HandoverLog) error {
	return translate(g.db.WithContext(ctx).Create(entry).Error)
}

func (g *GormStore) CreateNotification(ctx context.Context, note *models.Notification) error {
	return translate(g.db.WithContext(ctx).Create(note).Error)
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
