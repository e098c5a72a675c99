package lifecycle

import (
	"context"
	"sync"

	"github.com/lostfound-hub/api-go/models"
)

// memStore is an in-memory Store for engine tests. Atomically snapshots all
// tables and restores them when fn fails, so rollback behaves like the real
// transaction. failNext injects one ErrSerialization to exercise the retry
// path.
type memStore struct {
	mu sync.Mutex

	reports       map[uint]*models.Report
	claims        map[uint]*models.Claim
	items         map[uint]*models.Item
	itemImages    map[uint]*models.ItemImage
	locations     map[string]uint
	handovers     []models.HandoverLog
	notifications []models.Notification

	nextReportID uint
	nextClaimID  uint
	nextItemID   uint
	nextImageID  uint
	nextLocID    uint

	failNext int // pending ErrSerialization injections for Atomically
	notifyErr error
}

func newMemStore() *memStore {
	return &memStore{
		reports:    map[uint]*models.Report{},
		claims:     map[uint]*models.Claim{},
		items:      map[uint]*models.Item{},
		itemImages: map[uint]*models.ItemImage{},
		locations:  map[string]uint{},
	}
}

func (m *memStore) snapshot() *memStore {
	c := newMemStore()
	for id, r := range m.reports {
		cp := *r
		c.reports[id] = &cp
	}
	for id, cl := range m.claims {
		cp := *cl
		c.claims[id] = &cp
	}
	for id, it := range m.items {
		cp := *it
		c.items[id] = &cp
	}
	for id, im := range m.itemImages {
		cp := *im
		c.itemImages[id] = &cp
	}
	for name, id := range m.locations {
		c.locations[name] = id
	}
	c.handovers = append([]models.HandoverLog(nil), m.handovers...)
	c.notifications = append([]models.Notification(nil), m.notifications...)
	c.nextReportID = m.nextReportID
	c.nextClaimID = m.nextClaimID
	c.nextItemID = m.nextItemID
	c.nextImageID = m.nextImageID
	c.nextLocID = m.nextLocID
	return c
}

func (m *memStore) restore(s *memStore) {
	m.reports = s.reports
	m.claims = s.claims
	m.items = s.items
	m.itemImages = s.itemImages
	m.locations = s.locations
	m.handovers = s.handovers
	m.notifications = s.notifications
	m.nextReportID = s.nextReportID
	m.nextClaimID = s.nextClaimID
	m.nextItemID = s.nextItemID
	m.nextImageID = s.nextImageID
	m.nextLocID = s.nextLocID
}

func (m *memStore) Atomically(ctx context.Context, fn func(Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failNext > 0 {
		m.failNext--
		return ErrSerialization
	}
	saved := m.snapshot()
	if err := fn(m); err != nil {
		m.restore(saved)
		return err
	}
	return nil
}

func (m *memStore) ReportByID(ctx context.Context, id uint) (*models.Report, error) {
	r, ok := m.reports[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memStore) ReportForUpdate(ctx context.Context, id uint) (*models.Report, error) {
	return m.ReportByID(ctx, id)
}

func (m *memStore) CreateReport(ctx context.Context, report *models.Report) error {
	m.nextReportID++
	report.ID = m.nextReportID
	cp := *report
	m.reports[report.ID] = &cp
	return nil
}

func (m *memStore) SetReportStatus(ctx context.Context, id uint, status string) error {
	r, ok := m.reports[id]
	if !ok {
		return ErrNotFound
	}
	r.Status = status
	return nil
}

func (m *memStore) DeleteReportCascade(ctx context.Context, report *models.Report) error {
	for id, c := range m.claims {
		if c.ReportID == report.ID {
			delete(m.claims, id)
		}
	}
	delete(m.reports, report.ID)
	for id, im := range m.itemImages {
		if im.ItemID == report.ItemID {
			delete(m.itemImages, id)
		}
	}
	delete(m.items, report.ItemID)
	return nil
}

func (m *memStore) ClaimByID(ctx context.Context, id uint) (*models.Claim, error) {
	c, ok := m.claims[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memStore) ClaimsByReport(ctx context.Context, reportID uint) ([]models.Claim, error) {
	var out []models.Claim
	for id := uint(1); id <= m.nextClaimID; id++ {
		if c, ok := m.claims[id]; ok && c.ReportID == reportID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memStore) ClaimCountByReport(ctx context.Context, reportID uint) (int64, error) {
	var n int64
	for _, c := range m.claims {
		if c.ReportID == reportID {
			n++
		}
	}
	return n, nil
}

func (m *memStore) CreateClaim(ctx context.Context, claim *models.Claim) error {
	m.nextClaimID++
	claim.ID = m.nextClaimID
	cp := *claim
	m.claims[claim.ID] = &cp
	return nil
}

func (m *memStore) SetClaimStatus(ctx context.Context, id uint, status, adminNotes string) error {
	c, ok := m.claims[id]
	if !ok {
		return ErrNotFound
	}
	c.Status = status
	c.AdminNotes = adminNotes
	return nil
}

func (m *memStore) ItemByID(ctx context.Context, id uint) (*models.Item, error) {
	it, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *it
	return &cp, nil
}

func (m *memStore) SaveItem(ctx context.Context, item *models.Item) error {
	if item.ID == 0 {
		m.nextItemID++
		item.ID = m.nextItemID
	}
	cp := *item
	m.items[item.ID] = &cp
	return nil
}

func (m *memStore) FindOrCreateLocation(ctx context.Context, name string) (uint, error) {
	if id, ok := m.locations[name]; ok {
		return id, nil
	}
	m.nextLocID++
	m.locations[name] = m.nextLocID
	return m.nextLocID, nil
}

func (m *memStore) AddItemImages(ctx context.Context, itemID uint, urls []string) error {
	for _, url := range urls {
		m.nextImageID++
		m.itemImages[m.nextImageID] = &models.ItemImage{ID: m.nextImageID, ItemID: itemID, ImageURL: url}
	}
	return nil
}

func (m *memStore) DeleteItemImages(ctx context.Context, itemID uint, imageIDs []uint) error {
	for _, id := range imageIDs {
		if im, ok := m.itemImages[id]; ok && im.ItemID == itemID {
			delete(m.itemImages, id)
		}
	}
	return nil
}

func (m *memStore) CreateHandover(ctx context.Context, entry *models.HandoverLog) error {
	entry.ID = uint(len(m.handovers) + 1)
	m.handovers = append(m.handovers, *entry)
	return nil
}

func (m *memStore) CreateNotification(ctx context.Context, n *models.Notification) error {
	if m.notifyErr != nil {
		return m.notifyErr
	}
	n.ID = uint(len(m.notifications) + 1)
	m.notifications = append(m.notifications, *n)
	return nil
}

func (m *memStore) notificationsFor(userID uint) []models.Notification {
	var out []models.Notification
	for _, n := range m.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}
