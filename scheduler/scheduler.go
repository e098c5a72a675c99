package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/lostfound-hub/api-go/models"
)

// readNotificationRetention is how long read notifications are kept before
// the nightly purge removes them.
const readNotificationRetention = 30 * 24 * time.Hour

// Scheduler runs periodic housekeeping jobs.
type Scheduler struct {
	cron *cron.Cron
	db   *gorm.DB
	log  *logrus.Logger
}

func NewScheduler(db *gorm.DB, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLocation(time.UTC)),
		db:   db,
		log:  log,
	}
}

// Start registers the jobs and begins the cron loop.
func (s *Scheduler) Start() {
	// Purge old read notifications daily at 3 AM UTC
	_, err := s.cron.AddFunc("0 3 * * *", s.purgeOldNotifications)
	if err != nil {
		s.log.WithError(err).Error("failed to register notification purge job")
	}

	// Drop expired refresh tokens daily at 4 AM UTC
	_, err = s.cron.AddFunc("0 4 * * *", s.purgeExpiredRefreshTokens)
	if err != nil {
		s.log.WithError(err).Error("failed to register refresh token purge job")
	}

	s.cron.Start()
	s.log.Info("housekeeping scheduler started")
}

// Stop gracefully stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) purgeOldNotifications() {
	cutoff := time.Now().Add(-readNotificationRetention)
	result := s.db.
		Where("is_read = true AND created_at < ?", cutoff).
		Delete(&models.Notification{})
	if result.Error != nil {
		s.log.WithError(result.Error).Error("notification purge failed")
		return
	}
	if result.RowsAffected > 0 {
		s.log.WithField("deleted", result.RowsAffected).Info("purged old notifications")
	}
}

func (s *Scheduler) purgeExpiredRefreshTokens() {
	result := s.db.
		Where("expiration_date < ?", time.Now()).
		Delete(&models.RefreshToken{})
	if result.Error != nil {
		s.log.WithError(result.Error).Error("refresh token purge failed")
		return
	}
	if result.RowsAffected > 0 {
		s.log.WithField("deleted", result.RowsAffected).Info("purged expired refresh tokens")
	}
}
