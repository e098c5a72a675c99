package lifecycle

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/lostfound-hub/api-go/models"
)

// Notifier persists user-facing notifications after a rule commits.
// Dispatch is best-effort: a failed insert is logged and swallowed, it never
// rolls back the state transition that triggered it.
type Notifier struct {
	store Store
	log   *logrus.Logger
}

func NewNotifier(store Store, log *logrus.Logger) *Notifier {
	return &Notifier{store: store, log: log}
}

func (n *Notifier) Dispatch(ctx context.Context, notes []models.Notification) {
	for i := range notes {
		if err := n.store.CreateNotification(ctx, &notes[i]); err != nil {
			n.log.WithFields(logrus.Fields{
				"user_id":    notes[i].UserID,
				"type":       notes[i].Kind,
				"related_id": notes[i].RelatedID,
			}).WithError(err).Error("notification dispatch failed")
		}
	}
}

func claimApprovedNote(claim *models.Claim) models.Notification {
	return models.Notification{
		UserID:    claim.ClaimedBy,
		Title:     "Claim Approved!",
		Message:   fmt.Sprintf("Your claim (#%d) has been approved! The item owner has been notified.", claim.ID),
		Kind:      models.NotificationClaimApproved,
		RelatedID: claim.ID,
	}
}

func claimRejectedNote(claim *models.Claim, reason string) models.Notification {
	message := fmt.Sprintf("Your claim (#%d) has been rejected.", claim.ID)
	if reason != "" {
		message += " Reason: " + reason
	}
	return models.Notification{
		UserID:    claim.ClaimedBy,
		Title:     "Claim Rejected",
		Message:   message,
		Kind:      models.NotificationClaimRejected,
		RelatedID: claim.ID,
	}
}

func reportConfirmedNote(report *models.Report) models.Notification {
	return models.Notification{
		UserID:    report.UserID,
		Title:     "Report Confirmed",
		Message:   fmt.Sprintf("Your %s item report (#%d) has been confirmed by admin.", report.Type, report.ID),
		Kind:      models.NotificationReportConfirmed,
		RelatedID: report.ID,
	}
}
