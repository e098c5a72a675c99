package lifecycle

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/lostfound-hub/api-go/models"
)

// Admin-note texts written by automatic transitions. Shown to claimants, so
// the exact wording is part of the behavior.
const (
	competingClaimNotes  = "Another claim was approved for this item."
	foundByOwnerNotes    = "Item was found by the owner."
	returnedToOwnerNotes = "Item returned to owner."
)

// Engine coordinates report and claim status transitions. Each rule executes
// inside one serializable transaction; across all of them at most one claim
// per report is approved or completed at any time.
type Engine struct {
	store    Store
	notifier *Notifier
	log      *logrus.Logger
}

func New(store Store, notifier *Notifier, log *logrus.Logger) *Engine {
	return &Engine{store: store, notifier: notifier, log: log}
}

// atomically applies fn with the engine's retry policy: one retry on a
// serialization conflict, then KindConflict.
func (e *Engine) atomically(ctx context.Context, fn func(Store) error) error {
	err := e.store.Atomically(ctx, fn)
	if errors.Is(err, ErrSerialization) {
		err = e.store.Atomically(ctx, fn)
		if errors.Is(err, ErrSerialization) {
			return newErr(KindConflict, "the report was modified concurrently, retry the request")
		}
	}
	return storageErr(err)
}

// DecideClaim applies an admin decision to a pending claim. Approving demotes
// every competing approved or completed claim to rejected, then moves the
// report forward: found items go to confirmed and wait for the owner's
// handover confirmation, lost items go straight to returned. Rejecting
// requires admin notes; when no approved claim remains the report resets to
// pending so other users can claim again.
func (e *Engine) DecideClaim(ctx context.Context, actor ActorContext, claimID uint, decision, adminNotes string) (*models.Claim, error) {
	if !actor.IsAdmin() {
		return nil, newErr(KindPermission, "admin rights required")
	}
	switch decision {
	case models.ClaimStatusApproved, models.ClaimStatusRejected:
	default:
		return nil, newErr(KindValidation, "decision must be approved or rejected")
	}
	adminNotes = strings.TrimSpace(adminNotes)
	if decision == models.ClaimStatusRejected && adminNotes == "" {
		return nil, newErr(KindValidation, "rejecting a claim requires admin notes")
	}

	var decided *models.Claim
	var notes []models.Notification
	err := e.atomically(ctx, func(s Store) error {
		notes = notes[:0]
		claim, err := s.ClaimByID(ctx, claimID)
		if err != nil {
			return err
		}
		report, err := s.ReportForUpdate(ctx, claim.ReportID)
		if err != nil {
			return err
		}
		// Re-read under the report lock: a concurrent decision may have
		// settled this claim already.
		claim, err = s.ClaimByID(ctx, claimID)
		if err != nil {
			return err
		}
		if claim.Status != models.ClaimStatusPending {
			return newErr(KindInvalidState, "claim #%d has already been %s", claim.ID, claim.Status)
		}

		if decision == models.ClaimStatusApproved {
			others, err := s.ClaimsByReport(ctx, report.ID)
			if err != nil {
				return err
			}
			for _, other := range others {
				if other.ID == claim.ID {
					continue
				}
				if other.Status == models.ClaimStatusApproved || other.Status == models.ClaimStatusCompleted {
					if err := s.SetClaimStatus(ctx, other.ID, models.ClaimStatusRejected, competingClaimNotes); err != nil {
						return err
					}
					o := other
					notes = append(notes, claimRejectedNote(&o, competingClaimNotes))
				}
			}
			if err := s.SetClaimStatus(ctx, claim.ID, models.ClaimStatusApproved, adminNotes); err != nil {
				return err
			}
			notes = append(notes, claimApprovedNote(claim))

			target := models.ReportStatusConfirmed
			if report.Type == models.ReportTypeLost {
				// The reporter is the item's owner; the claimant coming
				// forward is the finder, so no extra confirmation step.
				target = models.ReportStatusReturned
			}
			if err := s.SetReportStatus(ctx, report.ID, target); err != nil {
				return err
			}
			claim.Status = models.ClaimStatusApproved
		} else {
			if err := s.SetClaimStatus(ctx, claim.ID, models.ClaimStatusRejected, adminNotes); err != nil {
				return err
			}
			notes = append(notes, claimRejectedNote(claim, adminNotes))

			remaining, err := s.ClaimsByReport(ctx, report.ID)
			if err != nil {
				return err
			}
			hasApproved := false
			for _, rc := range remaining {
				if rc.ID == claim.ID {
					continue
				}
				if rc.Status == models.ClaimStatusApproved || rc.Status == models.ClaimStatusCompleted {
					hasApproved = true
					break
				}
			}
			// Reopen the report for other claimants. Returned stays
			// terminal.
			if !hasApproved && report.Status == models.ReportStatusConfirmed {
				if err := s.SetReportStatus(ctx, report.ID, models.ReportStatusPending); err != nil {
					return err
				}
			}
			claim.Status = models.ClaimStatusRejected
		}
		claim.AdminNotes = adminNotes
		decided = claim
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.notifier.Dispatch(ctx, notes)
	return decided, nil
}

// MarkAsFound lets the reporter of a lost item declare they recovered it
// themselves. The report goes to returned and every pending claim is rejected
// with a notification.
func (e *Engine) MarkAsFound(ctx context.Context, actor ActorContext, reportID uint) error {
	var notes []models.Notification
	err := e.atomically(ctx, func(s Store) error {
		notes = notes[:0]
		report, err := s.ReportForUpdate(ctx, reportID)
		if err != nil {
			return err
		}
		if report.Type != models.ReportTypeLost {
			return newErr(KindWrongItemType, "only lost items can be marked as found")
		}
		if report.UserID != actor.UserID {
			return newErr(KindPermission, "only the person who reported this lost item can mark it as found")
		}
		if report.Status == models.ReportStatusReturned {
			return newErr(KindAlreadyReturned, "this item has already been marked as returned")
		}
		if err := s.SetReportStatus(ctx, reportID, models.ReportStatusReturned); err != nil {
			return err
		}
		claims, err := s.ClaimsByReport(ctx, reportID)
		if err != nil {
			return err
		}
		for _, claim := range claims {
			if claim.Status != models.ClaimStatusPending {
				continue
			}
			if err := s.SetClaimStatus(ctx, claim.ID, models.ClaimStatusRejected, foundByOwnerNotes); err != nil {
				return err
			}
			c := claim
			notes = append(notes, claimRejectedNote(&c, foundByOwnerNotes))
		}
		return nil
	})
	if err != nil {
		return err
	}
	e.notifier.Dispatch(ctx, notes)
	return nil
}

// ConfirmReturn is the lost-item owner acknowledging they got the item back.
// Requires an approved claim; completes it and returns the claimant's id for
// inline display.
func (e *Engine) ConfirmReturn(ctx context.Context, actor ActorContext, reportID uint) (uint, error) {
	var claimantID uint
	err := e.atomically(ctx, func(s Store) error {
		report, err := s.ReportForUpdate(ctx, reportID)
		if err != nil {
			return err
		}
		if report.Type != models.ReportTypeLost {
			return newErr(KindWrongItemType, "only lost items use this return confirmation")
		}
		if report.UserID != actor.UserID {
			return newErr(KindPermission, "you don't have permission to confirm this return")
		}
		if report.Status == models.ReportStatusReturned {
			return newErr(KindAlreadyReturned, "item is already marked as returned")
		}
		claims, err := s.ClaimsByReport(ctx, reportID)
		if err != nil {
			return err
		}
		var approved *models.Claim
		for i := range claims {
			if claims[i].Status == models.ClaimStatusApproved {
				approved = &claims[i]
				break
			}
		}
		if approved == nil {
			return newErr(KindNoApprovedClaim, "no approved claim found for this item")
		}
		if err := s.SetReportStatus(ctx, reportID, models.ReportStatusReturned); err != nil {
			return err
		}
		if err := s.SetClaimStatus(ctx, approved.ID, models.ClaimStatusCompleted, approved.AdminNotes); err != nil {
			return err
		}
		claimantID = approved.ClaimedBy
		return nil
	})
	return claimantID, err
}

// ConfirmFoundReturn is the approved claimant of a found item acknowledging
// they received it. No stored notification is emitted here; the caller shows
// an inline message instead.
func (e *Engine) ConfirmFoundReturn(ctx context.Context, actor ActorContext, reportID uint) error {
	return e.atomically(ctx, func(s Store) error {
		report, err := s.ReportForUpdate(ctx, reportID)
		if err != nil {
			return err
		}
		if report.Type != models.ReportTypeFound {
			return newErr(KindWrongItemType, "only found items can use this return confirmation")
		}
		claims, err := s.ClaimsByReport(ctx, reportID)
		if err != nil {
			return err
		}
		var own *models.Claim
		for i := range claims {
			if claims[i].Status == models.ClaimStatusApproved && claims[i].ClaimedBy == actor.UserID {
				own = &claims[i]
				break
			}
		}
		if own == nil {
			return newErr(KindNoApprovedClaim, "you don't have an approved claim for this item")
		}
		if err := s.SetReportStatus(ctx, reportID, models.ReportStatusReturned); err != nil {
			return err
		}
		return s.SetClaimStatus(ctx, own.ID, models.ClaimStatusCompleted, returnedToOwnerNotes)
	})
}

// ConfirmReport is the admin acknowledging a submitted report. Only the
// pending to confirmed edge is legal here; claim outcomes drive every other
// report transition.
func (e *Engine) ConfirmReport(ctx context.Context, actor ActorContext, reportID uint) error {
	if !actor.IsAdmin() {
		return newErr(KindPermission, "admin rights required")
	}
	var notes []models.Notification
	err := e.atomically(ctx, func(s Store) error {
		notes = notes[:0]
		report, err := s.ReportForUpdate(ctx, reportID)
		if err != nil {
			return err
		}
		if report.Status != models.ReportStatusPending {
			return newErr(KindInvalidState, "only pending reports can be confirmed")
		}
		if err := s.SetReportStatus(ctx, reportID, models.ReportStatusConfirmed); err != nil {
			return err
		}
		notes = append(notes, reportConfirmedNote(report))
		return nil
	})
	if err != nil {
		return err
	}
	e.notifier.Dispatch(ctx, notes)
	return nil
}

// RecordHandover logs the physical exchange for a decided claim. Log entry
// only, no status transition.
func (e *Engine) RecordHandover(ctx context.Context, actor ActorContext, claimID uint) (*models.HandoverLog, error) {
	if !actor.IsAdmin() {
		return nil, newErr(KindPermission, "admin rights required")
	}
	var entry *models.HandoverLog
	err := e.atomically(ctx, func(s Store) error {
		claim, err := s.ClaimByID(ctx, claimID)
		if err != nil {
			return err
		}
		if claim.Status != models.ClaimStatusApproved && claim.Status != models.ClaimStatusCompleted {
			return newErr(KindInvalidState, "handover requires an approved claim")
		}
		entry = &models.HandoverLog{ClaimID: claim.ID, AdminID: actor.UserID}
		return s.CreateHandover(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}
