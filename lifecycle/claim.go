package lifecycle

import (
	"context"
	"strings"

	"github.com/lib/pq"

	"github.com/lostfound-hub/api-go/models"
)

// MaxClaimImages caps supporting images per claim.
const MaxClaimImages = 5

// SubmitClaim files a claim on a found item. Preconditions, in order: the
// report must be a found report, not the claimant's own, and not yet
// returned. Then the existing claims gate the submission: a prior approved
// claim of your own, an approved claim by anyone, or a pending claim of your
// own each block it with a distinct error. A rejected claim does not block a
// resubmission.
func (e *Engine) SubmitClaim(ctx context.Context, actor ActorContext, reportID uint, description string, imageURLs []string) (*models.Claim, error) {
	if strings.TrimSpace(description) == "" {
		return nil, newErr(KindValidation, "claim description is required")
	}
	if len(imageURLs) > MaxClaimImages {
		return nil, newErr(KindTooManyImages, "maximum %d images allowed for claims", MaxClaimImages)
	}
	var created *models.Claim
	err := e.atomically(ctx, func(s Store) error {
		report, err := s.ReportForUpdate(ctx, reportID)
		if err != nil {
			return err
		}
		if report.Type != models.ReportTypeFound {
			return newErr(KindWrongItemType, "only found items can be claimed")
		}
		if report.UserID == actor.UserID {
			return newErr(KindSelfClaim, "you cannot claim an item you reported yourself")
		}
		if report.Status == models.ReportStatusReturned {
			return newErr(KindAlreadyReturned, "this item has already been returned to its owner")
		}

		existing, err := s.ClaimsByReport(ctx, reportID)
		if err != nil {
			return err
		}
		hasApproved := false
		ownPending := false
		for _, c := range existing {
			if c.Status == models.ClaimStatusApproved || c.Status == models.ClaimStatusCompleted {
				hasApproved = true
			}
			if c.ClaimedBy == actor.UserID {
				switch c.Status {
				case models.ClaimStatusApproved:
					return newErr(KindDuplicateApproved, "you already have an approved claim for this item")
				case models.ClaimStatusPending:
					ownPending = true
				}
			}
		}
		if hasApproved {
			return newErr(KindAlreadyClaimed, "this item already has an approved claim")
		}
		if ownPending {
			return newErr(KindDuplicatePending, "you already have a pending claim for this item")
		}

		claim := &models.Claim{
			Status:      models.ClaimStatusPending,
			ReportID:    reportID,
			ClaimedBy:   actor.UserID,
			Description: description,
			Images:      pq.StringArray(imageURLs),
		}
		if err := s.CreateClaim(ctx, claim); err != nil {
			return err
		}
		created = claim
		return nil
	})
	return created, err
}
