package lifecycle

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lostfound-hub/api-go/models"
)

var (
	owner  = ActorContext{UserID: 1, Role: models.RoleUser}
	finder = ActorContext{UserID: 2, Role: models.RoleUser}
	rival  = ActorContext{UserID: 3, Role: models.RoleUser}
	admin  = ActorContext{UserID: 9, Role: models.RoleAdmin}
)

func newTestEngine(t *testing.T) (*Engine, *memStore) {
	t.Helper()
	store := newMemStore()
	log := logrus.New()
	log.SetOutput(io.Discard)
	return New(store, NewNotifier(store, log), log), store
}

func seedReport(t *testing.T, e *Engine, actor ActorContext, reportType string) *models.Report {
	t.Helper()
	now := time.Now()
	in := NewReport{
		Type:         reportType,
		Description:  "black leather wallet",
		CategoryID:   1,
		LocationName: "Main Library",
	}
	if reportType == models.ReportTypeLost {
		in.DateLost = &now
	} else {
		in.DateFound = &now
	}
	report, err := e.CreateReport(context.Background(), actor, in)
	require.NoError(t, err)
	return report
}

func seedClaim(t *testing.T, e *Engine, actor ActorContext, reportID uint) *models.Claim {
	t.Helper()
	claim, err := e.SubmitClaim(context.Background(), actor, reportID, "has my initials engraved", nil)
	require.NoError(t, err)
	return claim
}

// seedRawClaim inserts a claim directly, bypassing SubmitClaim's found-only
// gate, so lost-report decision paths can be exercised.
func seedRawClaim(t *testing.T, store *memStore, actor ActorContext, reportID uint, status string) *models.Claim {
	t.Helper()
	claim := &models.Claim{
		Status:      status,
		ReportID:    reportID,
		ClaimedBy:   actor.UserID,
		Description: "matches the description",
	}
	require.NoError(t, store.CreateClaim(context.Background(), claim))
	return claim
}

func requireOneApprovedAtMost(t *testing.T, store *memStore, reportID uint) {
	t.Helper()
	claims, err := store.ClaimsByReport(context.Background(), reportID)
	require.NoError(t, err)
	n := 0
	for _, c := range claims {
		if c.Status == models.ClaimStatusApproved || c.Status == models.ClaimStatusCompleted {
			n++
		}
	}
	require.LessOrEqual(t, n, 1)
}

func TestApproveClaimOnFoundReport(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()

	report := seedReport(t, e, finder, models.ReportTypeFound)
	claim := seedClaim(t, e, owner, report.ID)

	decided, err := e.DecideClaim(ctx, admin, claim.ID, models.ClaimStatusApproved, "ID card matches")
	require.NoError(t, err)
	assert.Equal(t, models.ClaimStatusApproved, decided.Status)

	got, err := store.ReportByID(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusConfirmed, got.Status)

	notes := store.notificationsFor(owner.UserID)
	require.Len(t, notes, 1)
	assert.Equal(t, "Claim Approved!", notes[0].Title)
	assert.Equal(t, models.NotificationClaimApproved, notes[0].Kind)
	assert.Equal(t, claim.ID, notes[0].RelatedID)

	// The approved claimant acknowledges receiving the item.
	require.NoError(t, e.ConfirmFoundReturn(ctx, owner, report.ID))

	got, err = store.ReportByID(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusReturned, got.Status)

	final, err := store.ClaimByID(ctx, claim.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ClaimStatusCompleted, final.Status)
	assert.Equal(t, "Item returned to owner.", final.AdminNotes)
	// The return confirmation emits no stored notification.
	assert.Len(t, store.notificationsFor(owner.UserID), 1)
}

func TestApproveDemotesCompetingClaim(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()

	report := seedReport(t, e, finder, models.ReportTypeFound)
	first := seedClaim(t, e, owner, report.ID)
	second := seedClaim(t, e, rival, report.ID)

	_, err := e.DecideClaim(ctx, admin, first.ID, models.ClaimStatusApproved, "")
	require.NoError(t, err)

	_, err = e.DecideClaim(ctx, admin, second.ID, models.ClaimStatusApproved, "stronger evidence")
	require.NoError(t, err)

	demoted, err := store.ClaimByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ClaimStatusRejected, demoted.Status)
	assert.Equal(t, "Another claim was approved for this item.", demoted.AdminNotes)

	promoted, err := store.ClaimByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ClaimStatusApproved, promoted.Status)

	requireOneApprovedAtMost(t, store, report.ID)

	// The demoted claimant hears about it.
	ownerNotes := store.notificationsFor(owner.UserID)
	require.Len(t, ownerNotes, 2)
	assert.Equal(t, "Claim Rejected", ownerNotes[1].Title)
	assert.Contains(t, ownerNotes[1].Message, "Another claim was approved for this item.")
}

func TestRejectClaimResetsReportToPending(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()

	report := seedReport(t, e, finder, models.ReportTypeFound)
	require.NoError(t, e.ConfirmReport(ctx, admin, report.ID))
	claim := seedClaim(t, e, owner, report.ID)

	_, err := e.DecideClaim(ctx, admin, claim.ID, models.ClaimStatusRejected, "description does not match")
	require.NoError(t, err)

	got, err := store.ReportByID(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusPending, got.Status)

	notes := store.notificationsFor(owner.UserID)
	require.Len(t, notes, 1)
	assert.Contains(t, notes[0].Message, "Reason: description does not match")
}

func TestRejectKeepsReportConfirmedWhileApprovedClaimRemains(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()

	report := seedReport(t, e, finder, models.ReportTypeFound)
	approved := seedClaim(t, e, owner, report.ID)
	pending := seedRawClaim(t, store, rival, report.ID, models.ClaimStatusPending)

	_, err := e.DecideClaim(ctx, admin, approved.ID, models.ClaimStatusApproved, "")
	require.NoError(t, err)

	_, err = e.DecideClaim(ctx, admin, pending.ID, models.ClaimStatusRejected, "no proof of ownership")
	require.NoError(t, err)

	got, err := store.ReportByID(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusConfirmed, got.Status)
}

func TestRejectRequiresAdminNotes(t *testing.T) {
	e, _ := newTestEngine(t)

	report := seedReport(t, e, finder, models.ReportTypeFound)
	claim := seedClaim(t, e, owner, report.ID)

	_, err := e.DecideClaim(context.Background(), admin, claim.ID, models.ClaimStatusRejected, "   ")
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestDecideClaimRequiresAdmin(t *testing.T) {
	e, _ := newTestEngine(t)

	report := seedReport(t, e, finder, models.ReportTypeFound)
	claim := seedClaim(t, e, owner, report.ID)

	_, err := e.DecideClaim(context.Background(), owner, claim.ID, models.ClaimStatusApproved, "")
	require.Error(t, err)
	assert.Equal(t, KindPermission, KindOf(err))
}

func TestDecideClaimRejectsBadDecision(t *testing.T) {
	e, _ := newTestEngine(t)

	_, err := e.DecideClaim(context.Background(), admin, 1, "completed", "")
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestDecideAlreadyDecidedClaim(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()

	report := seedReport(t, e, finder, models.ReportTypeFound)
	claim := seedClaim(t, e, owner, report.ID)

	_, err := e.DecideClaim(ctx, admin, claim.ID, models.ClaimStatusApproved, "")
	require.NoError(t, err)
	before := len(store.notifications)

	_, err = e.DecideClaim(ctx, admin, claim.ID, models.ClaimStatusApproved, "")
	require.Error(t, err)
	assert.Equal(t, KindInvalidState, KindOf(err))
	// A refused decision must not re-fire notifications.
	assert.Len(t, store.notifications, before)

	_, err = e.DecideClaim(ctx, admin, claim.ID, models.ClaimStatusRejected, "changed my mind")
	require.Error(t, err)
	assert.Equal(t, KindInvalidState, KindOf(err))
	assert.Len(t, store.notifications, before)
}

func TestDecideClaimUnknown(t *testing.T) {
	e, _ := newTestEngine(t)

	_, err := e.DecideClaim(context.Background(), admin, 42, models.ClaimStatusApproved, "")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestApproveClaimOnLostReportReturnsImmediately(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()

	report := seedReport(t, e, owner, models.ReportTypeLost)
	claim := seedRawClaim(t, store, finder, report.ID, models.ClaimStatusPending)

	_, err := e.DecideClaim(ctx, admin, claim.ID, models.ClaimStatusApproved, "")
	require.NoError(t, err)

	// The claimant already holds the item, so there is no handover step.
	got, err := store.ReportByID(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusReturned, got.Status)
}

func TestMarkAsFound(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()

	report := seedReport(t, e, owner, models.ReportTypeLost)
	pending := seedRawClaim(t, store, finder, report.ID, models.ClaimStatusPending)

	require.NoError(t, e.MarkAsFound(ctx, owner, report.ID))

	got, err := store.ReportByID(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusReturned, got.Status)

	rejected, err := store.ClaimByID(ctx, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ClaimStatusRejected, rejected.Status)
	assert.Equal(t, "Item was found by the owner.", rejected.AdminNotes)

	notes := store.notificationsFor(finder.UserID)
	require.Len(t, notes, 1)
	assert.Contains(t, notes[0].Message, "Item was found by the owner.")
}

func TestMarkAsFoundGuards(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	foundReport := seedReport(t, e, finder, models.ReportTypeFound)
	err := e.MarkAsFound(ctx, finder, foundReport.ID)
	assert.Equal(t, KindWrongItemType, KindOf(err))

	lostReport := seedReport(t, e, owner, models.ReportTypeLost)
	err = e.MarkAsFound(ctx, rival, lostReport.ID)
	assert.Equal(t, KindPermission, KindOf(err))

	require.NoError(t, e.MarkAsFound(ctx, owner, lostReport.ID))
	err = e.MarkAsFound(ctx, owner, lostReport.ID)
	assert.Equal(t, KindAlreadyReturned, KindOf(err))
}

func TestConfirmReturn(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()

	report := seedReport(t, e, owner, models.ReportTypeLost)
	claim := seedRawClaim(t, store, finder, report.ID, models.ClaimStatusApproved)

	claimantID, err := e.ConfirmReturn(ctx, owner, report.ID)
	require.NoError(t, err)
	assert.Equal(t, finder.UserID, claimantID)

	got, err := store.ReportByID(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusReturned, got.Status)

	completed, err := store.ClaimByID(ctx, claim.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ClaimStatusCompleted, completed.Status)
}

func TestConfirmReturnWithoutApprovedClaim(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()

	report := seedReport(t, e, owner, models.ReportTypeLost)
	seedRawClaim(t, store, finder, report.ID, models.ClaimStatusPending)

	_, err := e.ConfirmReturn(ctx, owner, report.ID)
	require.Error(t, err)
	assert.Equal(t, KindNoApprovedClaim, KindOf(err))
}

func TestConfirmFoundReturnRequiresOwnApprovedClaim(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	report := seedReport(t, e, finder, models.ReportTypeFound)
	claim := seedClaim(t, e, owner, report.ID)
	_, err := e.DecideClaim(ctx, admin, claim.ID, models.ClaimStatusApproved, "")
	require.NoError(t, err)

	// Somebody else's approved claim does not entitle rival to confirm.
	err = e.ConfirmFoundReturn(ctx, rival, report.ID)
	require.Error(t, err)
	assert.Equal(t, KindNoApprovedClaim, KindOf(err))
}

func TestConfirmReport(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()

	report := seedReport(t, e, finder, models.ReportTypeFound)

	err := e.ConfirmReport(ctx, finder, report.ID)
	assert.Equal(t, KindPermission, KindOf(err))

	require.NoError(t, e.ConfirmReport(ctx, admin, report.ID))
	got, err := store.ReportByID(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusConfirmed, got.Status)

	notes := store.notificationsFor(finder.UserID)
	require.Len(t, notes, 1)
	assert.Equal(t, "Report Confirmed", notes[0].Title)
	assert.Equal(t, models.NotificationReportConfirmed, notes[0].Kind)

	// Confirming again is refused and stays quiet.
	err = e.ConfirmReport(ctx, admin, report.ID)
	assert.Equal(t, KindInvalidState, KindOf(err))
	assert.Len(t, store.notificationsFor(finder.UserID), 1)
}

func TestRecordHandover(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()

	report := seedReport(t, e, finder, models.ReportTypeFound)
	claim := seedClaim(t, e, owner, report.ID)

	_, err := e.RecordHandover(ctx, admin, claim.ID)
	assert.Equal(t, KindInvalidState, KindOf(err))

	_, err = e.DecideClaim(ctx, admin, claim.ID, models.ClaimStatusApproved, "")
	require.NoError(t, err)

	_, err = e.RecordHandover(ctx, owner, claim.ID)
	assert.Equal(t, KindPermission, KindOf(err))

	entry, err := e.RecordHandover(ctx, admin, claim.ID)
	require.NoError(t, err)
	assert.Equal(t, claim.ID, entry.ClaimID)
	assert.Equal(t, admin.UserID, entry.AdminID)
	require.Len(t, store.handovers, 1)
}

func TestSerializationConflictRetriesOnce(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()

	report := seedReport(t, e, finder, models.ReportTypeFound)
	claim := seedClaim(t, e, owner, report.ID)

	store.failNext = 1
	_, err := e.DecideClaim(ctx, admin, claim.ID, models.ClaimStatusApproved, "")
	require.NoError(t, err)

	got, err := store.ClaimByID(ctx, claim.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ClaimStatusApproved, got.Status)
}

func TestSerializationConflictGivesUpAfterRetry(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()

	report := seedReport(t, e, finder, models.ReportTypeFound)
	claim := seedClaim(t, e, owner, report.ID)

	store.failNext = 2
	_, err := e.DecideClaim(ctx, admin, claim.ID, models.ClaimStatusApproved, "")
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))

	// The claim is untouched after the aborted attempts.
	got, err := store.ClaimByID(ctx, claim.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ClaimStatusPending, got.Status)
}

func TestNotificationFailureDoesNotRollBackDecision(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()

	report := seedReport(t, e, finder, models.ReportTypeFound)
	claim := seedClaim(t, e, owner, report.ID)

	store.notifyErr = errors.New("notifications table unavailable")
	_, err := e.DecideClaim(ctx, admin, claim.ID, models.ClaimStatusApproved, "")
	require.NoError(t, err)

	got, err := store.ClaimByID(ctx, claim.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ClaimStatusApproved, got.Status)
	assert.Empty(t, store.notifications)
}
