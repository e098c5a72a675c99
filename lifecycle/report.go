package lifecycle

import (
	"context"
	"strings"
	"time"

	"github.com/lostfound-hub/api-go/models"
)

// NewReport is the input for CreateReport. Exactly one of DateLost/DateFound
// must be set, matching the report type.
type NewReport struct {
	Type         string
	Description  string
	CategoryID   uint
	LocationName string
	DateLost     *time.Time
	DateFound    *time.Time
	ImageURLs    []string
}

// ItemUpdate carries the editable fields of a report's item.
type ItemUpdate struct {
	Description    string
	CategoryID     uint
	LocationName   string
	AddImageURLs   []string
	RemoveImageIDs []uint
}

// CreateReport registers a lost or found item for the acting user. The item,
// its images and the report row are created together; the location is
// resolved by name, creating it on first use.
func (e *Engine) CreateReport(ctx context.Context, actor ActorContext, in NewReport) (*models.Report, error) {
	if err := validateNewReport(in); err != nil {
		return nil, err
	}
	var created *models.Report
	err := e.atomically(ctx, func(s Store) error {
		locationID, err := s.FindOrCreateLocation(ctx, strings.TrimSpace(in.LocationName))
		if err != nil {
			return err
		}
		item := &models.Item{
			Description: in.Description,
			CategoryID:  in.CategoryID,
			LocationID:  locationID,
			ReportedBy:  actor.UserID,
		}
		if err := s.SaveItem(ctx, item); err != nil {
			return err
		}
		if len(in.ImageURLs) > 0 {
			if err := s.AddItemImages(ctx, item.ID, in.ImageURLs); err != nil {
				return err
			}
		}
		report := &models.Report{
			Type:      in.Type,
			Status:    models.ReportStatusPending,
			ItemID:    item.ID,
			UserID:    actor.UserID,
			DateLost:  in.DateLost,
			DateFound: in.DateFound,
		}
		if err := s.CreateReport(ctx, report); err != nil {
			return err
		}
		report.Item = *item
		created = report
		return nil
	})
	return created, err
}

func validateNewReport(in NewReport) error {
	switch in.Type {
	case models.ReportTypeLost:
		if in.DateLost == nil || in.DateFound != nil {
			return newErr(KindValidation, "a lost report requires date_lost and must not carry date_found")
		}
	case models.ReportTypeFound:
		if in.DateFound == nil || in.DateLost != nil {
			return newErr(KindValidation, "a found report requires date_found and must not carry date_lost")
		}
	default:
		return newErr(KindValidation, "report type must be lost or found")
	}
	if strings.TrimSpace(in.Description) == "" {
		return newErr(KindValidation, "description is required")
	}
	if strings.TrimSpace(in.LocationName) == "" {
		return newErr(KindValidation, "location is required")
	}
	if in.CategoryID == 0 {
		return newErr(KindValidation, "category is required")
	}
	return nil
}

// UpdateReport edits the item behind a report. Only the reporter may edit,
// and only while the report is pending or confirmed.
func (e *Engine) UpdateReport(ctx context.Context, actor ActorContext, reportID uint, in ItemUpdate) error {
	if strings.TrimSpace(in.Description) == "" {
		return newErr(KindValidation, "description is required")
	}
	if strings.TrimSpace(in.LocationName) == "" {
		return newErr(KindValidation, "location is required")
	}
	if in.CategoryID == 0 {
		return newErr(KindValidation, "category is required")
	}
	return e.atomically(ctx, func(s Store) error {
		report, err := s.ReportForUpdate(ctx, reportID)
		if err != nil {
			return err
		}
		if report.UserID != actor.UserID {
			return newErr(KindPermission, "you don't have permission to edit this report")
		}
		if report.Status != models.ReportStatusPending && report.Status != models.ReportStatusConfirmed {
			return newErr(KindInvalidState, "a report cannot be edited once the item is returned")
		}
		locationID, err := s.FindOrCreateLocation(ctx, strings.TrimSpace(in.LocationName))
		if err != nil {
			return err
		}
		item, err := s.ItemByID(ctx, report.ItemID)
		if err != nil {
			return err
		}
		item.Description = in.Description
		item.CategoryID = in.CategoryID
		item.LocationID = locationID
		if err := s.SaveItem(ctx, item); err != nil {
			return err
		}
		if len(in.RemoveImageIDs) > 0 {
			if err := s.DeleteItemImages(ctx, item.ID, in.RemoveImageIDs); err != nil {
				return err
			}
		}
		if len(in.AddImageURLs) > 0 {
			if err := s.AddItemImages(ctx, item.ID, in.AddImageURLs); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteReport removes a report together with its item, images and handover
// logs. Refused once any claim exists or the item is returned.
func (e *Engine) DeleteReport(ctx context.Context, actor ActorContext, reportID uint) error {
	return e.atomically(ctx, func(s Store) error {
		report, err := s.ReportForUpdate(ctx, reportID)
		if err != nil {
			return err
		}
		if report.UserID != actor.UserID {
			return newErr(KindPermission, "you don't have permission to delete this report")
		}
		if report.Status != models.ReportStatusPending && report.Status != models.ReportStatusConfirmed {
			return newErr(KindInvalidState, "a report can only be deleted while pending or confirmed")
		}
		n, err := s.ClaimCountByReport(ctx, reportID)
		if err != nil {
			return err
		}
		if n > 0 {
			return newErr(KindInvalidState, "a report with claims cannot be deleted")
		}
		return s.DeleteReportCascade(ctx, report)
	})
}
