package controllers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/lostfound-hub/api-go/models"
)

type StatsController struct {
	DB *gorm.DB
}

func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{DB: db}
}

type statusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type nameCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type monthCount struct {
	Month string `json:"month"`
	Lost  int64  `json:"lost"`
	Found int64  `json:"found"`
}

type topReporter struct {
	Username string `json:"username"`
	Reports  int64  `json:"reports"`
}

// statsOverview is the KPI block of the admin dashboard.
type statsOverview struct {
	TotalReports  int64   `json:"total_reports"`
	LostReports   int64   `json:"lost_reports"`
	FoundReports  int64   `json:"found_reports"`
	ReturnedItems int64   `json:"returned_items"`
	TotalClaims   int64   `json:"total_claims"`
	PendingClaims int64   `json:"pending_claims"`
	TotalUsers    int64   `json:"total_users"`
	ReturnRatePct float64 `json:"return_rate_pct"`
}

func (sc *StatsController) overview() (*statsOverview, error) {
	var o statsOverview

	reports := sc.DB.Model(&models.Report{})
	if err := reports.Count(&o.TotalReports).Error; err != nil {
		return nil, err
	}
	sc.DB.Model(&models.Report{}).Where("report_type = ?", models.ReportTypeLost).Count(&o.LostReports)
	sc.DB.Model(&models.Report{}).Where("report_type = ?", models.ReportTypeFound).Count(&o.FoundReports)
	sc.DB.Model(&models.Report{}).Where("status = ?", models.ReportStatusReturned).Count(&o.ReturnedItems)
	sc.DB.Model(&models.Claim{}).Count(&o.TotalClaims)
	sc.DB.Model(&models.Claim{}).Where("status = ?", models.ClaimStatusPending).Count(&o.PendingClaims)
	sc.DB.Model(&models.User{}).Count(&o.TotalUsers)

	if o.TotalReports > 0 {
		o.ReturnRatePct = float64(o.ReturnedItems) / float64(o.TotalReports) * 100
	}
	return &o, nil
}

func (sc *StatsController) GetOverview(c *gin.Context) {
	o, err := sc.overview()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error computing statistics"})
		return
	}
	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: o})
}

func (sc *StatsController) GetDistributions(c *gin.Context) {
	var byReportStatus []statusCount
	sc.DB.Model(&models.Report{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&byReportStatus)

	var byClaimStatus []statusCount
	sc.DB.Model(&models.Claim{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&byClaimStatus)

	var byCategory []nameCount
	sc.DB.Model(&models.Report{}).
		Select("categories.name, COUNT(*) as count").
		Joins("JOIN items ON items.id = reports.item_id").
		Joins("JOIN categories ON categories.id = items.category_id").
		Group("categories.name").
		Order("count DESC").
		Scan(&byCategory)

	var byLocation []nameCount
	sc.DB.Model(&models.Report{}).
		Select("locations.name, COUNT(*) as count").
		Joins("JOIN items ON items.id = reports.item_id").
		Joins("JOIN locations ON locations.id = items.location_id").
		Group("locations.name").
		Order("count DESC").
		Limit(10).
		Scan(&byLocation)

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data: gin.H{
			"report_status": byReportStatus,
			"claim_status":  byClaimStatus,
			"categories":    byCategory,
			"locations":     byLocation,
		},
	})
}

func (sc *StatsController) GetMonthlyTrends(c *gin.Context) {
	months, _ := strconv.Atoi(c.DefaultQuery("months", "12"))
	if months < 1 || months > 36 {
		months = 12
	}
	since := time.Now().AddDate(0, -months, 0)

	var rows []struct {
		Month      time.Time
		ReportType string
		Count      int64
	}
	sc.DB.Model(&models.Report{}).
		Select("DATE_TRUNC('month', created_at) as month, report_type, COUNT(*) as count").
		Where("created_at >= ?", since).
		Group("month, report_type").
		Order("month ASC").
		Scan(&rows)

	byMonth := map[string]*monthCount{}
	var order []string
	for _, row := range rows {
		key := row.Month.Format("2006-01")
		entry, ok := byMonth[key]
		if !ok {
			entry = &monthCount{Month: key}
			byMonth[key] = entry
			order = append(order, key)
		}
		if row.ReportType == models.ReportTypeLost {
			entry.Lost = row.Count
		} else {
			entry.Found = row.Count
		}
	}

	trends := make([]monthCount, 0, len(order))
	for _, key := range order {
		trends = append(trends, *byMonth[key])
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: trends})
}

func (sc *StatsController) GetTopReporters(c *gin.Context) {
	var reporters []topReporter
	sc.DB.Model(&models.Report{}).
		Select("users.username, COUNT(*) as reports").
		Joins("JOIN users ON users.id = reports.user_id").
		Group("users.username").
		Order("reports DESC").
		Limit(10).
		Scan(&reporters)

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: reporters})
}

// exportRow is one line of the date-range export.
type exportRow struct {
	ReportID   uint
	ReportType string
	Status     string
	Username   string
	Category   string
	Location   string
	CreatedAt  time.Time
}

func (sc *StatsController) exportRows(from, to time.Time) ([]exportRow, error) {
	var rows []exportRow
	err := sc.DB.Model(&models.Report{}).
		Select("reports.id as report_id, reports.report_type, reports.status, "+
			"users.username, categories.name as category, locations.name as location, reports.created_at").
		Joins("JOIN users ON users.id = reports.user_id").
		Joins("JOIN items ON items.id = reports.item_id").
		Joins("JOIN categories ON categories.id = items.category_id").
		Joins("JOIN locations ON locations.id = items.location_id").
		Where("reports.created_at BETWEEN ? AND ?", from, to).
		Order("reports.created_at ASC").
		Scan(&rows).Error
	return rows, err
}

func parseDateRange(c *gin.Context) (time.Time, time.Time, error) {
	from, err := time.Parse("2006-01-02", c.DefaultQuery("from", time.Now().AddDate(0, -1, 0).Format("2006-01-02")))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("from must be YYYY-MM-DD")
	}
	to, err := time.Parse("2006-01-02", c.DefaultQuery("to", time.Now().Format("2006-01-02")))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("to must be YYYY-MM-DD")
	}
	return from, to.Add(24*time.Hour - time.Second), nil
}

var exportHeader = []string{"Report ID", "Type", "Status", "Reported By", "Category", "Location", "Created At"}

func exportRecords(rows []exportRow) [][]string {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{
			strconv.FormatUint(uint64(row.ReportID), 10),
			row.ReportType,
			row.Status,
			row.Username,
			row.Category,
			row.Location,
			row.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	return records
}

func (sc *StatsController) ExportCSV(c *gin.Context) {
	from, to, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, err := sc.exportRows(from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error building export"})
		return
	}

	filename := fmt.Sprintf("reports_%s_%s.csv", from.Format("20060102"), to.Format("20060102"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename="+filename)

	writer := csv.NewWriter(c.Writer)
	_ = writer.Write(exportHeader)
	_ = writer.WriteAll(exportRecords(rows))
	writer.Flush()
}

func (sc *StatsController) ExportXLSX(c *gin.Context) {
	from, to, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, err := sc.exportRows(from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error building export"})
		return
	}

	file := excelize.NewFile()
	defer file.Close()

	sheet := "Reports"
	file.SetSheetName("Sheet1", sheet)

	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		file.SetCellValue(sheet, cell, title)
	}
	for i, record := range exportRecords(rows) {
		for col, value := range record {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			file.SetCellValue(sheet, cell, value)
		}
	}

	filename := fmt.Sprintf("reports_%s_%s.xlsx", from.Format("20060102"), to.Format("20060102"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+filename)

	if err := file.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error writing workbook"})
	}
}
