package controllers

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lostfound-hub/api-go/lifecycle"
	"github.com/lostfound-hub/api-go/models"
	"github.com/lostfound-hub/api-go/utils"
)

type ReportController struct {
	DB     *gorm.DB
	Engine *lifecycle.Engine
}

func NewReportController(db *gorm.DB, engine *lifecycle.Engine) *ReportController {
	return &ReportController{DB: db, Engine: engine}
}

func actorFrom(c *gin.Context) lifecycle.ActorContext {
	claims := utils.GetUser(c)
	if claims == nil {
		return lifecycle.ActorContext{}
	}
	return lifecycle.ActorContext{UserID: claims.UserID, Role: claims.Role}
}

type createReportRequest struct {
	Type         string   `json:"report_type" binding:"required,oneof=lost found"`
	Description  string   `json:"description" binding:"required"`
	CategoryID   uint     `json:"category_id" binding:"required"`
	LocationName string   `json:"location" binding:"required"`
	DateLost     *string  `json:"date_lost" binding:"omitempty,notfuture"`
	DateFound    *string  `json:"date_found" binding:"omitempty,notfuture"`
	ImageURLs    []string `json:"image_urls"`
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func (rc *ReportController) CreateReport(c *gin.Context) {
	var req createReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	dateLost, err := parseDate(req.DateLost)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date_lost must be YYYY-MM-DD", "success": false})
		return
	}
	dateFound, err := parseDate(req.DateFound)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date_found must be YYYY-MM-DD", "success": false})
		return
	}

	report, err := rc.Engine.CreateReport(c.Request.Context(), actorFrom(c), lifecycle.NewReport{
		Type:         req.Type,
		Description:  req.Description,
		CategoryID:   req.CategoryID,
		LocationName: req.LocationName,
		DateLost:     dateLost,
		DateFound:    dateFound,
		ImageURLs:    req.ImageURLs,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, StandardResponse{
		Success: true,
		Data:    report,
		Message: "Report created successfully",
	})
}

type browseReportsQuery struct {
	Type       string `form:"report_type" binding:"omitempty,oneof=lost found"`
	Status     string `form:"status" binding:"omitempty,oneof=pending confirmed returned"`
	CategoryID uint   `form:"category_id"`
	LocationID uint   `form:"location_id"`
	Search     string `form:"q"`
	Page       int    `form:"page,default=1" binding:"min=1"`
	PageSize   int    `form:"pageSize,default=10" binding:"min=1,max=50"`
}

func (rc *ReportController) BrowseReports(c *gin.Context) {
	var query browseReportsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := rc.DB.Model(&models.Report{}).
		Joins("JOIN items ON items.id = reports.item_id")

	if query.Type != "" {
		db = db.Where("reports.report_type = ?", query.Type)
	}
	if query.Status != "" {
		db = db.Where("reports.status = ?", query.Status)
	}
	if query.CategoryID != 0 {
		db = db.Where("items.category_id = ?", query.CategoryID)
	}
	if query.LocationID != 0 {
		db = db.Where("items.location_id = ?", query.LocationID)
	}
	if query.Search != "" {
		db = db.Where("items.description ILIKE ?", "%"+query.Search+"%")
	}

	var total int64
	db.Count(&total)

	offset := (query.Page - 1) * query.PageSize

	var reports []models.Report
	result := db.
		Preload("Item").Preload("Item.Category").Preload("Item.Location").Preload("Item.Images").
		Order("reports.created_at DESC").
		Offset(offset).
		Limit(query.PageSize).
		Find(&reports)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching reports"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    reports,
		Pagination: &PaginationMeta{
			CurrentPage: query.Page,
			PageSize:    query.PageSize,
			TotalItems:  total,
			TotalPages:  int(math.Ceil(float64(total) / float64(query.PageSize))),
		},
	})
}

func (rc *ReportController) GetReport(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report id"})
		return
	}

	var report models.Report
	result := rc.DB.
		Preload("Item").Preload("Item.Category").Preload("Item.Location").Preload("Item.Images").
		Preload("User").
		First(&report, id)
	if result.Error != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found", "success": false})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: report})
}

func (rc *ReportController) MyReports(c *gin.Context) {
	claims := utils.GetUser(c)

	var reports []models.Report
	result := rc.DB.
		Preload("Item").Preload("Item.Category").Preload("Item.Location").Preload("Item.Images").
		Where("user_id = ?", claims.UserID).
		Order("created_at DESC").
		Find(&reports)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching reports"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: reports})
}

type updateReportRequest struct {
	Description    string   `json:"description" binding:"required"`
	CategoryID     uint     `json:"category_id" binding:"required"`
	LocationName   string   `json:"location" binding:"required"`
	AddImageURLs   []string `json:"add_image_urls"`
	RemoveImageIDs []uint   `json:"remove_image_ids"`
}

func (rc *ReportController) UpdateReport(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report id"})
		return
	}

	var req updateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	err = rc.Engine.UpdateReport(c.Request.Context(), actorFrom(c), uint(id), lifecycle.ItemUpdate{
		Description:    req.Description,
		CategoryID:     req.CategoryID,
		LocationName:   req.LocationName,
		AddImageURLs:   req.AddImageURLs,
		RemoveImageIDs: req.RemoveImageIDs,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Message: "Report updated successfully"})
}

func (rc *ReportController) DeleteReport(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report id"})
		return
	}

	if err := rc.Engine.DeleteReport(c.Request.Context(), actorFrom(c), uint(id)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Message: "Report deleted successfully"})
}

func (rc *ReportController) MarkAsFound(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report id"})
		return
	}

	if err := rc.Engine.MarkAsFound(c.Request.Context(), actorFrom(c), uint(id)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Message: "Item marked as found"})
}

func (rc *ReportController) ConfirmReturn(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report id"})
		return
	}

	claimantID, err := rc.Engine.ConfirmReturn(c.Request.Context(), actorFrom(c), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	var claimant models.User
	data := gin.H{"claimant_id": claimantID}
	if err := rc.DB.First(&claimant, claimantID).Error; err == nil {
		data["claimant_username"] = claimant.Username
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    data,
		Message: "Return confirmed. Item marked as returned.",
	})
}

// FoundPrefill feeds the "I found this item" form: the item details of a lost
// report, so a finder can file the matching found report without retyping.
func (rc *ReportController) FoundPrefill(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report id"})
		return
	}

	var report models.Report
	result := rc.DB.
		Preload("Item").Preload("Item.Category").Preload("Item.Location").
		First(&report, id)
	if result.Error != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found", "success": false})
		return
	}

	if report.Type != models.ReportTypeLost {
		c.JSON(http.StatusConflict, gin.H{"error": "Only lost reports can be pre-filled", "success": false})
		return
	}
	if report.Status == models.ReportStatusReturned {
		c.JSON(http.StatusConflict, gin.H{"error": "This item has already been returned", "success": false})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data: gin.H{
			"report_type": models.ReportTypeFound,
			"description": report.Item.Description,
			"category_id": report.Item.CategoryID,
			"category":    report.Item.Category.Name,
			"location":    report.Item.Location.Name,
		},
	})
}

func (rc *ReportController) ConfirmFoundReturn(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report id"})
		return
	}

	if err := rc.Engine.ConfirmFoundReturn(c.Request.Context(), actorFrom(c), uint(id)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Message: "Thank you for confirming! The item has been marked as returned.",
	})
}
