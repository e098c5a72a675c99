package controllers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lostfound-hub/api-go/lifecycle"
	"github.com/lostfound-hub/api-go/models"
)

type AdminController struct {
	DB     *gorm.DB
	Engine *lifecycle.Engine
}

func NewAdminController(db *gorm.DB, engine *lifecycle.Engine) *AdminController {
	return &AdminController{DB: db, Engine: engine}
}

type decideClaimRequest struct {
	Status     string `json:"status" binding:"required,oneof=approved rejected"`
	AdminNotes string `json:"admin_notes"`
}

func (ac *AdminController) DecideClaim(c *gin.Context) {
	claimID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid claim id"})
		return
	}

	var req decideClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	claim, err := ac.Engine.DecideClaim(c.Request.Context(), actorFrom(c), uint(claimID), req.Status, req.AdminNotes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    claim,
		Message: "Claim " + claim.Status,
	})
}

func (ac *AdminController) ConfirmReport(c *gin.Context) {
	reportID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report id"})
		return
	}

	if err := ac.Engine.ConfirmReport(c.Request.Context(), actorFrom(c), uint(reportID)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Message: "Report confirmed"})
}

type listClaimsQuery struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending approved rejected completed"`
	Page     int    `form:"page,default=1" binding:"min=1"`
	PageSize int    `form:"pageSize,default=20" binding:"min=1,max=100"`
}

func (ac *AdminController) ListClaims(c *gin.Context) {
	var query listClaimsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := ac.DB.Model(&models.Claim{})
	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}

	var total int64
	db.Count(&total)

	offset := (query.Page - 1) * query.PageSize

	var claims []models.Claim
	result := db.
		Preload("Claimant").
		Preload("Report").Preload("Report.Item").Preload("Report.Item.Images").
		Order("created_at ASC").
		Offset(offset).
		Limit(query.PageSize).
		Find(&claims)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching claims"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    claims,
		Pagination: &PaginationMeta{
			CurrentPage: query.Page,
			PageSize:    query.PageSize,
			TotalItems:  total,
			TotalPages:  int(math.Ceil(float64(total) / float64(query.PageSize))),
		},
	})
}

func (ac *AdminController) RecordHandover(c *gin.Context) {
	claimID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid claim id"})
		return
	}

	entry, err := ac.Engine.RecordHandover(c.Request.Context(), actorFrom(c), uint(claimID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, StandardResponse{
		Success: true,
		Data:    entry,
		Message: "Handover recorded",
	})
}

func (ac *AdminController) ListHandovers(c *gin.Context) {
	var handovers []models.HandoverLog
	result := ac.DB.
		Preload("Claim").Preload("Claim.Claimant").Preload("Admin").
		Order("handover_date DESC").
		Find(&handovers)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching handovers"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: handovers})
}
