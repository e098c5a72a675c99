package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lostfound-hub/api-go/lifecycle"
	"github.com/lostfound-hub/api-go/models"
	"github.com/lostfound-hub/api-go/utils"
)

type ClaimController struct {
	DB     *gorm.DB
	Engine *lifecycle.Engine
}

func NewClaimController(db *gorm.DB, engine *lifecycle.Engine) *ClaimController {
	return &ClaimController{DB: db, Engine: engine}
}

type submitClaimRequest struct {
	Description string   `json:"description" binding:"required"`
	ImageURLs   []string `json:"image_urls" binding:"omitempty,max=5"`
}

func (cc *ClaimController) SubmitClaim(c *gin.Context) {
	reportID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report id"})
		return
	}

	var req submitClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	claim, err := cc.Engine.SubmitClaim(c.Request.Context(), actorFrom(c), uint(reportID), req.Description, req.ImageURLs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, StandardResponse{
		Success: true,
		Data:    claim,
		Message: "Claim submitted successfully. An admin will review it.",
	})
}

func (cc *ClaimController) MyClaims(c *gin.Context) {
	claims := utils.GetUser(c)

	var mine []models.Claim
	result := cc.DB.
		Preload("Report").Preload("Report.Item").
		Preload("Report.Item.Category").Preload("Report.Item.Location").Preload("Report.Item.Images").
		Where("claimed_by = ?", claims.UserID).
		Order("created_at DESC").
		Find(&mine)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching claims"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: mine})
}

// ClaimsByReport returns all claims on one of the caller's own reports. Other
// users' reports are off limits unless the caller is an admin.
func (cc *ClaimController) ClaimsByReport(c *gin.Context) {
	reportID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report id"})
		return
	}

	user := utils.GetUser(c)

	var report models.Report
	if err := cc.DB.First(&report, reportID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found", "success": false})
		return
	}
	if report.UserID != user.UserID && user.Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied", "success": false})
		return
	}

	var reportClaims []models.Claim
	result := cc.DB.
		Preload("Claimant").
		Where("report_id = ?", reportID).
		Order("created_at ASC").
		Find(&reportClaims)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching claims"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: reportClaims})
}
