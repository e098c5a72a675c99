package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lostfound-hub/api-go/models"
)

// CatalogController serves the reference lists the report forms are built
// from.
type CatalogController struct {
	DB *gorm.DB
}

func NewCatalogController(db *gorm.DB) *CatalogController {
	return &CatalogController{DB: db}
}

func (cc *CatalogController) ListCategories(c *gin.Context) {
	var categories []models.Category
	if err := cc.DB.Order("name ASC").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching categories"})
		return
	}
	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: categories})
}

func (cc *CatalogController) ListLocations(c *gin.Context) {
	var locations []models.Location
	if err := cc.DB.Order("name ASC").Find(&locations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching locations"})
		return
	}
	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: locations})
}
