package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lostfound-hub/api-go/lifecycle"
)

// respondError maps an engine error onto an HTTP status. Unknown errors are
// reported as 500 without leaking internals.
func respondError(c *gin.Context, err error) {
	if errors.Is(err, lifecycle.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found", "success": false})
		return
	}

	var status int
	switch lifecycle.KindOf(err) {
	case lifecycle.KindValidation, lifecycle.KindTooManyImages:
		status = http.StatusBadRequest
	case lifecycle.KindPermission, lifecycle.KindSelfClaim:
		status = http.StatusForbidden
	case lifecycle.KindInvalidState, lifecycle.KindWrongItemType,
		lifecycle.KindAlreadyReturned, lifecycle.KindAlreadyClaimed,
		lifecycle.KindDuplicateApproved, lifecycle.KindDuplicatePending,
		lifecycle.KindNoApprovedClaim, lifecycle.KindConflict:
		status = http.StatusConflict
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong", "success": false})
		return
	}

	c.JSON(status, gin.H{"error": err.Error(), "success": false})
}
