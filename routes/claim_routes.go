package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/lostfound-hub/api-go/controllers"
)

// Claim submission lives under /reports/:id/claims; only the claimant-facing
// listing sits here.
func SetupClaimRoutes(rg *gin.RouterGroup, claimController *controllers.ClaimController) {
	claims := rg.Group("/claims")
	{
		claims.GET("/mine", claimController.MyClaims)
	}
}
