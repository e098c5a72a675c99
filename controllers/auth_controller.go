package controllers

import (
	"net/http"
	"os"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/lostfound-hub/api-go/config"
	"github.com/lostfound-hub/api-go/models"
	"github.com/lostfound-hub/api-go/utils"
)

const pinTTL = 15 * time.Minute

type AuthController struct {
	DB           *gorm.DB
	GoogleConfig *config.GoogleConfig
	Log          *logrus.Logger
}

func NewAuthController(db *gorm.DB, log *logrus.Logger) *AuthController {
	googleConfig, err := config.NewGoogleConfig()
	if err != nil {
		log.WithError(err).Warn("google login disabled")
	}
	return &AuthController{
		DB:           db,
		GoogleConfig: googleConfig,
		Log:          log,
	}
}

func (ac *AuthController) Register(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required,min=3,max=30"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		Phone    string `json:"phone"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password", "success": false})
		return
	}
	hashedPasswordStr := string(hashedPassword)

	pin, err := utils.GeneratePin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate verification code", "success": false})
		return
	}
	pinExpiry := time.Now().Add(pinTTL)

	var phone *string
	if input.Phone != "" {
		phone = &input.Phone
	}

	user := models.User{
		Username:        input.Username,
		Email:           input.Email,
		Phone:           phone,
		Password:        &hashedPasswordStr,
		Role:            models.RoleUser,
		Provider:        "email",
		EmailVerified:   false,
		VerificationPin: pin,
		PinExpiresAt:    &pinExpiry,
	}

	if err := ac.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username or email already exists", "success": false})
		return
	}

	// Don't block registration on the mail provider.
	go func() {
		_ = utils.SendVerificationEmail(ac.Log, user.Email, user.Username, pin)
	}()

	c.JSON(http.StatusCreated, StandardResponse{
		Success: true,
		Message: "User registered successfully. Check your email for the verification code.",
		Data: gin.H{
			"id":       user.ID,
			"email":    user.Email,
			"username": user.Username,
		},
	})
}

func (ac *AuthController) VerifyPin(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
		Pin   string `json:"pin" binding:"required,len=6"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	var user models.User
	if err := ac.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Email not found", "success": false})
		return
	}

	if user.EmailVerified {
		c.JSON(http.StatusOK, StandardResponse{Success: true, Message: "Email already verified"})
		return
	}

	if user.VerificationPin != input.Pin {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid verification code", "success": false})
		return
	}
	if user.PinExpiresAt == nil || time.Now().After(*user.PinExpiresAt) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Verification code has expired", "success": false})
		return
	}

	updates := map[string]interface{}{
		"email_verified":   true,
		"verification_pin": "",
		"pin_expires_at":   nil,
	}
	if err := ac.DB.Model(&user).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not verify email", "success": false})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Message: "Email verified successfully"})
}

func (ac *AuthController) ResendPin(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	var user models.User
	if err := ac.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Email not found", "success": false})
		return
	}
	if user.EmailVerified {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is already verified", "success": false})
		return
	}

	pin, err := utils.GeneratePin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate verification code", "success": false})
		return
	}
	pinExpiry := time.Now().Add(pinTTL)

	updates := map[string]interface{}{
		"verification_pin": pin,
		"pin_expires_at":   pinExpiry,
	}
	if err := ac.DB.Model(&user).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update verification code", "success": false})
		return
	}

	go func() {
		_ = utils.SendVerificationEmail(ac.Log, user.Email, user.Username, pin)
	}()

	c.JSON(http.StatusOK, StandardResponse{Success: true, Message: "Verification code sent"})
}

func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := ac.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if user.Password == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	accessToken, refreshToken, refreshExpiry, err := utils.GenerateTokenPair(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token", "success": false})
		return
	}

	ac.DB.Create(&models.RefreshToken{
		UserID:         user.ID,
		Token:          refreshToken,
		ExpirationDate: refreshExpiry,
	})

	c.JSON(http.StatusOK, gin.H{
		"token_type":    "Bearer",
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user": gin.H{
			"id":             user.ID,
			"email":          user.Email,
			"username":       user.Username,
			"role":           user.Role,
			"email_verified": user.EmailVerified,
		},
		"success": true,
	})
}

func (ac *AuthController) RefreshToken(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var refreshToken models.RefreshToken
	if err := ac.DB.Where("token = ?", input.RefreshToken).First(&refreshToken).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}

	if time.Now().After(refreshToken.ExpirationDate) {
		ac.DB.Delete(&refreshToken)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token expired"})
		return
	}

	claims := jwt.MapClaims{}
	parsedToken, err := jwt.ParseWithClaims(input.RefreshToken, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !parsedToken.Valid {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}

	var user models.User
	if err := ac.DB.First(&user, refreshToken.UserID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	accessToken, newRefreshToken, refreshExpiry, err := utils.GenerateTokenPair(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	refreshToken.Token = newRefreshToken
	refreshToken.ExpirationDate = refreshExpiry
	ac.DB.Save(&refreshToken)

	c.JSON(http.StatusOK, gin.H{
		"token_type":    "Bearer",
		"access_token":  accessToken,
		"refresh_token": newRefreshToken,
		"success":       true,
	})
}

func (ac *AuthController) Logout(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := ac.DB.Where("token = ?", input.RefreshToken).Delete(&models.RefreshToken{})
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Refresh token not found"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Message: "Logged out successfully"})
}

func (ac *AuthController) GetProfile(c *gin.Context) {
	claims := utils.GetUser(c)

	var user models.User
	if err := ac.DB.First(&user, claims.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: user})
}

func (ac *AuthController) GoogleLogin(c *gin.Context) {
	if ac.GoogleConfig == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Google login is not configured"})
		return
	}

	var input struct {
		IDToken string `json:"id_token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userInfo, err := ac.GoogleConfig.VerifyIDToken(input.IDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Google token"})
		return
	}

	var user models.User
	err = ac.DB.Where("google_id = ?", userInfo.ID).First(&user).Error
	if err != nil {
		// Link by email, or create a fresh account. Google accounts skip
		// the PIN step since Google already verified the address.
		err = ac.DB.Where("email = ?", userInfo.Email).First(&user).Error
		if err != nil {
			user = models.User{
				Username:      userInfo.Email,
				Email:         userInfo.Email,
				Role:          models.RoleUser,
				Provider:      "google",
				ProviderID:    userInfo.ID,
				GoogleID:      &userInfo.ID,
				EmailVerified: true,
			}
			if err := ac.DB.Create(&user).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create user"})
				return
			}
		} else {
			user.GoogleID = &userInfo.ID
			user.Provider = "google"
			user.EmailVerified = true
			ac.DB.Save(&user)
		}
	}

	accessToken, refreshToken, refreshExpiry, err := utils.GenerateTokenPair(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	ac.DB.Create(&models.RefreshToken{
		UserID:         user.ID,
		Token:          refreshToken,
		ExpirationDate: refreshExpiry,
	})

	c.JSON(http.StatusOK, gin.H{
		"token_type":    "Bearer",
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user": gin.H{
			"id":       user.ID,
			"email":    user.Email,
			"username": user.Username,
			"role":     user.Role,
		},
		"success": true,
	})
}
