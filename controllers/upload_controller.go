package controllers

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lostfound-hub/api-go/config"
	"github.com/lostfound-hub/api-go/utils"
)

// maxImageSize caps uploaded item and claim photos at 20MB.
const maxImageSize = 20 * 1024 * 1024

type UploadController struct {
	DB            *gorm.DB
	StorageClient *s3.Client
	StorageConfig *config.StorageConfig
}

type PresignedURLRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
	FileSize    int64  `json:"fileSize" binding:"required"`
	Purpose     string `json:"purpose" binding:"required,oneof=item claim"`
}

type PresignedURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expiresIn"`
}

type MultipleUploadRequest struct {
	Files []PresignedURLRequest `json:"files" binding:"required,dive"`
}

type MultipleUploadResponse struct {
	Files []PresignedURLResponse `json:"files"`
}

func NewUploadController(db *gorm.DB) *UploadController {
	storageConfig := config.GetStorageConfig()

	storageClient := s3.New(s3.Options{
		BaseEndpoint: aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", storageConfig.AccountID)),
		Credentials: credentials.NewStaticCredentialsProvider(
			storageConfig.AccessKeyID,
			storageConfig.SecretAccessKey,
			"",
		),
		Region: storageConfig.Region,
	})

	return &UploadController{
		DB:            db,
		StorageClient: storageClient,
		StorageConfig: storageConfig,
	}
}

func (uc *UploadController) GetPresignedURL(c *gin.Context) {
	user := utils.GetUser(c)
	var req PresignedURLRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !isValidImageType(req.ContentType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only image uploads are allowed"})
		return
	}

	if req.FileSize > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size exceeds 20MB limit"})
		return
	}

	key := uc.generateFileKey(user.UserID, req.FileName, req.Purpose)

	presignedURL, err := uc.createPresignedURL(key, req.ContentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload URL"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data: PresignedURLResponse{
			UploadURL: presignedURL,
			FileURL:   fmt.Sprintf("%s/%s", uc.StorageConfig.PublicURL, key),
			Key:       key,
			ExpiresIn: 3600,
		},
		Message: "Presigned URL generated successfully",
	})
}

func (uc *UploadController) GetMultiplePresignedURLs(c *gin.Context) {
	user := utils.GetUser(c)
	var req MultipleUploadRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(req.Files) > 10 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Maximum 10 files allowed per upload"})
		return
	}

	var responses []PresignedURLResponse

	for _, fileReq := range req.Files {
		if !isValidImageType(fileReq.ContentType) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("Invalid file type for %s", fileReq.FileName),
			})
			return
		}

		if fileReq.FileSize > maxImageSize {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("File size exceeds limit for %s", fileReq.FileName),
			})
			return
		}

		key := uc.generateFileKey(user.UserID, fileReq.FileName, fileReq.Purpose)

		presignedURL, err := uc.createPresignedURL(key, fileReq.ContentType)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": fmt.Sprintf("Failed to create upload URL for %s", fileReq.FileName),
			})
			return
		}

		responses = append(responses, PresignedURLResponse{
			UploadURL: presignedURL,
			FileURL:   fmt.Sprintf("%s/%s", uc.StorageConfig.PublicURL, key),
			Key:       key,
			ExpiresIn: 3600,
		})
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data: MultipleUploadResponse{
			Files: responses,
		},
		Message: "Multiple presigned URLs generated successfully",
	})
}

func (uc *UploadController) DeleteFile(c *gin.Context) {
	user := utils.GetUser(c)
	key := c.Param("key")

	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File key is required"})
		return
	}

	if !uc.verifyFileOwnership(key, user.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	if err := uc.deleteFile(key); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete file"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Message: "File deleted successfully",
	})
}

// Helper functions
func isValidImageType(contentType string) bool {
	validTypes := []string{
		"image/jpeg", "image/jpg", "image/png", "image/webp", "image/heic",
	}
	for _, validType := range validTypes {
		if contentType == validType {
			return true
		}
	}
	return false
}

func (uc *UploadController) generateFileKey(userID uint, fileName, purpose string) string {
	ext := filepath.Ext(fileName)
	uuid := uuid.New().String()
	timestamp := time.Now().Unix()

	return fmt.Sprintf("uploads/%ss/%d/%d_%s%s", purpose, userID, timestamp, uuid, ext)
}

func (uc *UploadController) createPresignedURL(key, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(uc.StorageConfig.BucketName),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}

	presigner := s3.NewPresignClient(uc.StorageClient)
	req, err := presigner.PresignPutObject(context.TODO(), input, func(opts *s3.PresignOptions) {
		opts.Expires = time.Hour
	})

	if err != nil {
		return "", err
	}

	return req.URL, nil
}

func (uc *UploadController) deleteFile(key string) error {
	input := &s3.DeleteObjectInput{
		Bucket: aws.String(uc.StorageConfig.BucketName),
		Key:    aws.String(key),
	}

	_, err := uc.StorageClient.DeleteObject(context.TODO(), input)
	return err
}

func (uc *UploadController) verifyFileOwnership(key string, userID uint) bool {
	// Key format: uploads/{purpose}s/{userID}/{timestamp}_{uuid}.{ext}
	parts := strings.Split(key, "/")
	if len(parts) < 3 {
		return false
	}

	return fmt.Sprintf("%d", userID) == parts[2]
}
