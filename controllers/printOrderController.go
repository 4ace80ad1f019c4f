package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/craftmint/craftmint-api/initializers"
	"github.com/craftmint/craftmint-api/models"
	"github.com/craftmint/craftmint-api/pricing"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

// getAWSUploader returns a configured AWS S3 uploader
func getAWSUploader() (*manager.Uploader, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return manager.NewUploader(client), nil
}

// UploadDesignFiles stores the user's 3D design files in S3 and
// returns their URLs. Pricing of the files happens in the estimation
// step before the order is submitted.
func UploadDesignFiles(ctx *gin.Context) {
	form, err := ctx.MultipartForm()
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid form data", err)
		return
	}

	files := form.File["designs"]
	if len(files) == 0 {
		respondWithError(ctx, http.StatusBadRequest, "No files uploaded", nil)
		return
	}

	uploader, err := getAWSUploader()
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to configure AWS", err)
		return
	}

	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		bucket = "craftmint-designs"
	}

	var uploadedUrls []string
	var failedUploads []string

	for _, file := range files {
		f, openErr := file.Open()
		if openErr != nil {
			log.Printf("Error opening file %s: %v", file.Filename, openErr)
			failedUploads = append(failedUploads, file.Filename)
			continue
		}

		// Unique key so two users' files never collide.
		uniqueFilename := fmt.Sprintf("%s-%s-%s", authPhone(ctx), time.Now().Format("20060102150405"), file.Filename)

		result, uploadErr := uploader.Upload(context.TODO(), &s3.PutObjectInput{
			Bucket:      aws.String(bucket),
			Key:         aws.String(uniqueFilename),
			Body:        f,
			ContentType: aws.String(file.Header.Get("Content-Type")),
		})
		f.Close()

		if uploadErr != nil {
			log.Printf("Error uploading file %s: %v", file.Filename, uploadErr)
			failedUploads = append(failedUploads, file.Filename)
			continue
		}

		uploadedUrls = append(uploadedUrls, result.Location)
	}

	response := gin.H{
		"message": "Files processed",
		"urls":    uploadedUrls,
	}

	if len(failedUploads) > 0 {
		response["failed"] = failedUploads
	}

	ctx.JSON(http.StatusOK, response)
}

// CreatePrintOrder persists a custom-print order. Each file arrives
// already priced by the estimation step.
func CreatePrintOrder(ctx *gin.Context) {
	var body struct {
		Files []struct {
			FileName      string         `json:"fileName" binding:"required"`
			FileURL       string         `json:"fileUrl"`
			UnitPrice     float64        `json:"unitPrice"`
			Quantity      int            `json:"quantity" binding:"required,min=1"`
			PrintSettings datatypes.JSON `json:"printSettings"`
		} `json:"files" binding:"required,min=1"`
		DiscountAmount float64 `json:"discountAmount"`
		PaymentID      string  `json:"paymentId"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	order := models.PrintOrder{
		Phone:          authPhone(ctx),
		DiscountAmount: body.DiscountAmount,
		Status:         "Pending",
		PaymentID:      body.PaymentID,
	}
	if user, err := findUserByPhone(order.Phone); err == nil {
		order.CustomerName = user.Fullname
	}

	for _, f := range body.Files {
		total := f.UnitPrice * float64(f.Quantity)
		order.Files = append(order.Files, models.PrintFile{
			FileName:      f.FileName,
			FileURL:       f.FileURL,
			UnitPrice:     f.UnitPrice,
			Quantity:      f.Quantity,
			TotalPrice:    total,
			PrintSettings: f.PrintSettings,
		})
		order.Subtotal += total
	}

	order.DeliveryCharge = pricing.DeliveryCharge(len(order.Files))
	order.TotalPrice = pricing.GrandTotal(order.Subtotal, order.DeliveryCharge, 0, order.DiscountAmount)

	tx := initializers.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create print order", err)
		return
	}

	if err := tx.Commit().Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to save print order", err)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": "Print order submitted",
		"order":   order,
	})
}

func GetMyPrintOrders(ctx *gin.Context) {
	var orders []models.PrintOrder
	result := initializers.DB.
		Preload("Files").
		Where("phone = ?", authPhone(ctx)).
		Order("created_at desc").
		Find(&orders)
	if result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch print orders.")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders})
}

func UpdatePrintOrderStatus(ctx *gin.Context) {
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse request body")
		return
	}

	result := initializers.DB.Model(&models.PrintOrder{}).
		Where("id = ?", ctx.Param("orderId")).
		Update("status", body.Status)
	if result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to update order status")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order status updated successfully."})
}
