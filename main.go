package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/receiptly/receipt-extraction-service/client"
	"github.com/receiptly/receipt-extraction-service/config"
	"github.com/receiptly/receipt-extraction-service/handler"
	"github.com/receiptly/receipt-extraction-service/service"
)

func main() {
	// Initialize configuration
	cfg := config.LoadConfig()

	// Tesseract v5 refuses to start without a valid tessdata prefix
	os.Setenv("TESSDATA_PREFIX", cfg.TesseractDataPath)
	log.Println("TESSDATA_PREFIX set to:", cfg.TesseractDataPath)

	// Initialize OCR clients
	tesseractClient := client.NewTesseractClient(cfg.TesseractDataPath)
	defer tesseractClient.Close()

	paddleClient := client.NewPaddleClient(cfg.PaddleAPIURL)

	// Initialize PDF processor
	pdfProcessor := service.NewPDFProcessor()

	// Initialize service layer
	receiptService := service.NewReceiptService(tesseractClient, paddleClient, pdfProcessor)

	// Initialize handler layer
	receiptHandler := handler.NewReceiptHandler(receiptService)

	// Setup Gin router
	router := gin.Default()

	// Configure max multipart memory (32 MB)
	router.MaxMultipartMemory = 32 << 20

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "Receipt Extraction",
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		receipts := api.Group("/receipts")
		{
			receipts.POST("/scan", receiptHandler.ScanReceipt)
			receipts.POST("/parse", receiptHandler.ParseLines)
		}
	}

	// Start server
	log.Printf("Starting Receipt Extraction Service on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
