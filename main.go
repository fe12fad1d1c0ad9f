package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// ========== 主程式 ==========
func main() {
	// 載入 .env (沒有也沒關係，環境變數可能已經設好)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file, using environment variables")
	}

	initMongo()

	// 設定 Gin
	r := gin.Default()

	// CORS 設定 - 允許前端跨域請求
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:8080", "*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// API 路由
	api := r.Group("/api")
	{
		// 行程相關
		api.GET("/trips", getTrips)
		api.GET("/trips/:id", getTrip)
		api.POST("/trips", createTrip)
		api.PUT("/trips/:id", updateTrip)
		api.DELETE("/trips/:id", deleteTrip)

		// 一致性檢核 / 修復
		api.POST("/validate", validateTripBody)
		api.POST("/trips/:id/validate", validateStoredTrip)
		api.POST("/trips/:id/fix", fixStoredTrip)

		// 生成
		api.POST("/generate", generateItinerary)
		api.POST("/chat", chatWithGemini)

		// 健康檢查
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
				"time":   time.Now(),
			})
		})
	}

	// 啟動伺服器
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on http://localhost:%s", port)
	log.Printf("API: http://localhost:%s/api", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
