package main

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// ========== 一致性檢核 API ==========

// validateTripBody 檢核 body 裡的行程，不落地
func validateTripBody(c *gin.Context) {
	var trip Trip
	if err := c.ShouldBindJSON(&trip); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, validateTrip(trip))
}

// validateStoredTrip 檢核資料庫裡的行程
func validateStoredTrip(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid ID"})
		return
	}

	var trip Trip
	if err := tripsCollection.FindOne(context.Background(), bson.M{"id": id}).Decode(&trip); err != nil {
		c.JSON(404, gin.H{"error": "Trip not found"})
		return
	}

	c.JSON(200, validateTrip(trip))
}

// fixStoredTrip 對資料庫裡的行程跑修復並存回
func fixStoredTrip(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid ID"})
		return
	}

	var trip Trip
	if err := tripsCollection.FindOne(context.Background(), bson.M{"id": id}).Decode(&trip); err != nil {
		c.JSON(404, gin.H{"error": "Trip not found"})
		return
	}

	fixed := validateAndFix(trip)

	_, err = tripsCollection.UpdateOne(
		context.Background(),
		bson.M{"id": id},
		bson.M{"$set": bson.M{"plan": fixed.Plan, "updated_at": time.Now()}},
	)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, fixed)
}
