package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sparkbytes/backend/internal/helpers"
	"github.com/sparkbytes/backend/internal/models"
)

type CreateReviewRequest struct {
	EventID uuid.UUID `json:"event_id" binding:"required"`
	Rating  int       `json:"rating" binding:"required,min=1,max=5"`
	Comment string    `json:"comment"`
}

func CreateReview(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Event ID and a rating between 1 and 5 are required.")
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var event models.Event
	if err := gormDB.Select("id").Where("id = ?", req.EventID).First(&event).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding event.")
		return
	}

	review := models.Review{
		UserID:  userID.(uuid.UUID),
		EventID: req.EventID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}

	if err := gormDB.Create(&review).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to submit review.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Review submitted.",
		"review_id": review.ID,
	})
}

func ListEventReviews(c *gin.Context) {
	eventID, ok := parseEventID(c)
	if !ok {
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var event models.Event
	if err := gormDB.Select("id").Where("id = ?", eventID).First(&event).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding event.")
		return
	}

	var reviews []models.Review
	if err := gormDB.Where("event_id = ?", eventID).Order("created_at desc").Find(&reviews).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving reviews.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
