package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sparkbytes/backend/internal/helpers"
	"github.com/sparkbytes/backend/internal/models"
	"github.com/sparkbytes/backend/internal/query"
)

type CreateEventRequest struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description" binding:"required"`
	Date         string   `json:"date" binding:"required"`
	StartTime    string   `json:"start_time" binding:"required"`
	EndTime      string   `json:"end_time" binding:"required"`
	Location     string   `json:"location" binding:"required"`
	Address      string   `json:"address" binding:"required"`
	Quantity     int      `json:"quantity" binding:"required,min=1"`
	DietaryNeeds []string `json:"dietary_needs" binding:"required,min=1"`
}

type UpdateEventRequest struct {
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	Date         *string   `json:"date"`
	StartTime    *string   `json:"start_time"`
	EndTime      *string   `json:"end_time"`
	Location     *string   `json:"location"`
	Address      *string   `json:"address"`
	Quantity     *int      `json:"quantity"`
	DietaryNeeds *[]string `json:"dietary_needs"`
}

func CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Missing required fields.")
		return
	}

	date, err := helpers.ParseDate(req.Date)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid date format. Expected YYYY-MM-DD.")
		return
	}
	startTime, err := helpers.ParseClock(req.StartTime)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid start time format. Expected HH:MM:SS.")
		return
	}
	endTime, err := helpers.ParseClock(req.EndTime)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid end time format. Expected HH:MM:SS.")
		return
	}

	if !helpers.DateInFuture(date, time.Now()) {
		helpers.RespondWithError(c, http.StatusBadRequest, "The event date must be in the future.")
		return
	}
	if endTime <= startTime {
		helpers.RespondWithError(c, http.StatusBadRequest, "The end time must be after the start time.")
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

	tags, err := resolveDietaryTags(gormDB, req.DietaryNeeds)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	event := models.Event{
		ID:           uuid.New(),
		Title:        req.Title,
		Description:  req.Description,
		Date:         date,
		StartTime:    startTime,
		EndTime:      endTime,
		Location:     req.Location,
		Address:      req.Address,
		Quantity:     req.Quantity,
		UserID:       userID.(uuid.UUID),
		DietaryNeeds: tags,
	}

	// Event row and dietary link rows land together or not at all.
	if err := gormDB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&event).Error
	}); err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create event.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Event created successfully.",
		"event_id": event.ID,
	})
}

func GetEvent(c *gin.Context) {
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
	if err := gormDB.Preload("DietaryNeeds").Where("id = ?", eventID).First(&event).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving event.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"event":         event,
		"dietary_needs": event.TagNames(),
	})
}

func ListEvents(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	params := query.ParseListParams(c)
	result, err := query.ListEvents(gormDB, params, query.ScopeAll, uuid.Nil)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving events.")
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListUserEvents serves /users/:id/events: the events a user published,
// visible to that user or an admin.
func ListUserEvents(c *gin.Context) {
	targetID, ok := requireSelfOrAdmin(c)
	if !ok {
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	params := query.ParseListParams(c)
	result, err := query.ListEvents(gormDB, params, query.ScopeOwned, targetID)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving events.")
		return
	}

	c.JSON(http.StatusOK, result)
}

func UpdateEvent(c *gin.Context) {
	eventID, ok := parseEventID(c)
	if !ok {
		return
	}
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var event models.Event
	if err := gormDB.Where("id = ?", eventID).First(&event).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding event.")
		return
	}

	if event.UserID != userID.(uuid.UUID) {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to update this event.")
		return
	}

	// Omitted fields keep their stored values.
	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Date != nil {
		date, err := helpers.ParseDate(*req.Date)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid date format. Expected YYYY-MM-DD.")
			return
		}
		event.Date = date
	}
	if req.StartTime != nil {
		startTime, err := helpers.ParseClock(*req.StartTime)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid start time format. Expected HH:MM:SS.")
			return
		}
		event.StartTime = startTime
	}
	if req.EndTime != nil {
		endTime, err := helpers.ParseClock(*req.EndTime)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid end time format. Expected HH:MM:SS.")
			return
		}
		event.EndTime = endTime
	}
	if event.EndTime <= event.StartTime {
		helpers.RespondWithError(c, http.StatusBadRequest, "The end time must be after the start time.")
		return
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.Address != nil {
		event.Address = *req.Address
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			helpers.RespondWithError(c, http.StatusBadRequest, "Quantity must not be negative.")
			return
		}
		event.Quantity = *req.Quantity
	}

	var tags []models.DietaryTag
	if req.DietaryNeeds != nil {
		resolved, err := resolveDietaryTags(gormDB, *req.DietaryNeeds)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		tags = resolved
	}

	err := gormDB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&event).Error; err != nil {
			return err
		}
		if req.DietaryNeeds != nil {
			return tx.Model(&event).Association("DietaryNeeds").Replace(tags)
		}
		return nil
	})
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update event.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event updated successfully.",
		"event":   event,
	})
}

func DeleteEvent(c *gin.Context) {
	eventID, ok := parseEventID(c)
	if !ok {
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
	if err := gormDB.Where("id = ?", eventID).First(&event).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding event.")
		return
	}

	if event.UserID != userID.(uuid.UUID) {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to delete this event.")
		return
	}

	// Relationship and link rows go with the event, never orphaned.
	err := gormDB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", event.ID).Delete(&models.RSVP{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", event.ID).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", event.ID).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&event).Association("DietaryNeeds").Clear(); err != nil {
			return err
		}
		return tx.Delete(&event).Error
	})
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete event.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event deleted successfully.",
	})
}
