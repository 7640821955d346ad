package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sparkbytes/backend/internal/helpers"
	"github.com/sparkbytes/backend/internal/models"
	"github.com/sparkbytes/backend/internal/query"
)

type CreateRSVPRequest struct {
	EventID uuid.UUID         `json:"event_id" binding:"required"`
	Status  models.RSVPStatus `json:"status" binding:"required"`
}

func CreateRSVP(c *gin.Context) {
	var req CreateRSVPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Event ID and RSVP status are required.")
		return
	}

	if !req.Status.Valid() {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid RSVP status.")
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

	var existing models.RSVP
	if err := gormDB.Where("user_id = ? AND event_id = ?", userID, req.EventID).First(&existing).Error; err == nil {
		helpers.RespondWithError(c, http.StatusConflict, "You have already RSVP'd for this event.")
		return
	}

	rsvp := models.RSVP{
		UserID:  userID.(uuid.UUID),
		EventID: req.EventID,
		Status:  req.Status,
	}

	if err := gormDB.Create(&rsvp).Error; err != nil {
		// Concurrent duplicate slips past the read above; the unique index
		// still rejects it.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			helpers.RespondWithError(c, http.StatusConflict, "You have already RSVP'd for this event.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to RSVP.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "RSVP successful.",
		"rsvp_id": rsvp.ID,
	})
}

// ListUserRSVPs serves /users/:id/rsvps with the full filter surface,
// each event annotated with the user's RSVP status.
func ListUserRSVPs(c *gin.Context) {
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
	result, err := query.ListEvents(gormDB, params, query.ScopeRSVPed, targetID)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving RSVP'd events.")
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListEventRSVPs returns the roster of users who RSVP'd to an event.
func ListEventRSVPs(c *gin.Context) {
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

	var rsvps []models.RSVP
	if err := gormDB.Preload("User").Where("event_id = ?", eventID).Find(&rsvps).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving RSVPs.")
		return
	}

	attendees := make([]gin.H, 0, len(rsvps))
	for _, rsvp := range rsvps {
		attendees = append(attendees, gin.H{
			"user_id":   rsvp.UserID,
			"name":      rsvp.User.Name,
			"email":     rsvp.User.Email,
			"bio":       rsvp.User.Bio,
			"interests": rsvp.User.Interests,
			"language":  rsvp.User.Language,
			"status":    rsvp.Status,
		})
	}

	c.JSON(http.StatusOK, gin.H{"users": attendees})
}
