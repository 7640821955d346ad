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

type CreateFavoriteRequest struct {
	EventID uuid.UUID `json:"event_id" binding:"required"`
}

func CreateFavorite(c *gin.Context) {
	var req CreateFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Event ID is required.")
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

	var existing models.Favorite
	if err := gormDB.Where("user_id = ? AND event_id = ?", userID, req.EventID).First(&existing).Error; err == nil {
		helpers.RespondWithError(c, http.StatusConflict, "You have already favorited this event.")
		return
	}

	favorite := models.Favorite{
		UserID:  userID.(uuid.UUID),
		EventID: req.EventID,
	}

	if err := gormDB.Create(&favorite).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			helpers.RespondWithError(c, http.StatusConflict, "You have already favorited this event.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to add favorite.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Event added to favorites.",
		"favorite_id": favorite.ID,
	})
}

// ListUserFavorites serves /users/:id/favorites with the full filter surface.
func ListUserFavorites(c *gin.Context) {
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
	result, err := query.ListEvents(gormDB, params, query.ScopeFavorited, targetID)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving favorited events.")
		return
	}

	c.JSON(http.StatusOK, result)
}
