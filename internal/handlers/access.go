package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sparkbytes/backend/internal/helpers"
)

// parseEventID rejects path ids that could never name an event before they
// reach a uuid column comparison. On failure the response is already written.
func parseEventID(c *gin.Context) (uuid.UUID, bool) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
		return uuid.Nil, false
	}
	return eventID, true
}

// requireSelfOrAdmin guards the /users/:id/... views: the path id must match
// the verified identity unless the requester holds the admin role. On
// failure the response is already written.
func requireSelfOrAdmin(c *gin.Context) (uuid.UUID, bool) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid user id.")
		return uuid.Nil, false
	}

	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return uuid.Nil, false
	}

	if userID.(uuid.UUID) != targetID && c.GetString("role") != "admin" {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to view this user's data.")
		return uuid.Nil, false
	}

	return targetID, true
}
