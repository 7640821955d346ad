package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sparkbytes/backend/internal/helpers"
	"github.com/sparkbytes/backend/internal/models"
)

type UpdateProfileRequest struct {
	Name         string   `json:"name" binding:"required"`
	Bio          string   `json:"bio"`
	Interests    string   `json:"interests"`
	Language     string   `json:"language"`
	DietaryNeeds []string `json:"dietary_needs"`
}

func GetProfile(c *gin.Context) {
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

	var user models.User
	if err := gormDB.Preload("Role").Preload("DietaryNeeds").Where("id = ?", userID).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "User not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving user.")
		return
	}

	preferences := make([]string, 0, len(user.DietaryNeeds))
	for _, tag := range user.DietaryNeeds {
		preferences = append(preferences, tag.Name)
	}

	c.JSON(http.StatusOK, gin.H{
		"id":            user.ID,
		"email":         user.Email,
		"name":          user.Name,
		"bio":           user.Bio,
		"interests":     user.Interests,
		"language":      user.Language,
		"role":          user.Role.Name,
		"dietary_needs": preferences,
	})
}

// UpdateProfile replaces the profile fields and the dietary preference set
// wholesale, in one transaction.
func UpdateProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Name is required.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var user models.User
	if err := gormDB.Where("id = ?", userID).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "User not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving user.")
		return
	}

	tags, err := resolveDietaryTags(gormDB, req.DietaryNeeds)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	user.Name = req.Name
	user.Bio = req.Bio
	user.Interests = req.Interests
	user.Language = req.Language

	err = gormDB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&user).Error; err != nil {
			return err
		}
		return tx.Model(&user).Association("DietaryNeeds").Replace(tags)
	})
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully."})
}

// ProfileStatus reports whether the user has filled out their profile,
// so clients know to show the create-profile flow.
func ProfileStatus(c *gin.Context) {
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

	var user models.User
	if err := gormDB.Preload("DietaryNeeds").Where("id = ?", userID).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "User not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving user.")
		return
	}

	complete := user.Interests != "" && user.Language != "" && len(user.DietaryNeeds) > 0

	c.JSON(http.StatusOK, gin.H{"profile_complete": complete})
}
