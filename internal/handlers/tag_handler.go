package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sparkbytes/backend/internal/helpers"
	"github.com/sparkbytes/backend/internal/models"
)

// ListTags exposes the seeded dietary vocabulary. Tags are reference data
// and have no mutation endpoints.
func ListTags(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var tags []models.DietaryTag
	if err := gormDB.Order("name asc").Find(&tags).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving dietary tags.")
		return
	}

	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}

	c.JSON(http.StatusOK, gin.H{"dietary_tags": names})
}

// resolveDietaryTags maps tag names to seeded rows. Any unknown name fails
// the whole resolution so callers never attach a partial tag set.
func resolveDietaryTags(db *gorm.DB, names []string) ([]models.DietaryTag, error) {
	unique := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		key := strings.ToLower(name)
		if !seen[key] {
			seen[key] = true
			unique = append(unique, name)
		}
	}

	var tags []models.DietaryTag
	if err := db.Where("lower(name) IN ?", lowered(unique)).Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("error resolving dietary tags")
	}

	if len(tags) != len(unique) {
		found := make(map[string]bool, len(tags))
		for _, tag := range tags {
			found[strings.ToLower(tag.Name)] = true
		}
		for _, name := range unique {
			if !found[strings.ToLower(name)] {
				return nil, fmt.Errorf("unknown dietary tag: %s", name)
			}
		}
	}

	return tags, nil
}

func lowered(names []string) []string {
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = strings.ToLower(name)
	}
	return out
}
