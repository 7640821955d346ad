package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sparkbytes/backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
}

func LoadConfig() (*Config, error) {
	return &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
	}, nil
}

// AuthConfig carries the token signing material and registration policy.
// It is constructed once at startup and passed by reference into the
// middleware; handlers never read the secret from the environment.
type AuthConfig struct {
	Secret      string
	TokenTTL    time.Duration
	EmailDomain string
}

func LoadAuthConfig() (*AuthConfig, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	domain := os.Getenv("ALLOWED_EMAIL_DOMAIN")
	if domain == "" {
		domain = "@bu.edu"
	}

	return &AuthConfig{
		Secret:      secret,
		TokenTTL:    24 * time.Hour,
		EmailDomain: domain,
	}, nil
}

func enableUUIDExtension(db *gorm.DB) error {
	return db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error
}

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := enableUUIDExtension(db); err != nil {
		return nil, err
	}

	err = db.AutoMigrate(&models.Role{}, &models.DietaryTag{}, &models.User{}, &models.Event{}, &models.RSVP{}, &models.Favorite{}, &models.Review{})
	if err != nil {
		return nil, err
	}

	if err := seedRoles(db); err != nil {
		return nil, fmt.Errorf("seeding roles: %w", err)
	}
	if err := seedDietaryTags(db); err != nil {
		return nil, fmt.Errorf("seeding dietary tags: %w", err)
	}

	return db, nil
}

// Handlers resolve roles and tags by name, so a missing seed row is a
// startup failure, not something to discover per request.
func seedRoles(db *gorm.DB) error {
	roles := []models.Role{
		{Name: "student"},
		{Name: "faculty"},
		{Name: "admin"},
	}

	for _, role := range roles {
		var existingRole models.Role
		result := db.Where("name = ?", role.Name).First(&existingRole)
		if result.Error == nil {
			continue
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}
		if err := db.Create(&role).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedDietaryTags(db *gorm.DB) error {
	tags := []models.DietaryTag{
		{Name: "Vegan"},
		{Name: "Vegetarian"},
		{Name: "Halal"},
		{Name: "Kosher"},
		{Name: "Gluten-Free"},
		{Name: "Dairy-Free"},
		{Name: "Nut-Free"},
		{Name: "Pescatarian"},
	}

	for _, tag := range tags {
		var existing models.DietaryTag
		result := db.Where("name = ?", tag.Name).First(&existing)
		if result.Error == nil {
			continue
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}
		if err := db.Create(&tag).Error; err != nil {
			return err
		}
	}
	return nil
}
