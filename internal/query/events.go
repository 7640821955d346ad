// Package query builds the event listing query plan: filter predicates,
// dietary-tag matching, sorting from a fixed whitelist, and pagination.
// The same plan serves the public listing and the per-user owned / RSVP'd /
// favorited views through a relationship scope.
package query

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sparkbytes/backend/internal/helpers"
	"github.com/sparkbytes/backend/internal/models"
)

type Scope int

const (
	ScopeAll Scope = iota
	ScopeOwned
	ScopeRSVPed
	ScopeFavorited
)

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// sortColumns is the only path from client input to the ORDER BY clause.
var sortColumns = map[string]string{
	"date":     "date",
	"location": "location",
	"title":    "title",
}

type ListParams struct {
	Page         int
	PerPage      int
	SortBy       string // normalized column name out of sortColumns
	Order        string // "asc" or "desc"
	Keyword      string
	DietaryNeeds []string
	Date         string
	StartTime    string
	EndTime      string
}

// ParseListParams reads the listing controls from the query string.
// Malformed values degrade to their defaults rather than failing the
// request; only the whitelisted sort columns ever reach the SQL.
func ParseListParams(c *gin.Context) ListParams {
	p := ListParams{
		Page:    1,
		PerPage: DefaultPerPage,
		SortBy:  "date",
		Order:   "asc",
	}

	if n, err := helpers.StringToInt(c.DefaultQuery("page", "1")); err == nil && n >= 1 {
		p.Page = n
	}
	if n, err := helpers.StringToInt(c.DefaultQuery("per_page", "10")); err == nil && n >= 1 {
		p.PerPage = n
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}

	if col, ok := sortColumns[c.Query("sort_by")]; ok {
		p.SortBy = col
	}
	if order := c.Query("order"); order == "desc" {
		p.Order = "desc"
	}

	p.Keyword = c.Query("keyword")

	for _, name := range c.QueryArray("dietary_needs") {
		if name != "" {
			p.DietaryNeeds = append(p.DietaryNeeds, name)
		}
	}

	if date, err := helpers.ParseDate(c.Query("date")); err == nil {
		p.Date = date
	}
	if t, err := helpers.ParseClock(c.Query("start_time")); err == nil {
		p.StartTime = t
	}
	if t, err := helpers.ParseClock(c.Query("end_time")); err == nil {
		p.EndTime = t
	}

	return p
}

type EventSummary struct {
	ID           uuid.UUID         `json:"event_id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Date         string            `json:"date"`
	StartTime    string            `json:"start_time"`
	EndTime      string            `json:"end_time"`
	Location     string            `json:"location"`
	Address      string            `json:"address"`
	Quantity     int               `json:"quantity"`
	DietaryNeeds []string          `json:"dietary_needs"`
	Status       models.RSVPStatus `json:"status,omitempty"`
}

type Result struct {
	Page          int            `json:"page"`
	PerPage       int            `json:"per_page"`
	TotalMatching int64          `json:"total_matching"`
	TotalPages    int64          `json:"total_pages"`
	Items         []EventSummary `json:"items"`
}

// ListEvents counts the full match set, then fetches one page with the
// dietary tags preloaded. A zero-match result is an empty page, not an
// error.
func ListEvents(db *gorm.DB, p ListParams, scope Scope, userID uuid.UUID) (*Result, error) {
	q := applyScope(db.Model(&models.Event{}), db, scope, userID)
	q = applyFilters(q, db, p)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	var events []models.Event
	offset := (p.Page - 1) * p.PerPage
	err := q.Preload("DietaryNeeds").
		Order(fmt.Sprintf("%s %s, id asc", p.SortBy, p.Order)).
		Offset(offset).Limit(p.PerPage).
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	items := make([]EventSummary, 0, len(events))
	for _, event := range events {
		items = append(items, EventSummary{
			ID:           event.ID,
			Title:        event.Title,
			Description:  event.Description,
			Date:         event.Date,
			StartTime:    event.StartTime,
			EndTime:      event.EndTime,
			Location:     event.Location,
			Address:      event.Address,
			Quantity:     event.Quantity,
			DietaryNeeds: event.TagNames(),
		})
	}

	if scope == ScopeRSVPed {
		if err := annotateRSVPStatus(db, userID, items); err != nil {
			return nil, err
		}
	}

	perPage := int64(p.PerPage)
	return &Result{
		Page:          p.Page,
		PerPage:       p.PerPage,
		TotalMatching: total,
		TotalPages:    (total + perPage - 1) / perPage,
		Items:         items,
	}, nil
}

// applyScope narrows the candidate set to events linked to userID through
// ownership, RSVP, or favorite. The id always comes from the verified
// credential path, never from the request body.
func applyScope(q *gorm.DB, db *gorm.DB, scope Scope, userID uuid.UUID) *gorm.DB {
	switch scope {
	case ScopeOwned:
		return q.Where("events.user_id = ?", userID)
	case ScopeRSVPed:
		sub := db.Model(&models.RSVP{}).Select("event_id").Where("user_id = ?", userID)
		return q.Where("events.id IN (?)", sub)
	case ScopeFavorited:
		sub := db.Model(&models.Favorite{}).Select("event_id").Where("user_id = ?", userID)
		return q.Where("events.id IN (?)", sub)
	}
	return q
}

func applyFilters(q *gorm.DB, db *gorm.DB, p ListParams) *gorm.DB {
	if p.Keyword != "" {
		pattern := "%" + p.Keyword + "%"
		q = q.Where("(events.title ILIKE ? OR events.description ILIKE ?)", pattern, pattern)
	}

	// ANY-match: an event qualifies when it carries at least one of the
	// requested tags.
	if len(p.DietaryNeeds) > 0 {
		sub := db.Table("event_dietary_tags").
			Select("event_dietary_tags.event_id").
			Joins("JOIN dietary_tags ON dietary_tags.id = event_dietary_tags.dietary_tag_id").
			Where("dietary_tags.name IN ?", p.DietaryNeeds)
		q = q.Where("events.id IN (?)", sub)
	}

	if p.Date != "" {
		q = q.Where("events.date = ?", p.Date)
	}
	if p.StartTime != "" {
		q = q.Where("events.start_time >= ?", p.StartTime)
	}
	if p.EndTime != "" {
		q = q.Where("events.end_time <= ?", p.EndTime)
	}

	return q
}

func annotateRSVPStatus(db *gorm.DB, userID uuid.UUID, items []EventSummary) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}

	var rsvps []models.RSVP
	if err := db.Where("user_id = ? AND event_id IN ?", userID, ids).Find(&rsvps).Error; err != nil {
		return err
	}

	statuses := make(map[uuid.UUID]models.RSVPStatus, len(rsvps))
	for _, rsvp := range rsvps {
		statuses[rsvp.EventID] = rsvp.Status
	}
	for i := range items {
		items[i].Status = statuses[items[i].ID]
	}
	return nil
}
