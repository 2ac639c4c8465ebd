package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"username":      true,
	"email":         true,
	"display_name":  true,
	"status":        true,
	"last_login_at": true,
}

// FieldSortFields contains allowed sort fields for fields
var FieldSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"name":          true,
	"crop_type":     true,
	"season":        true,
	"status":        true,
	"area_hectares": true,
	"planted_at":    true,
}

// FarmTaskSortFields contains allowed sort fields for farm tasks
var FarmTaskSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"title":        true,
	"category":     true,
	"priority":     true,
	"status":       true,
	"due_at":       true,
	"completed_at": true,
}

// HarvestSortFields contains allowed sort fields for harvests
var HarvestSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"crop_type":    true,
	"quantity_kg":  true,
	"grade":        true,
	"harvested_at": true,
}

// ExpenseSortFields contains allowed sort fields for expense records
var ExpenseSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"category":    true,
	"total":       true,
	"incurred_at": true,
}

// IncomeSortFields contains allowed sort fields for income records
var IncomeSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"source":      true,
	"amount":      true,
	"received_at": true,
}

// ListingSortFields contains allowed sort fields for marketplace listings
var ListingSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"title":       true,
	"crop_type":   true,
	"unit_price":  true,
	"quantity_kg": true,
	"status":      true,
}

// OrderSortFields contains allowed sort fields for marketplace orders
var OrderSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"order_number": true,
	"status":       true,
	"total_amount": true,
	"delivered_at": true,
}

// PostSortFields contains allowed sort fields for community posts
var PostSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"topic":          true,
	"like_count":     true,
	"bookmark_count": true,
	"comment_count":  true,
}

// ArticleSortFields contains allowed sort fields for knowledge articles
var ArticleSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"title":        true,
	"category":     true,
	"view_count":   true,
	"published_at": true,
}
