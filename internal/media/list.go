package media

import (
	"github.com/MichIoan/DP-API-2024-sub000/pkg/db/models"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/pagination"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

// ListResult is a page of media plus its position in the full catalog.
type ListResult struct {
	Items      []models.Media  `json:"items"`
	Pagination pagination.Page `json:"pagination"`
}

// SearchResult is returned by GET /media/search.
type SearchResult struct {
	Results []models.Media `json:"results"`
	Count   int            `json:"count"`
}

func normalizeSearchLimit(limit int) int {
	if limit <= 0 {
		return defaultSearchLimit
	}
	if limit > maxSearchLimit {
		return maxSearchLimit
	}
	return limit
}
