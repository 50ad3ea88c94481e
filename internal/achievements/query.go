package achievements

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultLimit = 25
	MaxLimit     = 50
)

type Paging struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (p Paging) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PagingFromQuery reads page and limit, clamping page to >= 1 and limit to [1, 50].
// Missing or unparsable values fall back to page 1 and 25 items.
func PagingFromQuery(values url.Values) Paging {
	page := atoiOr(values.Get("page"), 1)
	limit := atoiOr(values.Get("limit"), DefaultLimit)
	return Paging{
		Page:  max(1, page),
		Limit: min(MaxLimit, max(1, limit)),
	}
}

type Filter struct {
	UserID   int
	Category string
	Metric   string
}

func FilterFromQuery(userID int, values url.Values) Filter {
	return Filter{
		UserID:   userID,
		Category: strings.TrimSpace(values.Get("category")),
		Metric:   strings.TrimSpace(values.Get("metric")),
	}
}

func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return n
}
