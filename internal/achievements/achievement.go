package achievements

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/healthtrack/pkg"
)

const (
	maxTitleLen    = 100
	maxCategoryLen = 50
	maxMetricLen   = 20
	maxNotesLen    = 500
	maxQueryLen    = 200
)

type Achievement struct {
	ID        int       `json:"id"`
	UserID    int       `json:"-"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Metric    string    `json:"metric"`
	Amount    float64   `json:"amount"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// Input is a new achievement as submitted by the user.
type Input struct {
	Title    string         `json:"title"`
	Category string         `json:"category"`
	Metric   string         `json:"metric"`
	Amount   pkg.FlexString `json:"amount"`
	Notes    string         `json:"notes"`
}

// Validate sanitizes the input. It returns the achievement to store, or the list of
// problems found, suitable to show to the user.
func (in Input) Validate() (*Achievement, []string) {
	a := &Achievement{
		Title:    pkg.SanitizeText(in.Title, maxTitleLen),
		Category: pkg.SanitizeText(in.Category, maxCategoryLen),
		Metric:   pkg.SanitizeText(in.Metric, maxMetricLen),
	}

	var errs []string
	if a.Title == "" {
		errs = append(errs, "title is required and must be <=100 chars")
	}
	if a.Category == "" {
		errs = append(errs, "category is required and must be <=50 chars")
	}
	if a.Metric == "" {
		errs = append(errs, "metric is required and must be <=20 chars")
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(string(in.Amount)), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		errs = append(errs, "amount must be a number")
	}
	a.Amount = amount

	if notes := pkg.SanitizeText(in.Notes, maxNotesLen); notes != "" {
		a.Notes = &notes
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return a, nil
}

// SanitizeQuery is the stored form of a search query.
func SanitizeQuery(q string) string {
	return pkg.SanitizeText(q, maxQueryLen)
}
