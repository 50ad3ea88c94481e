package nutrition

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/2beens/healthtrack/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// info https://calorieninjas.com/api

const (
	oneHour          = 60 * 60
	cacheExpireSecs  = oneHour
	maxResponseBytes = 1 << 20
)

var ErrMissingApiKey = errors.New("missing CalorieNinjas API key")

type Item struct {
	Name                string  `json:"name"`
	Calories            float64 `json:"calories"`
	ServingSizeG        float64 `json:"serving_size_g"`
	FatTotalG           float64 `json:"fat_total_g"`
	FatSaturatedG       float64 `json:"fat_saturated_g"`
	ProteinG            float64 `json:"protein_g"`
	SodiumMg            float64 `json:"sodium_mg"`
	PotassiumMg         float64 `json:"potassium_mg"`
	CholesterolMg       float64 `json:"cholesterol_mg"`
	CarbohydratesTotalG float64 `json:"carbohydrates_total_g"`
	FiberG              float64 `json:"fiber_g"`
	SugarG              float64 `json:"sugar_g"`
}

type Client struct {
	cache      *freecache.Cache
	baseUrl    string // https://api.calorieninjas.com
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseUrl, apiKey string, cacheSizeBytes int, httpClient *http.Client) *Client {
	return &Client{
		cache:      freecache.NewCache(cacheSizeBytes),
		baseUrl:    strings.TrimRight(baseUrl, "/"),
		apiKey:     strings.TrimSpace(apiKey),
		httpClient: httpClient,
	}
}

// Lookup returns the nutrition facts of the foods named in query.
// Answers are cached for an hour per query.
func (c *Client) Lookup(ctx context.Context, query string) (items []Item, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "nutritionClient.lookup")
	defer span.End()
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetAttributes(attribute.Int("items", len(items)))
		}
	}()

	if c.apiKey == "" {
		return nil, ErrMissingApiKey
	}

	cacheKey := []byte("nutrition::" + strings.ToLower(query))
	if cached, err := c.cache.Get(cacheKey); err == nil {
		if items, err := decodeItems(cached); err == nil {
			log.Tracef("nutrition for [%s] found in cache", query)
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return items, nil
		} else {
			log.Errorf("failed to decode cached nutrition for [%s]: %s", query, err)
		}
	}

	apiUrl := fmt.Sprintf("%s/v1/nutrition?%s", c.baseUrl, url.Values{"query": {query}}.Encode())
	req, err := http.NewRequestWithContext(ctx, "GET", apiUrl, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read nutrition api response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nutrition api status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBytes)))
	}

	items, err = decodeItems(respBytes)
	if err != nil {
		return nil, fmt.Errorf("decode nutrition api response: %w", err)
	}

	if err := c.cache.Set(cacheKey, respBytes, cacheExpireSecs); err != nil {
		log.Errorf("failed to cache nutrition for [%s]: %s", query, err)
	}

	return items, nil
}

// decodeItems accepts both {"items": [...]} and a bare array.
func decodeItems(data []byte) ([]Item, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var items []Item
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, err
		}
		return items, nil
	}

	var resp struct {
		Items []Item `json:"items"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}
	if resp.Items == nil {
		return []Item{}, nil
	}
	return resp.Items, nil
}
