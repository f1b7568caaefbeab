// Package tourClient talks to the places API and renders its answers for a
// terminal.
package tourClient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"

	"touristplaces/pkg/types"
)

// APIError is the error body the server answers with.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
}

type Client struct {
	r *resty.Client
}

func New(baseURL string) *Client {
	r := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30*time.Second).
		SetHeader("Accept", "application/json").
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)
	return &Client{r: r}
}

func (c *Client) get(ctx context.Context, path string, pathParams map[string]string, query url.Values, result interface{}) error {
	apiErr := &APIError{}
	resp, err := c.r.R().
		SetContext(ctx).
		SetPathParams(pathParams).
		SetQueryParamsFromValues(query).
		SetResult(result).
		SetError(apiErr).
		Get(path)
	if err != nil {
		return err
	}
	if resp.IsError() {
		apiErr.Status = resp.StatusCode()
		if apiErr.Message == "" {
			apiErr.Message = resp.Status()
		}
		return apiErr
	}
	return nil
}

func (c *Client) Cities(ctx context.Context) ([]types.CitySummary, error) {
	var cities []types.CitySummary
	if err := c.get(ctx, "/api/cities", nil, nil, &cities); err != nil {
		return nil, err
	}
	return cities, nil
}

func (c *Client) Itinerary(ctx context.Context, city string, days int) (types.Itinerary, error) {
	var it types.Itinerary
	err := c.get(ctx, "/api/cities/{city}/itinerary",
		map[string]string{"city": city},
		url.Values{"days": {strconv.Itoa(days)}},
		&it)
	return it, err
}

func (c *Client) Forecast(ctx context.Context, city string, horizon int) (types.Forecast, error) {
	var f types.Forecast
	err := c.get(ctx, "/api/cities/{city}/forecast",
		map[string]string{"city": city},
		url.Values{"horizon": {strconv.Itoa(horizon)}},
		&f)
	return f, err
}

func (c *Client) Compare(ctx context.Context, cities []string) (types.Comparison, error) {
	var cmp types.Comparison
	err := c.get(ctx, "/api/compare", nil, url.Values{"city": cities}, &cmp)
	return cmp, err
}
