package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Location is a geocoding result.
type Location struct {
	Latitude  float64
	Longitude float64
	Street    string
	City      string
	State     string
	Zipcode   string
	Country   string
	Formatted string
}

// Geocoder resolves a free-form address or postal code to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*Location, error)
}

// Client is a Geocoder backed by the MapQuest geocoding REST API.
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func New(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

type mapquestResponse struct {
	Results []struct {
		Locations []struct {
			Street     string `json:"street"`
			AdminArea5 string `json:"adminArea5"` // city
			AdminArea3 string `json:"adminArea3"` // state
			AdminArea1 string `json:"adminArea1"` // country
			PostalCode string `json:"postalCode"`
			LatLng     struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"latLng"`
		} `json:"locations"`
	} `json:"results"`
}

func (c *Client) Geocode(ctx context.Context, address string) (*Location, error) {
	q := url.Values{}
	q.Set("key", c.APIKey)
	q.Set("location", address)
	q.Set("maxResults", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder: unexpected status %d", resp.StatusCode)
	}

	var body mapquestResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	if len(body.Results) == 0 || len(body.Results[0].Locations) == 0 {
		return nil, fmt.Errorf("geocoder: no result for %q", address)
	}

	loc := body.Results[0].Locations[0]
	return &Location{
		Latitude:  loc.LatLng.Lat,
		Longitude: loc.LatLng.Lng,
		Street:    loc.Street,
		City:      loc.AdminArea5,
		State:     loc.AdminArea3,
		Zipcode:   loc.PostalCode,
		Country:   loc.AdminArea1,
		Formatted: fmt.Sprintf("%s, %s, %s %s", loc.Street, loc.AdminArea5, loc.AdminArea3, loc.PostalCode),
	}, nil
}
