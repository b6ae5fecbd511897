package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"weather-history/internal/models"
	"weather-history/pkg/logger"
)

const (
	OpenMeteoGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	NominatimSearchURL    = "https://nominatim.openstreetmap.org/search"
)

// Geocoder turns free text into a single place. The returned location has
// no Source set; the caller knows where the geocoder sits in its chain.
type Geocoder interface {
	Name() string
	Geocode(ctx context.Context, query string) (*models.ResolvedLocation, error)
}

func newRestyClient(timeout time.Duration, userAgent string) *resty.Client {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")
	if userAgent != "" {
		client.SetHeader("User-Agent", userAgent)
	}
	return client
}

func (c *restyGeocoder) get(ctx context.Context, params map[string]string, out any) error {
	c.l.Debug("making geocoding request", map[string]any{
		"provider": c.name,
		"params":   params,
	})

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(c.baseURL)
	if err != nil {
		return upstreamError(c.name, 0, fmt.Errorf("failed to do request: %w", err))
	}

	if !resp.IsSuccess() {
		return upstreamError(c.name, resp.StatusCode(), fmt.Errorf("%s", resp.Status()))
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return upstreamError(c.name, resp.StatusCode(), fmt.Errorf("failed to parse JSON response: %w", err))
	}

	return nil
}

type restyGeocoder struct {
	name    string
	baseURL string
	client  *resty.Client
	l       *logger.Logger
}

// OpenMeteoGeocoder uses the Open-Meteo geocoding search.
type OpenMeteoGeocoder struct {
	restyGeocoder
}

func NewOpenMeteoGeocoder(baseURL string, timeout time.Duration, l *logger.Logger) *OpenMeteoGeocoder {
	if baseURL == "" {
		baseURL = OpenMeteoGeocodingURL
	}
	return &OpenMeteoGeocoder{restyGeocoder{
		name:    "open-meteo-geocoding",
		baseURL: baseURL,
		client:  newRestyClient(timeout, ""),
		l:       l,
	}}
}

func (g *OpenMeteoGeocoder) Name() string {
	return g.name
}

type openMeteoPlace struct {
	Name      string   `json:"name"`
	Admin1    string   `json:"admin1"`
	Country   string   `json:"country"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (g *OpenMeteoGeocoder) Geocode(ctx context.Context, query string) (*models.ResolvedLocation, error) {
	var response struct {
		Results []openMeteoPlace `json:"results"`
	}
	err := g.get(ctx, map[string]string{
		"name":     query,
		"count":    "1",
		"language": "en",
		"format":   "json",
	}, &response)
	if err != nil {
		return nil, err
	}

	if len(response.Results) == 0 {
		return nil, ErrNoMatch
	}

	top := response.Results[0]
	if top.Latitude == nil || top.Longitude == nil {
		return nil, ErrNoMatch
	}

	parts := make([]string, 0, 3)
	for _, p := range []string{top.Name, top.Admin1, top.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}

	return &models.ResolvedLocation{
		DisplayName: strings.Join(parts, ", "),
		Latitude:    *top.Latitude,
		Longitude:   *top.Longitude,
	}, nil
}

// NominatimGeocoder uses OpenStreetMap's Nominatim. Its usage policy
// requires an identifying User-Agent on every request.
type NominatimGeocoder struct {
	restyGeocoder
}

func NewNominatimGeocoder(baseURL, userAgent string, timeout time.Duration, l *logger.Logger) *NominatimGeocoder {
	if baseURL == "" {
		baseURL = NominatimSearchURL
	}
	return &NominatimGeocoder{restyGeocoder{
		name:    "nominatim",
		baseURL: baseURL,
		client:  newRestyClient(timeout, userAgent),
		l:       l,
	}}
}

func (g *NominatimGeocoder) Name() string {
	return g.name
}

type nominatimPlace struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

func (g *NominatimGeocoder) Geocode(ctx context.Context, query string) (*models.ResolvedLocation, error) {
	var response []nominatimPlace
	err := g.get(ctx, map[string]string{
		"q":      query,
		"format": "jsonv2",
		"limit":  "1",
	}, &response)
	if err != nil {
		return nil, err
	}

	if len(response) == 0 {
		return nil, ErrNoMatch
	}

	top := response[0]
	lat, err := strconv.ParseFloat(top.Lat, 64)
	if err != nil {
		return nil, ErrNoMatch
	}
	lon, err := strconv.ParseFloat(top.Lon, 64)
	if err != nil {
		return nil, ErrNoMatch
	}

	name := top.DisplayName
	if name == "" {
		name = query
	}

	return &models.ResolvedLocation{
		DisplayName: name,
		Latitude:    lat,
		Longitude:   lon,
	}, nil
}
