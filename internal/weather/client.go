package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// ErrMissingAPIKey is returned by requests made without a provider key.
var ErrMissingAPIKey = errors.New("missing openweathermap api key")

const (
	defaultBaseURL    = "https://api.openweathermap.org"
	defaultVersion    = "dev"
	defaultTimeout    = 10 * time.Second
	defaultRPS        = 1.0
	defaultBurst      = 5
	searchResultLimit = 5
)

// Options configure a Client. Zero values select OpenWeatherMap defaults.
type Options struct {
	APIKey            string
	BaseURL           string
	GeoURL            string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	HTTPClient        *http.Client
	Version           string // sent as User-Agent nimbus/<Version>
}

// Client talks to the OpenWeatherMap One Call and geocoding APIs.
// Fetch and Search share one rate limiter.
type Client struct {
	baseURL   *url.URL
	geoURL    *url.URL
	apiKey    string
	http      *http.Client
	limiter   *rate.Limiter
	userAgent string
}

// NewClient builds a Client from opts.
func NewClient(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	geo := base
	if strings.TrimSpace(opts.GeoURL) != "" {
		if geo, err = parseBaseURL(opts.GeoURL); err != nil {
			return nil, err
		}
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	rps := opts.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRPS
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = defaultBurst
	}

	version := strings.TrimSpace(opts.Version)
	if version == "" {
		version = defaultVersion
	}

	return &Client{
		baseURL:   base,
		geoURL:    geo,
		apiKey:    strings.TrimSpace(opts.APIKey),
		http:      httpClient,
		limiter:   rate.NewLimiter(rate.Limit(rps), burst),
		userAgent: "nimbus/" + version,
	}, nil
}

// Fetch retrieves current, hourly, daily and alert data for a coordinate.
func (c *Client) Fetch(ctx context.Context, units Units, lat, lon float64) (*Snapshot, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	values.Set("units", units.String())
	values.Set("exclude", "minutely")
	rel := &url.URL{Path: "/data/3.0/onecall", RawQuery: values.Encode()}

	var payload oneCallResponse
	if err := c.doURL(ctx, c.baseURL, rel, &payload); err != nil {
		return nil, err
	}
	snap := payload.snapshot()
	snap.Units = units
	return snap, nil
}

// Search resolves free text to candidate locations. An empty result is not an error.
func (c *Client) Search(ctx context.Context, query string) ([]LocationPoint, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	values := url.Values{}
	values.Set("q", query)
	values.Set("limit", strconv.Itoa(searchResultLimit))
	rel := &url.URL{Path: "/geo/1.0/direct", RawQuery: values.Encode()}

	var payload []geoResult
	if err := c.doURL(ctx, c.geoURL, rel, &payload); err != nil {
		return nil, err
	}
	points := make([]LocationPoint, 0, len(payload))
	for _, r := range payload {
		points = append(points, r.point())
	}
	return points, nil
}

func (c *Client) doURL(ctx context.Context, base, rel *url.URL, dest any) error {
	if c.apiKey == "" {
		return ErrMissingAPIKey
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait canceled: %w", err)
	}

	reqURL := base.ResolveReference(rel)
	q := reqURL.Query()
	q.Set("appid", c.apiKey)
	reqURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", rel.Path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

// Wire formats.

type conditionJSON struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type currentJSON struct {
	Dt         int64           `json:"dt"`
	Temp       float64         `json:"temp"`
	FeelsLike  float64         `json:"feels_like"`
	Pressure   int             `json:"pressure"`
	Humidity   int             `json:"humidity"`
	UVI        float64         `json:"uvi"`
	Visibility int             `json:"visibility"`
	WindSpeed  float64         `json:"wind_speed"`
	Pop        float64         `json:"pop"`
	Weather    []conditionJSON `json:"weather"`
}

type dailyJSON struct {
	Dt      int64  `json:"dt"`
	Summary string `json:"summary"`
	Temp    struct {
		Min float64 `json:"min"`
		Max float64 `json:"max"`
	} `json:"temp"`
	Pressure  int             `json:"pressure"`
	Humidity  int             `json:"humidity"`
	WindSpeed float64         `json:"wind_speed"`
	Pop       float64         `json:"pop"`
	UVI       float64         `json:"uvi"`
	Weather   []conditionJSON `json:"weather"`
}

type alertJSON struct {
	SenderName  string   `json:"sender_name"`
	Event       string   `json:"event"`
	Start       int64    `json:"start"`
	End         int64    `json:"end"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

type oneCallResponse struct {
	Timezone string        `json:"timezone"`
	Current  currentJSON   `json:"current"`
	Hourly   []currentJSON `json:"hourly"`
	Daily    []dailyJSON   `json:"daily"`
	Alerts   []alertJSON   `json:"alerts"`
}

func (r oneCallResponse) snapshot() *Snapshot {
	snap := &Snapshot{
		Timezone: r.Timezone,
		Current:  r.Current.current(),
		Hourly:   make([]Current, 0, len(r.Hourly)),
		Daily:    make([]Daily, 0, len(r.Daily)),
		Alerts:   make([]Alert, 0, len(r.Alerts)),
	}
	for _, h := range r.Hourly {
		snap.Hourly = append(snap.Hourly, h.current())
	}
	for _, d := range r.Daily {
		snap.Daily = append(snap.Daily, Daily{
			Time:       time.Unix(d.Dt, 0),
			Min:        d.Temp.Min,
			Max:        d.Temp.Max,
			Summary:    d.Summary,
			Pressure:   d.Pressure,
			Humidity:   d.Humidity,
			WindSpeed:  d.WindSpeed,
			Pop:        d.Pop,
			UVI:        d.UVI,
			Conditions: conditions(d.Weather),
		})
	}
	for _, a := range r.Alerts {
		snap.Alerts = append(snap.Alerts, Alert{
			Sender:      a.SenderName,
			Event:       a.Event,
			Start:       time.Unix(a.Start, 0),
			End:         time.Unix(a.End, 0),
			Description: strings.TrimSpace(a.Description),
			Tags:        a.Tags,
		})
	}
	return snap
}

func (c currentJSON) current() Current {
	return Current{
		Time:       time.Unix(c.Dt, 0),
		Temp:       c.Temp,
		FeelsLike:  c.FeelsLike,
		Pressure:   c.Pressure,
		Humidity:   c.Humidity,
		UVI:        c.UVI,
		Visibility: c.Visibility,
		WindSpeed:  c.WindSpeed,
		Pop:        c.Pop,
		Conditions: conditions(c.Weather),
	}
}

func conditions(in []conditionJSON) []Condition {
	if len(in) == 0 {
		return nil
	}
	out := make([]Condition, len(in))
	for i, w := range in {
		out[i] = Condition(w)
	}
	return out
}

type geoResult struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
	State   string  `json:"state"`
}

func (g geoResult) point() LocationPoint {
	parts := []string{g.Name}
	if g.State != "" {
		parts = append(parts, g.State)
	}
	if g.Country != "" {
		parts = append(parts, g.Country)
	}
	return LocationPoint{Name: strings.Join(parts, ", "), Lat: g.Lat, Lon: g.Lon}
}
