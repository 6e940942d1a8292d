// Package catalog wraps the TMDb movie-metadata service. The rest of the
// application treats it as a fetch-by-id collaborator returning already
// normalized fields; TMDb response quirks (missing release dates, partial
// poster paths, nested genre objects) stay inside this package.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	tmdbAPIURL     = "https://api.themoviedb.org/3"
	tmdbImageBase  = "https://image.tmdb.org/t/p/w500"
	defaultTimeout = 10 * time.Second
)

// Movie carries the normalized catalog fields for one entry. Year,
// PosterURL and Genres are nil when the catalog has nothing usable.
type Movie struct {
	ExternalID string
	Title      string
	Year       *int
	PosterURL  *string
	Overview   *string
	Genres     *string
}

// movieResponse mirrors the subset of the TMDb movie payload we consume.
type movieResponse struct {
	Title       string `json:"title"`
	Name        string `json:"name"`
	ReleaseDate string `json:"release_date"`
	PosterPath  string `json:"poster_path"`
	Overview    string `json:"overview"`
	Genres      []struct {
		Name string `json:"name"`
	} `json:"genres"`
}

type Client struct {
	baseURL      string
	imageBaseURL string
	apiKey       string
	httpClient   *http.Client
	logger       *logrus.Logger
}

type ClientConfig struct {
	BaseURL      string
	ImageBaseURL string
	APIKey       string
	Timeout      time.Duration
	Logger       *logrus.Logger
}

func NewClient(apiKey string, logger *logrus.Logger) *Client {
	return NewClientWithConfig(&ClientConfig{
		BaseURL:      tmdbAPIURL,
		ImageBaseURL: tmdbImageBase,
		APIKey:       apiKey,
		Timeout:      defaultTimeout,
		Logger:       logger,
	})
}

func NewClientWithConfig(config *ClientConfig) *Client {
	if config.Logger == nil {
		config.Logger = logrus.New()
	}
	return &Client{
		baseURL:      config.BaseURL,
		imageBaseURL: config.ImageBaseURL,
		apiKey:       config.APIKey,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		logger: config.Logger,
	}
}

// GetMovie fetches a movie by its catalog id and normalizes the response.
// Transport failures and non-200 statuses both come back as errors; the
// caller surfaces them as one generic upstream failure without detail.
func (c *Client) GetMovie(ctx context.Context, externalID string) (*Movie, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("language", "en-US")
	movieURL := fmt.Sprintf("%s/movie/%s?%s", c.baseURL, externalID, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, movieURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).WithField("external_id", externalID).Warn("catalog request failed")
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.WithFields(logrus.Fields{
			"external_id": externalID,
			"status":      resp.StatusCode,
		}).Warn("catalog returned non-success status")
		return nil, fmt.Errorf("catalog responded with status %d", resp.StatusCode)
	}

	var data movieResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w", err)
	}

	title := data.Title
	if title == "" {
		title = data.Name
	}
	if title == "" {
		title = "Unknown"
	}

	m := &Movie{
		ExternalID: externalID,
		Title:      title,
		Year:       parseYear(data.ReleaseDate),
	}
	if data.PosterPath != "" {
		poster := c.imageBaseURL + data.PosterPath
		m.PosterURL = &poster
	}
	if data.Overview != "" {
		overview := data.Overview
		m.Overview = &overview
	}
	if g := joinGenres(data); g != "" {
		m.Genres = &g
	}
	return m, nil
}

// parseYear extracts the leading year component of a release date such as
// "1999-10-15". Absent or unparsable dates yield nil rather than an error.
func parseYear(releaseDate string) *int {
	if releaseDate == "" {
		return nil
	}
	head, _, _ := strings.Cut(releaseDate, "-")
	year, err := strconv.Atoi(head)
	if err != nil {
		return nil
	}
	return &year
}

func joinGenres(data movieResponse) string {
	names := make([]string, 0, len(data.Genres))
	for _, g := range data.Genres {
		if g.Name != "" {
			names = append(names, g.Name)
		}
	}
	return strings.Join(names, ", ")
}
