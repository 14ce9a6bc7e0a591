package railapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/travigo/tickets/pkg/config"
	"github.com/travigo/tickets/pkg/trains"
	"golang.org/x/net/html/charset"
)

// ErrTransport covers every failure to obtain a usable response body.
var ErrTransport = errors.New("download data failed")

// RejectionError is returned when the service answers but flags the query
// itself as unsuccessful.
type RejectionError struct {
	Message string
}

func (e *RejectionError) Error() string {
	return e.Message
}

type Request struct {
	Date     string
	FromCode string
	ToCode   string
}

type Response struct {
	Trips []trains.Trip
	// Skipped counts records dropped because they failed validation.
	Skipped int
}

type Client struct {
	BaseURL     string
	StationsURL string
	PurposeCode string
	UserAgent   string
	HTTPClient  *http.Client

	validate *validator.Validate
}

func NewClient(remote config.Remote) *Client {
	return &Client{
		BaseURL:     remote.Endpoint,
		StationsURL: remote.StationsEndpoint,
		PurposeCode: remote.PurposeCode,
		UserAgent:   remote.UserAgent,
		HTTPClient:  &http.Client{Timeout: remote.Timeout},
		validate:    newValidator(),
	}
}

func (c *Client) queryURL(request Request) (string, error) {
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", err
	}

	// 12306 expects this exact parameter order
	base.RawQuery = fmt.Sprintf("purpose_codes=%s&queryDate=%s&from_station=%s&to_station=%s",
		url.QueryEscape(c.PurposeCode),
		url.QueryEscape(request.Date),
		url.QueryEscape(request.FromCode),
		url.QueryEscape(request.ToCode),
	)

	return base.String(), nil
}

func (c *Client) Query(ctx context.Context, request Request) (*Response, error) {
	queryURL, err := c.queryURL(request)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	log.Debug().Str("url", queryURL).Msg("Querying schedules")

	bodyBytes, err := c.get(ctx, queryURL)
	if err != nil {
		return nil, err
	}

	if string(bytes.TrimSpace(bodyBytes)) == "-1" {
		return nil, fmt.Errorf("%w: service returned -1", ErrTransport)
	}

	var decoded queryResponse
	if err := json.Unmarshal(bodyBytes, &decoded); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	if !decoded.Data.Flag {
		return nil, &RejectionError{Message: decoded.Data.Message}
	}

	return c.ingest(decoded.Data.Trains), nil
}

// FetchStationNames downloads the service's full station table as UTF-8
// station_name.js source.
func (c *Client) FetchStationNames(ctx context.Context) ([]byte, error) {
	log.Debug().Str("url", c.StationsURL).Msg("Downloading station table")

	return c.get(ctx, c.StationsURL)
}

// get fetches target and returns the body converted to UTF-8 according to
// the response Content-Type. Every failure wraps ErrTransport.
func (c *Client) get(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP %d", ErrTransport, resp.StatusCode)
	}

	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	bodyBytes, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	return bodyBytes, nil
}

// ingest converts raw records into trips. A record that does not satisfy the
// record contract is skipped and logged rather than failing the whole query.
func (c *Client) ingest(rawTrains []rawTrain) *Response {
	response := &Response{Trips: make([]trains.Trip, 0, len(rawTrains))}

	validate := c.validate
	if validate == nil {
		validate = newValidator()
	}

	for index, raw := range rawTrains {
		if err := validate.Struct(raw); err != nil {
			log.Warn().Err(err).Int("index", index).Str("train", raw.StationTrainCode).Msg("Skipping malformed train record")
			response.Skipped++
			continue
		}

		response.Trips = append(response.Trips, raw.toTrip())
	}

	log.Debug().Int("trips", len(response.Trips)).Int("skipped", response.Skipped).Msg("Parsed schedule response")

	return response
}
