package sholat

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/Jeffail/gabs/v2"
	"github.com/go-resty/resty/v2"
)

const (
	cityPath     = "/sholat/kota/cari/{city}"
	schedulePath = "/sholat/jadwal/{cityId}/{date}"
)

// Client talks to the myquran prayer-time API.
type Client struct {
	rc         *resty.Client
	escapePath bool
}

// NewClient builds a client from a validated Config. A zero Timeout leaves
// the transport default in place. Requests are never retried.
func NewClient(cfg Config) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json").
		SetDebug(cfg.Debug)

	if cfg.Timeout > 0 {
		rc.SetTimeout(cfg.Timeout)
	}

	return &Client{
		rc:         rc,
		escapePath: cfg.EscapePath,
	}
}

// SearchCity returns the city candidates matching name. A response without a
// data array yields an empty list.
func (c *Client) SearchCity(ctx context.Context, name string) ([]any, error) {
	body, err := c.get(ctx, "search city", cityPath, map[string]string{"city": name})
	if err != nil {
		return nil, err
	}

	list, ok := body.S("data").Data().([]any)
	if !ok {
		return []any{}, nil
	}
	return list, nil
}

// Schedule returns the prayer schedule for a city on date, verbatim.
func (c *Client) Schedule(ctx context.Context, cityID, date string) (any, error) {
	body, err := c.get(ctx, "fetch schedule", schedulePath, map[string]string{
		"cityId": cityID,
		"date":   date,
	})
	if err != nil {
		return nil, err
	}
	return body.S("data").Data(), nil
}

func (c *Client) get(ctx context.Context, op, path string, params map[string]string) (*gabs.Container, error) {
	req := c.rc.R().SetContext(ctx)
	if c.escapePath {
		req.SetPathParams(params)
	} else {
		req.SetRawPathParams(params)
	}

	resp, err := req.Get(path)
	if err != nil {
		return nil, &NetworkError{Op: op, URL: requestURL(resp, path), Err: err}
	}

	url := requestURL(resp, path)
	if !resp.IsSuccess() {
		return nil, newRemoteError(op, url, resp.StatusCode(), resp.Status(), "unexpected status", resp.Body())
	}

	parsed, err := gabs.ParseJSON(resp.Body())
	if err != nil {
		return nil, newRemoteError(op, url, resp.StatusCode(), resp.Status(), "malformed response body", resp.Body())
	}
	return parsed, nil
}

func requestURL(resp *resty.Response, fallback string) string {
	if resp != nil && resp.Request != nil && resp.Request.URL != "" {
		return resp.Request.URL
	}
	return fallback
}

// FirstCityID returns the id of the first candidate only. Later candidates
// are never consulted. A missing or empty id means no match.
func FirstCityID(cities []any) (string, bool) {
	if len(cities) == 0 {
		return "", false
	}

	id := ""
	switch v := gabs.Wrap(cities[0]).S("id").Data().(type) {
	case nil:
	case string:
		id = v
	case float64:
		id = strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		id = v.String()
	default:
		id = fmt.Sprint(v)
	}
	return id, id != ""
}
