// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package enrich

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/poiesic/reach/core"
)

const defaultBaseURL = "https://api.hunter.io"

// Client looks up public profile data for an email address using a
// Hunter-style people API.
type Client struct {
	http   *resty.Client
	apiKey string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint. Used in tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.http.SetBaseURL(baseURL)
	}
}

// WithTimeout bounds each lookup request. Default is 12 seconds.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(d)
	}
}

// NewClient creates an enrichment client.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrAPIKeyRequired
	}

	http := resty.New().
		SetBaseURL(defaultBaseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(12 * time.Second)

	c := &Client{http: http, apiKey: apiKey}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// personResponse is the wire shape of a people-lookup result.
type personResponse struct {
	Data struct {
		FullName  string `json:"full_name"`
		Avatar    string `json:"avatar"`
		Bio       string `json:"bio"`
		Position  string `json:"position"`
		Seniority string `json:"seniority"`
		LinkedIn  string `json:"linkedin"`
		Twitter   string `json:"twitter"`
		Employer  struct {
			Name   string `json:"name"`
			Domain string `json:"domain"`
		} `json:"employment"`
	} `json:"data"`
	Errors []struct {
		Details string `json:"details"`
	} `json:"errors"`
}

// Lookup fetches enrichment data for an email address. A 404 from the
// provider means the person is unknown and returns (nil, nil); other
// failures return an error.
func (c *Client) Lookup(ctx context.Context, email string) (*core.Enrichment, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}

	var payload personResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("email", email).
		SetQueryParam("api_key", c.apiKey).
		SetResult(&payload).
		SetError(&payload).
		Get("/v2/people/find")
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() == 404 {
		return nil, nil
	}
	if resp.IsError() {
		detail := ""
		if len(payload.Errors) > 0 {
			detail = payload.Errors[0].Details
		}
		return nil, fmt.Errorf("%w: status %d %s", ErrLookupFailed, resp.StatusCode(), detail)
	}

	data := payload.Data
	enrichment := &core.Enrichment{
		Avatar:         data.Avatar,
		Bio:            data.Bio,
		LinkedInHandle: handleFromURL(data.LinkedIn, "linkedin.com/in/"),
		TwitterHandle:  handleFromURL(data.Twitter, "twitter.com/"),
		EmployerName:   data.Employer.Name,
		EmployerDomain: data.Employer.Domain,
		Seniority:      data.Seniority,
		EnrichedAt:     time.Now().UTC(),
	}
	return enrichment, nil
}

// handleFromURL strips a profile URL down to its bare handle. Values
// that are already bare handles pass through unchanged.
func handleFromURL(value, marker string) string {
	value = strings.TrimSpace(value)
	if idx := strings.Index(value, marker); idx >= 0 {
		value = value[idx+len(marker):]
	}
	value = strings.TrimSuffix(value, "/")
	return strings.TrimPrefix(value, "@")
}
