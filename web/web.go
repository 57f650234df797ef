// Package web is the station's outbound HTTP collaborator: a single GET
// returning the response status and raw body. The forecast and telemetry
// packages consume it through their own small Getter interfaces so tests can
// script responses.
package web

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/effevee/weather-station/errcode"
)

// RemoteServiceError reports a non-success response status from a remote
// endpoint. Endpoint is a short name ("weather", "onecall", "thingspeak"),
// not the full URL.
type RemoteServiceError struct {
	Endpoint string
	Status   int
}

func (e *RemoteServiceError) Error() string {
	return fmt.Sprintf("web: %s request failed with status %d", e.Endpoint, e.Status)
}
func (e *RemoteServiceError) Code() errcode.Code { return errcode.RemoteService }

// DefaultTimeout bounds every request end to end.
const DefaultTimeout = 10 * time.Second

type Client struct {
	http *http.Client
}

// NewClient returns a Client with the default timeout. A zero timeout keeps
// the default.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{http: &http.Client{Timeout: timeout}}
}

// Get performs the request and drains the body. The status code is returned
// for any completed exchange; the caller decides what counts as success.
func (c *Client) Get(url string) (int, []byte, error) {
	resp, err := c.http.Get(url)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, body, nil
}
