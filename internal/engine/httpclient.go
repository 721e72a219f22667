package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/strutil"
)

// MaxBodyBytes caps how much of an upstream response is read.
const MaxBodyBytes = 4 * 1024 * 1024

// ErrBodyTooLarge is returned when an upstream body exceeds MaxBodyBytes.
var ErrBodyTooLarge = errors.New("response exceeds 4 MiB")

// NewHTTPClient returns the shared client used by all HTTP providers.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     60 * time.Second,
		},
	}
}

// StatusError is returned for non-200 upstream responses.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

// Fetch sends req with browser-like headers and returns the body of a 200 response.
func Fetch(client *http.Client, req *http.Request, acceptLanguage string) ([]byte, error) {
	applyBrowserHeaders(req, acceptLanguage)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{
			URL:        req.URL.String(),
			StatusCode: resp.StatusCode,
			Body:       strutil.TruncateWith(string(snippet), 200, "..."),
		}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, err
	}
	if len(body) > MaxBodyBytes {
		return nil, fmt.Errorf("%w: %s", ErrBodyTooLarge, req.URL)
	}
	return body, nil
}

// FetchPage GETs rawURL and returns the response body.
func FetchPage(ctx context.Context, client *http.Client, rawURL, acceptLanguage string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	return Fetch(client, req, acceptLanguage)
}
