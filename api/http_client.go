// api/http_client.go
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// APIKeyParam is the query parameter every Discovery API request carries.
const APIKeyParam = "apikey"

// HTTPClient struct to hold base URL and HTTP client configuration
type HTTPClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewHTTPClient creates a new instance of HTTPClient with default settings
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second, // Set a timeout for requests
		},
	}
}

// BuildURL joins the base URL with endpoint and encodes query.
func (c *HTTPClient) BuildURL(endpoint string, query url.Values) (*url.URL, error) {
	u, err := url.Parse(strings.TrimRight(c.BaseURL, "/") + endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q is not absolute", ErrInvalidURL, u.String())
	}
	u.RawQuery = query.Encode()
	return u, nil
}

// Get performs a single GET request and decodes the JSON body into response.
// Failures are classified with the package sentinel errors.
func (c *HTTPClient) Get(ctx context.Context, endpoint string, query url.Values, response interface{}) error {
	u, err := c.BuildURL(endpoint, query)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	req.Header.Set("Accept", "application/json")

	log.Printf("[HTTPClient] GET %s", redact(u))
	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read body: %v", ErrNetwork, err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return &StatusError{StatusCode: res.StatusCode, Status: res.Status, Endpoint: endpoint}
	}

	if response != nil {
		if err := json.Unmarshal(resBody, response); err != nil {
			return fmt.Errorf("%w: %v", ErrDecoding, err)
		}
	}

	return nil
}

// redact hides the API key so request URLs can be logged.
func redact(u *url.URL) string {
	q := u.Query()
	if q.Has(APIKeyParam) {
		q.Set(APIKeyParam, "***")
	}
	c := *u
	c.RawQuery = q.Encode()
	return c.String()
}
