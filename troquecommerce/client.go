package troquecommerce

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// TokenHeader carries the caller's Troquecommerce API token on forwarded requests
const TokenHeader = "token"

// Response is the upstream answer, body untouched
type Response struct {
	StatusCode  int
	Status      string
	ContentType string
	Body        []byte
}

// OK reports a 2xx status
func (r Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode <= 299
}

// StatusText is the reason phrase of the upstream status line
func (r Response) StatusText() string {
	if text := strings.TrimPrefix(r.Status, strconv.Itoa(r.StatusCode)+" "); text != "" && text != r.Status {
		return text
	}
	return http.StatusText(r.StatusCode)
}

// Client forwards GET requests to the Troquecommerce API
type Client struct {
	http *http.Client
}

func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{http: httpClient}
}

// Get issues one GET to target with the caller token. Only transport failures return an error;
// non-2xx answers come back as a Response.
func (c *Client) Get(ctx context.Context, target *url.URL, token string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return Response{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(TokenHeader, token)

	resp, err := c.http.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("reading response body: %w", err)
	}

	return Response{
		StatusCode:  resp.StatusCode,
		Status:      resp.Status,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}
