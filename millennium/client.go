package millennium

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	ordersPath   = "/api/millenium.PEDIDO_VENDA.Lista_Data"
	invoicesPath = "/api/millenium_eco/pedido_venda/listafaturamentos"
)

// StatusError is returned when the ERP answers with a non-2xx status
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status from Millennium: %s", e.Status)
}

// Client talks to the Millennium ERP REST API
type Client struct {
	baseURL string
	vitrine string
	http    *http.Client
}

// NewClient creates a Millennium client for one storefront (vitrine)
func NewClient(baseURL, vitrine string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing Millennium base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("Millennium base URL must be absolute: %q", baseURL)
	}
	if vitrine == "" {
		return nil, fmt.Errorf("vitrine cannot be empty")
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		vitrine: vitrine,
		http:    httpClient,
	}, nil
}

// Vitrine returns the storefront id used in every query
func (c *Client) Vitrine() string {
	return c.vitrine
}

// SearchOrders lists the sales orders whose customer order number is ecommerceNumber
func (c *Client) SearchOrders(ctx context.Context, ecommerceNumber string) ([]Order, error) {
	body, err := json.Marshal(newOrderFilter(ecommerceNumber, c.vitrine))
	if err != nil {
		return nil, fmt.Errorf("marshaling order filter: %w", err)
	}

	endpoint := c.baseURL + ordersPath + "?$format=json"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating order search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	data, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("searching orders: %w", err)
	}

	items, err := decodeList(data)
	if err != nil {
		return nil, fmt.Errorf("decoding orders: %w", err)
	}
	orders := make([]Order, 0, len(items))
	for _, item := range items {
		orders = append(orders, Order(decodeObject(item)))
	}
	return orders, nil
}

// Invoices fetches the billing records of one invoice number
func (c *Client) Invoices(ctx context.Context, invoiceNumber string) ([]Summary, error) {
	// $format must reach the ERP unescaped, so the query is not built with url.Values
	endpoint := fmt.Sprintf("%s%s?vitrine=%s&nota=%s&$format=json",
		c.baseURL, invoicesPath, url.QueryEscape(c.vitrine), url.QueryEscape(invoiceNumber))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating invoice request: %w", err)
	}

	data, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching invoice: %w", err)
	}

	items, err := decodeList(data)
	if err != nil {
		return nil, fmt.Errorf("decoding invoices: %w", err)
	}
	summaries := make([]Summary, 0, len(items))
	for _, item := range items {
		summaries = append(summaries, summarize(item))
	}
	return summaries, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return data, nil
}
