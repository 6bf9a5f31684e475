package troquecommerce

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	OrderListPath   = "order/list"
	OrderDetailPath = "order"
)

// Endpoint resolves path against baseURL after normalizing it to end with exactly one "/".
// A base URL without scheme or host is rejected.
func Endpoint(baseURL, path string) (*url.URL, error) {
	normalized := strings.TrimRight(baseURL, "/") + "/"
	base, err := url.Parse(normalized)
	if err != nil {
		return nil, err
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid URL %q: scheme and host are required", baseURL)
	}
	return base.ResolveReference(&url.URL{Path: path}), nil
}

// OrderListQuery holds the optional filters of GET order/list.
// Empty fields are never sent.
type OrderListQuery struct {
	Status                 string
	StartDate              string
	EndDate                string
	UncheckedByIntegration string
	Page                   string
}

// Apply sets the present filters on u
func (q OrderListQuery) Apply(u *url.URL) {
	values := u.Query()
	set := func(key, value string) {
		if value != "" {
			values.Set(key, value)
		}
	}
	set("status", q.Status)
	set("start_date", q.StartDate)
	set("end_date", q.EndDate)
	set("unchecked_by_integration", q.UncheckedByIntegration)
	set("page", q.Page)
	u.RawQuery = values.Encode()
}

// OrderDetailQuery identifies one order. EcommerceNumber wins over ID;
// both are sent upstream as ecommerce_number.
type OrderDetailQuery struct {
	EcommerceNumber string
	ID              string
}

// OrderID is the identifier forwarded upstream, empty when neither field is set
func (q OrderDetailQuery) OrderID() string {
	if q.EcommerceNumber != "" {
		return q.EcommerceNumber
	}
	return q.ID
}

func (q OrderDetailQuery) Apply(u *url.URL) {
	values := u.Query()
	values.Set("ecommerce_number", q.OrderID())
	u.RawQuery = values.Encode()
}
