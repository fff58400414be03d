package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultTimeout = 8 * time.Second

	// The listing endpoint is always queried with a fixed page size.
	productsLimit = 50
)

// passthroughFilters is the allow-list of query parameters forwarded verbatim
// from the storefront URL to the products endpoint.
var passthroughFilters = []string{"nombre", "marca", "modelo", "sku", "codigo_barras", "categoria_id"}

// Client issues catalog reads against the public commerce API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient constructs a catalog client. The logger may be nil.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  logger,
	}
}

type categoriesEnvelope struct {
	Success bool       `json:"success"`
	Data    []Category `json:"data"`
}

type productsEnvelope struct {
	Success    bool       `json:"success"`
	Data       []Product  `json:"data"`
	Pagination Pagination `json:"pagination"`
	Message    string     `json:"message"`
}

// FetchCategories returns the category list, degrading to an empty slice on
// any network, HTTP, or decode failure. Failures are logged, never surfaced.
func (c *Client) FetchCategories(ctx context.Context) []Category {
	if c == nil || c.baseURL == "" {
		return nil
	}
	endpoint, err := url.JoinPath(c.baseURL, "categorias")
	if err != nil {
		c.logger.Warn("catalog: bad categories endpoint", zap.Error(err))
		return nil
	}
	var env categoriesEnvelope
	if err := c.getJSON(ctx, endpoint, &env); err != nil {
		c.logger.Warn("catalog: fetch categories failed", zap.Error(err))
		return nil
	}
	if !env.Success {
		return nil
	}
	return env.Data
}

// FetchProducts retrieves one listing page. Filters are the raw query values
// of the storefront URL; see FilterParams for the passthrough rules. Unlike
// categories, a failure here is returned so the single listing consumer can
// render its inline error state.
func (c *Client) FetchProducts(ctx context.Context, page int, filters url.Values) (ProductPage, error) {
	if c == nil || c.baseURL == "" {
		return ProductPage{}, fmt.Errorf("catalog: no base URL configured")
	}
	if page < 1 {
		page = 1
	}
	endpoint, err := url.JoinPath(c.baseURL, "productos")
	if err != nil {
		return ProductPage{}, err
	}

	q := FilterParams(filters)
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(productsLimit))
	endpoint += "?" + q.Encode()

	var env productsEnvelope
	if err := c.getJSON(ctx, endpoint, &env); err != nil {
		return ProductPage{}, err
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = "respuesta sin éxito"
		}
		return ProductPage{}, fmt.Errorf("catalog: productos: %s", msg)
	}
	return ProductPage{Items: env.Data, Pagination: env.Pagination}, nil
}

// FilterParams maps storefront query parameters to API filter parameters.
// The storefront's own category links use `category`; it maps to
// `categoria_id` and takes precedence over an explicit `categoria_id`, which
// is then dropped so the parameter is never duplicated.
func FilterParams(q url.Values) url.Values {
	out := url.Values{}
	category := strings.TrimSpace(q.Get("category"))
	if category != "" {
		out.Set("categoria_id", category)
	}
	for _, name := range passthroughFilters {
		if name == "categoria_id" && category != "" {
			continue
		}
		if v := strings.TrimSpace(q.Get(name)); v != "" {
			out.Set(name, v)
		}
	}
	return out
}

// HasFilters reports whether the storefront query carries any active filter.
func HasFilters(q url.Values) bool {
	return len(FilterParams(q)) > 0
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("catalog: status %d: %s", resp.StatusCode, drainError(resp.Body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func drainError(r io.Reader) string {
	if r == nil {
		return ""
	}
	b, _ := io.ReadAll(io.LimitReader(r, 256))
	return strings.TrimSpace(string(b))
}
