package quote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"dommatos.com/tienda-web/internal/catalog"
)

const (
	defaultTimeout = 8 * time.Second

	// Quotations expire a fixed window after submission.
	validityDays = 15
)

// ErrEmptyCart is returned when a submission carries no line items.
var ErrEmptyCart = errors.New("quote: no items to quote")

// Request carries the checkout form fields plus the cart lines to quote.
type Request struct {
	Nombre   string
	Email    string
	Telefono string
	Notas    string
	Items    []Item
}

// Item is one quoted cart line.
type Item struct {
	ProductoID     int64
	Cantidad       int
	PrecioUnitario catalog.Price
}

// Client submits quotation requests to the commerce API.
type Client struct {
	baseURL string
	http    *http.Client
	now     func() time.Time
}

// NewClient constructs a quotation client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		now:     time.Now,
	}
}

// SetClock overrides the submission clock (for tests).
func (c *Client) SetClock(now func() time.Time) {
	if now != nil {
		c.now = now
	}
}

type payload struct {
	ProspectoNombre   string          `json:"prospecto_nombre"`
	ProspectoEmail    string          `json:"prospecto_email"`
	ProspectoTelefono string          `json:"prospecto_telefono"`
	FechaVencimiento  string          `json:"fecha_vencimiento"`
	NotasCliente      string          `json:"notas_cliente"`
	Detalles          []payloadDetail `json:"detalles"`
}

type payloadDetail struct {
	ProductoID             int64         `json:"producto_id"`
	Cantidad               int           `json:"cantidad"`
	PrecioUnitarioCotizado catalog.Price `json:"precio_unitario_cotizado"`
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Submit posts the quotation. The expiration date is the submission date plus
// the fixed validity window, date-only. A failure reason is the server message
// when present, else a generic error.
func (c *Client) Submit(ctx context.Context, req Request) error {
	if len(req.Items) == 0 {
		return ErrEmptyCart
	}
	if c == nil || c.baseURL == "" {
		return fmt.Errorf("quote: no base URL configured")
	}

	body := payload{
		ProspectoNombre:   strings.TrimSpace(req.Nombre),
		ProspectoEmail:    strings.TrimSpace(req.Email),
		ProspectoTelefono: strings.TrimSpace(req.Telefono),
		FechaVencimiento:  c.now().AddDate(0, 0, validityDays).Format("2006-01-02"),
		NotasCliente:      strings.TrimSpace(req.Notas),
	}
	for _, item := range req.Items {
		body.Detalles = append(body.Detalles, payloadDetail{
			ProductoID:             item.ProductoID,
			Cantidad:               item.Cantidad,
			PrecioUnitarioCotizado: item.PrecioUnitario,
		})
	}

	endpoint, err := url.JoinPath(c.baseURL, "cotizaciones")
	if err != nil {
		return err
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&env)

	// The API signals success via the envelope flag; a plain 2xx also counts.
	if env.Success || resp.StatusCode < 300 {
		return nil
	}
	if env.Message != "" {
		return fmt.Errorf("quote: %s", env.Message)
	}
	return fmt.Errorf("quote: status %d", resp.StatusCode)
}
