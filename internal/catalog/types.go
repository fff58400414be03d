package catalog

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"dommatos.com/tienda-web/internal/format"
)

// Price is an amount in whole Colombian pesos. The commerce API is
// inconsistent about the wire representation: some endpoints send numbers,
// others locale-formatted strings ("2.500.000"). Both decode to the same
// canonical integer; formatting happens only at render time.
type Price int64

// UnmarshalJSON accepts numeric and formatted-string payloads.
func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Price(format.ParsePrice(s))
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Price(int64(math.Round(v)))
	return nil
}

// MarshalJSON always emits the canonical numeric form.
func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(p), 10)), nil
}

// Display renders the price with es-CO separators.
func (p Price) Display() string {
	return format.Pesos(int64(p))
}

// Product is a read-only catalog entry sourced from the commerce API.
type Product struct {
	ID              int64  `json:"id"`
	Nombre          string `json:"nombre"`
	Descripcion     string `json:"descripcion"`
	Marca           string `json:"marca"`
	CategoriaNombre string `json:"categoria_nombre"`
	SKU             string `json:"sku"`
	FotoURL         string `json:"foto_url"`
	PrecioVentaBase Price  `json:"precio_venta_base"`
}

// Category is a read-only grouping fetched once per home-page view.
type Category struct {
	ID          int64  `json:"id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
}

// Pagination mirrors the listing envelope; 1-based pages.
type Pagination struct {
	Page        int  `json:"page"`
	TotalPages  int  `json:"totalPages"`
	HasPrevPage bool `json:"hasPrevPage"`
	HasNextPage bool `json:"hasNextPage"`
}

// ProductPage bundles one listing response.
type ProductPage struct {
	Items      []Product
	Pagination Pagination
}
