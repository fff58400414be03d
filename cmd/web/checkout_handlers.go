package main

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	mw "dommatos.com/tienda-web/internal/middleware"
	"dommatos.com/tienda-web/internal/observability"
	"dommatos.com/tienda-web/internal/quote"
)

// CheckoutResult feeds the confirmation fragment rendered after a quotation
// submit. On success the cart is cleared; on failure it is left untouched so
// the visitor can retry.
type CheckoutResult struct {
	Success bool
	Email   string
	Message string
	CartView
}

// CheckoutSubmitHandler validates the quotation form, submits it to the
// remote API, and clears the cart on success.
func CheckoutSubmitHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	lang := mw.Lang(r)
	logger := observability.FromContext(r.Context())

	nombre := strings.TrimSpace(r.FormValue("nombre"))
	email := strings.TrimSpace(r.FormValue("email"))
	telefono := strings.TrimSpace(r.FormValue("telefono"))
	notas := strings.TrimSpace(r.FormValue("notas"))

	result := CheckoutResult{}
	c := loadCart(r)

	switch {
	case nombre == "" || email == "":
		result.Message = i18nOrDefault(lang, "checkout.missingFields", "Nombre y correo son obligatorios.")
	case c.Empty():
		result.Message = i18nOrDefault(lang, "checkout.emptyCart", "Tu carrito está vacío.")
	default:
		req := quote.Request{
			Nombre:   nombre,
			Email:    email,
			Telefono: telefono,
			Notas:    notas,
		}
		for _, l := range c.Lines {
			req.Items = append(req.Items, quote.Item{
				ProductoID:     l.ID,
				Cantidad:       l.Quantity,
				PrecioUnitario: l.Price,
			})
		}
		if err := quoteClient.Submit(r.Context(), req); err != nil {
			logger.Warn("quotation submit failed", zap.Error(err))
			result.Message = i18nOrDefault(lang, "checkout.failed", "No se pudo enviar la cotización. Intenta de nuevo.")
		} else {
			c.Clear()
			cartStore.Save(w, c.Lines)
			result.Success = true
			result.Email = email
		}
	}

	result.CartView = buildCartView(lang, mw.GetSession(r).CSRFToken, c)
	renderTemplate(w, r, "frag_checkout_result", result)
}
