package main

import (
	"net/http"

	mw "dommatos.com/tienda-web/internal/middleware"
)

// LangToggleHandler flips the visitor's language preference and reloads the
// current page.
func LangToggleHandler(w http.ResponseWriter, r *http.Request) {
	next := i18nBundle.Toggle(mw.Lang(r))
	mw.SetLocale(w, r, next)

	if mw.IsHTMX(r.Context()) {
		w.Header().Set("HX-Refresh", "true")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	back := r.Referer()
	if back == "" {
		back = "/"
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}
