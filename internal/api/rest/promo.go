package rest

import "net/http"

// NewPromoHandler registers the promo code lookup route
func NewPromoHandler(mux *http.ServeMux, promos PromoProvider) {
	mux.HandleFunc("GET /api/promo/{code}", func(w http.ResponseWriter, r *http.Request) {
		promo, err := promos.Lookup(r.Context(), r.PathValue("code"))

		if err != nil {
			writeError(w, r, err)
			return
		}

		w.Header().Set("Cache-Control", "no-store")
		writeJSON(w, http.StatusOK, promo)
	})
}
