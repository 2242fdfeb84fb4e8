package rest

import (
	"fmt"
	"net/http"

	"github.com/nDmitry/storefront/internal/cache"
)

// NewRatesHandler registers the currency rates route
func NewRatesHandler(mux *http.ServeMux, rates RatesProvider) {
	mux.HandleFunc("GET /api/rates/{base}", func(w http.ResponseWriter, r *http.Request) {
		result, err := rates.Rates(r.Context(), r.PathValue("base"))

		if err != nil {
			writeError(w, r, err)
			return
		}

		w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(cache.TTLVolatile.Seconds())))
		writeJSON(w, http.StatusOK, result)
	})
}
