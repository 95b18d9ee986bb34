package controllers

import (
	"net/http"

	"github.com/danielcarreno/foodrush-backend/api/responses"
	pkgerrors "github.com/danielcarreno/foodrush-backend/pkg/errors"
	"github.com/danielcarreno/foodrush-backend/pkg/geocode"
	"github.com/danielcarreno/foodrush-backend/pkg/logger"
)

// GeocodeAddress resolves a free-form address to coordinates. Returns 503
// when no geocoding client is configured.
func GeocodeAddress(client *geocode.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if client == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeDependency, "geocoding not configured"))
			return
		}

		address := r.URL.Query().Get("address")
		location, err := client.Geocode(ctx, address)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, location)
	}
}
