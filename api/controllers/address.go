package controllers

import (
	"net/http"
	"strings"

	"github.com/aquaplan/aquatutor-backend/api/responses"
	pkgerrors "github.com/aquaplan/aquatutor-backend/pkg/errors"
	"github.com/aquaplan/aquatutor-backend/pkg/logger"
	"github.com/aquaplan/aquatutor-backend/pkg/zipcloud"
)

// AddressLookup resolves a 7-digit postal code into prefecture, city and
// town for the application form's autofill.
func AddressLookup(client *zipcloud.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if client == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "address lookup unavailable"))
			return
		}

		code := strings.TrimSpace(r.URL.Query().Get("postal_code"))
		address, err := client.Lookup(ctx, code)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, address)
	}
}
