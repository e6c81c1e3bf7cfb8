package catalog

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/shivamcrackers/posbill-backend/api/responses"
	"github.com/shivamcrackers/posbill-backend/api/validators"
	catalogsvc "github.com/shivamcrackers/posbill-backend/internal/catalog"
	pkgerrors "github.com/shivamcrackers/posbill-backend/pkg/errors"
	"github.com/shivamcrackers/posbill-backend/pkg/logger"
)

const maxNameLength = 120

// List serves the full catalog in display order.
func List(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		entries, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newItems(entries))
	}
}

// Search serves catalog entries whose name contains the q parameter,
// case-insensitively, preserving display order.
func Search(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		term := validators.SanitizeString(r.URL.Query().Get("q"), maxNameLength)
		entries, err := svc.Search(r.Context(), term)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newItems(entries))
	}
}

// Upsert adds a product or overwrites its price.
func Upsert(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload UpsertItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		price, err := validators.ParseDecimal("price", payload.Price)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		name := validators.SanitizeString(payload.Name, maxNameLength)
		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithProduct(ctx, name)
		}

		if err := svc.Upsert(ctx, name, price); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, Item{Name: name, Price: price.String()})
	}
}

// Fetch serves a single catalog entry by name.
func Fetch(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		name, err := itemNameFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		price, err := svc.Lookup(r.Context(), name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, Item{Name: name, Price: price.String()})
	}
}

// Remove deletes a catalog entry. Removing an absent name succeeds.
func Remove(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		name, err := itemNameFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithProduct(ctx, name)
		}

		if err := svc.Remove(ctx, name); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"removed": name})
	}
}

func itemNameFromPath(r *http.Request) (string, error) {
	raw := chi.URLParam(r, "name")
	name, err := url.PathUnescape(raw)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product name")
	}
	name = validators.SanitizeString(name, maxNameLength)
	if name == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	return name, nil
}
