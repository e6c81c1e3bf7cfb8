package cart

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shivamcrackers/posbill-backend/api/responses"
	"github.com/shivamcrackers/posbill-backend/api/validators"
	cartsvc "github.com/shivamcrackers/posbill-backend/internal/cart"
	pkgerrors "github.com/shivamcrackers/posbill-backend/pkg/errors"
	"github.com/shivamcrackers/posbill-backend/pkg/logger"
)

// CreateSession opens a new empty cart session.
func CreateSession(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		sessionID, err := svc.CreateSession(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, SessionView{SessionID: sessionID, Lines: []LineView{}})
	}
}

// Fetch serves the session's cart lines in insertion order.
func Fetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		sessionID := chi.URLParam(r, "sessionID")
		ctx := sessionContext(r, logg, sessionID)

		lines, err := svc.Lines(ctx, sessionID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, newSessionView(sessionID, lines))
	}
}

// AddLine appends one product line to the session's cart.
func AddLine(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		sessionID := chi.URLParam(r, "sessionID")
		ctx := sessionContext(r, logg, sessionID)

		var payload AddLineRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		discount, err := validators.ParseDecimal("discount_percent", payload.DiscountPercent)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		index, err := svc.AddLine(ctx, sessionID, payload.ProductName, payload.Quantity, discount)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		lines, err := svc.Lines(ctx, sessionID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newLineView(index, lines[index]))
	}
}

// RemoveLine deletes the line at the given index. Later lines shift down.
func RemoveLine(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		sessionID := chi.URLParam(r, "sessionID")
		ctx := sessionContext(r, logg, sessionID)

		index, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil {
			responses.WriteError(ctx, logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "line index must be an integer"))
			return
		}

		if err := svc.RemoveLine(ctx, sessionID, index); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		lines, err := svc.Lines(ctx, sessionID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, newSessionView(sessionID, lines))
	}
}

// Clear removes every line from the session's cart.
func Clear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		sessionID := chi.URLParam(r, "sessionID")
		ctx := sessionContext(r, logg, sessionID)

		if err := svc.Clear(ctx, sessionID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, newSessionView(sessionID, nil))
	}
}

func sessionContext(r *http.Request, logg *logger.Logger, sessionID string) context.Context {
	ctx := r.Context()
	if logg != nil {
		ctx = logg.WithCartSession(ctx, sessionID)
	}
	return ctx
}
