package invoices

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shivamcrackers/posbill-backend/api/responses"
	"github.com/shivamcrackers/posbill-backend/api/validators"
	invoicesvc "github.com/shivamcrackers/posbill-backend/internal/invoices"
	"github.com/shivamcrackers/posbill-backend/pkg/config"
	pkgerrors "github.com/shivamcrackers/posbill-backend/pkg/errors"
	"github.com/shivamcrackers/posbill-backend/pkg/logger"
)

const maxCustomerNameLength = 120

// GenerateFromCart computes and renders an invoice from the session's cart.
// The cart itself is left untouched.
func GenerateFromCart(svc invoicesvc.Service, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "invoice service unavailable"))
			return
		}

		sessionID := chi.URLParam(r, "sessionID")
		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithCartSession(ctx, sessionID)
		}

		var payload GenerateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		discount, err := validators.ParseDecimal("overall_discount", payload.OverallDiscount)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		customer := validators.SanitizeString(payload.CustomerName, maxCustomerNameLength)
		invoice, err := svc.GenerateFromCart(ctx, sessionID, discount, customer)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		respondRendered(ctx, logg, w, invoice, cfg)
	}
}

// GenerateAdHoc computes and renders an invoice from an explicit row list.
func GenerateAdHoc(svc invoicesvc.Service, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "invoice service unavailable"))
			return
		}

		ctx := r.Context()

		var payload AdHocRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		entries := make([]invoicesvc.AdHocEntry, 0, len(payload.Rows))
		for i, row := range payload.Rows {
			rowDiscount, err := validators.ParseDecimal("rows["+strconv.Itoa(i)+"].discount_percent", row.DiscountPercent)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			entries = append(entries, invoicesvc.AdHocEntry{
				ProductName:     validators.SanitizeString(row.ProductName, maxCustomerNameLength),
				Quantity:        row.Quantity,
				DiscountPercent: rowDiscount,
			})
		}

		discount, err := validators.ParseDecimal("overall_discount", payload.OverallDiscount)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		customer := validators.SanitizeString(payload.CustomerName, maxCustomerNameLength)
		invoice, err := svc.GenerateAdHoc(ctx, entries, discount, customer)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		respondRendered(ctx, logg, w, invoice, cfg)
	}
}

// ExportXLSX turns a rendered invoice document back into a spreadsheet
// download. The document is the one returned by the generate endpoints.
func ExportXLSX(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var doc invoicesvc.Document
		if err := validators.DecodeJSONBody(r, &doc); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if len(doc.Rows) == 0 {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "document has no rows"))
			return
		}

		data, filename, err := invoicesvc.ExportXLSX(&doc)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "export spreadsheet"))
			return
		}

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}

func respondRendered(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, invoice *invoicesvc.Invoice, cfg *config.Config) {
	doc := invoicesvc.Render(invoice, cfg.Business, cfg.Invoice)
	if logg != nil {
		logg.Info(logg.WithField(ctx, "invoice_number", doc.InvoiceNumber), "invoice.generated")
	}
	responses.WriteSuccessStatus(w, http.StatusCreated, doc)
}
