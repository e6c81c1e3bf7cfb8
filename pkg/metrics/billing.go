package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// BillingMetrics records catalog and invoice activity.
type BillingMetrics struct {
	catalogMutations *prometheus.CounterVec
	invoicesTotal    *prometheus.CounterVec
	invoiceAmount    *prometheus.HistogramVec
}

// NewBillingMetrics registers the billing metrics on the provided registerer.
func NewBillingMetrics(reg prometheus.Registerer) *BillingMetrics {
	if reg == nil {
		return &BillingMetrics{}
	}
	catalogMutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_mutations_total",
		Help: "Catalog upsert and remove operations.",
	}, []string{"op"})
	invoicesTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "invoices_generated_total",
		Help: "Invoices generated per flow.",
	}, []string{"flow"})
	invoiceAmount := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "invoice_total_amount",
		Help:    "Distribution of invoice totals in currency units.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	}, []string{"flow"})
	reg.MustRegister(catalogMutations, invoicesTotal, invoiceAmount)
	return &BillingMetrics{
		catalogMutations: catalogMutations,
		invoicesTotal:    invoicesTotal,
		invoiceAmount:    invoiceAmount,
	}
}

// IncCatalogMutation increments the mutation counter for the named operation.
func (m *BillingMetrics) IncCatalogMutation(op string) {
	if m == nil || m.catalogMutations == nil {
		return
	}
	m.catalogMutations.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncInvoiceGenerated increments the invoice counter for the named flow.
func (m *BillingMetrics) IncInvoiceGenerated(flow string) {
	if m == nil || m.invoicesTotal == nil {
		return
	}
	m.invoicesTotal.WithLabelValues(normalizeLabel(flow)).Inc()
}

// ObserveInvoiceTotal records the computed total for the named flow.
func (m *BillingMetrics) ObserveInvoiceTotal(flow string, total float64) {
	if m == nil || m.invoiceAmount == nil {
		return
	}
	m.invoiceAmount.WithLabelValues(normalizeLabel(flow)).Observe(total)
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
