// internal/alerts/models.go
package alerts

const (
	// MaxLineItems caps how many items appear in an alert body.
	MaxLineItems = 3

	DefaultCurrency  = "USD"
	UnknownItemTitle = "Unknown Item"
	UnknownOrderName = "Unknown"
)

// LineItem is one item summarized in an alert.
type LineItem struct {
	Title     string
	Quantity  int
	UnitPrice float64
}

// NormalizedOrder is the provider-independent order shape the evaluator and
// composer operate on. CustomerName is empty when the source carried no
// customer block.
type NormalizedOrder struct {
	ID           string
	DisplayName  string
	TotalAmount  float64
	CurrencyCode string
	CustomerName string
	LineItems    []LineItem
}
