// internal/alerts/compose.go
package alerts

import (
	"strconv"
	"strings"
)

const guestCustomer = "Guest Customer"

// Compose renders the alert subject and plaintext body. Amounts always carry
// two decimals with the currency code as a literal prefix, independent of
// locale.
func Compose(order *NormalizedOrder, threshold float64, shopDomain string) (subject, body string) {
	subject = "🚨 High Value Order Alert - " + order.DisplayName

	customer := order.CustomerName
	if customer == "" {
		customer = guestCustomer
	}

	domain := shopDomain
	if domain == "" {
		domain = "your-store"
	}

	cur := order.CurrencyCode
	total := formatAmount(order.TotalAmount)
	thr := formatAmount(threshold)

	var b strings.Builder
	b.WriteString("🚨 HIGH VALUE ORDER ALERT 🚨\n\n")
	b.WriteString("Order Details:\n")
	b.WriteString("- Order #: " + order.DisplayName + "\n")
	b.WriteString("- Customer: " + customer + "\n")
	b.WriteString("- Order Total: " + cur + " " + total + "\n")
	b.WriteString("- Threshold: " + cur + " " + thr + "\n\n")
	b.WriteString("Top 3 Items:\n")
	for _, item := range order.LineItems {
		b.WriteString(item.Title + " (Qty: " + strconv.Itoa(item.Quantity) + ") - " +
			cur + " " + formatAmount(item.UnitPrice) + "\n")
	}
	b.WriteString("\nOrder Link: https://" + domain + ".myshopify.com/admin/orders/" + order.ID + "\n\n")
	b.WriteString("This order exceeds your configured threshold of " + cur + " " + thr + ".")

	return subject, b.String()
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
