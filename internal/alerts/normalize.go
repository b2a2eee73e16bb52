// internal/alerts/normalize.go
package alerts

import (
	"encoding/json"
	"strconv"
	"strings"

	"order-alerts/internal/shopify"
)

// WebhookOrder mirrors the orders/create webhook body. Only the fields the
// alert pipeline needs are decoded; everything else is ignored.
type WebhookOrder struct {
	ID          json.Number       `json:"id"`
	Name        string            `json:"name"`
	OrderNumber json.Number       `json:"order_number"`
	TotalPrice  string            `json:"total_price"`
	Currency    string            `json:"currency"`
	LineItems   []WebhookLineItem `json:"line_items"`
	Customer    *WebhookCustomer  `json:"customer"`
}

type WebhookLineItem struct {
	Title    string `json:"title"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
}

type WebhookCustomer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// FromWebhook converts a webhook body into a NormalizedOrder. Missing or
// malformed fields get defaults, never errors.
func FromWebhook(o *WebhookOrder) *NormalizedOrder {
	out := &NormalizedOrder{
		ID:           o.ID.String(),
		DisplayName:  webhookDisplayName(o),
		TotalAmount:  parseAmount(o.TotalPrice),
		CurrencyCode: o.Currency,
		CustomerName: webhookCustomerName(o.Customer),
	}
	if out.CurrencyCode == "" {
		out.CurrencyCode = DefaultCurrency
	}

	for i, item := range o.LineItems {
		if i >= MaxLineItems {
			break
		}

		title := item.Title
		if title == "" {
			title = item.Name
		}
		if title == "" {
			title = UnknownItemTitle
		}

		quantity := item.Quantity
		if quantity == 0 {
			quantity = 1
		}

		out.LineItems = append(out.LineItems, LineItem{
			Title:     title,
			Quantity:  quantity,
			UnitPrice: parseAmount(item.Price),
		})
	}

	return out
}

// FromAdminAPI converts an Admin GraphQL order into a NormalizedOrder with
// the same defaulting rules as the webhook path.
func FromAdminAPI(o *shopify.AdminOrder) *NormalizedOrder {
	out := &NormalizedOrder{
		ID:           strings.TrimPrefix(o.ID, "gid://shopify/Order/"),
		DisplayName:  o.Name,
		TotalAmount:  parseAmount(o.TotalPriceSet.ShopMoney.Amount),
		CurrencyCode: o.TotalPriceSet.ShopMoney.CurrencyCode,
		CustomerName: adminCustomerName(o.Customer),
	}
	if out.DisplayName == "" {
		out.DisplayName = UnknownOrderName
	}
	if out.CurrencyCode == "" {
		out.CurrencyCode = DefaultCurrency
	}

	for i, edge := range o.LineItems.Edges {
		if i >= MaxLineItems {
			break
		}

		title := edge.Node.Title
		if title == "" {
			title = UnknownItemTitle
		}

		quantity := edge.Node.Quantity
		if quantity == 0 {
			quantity = 1
		}

		out.LineItems = append(out.LineItems, LineItem{
			Title:     title,
			Quantity:  quantity,
			UnitPrice: parseAmount(edge.Node.OriginalUnitPriceSet.ShopMoney.Amount),
		})
	}

	return out
}

func webhookDisplayName(o *WebhookOrder) string {
	if o.Name != "" {
		return o.Name
	}
	if o.OrderNumber.String() != "" {
		return o.OrderNumber.String()
	}
	return UnknownOrderName
}

func webhookCustomerName(c *WebhookCustomer) string {
	if c == nil {
		return ""
	}
	return joinName(c.FirstName, c.LastName)
}

func adminCustomerName(c *shopify.AdminCustomer) string {
	if c == nil {
		return ""
	}
	return joinName(c.FirstName, c.LastName)
}

func joinName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}

// parseAmount parses a money string, treating anything unparseable as zero.
func parseAmount(raw string) float64 {
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}
