// internal/shopify/client.go
package shopify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"order-alerts/internal/common/config"
)

const orderGIDPrefix = "gid://shopify/Order/"

// orderQuery fetches the fields needed to enrich an alert: total, customer
// name, and the first three line items.
const orderQuery = `query getOrder($id: ID!) {
  order(id: $id) {
    id
    name
    totalPriceSet {
      shopMoney {
        amount
        currencyCode
      }
    }
    customer {
      firstName
      lastName
    }
    lineItems(first: 3) {
      edges {
        node {
          title
          quantity
          originalUnitPriceSet {
            shopMoney {
              amount
              currencyCode
            }
          }
        }
      }
    }
  }
}`

// Money is a Shopify money value; amounts come over the wire as strings.
type Money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

type MoneyBag struct {
	ShopMoney Money `json:"shopMoney"`
}

type AdminCustomer struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type AdminLineItem struct {
	Title                string   `json:"title"`
	Quantity             int      `json:"quantity"`
	OriginalUnitPriceSet MoneyBag `json:"originalUnitPriceSet"`
}

// AdminOrder is the GraphQL order shape used for enrichment.
type AdminOrder struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	TotalPriceSet MoneyBag       `json:"totalPriceSet"`
	Customer      *AdminCustomer `json:"customer"`
	LineItems     struct {
		Edges []struct {
			Node AdminLineItem `json:"node"`
		} `json:"edges"`
	} `json:"lineItems"`
}

type graphQLResponse struct {
	Data struct {
		Order *AdminOrder `json:"order"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Client calls the Shopify Admin GraphQL API.
type Client struct {
	http        *resty.Client
	shopDomain  string
	apiVersion  string
	accessToken string
}

func NewClient(cfg config.ShopifyConfig) *Client {
	return &Client{
		http: resty.New().
			SetTimeout(10 * time.Second).
			SetHeader("Content-Type", "application/json"),
		shopDomain:  cfg.ShopDomain,
		apiVersion:  cfg.APIVersion,
		accessToken: cfg.AccessToken,
	}
}

// Configured reports whether Admin API credentials are present. Without them
// alerts are composed from the webhook payload alone.
func (c *Client) Configured() bool {
	return c != nil && c.accessToken != "" && c.shopDomain != ""
}

// GetOrder fetches an order by ID. Accepts either a bare numeric ID or a
// full gid.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*AdminOrder, error) {
	gid := orderID
	if !strings.HasPrefix(gid, orderGIDPrefix) {
		gid = orderGIDPrefix + orderID
	}

	url := fmt.Sprintf("https://%s.myshopify.com/admin/api/%s/graphql.json",
		c.shopDomain, c.apiVersion)

	var out graphQLResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-Shopify-Access-Token", c.accessToken).
		SetBody(map[string]interface{}{
			"query":     orderQuery,
			"variables": map[string]string{"id": gid},
		}).
		SetResult(&out).
		Post(url)
	if err != nil {
		return nil, fmt.Errorf("admin api request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("admin api returned status %d", resp.StatusCode())
	}
	if len(out.Errors) > 0 {
		return nil, fmt.Errorf("admin api error: %s", out.Errors[0].Message)
	}
	if out.Data.Order == nil {
		return nil, fmt.Errorf("order %s not found", orderID)
	}

	return out.Data.Order, nil
}
