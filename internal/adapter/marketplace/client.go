// Package marketplace exposes typed operations of the marketplace REST API.
package marketplace

import (
	"github.com/polkiloo/marketpanel/internal/apiclient"
)

// Client groups the API namespaces. It never re-issues a call; retries
// belong to the pipeline underneath.
type Client struct {
	Auth       *AuthAPI
	Admins     *AdminsAPI
	Sellers    *SellersAPI
	Couriers   *CouriersAPI
	Buyers     *BuyersAPI
	Categories *CategoriesAPI
	Products   *ProductsAPI
	Orders     *OrdersAPI
	Deliveries *DeliveriesAPI
}

func New(api *apiclient.Client) *Client {
	return &Client{
		Auth:       &AuthAPI{api: api},
		Admins:     &AdminsAPI{api: api},
		Sellers:    &SellersAPI{api: api},
		Couriers:   &CouriersAPI{api: api},
		Buyers:     &BuyersAPI{api: api},
		Categories: &CategoriesAPI{api: api},
		Products:   &ProductsAPI{api: api},
		Orders:     &OrdersAPI{api: api},
		Deliveries: &DeliveriesAPI{api: api},
	}
}
