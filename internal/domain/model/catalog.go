package model

import "time"

// Category groups products in the catalog.
type Category struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ParentID    string `json:"parentId,omitempty"`
}

// CategoryInput is the payload of create and update category calls.
type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ParentID    string `json:"parentId,omitempty"`
}

// Product is a catalog listing.
type Product struct {
	ID         string    `json:"_id"`
	Title      string    `json:"title"`
	Brand      string    `json:"brand,omitempty"`
	Condition  string    `json:"condition,omitempty"`
	Price      float64   `json:"price"`
	Images     []string  `json:"images,omitempty"`
	SellerID   Ref       `json:"sellerId"`
	CategoryID Ref       `json:"categoryId"`
	Status     string    `json:"status,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ProductFilter narrows product listings.
type ProductFilter struct {
	Status     string
	CategoryID string
	Search     string
}
