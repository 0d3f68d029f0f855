package model

import (
	"bytes"
	"encoding/json"
	"time"
)

// CourierStatus describes the courier-facing lifecycle of one order item.
type CourierStatus string

const (
	CourierStatusPending        CourierStatus = "Pending"
	CourierStatusPickedUp       CourierStatus = "Picked Up"
	CourierStatusInTransit      CourierStatus = "In Transit"
	CourierStatusOutForDelivery CourierStatus = "Out for Delivery"
	CourierStatusDelivered      CourierStatus = "Delivered"
	CourierStatusFailed         CourierStatus = "Failed Delivery"
)

// Actor attributes a status change to a role and user.
type Actor struct {
	Role   Role   `json:"role"`
	UserID string `json:"userId,omitempty"`
}

// StatusEntry is one record of the append-only status history.
type StatusEntry struct {
	Status    CourierStatus `json:"status"`
	UpdatedBy Actor         `json:"updatedBy"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// CourierDetails links an order item to its courier.
type CourierDetails struct {
	CourierID      string `json:"courierId,omitempty"`
	TrackingNumber string `json:"trackingNumber,omitempty"`
}

// Ref is a reference that the API returns either as a bare id or as a populated document.
type Ref struct {
	ID        string   `json:"_id"`
	Name      string   `json:"name,omitempty"`
	Email     string   `json:"email,omitempty"`
	Phone     string   `json:"phone,omitempty"`
	Title     string   `json:"title,omitempty"`
	Brand     string   `json:"brand,omitempty"`
	Condition string   `json:"condition,omitempty"`
	Images    []string `json:"images,omitempty"`
}

// UnmarshalJSON accepts `"id"`, `null` and `{"_id": "id", ...}`.
func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = Ref{}
		return nil
	}
	if data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = Ref{ID: id}
		return nil
	}
	type plain Ref
	var doc plain
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*r = Ref(doc)
	return nil
}

// ShippingAddress is the delivery destination of an order.
type ShippingAddress struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	District   string `json:"district,omitempty"`
	Country    string `json:"country,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
}

// OrderItem is one product line of an order together with its delivery state.
type OrderItem struct {
	ProductID      Ref            `json:"productId"`
	Quantity       int            `json:"quantity"`
	Price          float64        `json:"price"`
	SellerStatus   string         `json:"sellerStatus,omitempty"`
	CourierStatus  CourierStatus  `json:"courierStatus"`
	CourierDetails CourierDetails `json:"courierDetails"`
	StatusHistory  []StatusEntry  `json:"statusHistory"`
	IssueReported  bool           `json:"issueReported,omitempty"`
	IssueReason    string         `json:"issueReason,omitempty"`
}

// Order is the admin and seller view of a purchase.
type Order struct {
	ID              string          `json:"_id"`
	BuyerID         Ref             `json:"buyerId"`
	Items           []OrderItem     `json:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	Status          string          `json:"status,omitempty"`
	TotalAmount     float64         `json:"totalAmount,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// Delivery is the courier view of an order: a single item assigned to the courier.
type Delivery struct {
	ID              string          `json:"_id"`
	BuyerID         Ref             `json:"buyerId"`
	Item            OrderItem       `json:"item"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// OrderFilter narrows order and delivery listings.
type OrderFilter struct {
	Status string
}

// StatusUpdate is the body of the courier status-update call.
type StatusUpdate struct {
	Status    CourierStatus `json:"status"`
	ProductID string        `json:"productId"`
	Reason    string        `json:"reason"`
}

// IssueReport is the body of the report-issue call.
type IssueReport struct {
	ProductID string `json:"productId"`
	Reason    string `json:"reason"`
}

// SellerStatusUpdate is the body of the seller status-update call.
type SellerStatusUpdate struct {
	Status    string `json:"status"`
	ProductID string `json:"productId"`
}
