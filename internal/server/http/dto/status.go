package dto

// StatusRequest changes the status of a buyer, product, seller order item or delivery.
type StatusRequest struct {
	Status    string `json:"status"`
	ProductID string `json:"productId,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// IssueRequest reports a delivery problem.
type IssueRequest struct {
	ProductID string `json:"productId"`
	Reason    string `json:"reason"`
}
