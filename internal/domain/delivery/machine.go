// Package delivery holds the courier delivery lifecycle rules.
package delivery

import (
	"fmt"
	"slices"

	domainErrors "github.com/polkiloo/marketpanel/internal/domain/errors"
	"github.com/polkiloo/marketpanel/internal/domain/model"
)

const (
	msgCourierOnly     = "Only couriers can update delivery status."
	msgIssueNotAllowed = "Issues can only be reported while the order is out for delivery."
	msgReasonRequired  = "Please provide a reason for the issue."
)

var successors = map[model.CourierStatus][]model.CourierStatus{
	model.CourierStatusPending:        {model.CourierStatusPickedUp},
	model.CourierStatusPickedUp:       {model.CourierStatusInTransit},
	model.CourierStatusInTransit:      {model.CourierStatusOutForDelivery},
	model.CourierStatusOutForDelivery: {model.CourierStatusDelivered, model.CourierStatusFailed},
	model.CourierStatusDelivered:      nil,
	model.CourierStatusFailed:         nil,
}

// Statuses lists all courier statuses in lifecycle order.
func Statuses() []model.CourierStatus {
	return []model.CourierStatus{
		model.CourierStatusPending,
		model.CourierStatusPickedUp,
		model.CourierStatusInTransit,
		model.CourierStatusOutForDelivery,
		model.CourierStatusDelivered,
		model.CourierStatusFailed,
	}
}

// Known reports whether s is a courier status.
func Known(s model.CourierStatus) bool {
	_, ok := successors[s]
	return ok
}

// Terminal reports whether no move out of s is allowed.
func Terminal(s model.CourierStatus) bool {
	next, ok := successors[s]
	return ok && len(next) == 0
}

// Next returns the statuses reachable from s in one move.
func Next(s model.CourierStatus) []model.CourierStatus {
	return slices.Clone(successors[s])
}

// CanTransition validates a move from one status to another.
func CanTransition(from, to model.CourierStatus) error {
	if !Known(to) {
		return domainErrors.Reject(domainErrors.KindValidationFailure,
			fmt.Sprintf("Unknown delivery status %q.", to), nil)
	}
	if !Known(from) {
		return domainErrors.Reject(domainErrors.KindValidationFailure,
			fmt.Sprintf("Unknown current delivery status %q.", from), nil)
	}
	if Terminal(from) {
		return domainErrors.Reject(domainErrors.KindValidationFailure,
			fmt.Sprintf("Delivery is already %s and can no longer change.", from), nil)
	}
	if !slices.Contains(successors[from], to) {
		return domainErrors.Reject(domainErrors.KindValidationFailure,
			fmt.Sprintf("Cannot change delivery status from %s to %s.", from, to), nil)
	}
	return nil
}

// Authorize rejects every role except courier.
func Authorize(role model.Role) error {
	if role != model.RoleCourier {
		return domainErrors.Reject(domainErrors.KindForbidden, msgCourierOnly, nil)
	}
	return nil
}

// CanReportIssue validates an issue report against the item's current status.
// The reason is expected to be trimmed already.
func CanReportIssue(status model.CourierStatus, reason string) error {
	if reason == "" {
		return domainErrors.Reject(domainErrors.KindValidationFailure, msgReasonRequired, nil)
	}
	if status != model.CourierStatusOutForDelivery {
		return domainErrors.Reject(domainErrors.KindValidationFailure, msgIssueNotAllowed, nil)
	}
	return nil
}
