package usecase_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/polkiloo/marketpanel/internal/apiclient"
	domainErrors "github.com/polkiloo/marketpanel/internal/domain/errors"
	"github.com/polkiloo/marketpanel/internal/domain/model"
	"github.com/polkiloo/marketpanel/internal/metrics"
	"github.com/polkiloo/marketpanel/internal/test"
	"github.com/polkiloo/marketpanel/internal/usecase"
)

func newDeliveryUseCase(role model.Role, gateway usecase.DeliveryGateway) (*usecase.DeliveryUseCase, *metrics.Metrics) {
	m := metrics.New()
	return usecase.NewDeliveryUseCase(gateway, test.NewSession(role), usecase.NewViews(), m, test.DiscardLogger()), m
}

func requireKind(t *testing.T, err error, kind apiclient.Kind) *apiclient.Error {
	t.Helper()
	apiErr, ok := apiclient.AsError(err)
	if !ok {
		t.Fatalf("expected normalized error of kind %s, got %v", kind, err)
	}
	if apiErr.Kind != kind {
		t.Fatalf("expected kind %s, got %s (%s)", kind, apiErr.Kind, apiErr.Message)
	}
	return apiErr
}

func TestUpdateStatusAppendsOneHistoryEntry(t *testing.T) {
	backend := test.NewCourierBackend(test.NewDelivery("o1", "p1", model.CourierStatusOutForDelivery))
	uc, m := newDeliveryUseCase(model.RoleCourier, backend)

	got, err := uc.UpdateStatus(context.Background(), "o1", "p1", model.CourierStatusDelivered, "")
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}

	if got.Item.CourierStatus != model.CourierStatusDelivered {
		t.Fatalf("expected status Delivered, got %q", got.Item.CourierStatus)
	}
	if len(got.Item.StatusHistory) != 5 {
		t.Fatalf("expected 5 history entries, got %d", len(got.Item.StatusHistory))
	}
	if last := got.Item.StatusHistory[4]; last.Status != model.CourierStatusDelivered {
		t.Fatalf("expected last entry Delivered, got %q", last.Status)
	}
	if len(backend.Updates) != 1 || backend.Updates[0].ProductID != "p1" {
		t.Fatalf("unexpected updates sent: %+v", backend.Updates)
	}
	if v := testutil.ToFloat64(m.HistoryViolations); v != 0 {
		t.Fatalf("expected no violations, got %v", v)
	}
}

func TestUpdateStatusWalksFullLifecycle(t *testing.T) {
	backend := test.NewCourierBackend(test.NewDelivery("o1", "p1", model.CourierStatusPending))
	uc, _ := newDeliveryUseCase(model.RoleCourier, backend)

	steps := []model.CourierStatus{
		model.CourierStatusPickedUp,
		model.CourierStatusInTransit,
		model.CourierStatusOutForDelivery,
		model.CourierStatusFailed,
	}
	for i, status := range steps {
		got, err := uc.UpdateStatus(context.Background(), "o1", "", status, "")
		if err != nil {
			t.Fatalf("step %d to %s failed: %v", i, status, err)
		}
		if len(got.Item.StatusHistory) != i+2 {
			t.Fatalf("step %d: expected %d entries, got %d", i, i+2, len(got.Item.StatusHistory))
		}
	}

	_, err := uc.UpdateStatus(context.Background(), "o1", "", model.CourierStatusDelivered, "")
	requireKind(t, err, apiclient.KindValidationFailure)
}

func TestUpdateStatusRejectsNonCourier(t *testing.T) {
	for _, role := range []model.Role{model.RoleAdmin, model.RoleSeller} {
		t.Run(string(role), func(t *testing.T) {
			backend := test.NewCourierBackend(test.NewDelivery("o1", "p1", model.CourierStatusPending))
			uc, _ := newDeliveryUseCase(role, backend)

			_, err := uc.UpdateStatus(context.Background(), "o1", "p1", model.CourierStatusPickedUp, "")
			apiErr := requireKind(t, err, apiclient.KindForbidden)
			if apiErr.Code != 403 {
				t.Fatalf("expected code 403, got %d", apiErr.Code)
			}
			if len(backend.Updates) != 0 {
				t.Fatalf("expected no update to be sent")
			}
		})
	}
}

func TestUpdateStatusWithoutSession(t *testing.T) {
	backend := test.NewCourierBackend(test.NewDelivery("o1", "p1", model.CourierStatusPending))
	uc, _ := newDeliveryUseCase("", backend)

	_, err := uc.UpdateStatus(context.Background(), "o1", "p1", model.CourierStatusPickedUp, "")
	apiErr := requireKind(t, err, apiclient.KindUnauthorized)
	if apiErr.SessionInvalidated {
		t.Fatalf("missing session must not be reported as invalidated")
	}
}

func TestUpdateStatusRejectsIllegalMoves(t *testing.T) {
	cases := []struct {
		name string
		from model.CourierStatus
		to   model.CourierStatus
	}{
		{name: "skip", from: model.CourierStatusPending, to: model.CourierStatusInTransit},
		{name: "backward", from: model.CourierStatusInTransit, to: model.CourierStatusPickedUp},
		{name: "same", from: model.CourierStatusPickedUp, to: model.CourierStatusPickedUp},
		{name: "terminal", from: model.CourierStatusDelivered, to: model.CourierStatusFailed},
		{name: "unknown", from: model.CourierStatusPending, to: "Lost"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			backend := test.NewCourierBackend(test.NewDelivery("o1", "p1", tc.from))
			uc, _ := newDeliveryUseCase(model.RoleCourier, backend)

			_, err := uc.UpdateStatus(context.Background(), "o1", "p1", tc.to, "")
			apiErr := requireKind(t, err, apiclient.KindValidationFailure)
			if apiErr.Code != 400 {
				t.Fatalf("expected code 400, got %d", apiErr.Code)
			}
			if len(backend.Updates) != 0 {
				t.Fatalf("illegal move must not reach the server")
			}
		})
	}
}

func TestUpdateStatusUnknownItem(t *testing.T) {
	backend := test.NewCourierBackend(test.NewDelivery("o1", "p1", model.CourierStatusPending))
	uc, _ := newDeliveryUseCase(model.RoleCourier, backend)

	_, err := uc.UpdateStatus(context.Background(), "o1", "other", model.CourierStatusPickedUp, "")
	requireKind(t, err, apiclient.KindNotFound)

	_, err = uc.UpdateStatus(context.Background(), test.RandomObjectID(), "", model.CourierStatusPickedUp, "")
	requireKind(t, err, apiclient.KindNotFound)
}

func TestUpdateStatusCountsHistoryViolations(t *testing.T) {
	cases := []struct {
		name  string
		setup func(*test.CourierBackend)
	}{
		{name: "no append", setup: func(b *test.CourierBackend) { b.SkipAppend = true }},
		{name: "truncated", setup: func(b *test.CourierBackend) { b.DropHistory = true }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			backend := test.NewCourierBackend(test.NewDelivery("o1", "p1", model.CourierStatusInTransit))
			tc.setup(backend)
			uc, m := newDeliveryUseCase(model.RoleCourier, backend)

			got, err := uc.UpdateStatus(context.Background(), "o1", "p1", model.CourierStatusOutForDelivery, "")
			if err != nil {
				t.Fatalf("violations are reported, not returned: %v", err)
			}
			if got.Item.CourierStatus != model.CourierStatusOutForDelivery {
				t.Fatalf("expected refetched status, got %q", got.Item.CourierStatus)
			}
			if v := testutil.ToFloat64(m.HistoryViolations); v != 1 {
				t.Fatalf("expected 1 violation, got %v", v)
			}
		})
	}
}

// failingRefetch lets the first Get through and fails the rest.
type failingRefetch struct {
	*test.CourierBackend
	gets atomic.Int32
}

func (f *failingRefetch) Get(ctx context.Context, id string) (*model.Delivery, error) {
	if f.gets.Add(1) > 1 {
		return nil, errors.New("refetch failed")
	}
	return f.CourierBackend.Get(ctx, id)
}

func TestUpdateStatusFallsBackWhenRefetchFails(t *testing.T) {
	gateway := &failingRefetch{CourierBackend: test.NewCourierBackend(test.NewDelivery("o1", "p1", model.CourierStatusPending))}
	uc, m := newDeliveryUseCase(model.RoleCourier, gateway)

	got, err := uc.UpdateStatus(context.Background(), "o1", "p1", model.CourierStatusPickedUp, "")
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if got.Item.CourierStatus != model.CourierStatusPickedUp {
		t.Fatalf("expected mutation response, got %q", got.Item.CourierStatus)
	}
	if v := testutil.ToFloat64(m.HistoryViolations); v != 0 {
		t.Fatalf("fallback must skip history checks, got %v violations", v)
	}
}

func TestUpdateStatusPropagatesServerRejection(t *testing.T) {
	backend := test.NewCourierBackend(test.NewDelivery("o1", "p1", model.CourierStatusPending))
	backend.UpdateErr = apiclient.Reject(apiclient.KindConflict, apiclient.MsgConflict, nil)
	uc, _ := newDeliveryUseCase(model.RoleCourier, backend)

	_, err := uc.UpdateStatus(context.Background(), "o1", "p1", model.CourierStatusPickedUp, "")
	requireKind(t, err, apiclient.KindConflict)
}

func TestReportIssue(t *testing.T) {
	backend := test.NewCourierBackend(test.NewDelivery("o1", "p1", model.CourierStatusOutForDelivery))
	uc, m := newDeliveryUseCase(model.RoleCourier, backend)

	got, err := uc.ReportIssue(context.Background(), "o1", "p1", "  nobody home  ")
	if err != nil {
		t.Fatalf("ReportIssue returned error: %v", err)
	}
	if !got.Item.IssueReported || got.Item.IssueReason != "nobody home" {
		t.Fatalf("expected trimmed issue to be recorded, got %+v", got.Item)
	}
	if len(got.Item.StatusHistory) != 4 {
		t.Fatalf("issue report must not touch history, got %d entries", len(got.Item.StatusHistory))
	}
	if v := testutil.ToFloat64(m.HistoryViolations); v != 0 {
		t.Fatalf("expected no violations, got %v", v)
	}
}

func TestReportIssueValidation(t *testing.T) {
	cases := []struct {
		name   string
		status model.CourierStatus
		reason string
	}{
		{name: "pending", status: model.CourierStatusPending, reason: test.RandomText(12)},
		{name: "delivered", status: model.CourierStatusDelivered, reason: test.RandomText(12)},
		{name: "blank reason", status: model.CourierStatusOutForDelivery, reason: "   "},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			backend := test.NewCourierBackend(test.NewDelivery("o1", "p1", tc.status))
			uc, _ := newDeliveryUseCase(model.RoleCourier, backend)

			_, err := uc.ReportIssue(context.Background(), "o1", "p1", tc.reason)
			requireKind(t, err, apiclient.KindValidationFailure)
			if len(backend.Reports) != 0 {
				t.Fatalf("rejected report must not reach the server")
			}
		})
	}
}

func TestListDeliveriesFilters(t *testing.T) {
	flagged := test.NewDelivery("o2", "p2", model.CourierStatusOutForDelivery)
	flagged.Item.IssueReported = true
	backend := test.NewCourierBackend(test.NewDelivery("o1", "p1", model.CourierStatusPending), flagged)
	uc, _ := newDeliveryUseCase(model.RoleCourier, backend)

	page, err := uc.List(context.Background(), model.PageParams{}, model.OrderFilter{Status: usecase.FilterIssueReported})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(page.Data) != 1 || page.Data[0].ID != "o2" {
		t.Fatalf("expected only the flagged delivery, got %+v", page.Data)
	}

	_, err = uc.List(context.Background(), model.PageParams{}, model.OrderFilter{Status: "lost"})
	requireKind(t, err, apiclient.KindValidationFailure)
}

func TestAuditBatchRequiresCourier(t *testing.T) {
	backend := test.NewCourierBackend(
		test.NewDelivery("o1", "p1", model.CourierStatusPending),
		test.NewDelivery("o2", "p2", model.CourierStatusPending),
	)

	uc, _ := newDeliveryUseCase(model.RoleAdmin, backend)
	if _, err := uc.AuditBatch(context.Background(), 5); !errors.Is(err, domainErrors.ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}

	views := usecase.NewViews()
	uc = usecase.NewDeliveryUseCase(backend, test.NewSession(model.RoleCourier), views, nil, test.DiscardLogger())
	batch, err := uc.AuditBatch(context.Background(), 1)
	if err != nil {
		t.Fatalf("AuditBatch returned error: %v", err)
	}
	if len(batch) != 1 || batch[0].ID != "o1" {
		t.Fatalf("unexpected batch: %+v", batch)
	}
	if _, ok := views.Cursor(usecase.ViewDeliveries); ok {
		t.Fatalf("audit must not move the panel cursor")
	}
}
