package usecase_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/polkiloo/marketpanel/internal/apiclient"
	"github.com/polkiloo/marketpanel/internal/domain/model"
	"github.com/polkiloo/marketpanel/internal/test"
	"github.com/polkiloo/marketpanel/internal/usecase"
)

func listOf(total int, ids ...string) http.HandlerFunc {
	data := make([]map[string]string, 0, len(ids))
	for _, id := range ids {
		data = append(data, map[string]string{"_id": id})
	}
	encoded, _ := json.Marshal(data)
	return test.JSON(http.StatusOK, fmt.Sprintf(`{"success":true,"data":%s,"pagination":{"total":%d}}`, encoded, total))
}

func TestDirectoryListsRecordCursor(t *testing.T) {
	store := test.NewSession(model.RoleAdmin)
	mux := http.NewServeMux()
	mux.Handle("GET /api/admin/couriers", listOf(12, "c1", "c2"))
	client := test.NewMarketplace(t, store, mux)
	views := usecase.NewViews()
	uc := usecase.NewDirectoryUseCase(client, store, views)

	page, err := uc.ListCouriers(context.Background(), model.PageParams{Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("ListCouriers returned error: %v", err)
	}
	if len(page.Data) != 2 || page.Data[0].ID != "c1" {
		t.Fatalf("unexpected couriers: %+v", page.Data)
	}
	cur, ok := views.Cursor(usecase.ViewCouriers)
	if !ok || cur.Total != 12 || cur.TotalPages() != 6 {
		t.Fatalf("unexpected cursor: %+v", cur)
	}
}

func TestDirectoryRequiresAdmin(t *testing.T) {
	var hits atomic.Int32
	store := test.NewSession(model.RoleSeller)
	client := test.NewMarketplace(t, store, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	uc := usecase.NewDirectoryUseCase(client, store, usecase.NewViews())

	_, err := uc.ListAdmins(context.Background(), model.PageParams{})
	requireKind(t, err, apiclient.KindForbidden)
	if hits.Load() != 0 {
		t.Fatalf("forbidden call must not reach the marketplace")
	}
}

func TestDirectoryValidatesInput(t *testing.T) {
	store := test.NewSession(model.RoleAdmin)
	client := test.NewMarketplace(t, store, http.NotFoundHandler())
	uc := usecase.NewDirectoryUseCase(client, store, usecase.NewViews())
	ctx := context.Background()

	_, err := uc.CreateAdmin(ctx, model.AdminInput{Email: "a@example.com", Name: "  "})
	requireKind(t, err, apiclient.KindValidationFailure)

	_, err = uc.CreateCourier(ctx, model.CourierInput{Name: "C", Password: "pw"})
	requireKind(t, err, apiclient.KindValidationFailure)

	requireKind(t, uc.DeleteSeller(ctx, " "), apiclient.KindValidationFailure)

	_, err = uc.SetBuyerStatus(ctx, "b1", "")
	requireKind(t, err, apiclient.KindValidationFailure)
}

func TestDirectoryApproveSeller(t *testing.T) {
	store := test.NewSession(model.RoleAdmin)
	mux := http.NewServeMux()
	mux.Handle("PATCH /api/admin/sellers/s1/approve", test.JSON(http.StatusOK, `{"success":true,"data":{"_id":"s1","isApproved":true}}`))
	client := test.NewMarketplace(t, store, mux)
	uc := usecase.NewDirectoryUseCase(client, store, usecase.NewViews())

	seller, err := uc.ApproveSeller(context.Background(), "s1")
	if err != nil {
		t.Fatalf("ApproveSeller returned error: %v", err)
	}
	if !seller.Approved {
		t.Fatalf("expected approved seller, got %+v", seller)
	}
}

func TestUnauthorizedResponseClearsSession(t *testing.T) {
	store := test.NewSession(model.RoleAdmin)
	client := test.NewMarketplace(t, store, test.JSON(http.StatusUnauthorized, `{"message":"jwt expired"}`))
	uc := usecase.NewCatalogUseCase(client, store, usecase.NewViews())

	_, err := uc.ListCategories(context.Background(), model.PageParams{})
	apiErr := requireKind(t, err, apiclient.KindUnauthorized)
	if !apiErr.SessionInvalidated || apiErr.IsBigError {
		t.Fatalf("expected inline invalidation error, got %+v", apiErr)
	}
	if store.Authenticated() {
		t.Fatalf("expected session to be cleared")
	}
}

func TestCatalogCategoryAndProducts(t *testing.T) {
	store := test.NewSession(model.RoleAdmin)
	var query atomic.Value
	mux := http.NewServeMux()
	mux.Handle("POST /api/admin/categories", test.JSON(http.StatusCreated, `{"success":true,"data":{"_id":"cat1","name":"Shoes"}}`))
	mux.HandleFunc("GET /api/admin/products", func(w http.ResponseWriter, r *http.Request) {
		query.Store(r.URL.Query())
		listOf(1, "p1")(w, r)
	})
	client := test.NewMarketplace(t, store, mux)
	uc := usecase.NewCatalogUseCase(client, store, usecase.NewViews())
	ctx := context.Background()

	_, err := uc.CreateCategory(ctx, model.CategoryInput{Name: " "})
	requireKind(t, err, apiclient.KindValidationFailure)

	cat, err := uc.CreateCategory(ctx, model.CategoryInput{Name: " Shoes "})
	if err != nil || cat.ID != "cat1" {
		t.Fatalf("CreateCategory: %+v %v", cat, err)
	}

	page, err := uc.ListProducts(ctx, model.PageParams{}, model.ProductFilter{Status: "pending", Search: "boot"})
	if err != nil || len(page.Data) != 1 {
		t.Fatalf("ListProducts: %+v %v", page, err)
	}
	q, ok := query.Load().(url.Values)
	if !ok {
		t.Fatal("expected product list query to be captured")
	}
	if q.Get("status") != "pending" || q.Get("search") != "boot" {
		t.Fatalf("expected status and search filters, got %v", q)
	}
	if q.Get("page") != "1" || q.Get("limit") != "10" {
		t.Fatalf("expected default page params, got %v", q)
	}
	if q.Has("category") {
		t.Fatalf("empty filters must be dropped, got %v", q)
	}

	_, err = uc.SellerProducts(ctx, model.PageParams{})
	requireKind(t, err, apiclient.KindForbidden)
}

func TestSellerOrders(t *testing.T) {
	store := test.NewSession(model.RoleSeller)
	var body atomic.Value
	mux := http.NewServeMux()
	mux.Handle("GET /api/seller/orders", listOf(3, "o1"))
	mux.HandleFunc("PATCH /api/seller/orders/o1/status", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		body.Store(in)
		test.JSON(http.StatusOK, `{"success":true,"data":{"_id":"o1","status":"processing"}}`)(w, r)
	})
	client := test.NewMarketplace(t, store, mux)
	uc := usecase.NewOrderUseCase(client, store, usecase.NewViews())
	ctx := context.Background()

	page, err := uc.SellerOrders(ctx, model.PageParams{})
	if err != nil || page.Cursor.Total != 3 {
		t.Fatalf("SellerOrders: %+v %v", page, err)
	}

	_, err = uc.UpdateSellerStatus(ctx, "o1", model.SellerStatusUpdate{Status: "shipped"})
	requireKind(t, err, apiclient.KindValidationFailure)

	order, err := uc.UpdateSellerStatus(ctx, "o1", model.SellerStatusUpdate{Status: "shipped", ProductID: "p1"})
	if err != nil || order.ID != "o1" {
		t.Fatalf("UpdateSellerStatus: %+v %v", order, err)
	}
	sent, _ := body.Load().(map[string]string)
	if sent["status"] != "shipped" || sent["productId"] != "p1" {
		t.Fatalf("unexpected body sent: %v", sent)
	}

	_, err = uc.List(ctx, model.PageParams{}, model.OrderFilter{})
	requireKind(t, err, apiclient.KindForbidden)
}

func TestSummaryReadsCollectionTotals(t *testing.T) {
	store := test.NewSession(model.RoleAdmin)
	mux := http.NewServeMux()
	mux.Handle("GET /api/admin/admins", listOf(2, "a1"))
	mux.Handle("GET /api/admin/sellers", listOf(7, "s1"))
	mux.Handle("GET /api/admin/sellers/pending", listOf(3, "s2"))
	mux.Handle("GET /api/admin/couriers", listOf(4, "c1"))
	mux.Handle("GET /api/admin/buyers", listOf(40, "b1"))
	mux.Handle("GET /api/admin/products", listOf(120, "p1"))
	mux.Handle("GET /api/admin/orders", listOf(0))
	client := test.NewMarketplace(t, store, mux)
	uc := usecase.NewSummaryUseCase(client, store)

	got, err := uc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}
	want := model.Summary{Admins: 2, Sellers: 7, PendingSellers: 3, Couriers: 4, Buyers: 40, Products: 120, Orders: 0}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestSummaryFailsOnAnyCollection(t *testing.T) {
	store := test.NewSession(model.RoleAdmin)
	mux := http.NewServeMux()
	mux.Handle("/", listOf(1, "x"))
	mux.Handle("GET /api/admin/buyers", test.JSON(http.StatusForbidden, `{"message":"nope"}`))
	client := test.NewMarketplace(t, store, mux)

	_, err := usecase.NewSummaryUseCase(client, store).Summary(context.Background())
	requireKind(t, err, apiclient.KindForbidden)
}
