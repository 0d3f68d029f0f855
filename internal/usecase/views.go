package usecase

import (
	"context"
	"sync"

	"github.com/polkiloo/marketpanel/internal/domain/model"
)

// View names of paginated panels.
const (
	ViewAdmins         = "admins"
	ViewSellers        = "sellers"
	ViewPendingSellers = "pending-sellers"
	ViewCouriers       = "couriers"
	ViewBuyers         = "buyers"
	ViewCategories     = "categories"
	ViewProducts       = "products"
	ViewOrders         = "orders"
	ViewSellerProducts = "seller-products"
	ViewSellerOrders   = "seller-orders"
	ViewDeliveries     = "deliveries"
)

// Views keeps one pagination cursor per panel. The last response recorded wins.
type Views struct {
	mu    sync.Mutex
	state map[string]viewState
}

type viewState struct {
	cursor model.Cursor
	last   any
}

func NewViews() *Views {
	return &Views{state: make(map[string]viewState)}
}

// Resolve returns the window to fetch for a page request and whether a fetch
// is needed. A page outside 1..TotalPages of a known view is a no-op.
func (v *Views) Resolve(view string, requested model.PageParams) (model.PageParams, bool) {
	requested = requested.Normalize()

	v.mu.Lock()
	defer v.mu.Unlock()

	st, ok := v.state[view]
	if !ok || st.cursor.Limit != requested.Limit {
		return requested, true
	}
	cur := st.cursor
	if next, moved := cur.Goto(requested.Page); moved {
		return next.Params(), true
	}
	// an empty listing has no valid page, so it is always reloaded
	if cur.TotalPages() == 0 {
		return cur.Params(), true
	}
	return cur.Params(), false
}

func (v *Views) Record(view string, cursor model.Cursor) {
	v.store(view, cursor, nil)
}

func (v *Views) store(view string, cursor model.Cursor, last any) {
	v.mu.Lock()
	v.state[view] = viewState{cursor: cursor, last: last}
	v.mu.Unlock()
}

func (v *Views) last(view string) any {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state[view].last
}

func (v *Views) Cursor(view string) (model.Cursor, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	st, ok := v.state[view]
	return st.cursor, ok
}

// Reset forgets every cursor.
func (v *Views) Reset() {
	v.mu.Lock()
	clear(v.state)
	v.mu.Unlock()
}

func listView[T any](
	ctx context.Context,
	views *Views,
	view string,
	page model.PageParams,
	fetch func(context.Context, model.PageParams) (model.Page[T], error),
) (model.Page[T], error) {
	params, needed := views.Resolve(view, page)
	if !needed {
		if last, ok := views.last(view).(model.Page[T]); ok {
			return last, nil
		}
	}
	result, err := fetch(ctx, params)
	if err != nil {
		return result, err
	}
	views.store(view, result.Cursor, result)
	return result, nil
}
