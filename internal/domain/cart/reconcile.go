// internal/domain/cart/reconcile.go
package cart

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/pharmacy-storefront/internal/domain/product"
	"github.com/your-org/pharmacy-storefront/internal/pkg/notify"
	"golang.org/x/sync/singleflight"
)

// ProductFetcher is the slice of the remote product gateway the
// reconciler needs: one batch fetch for arbitrarily many ids, where
// partial results are valid.
type ProductFetcher interface {
	FetchProductsByIDs(ctx context.Context, ids []string) ([]product.Product, error)
}

// ReconcileResult reports one reconciliation run in aggregate.
type ReconcileResult struct {
	Updated int `json:"updated"`
	Failed  int `json:"failed"`
}

// Reconciler refreshes the stale product snapshots held in a cart
// against the live catalog. Catalog prices drift between the moment a
// product is added and the moment the user reaches the cart view; a run
// issues exactly one batch request for all distinct ids in the cart and
// merges the results back line by line, preserving quantities.
//
// Runs are idempotent: UpdateProduct replaces snapshots rather than
// accumulating, so re-applying identical server data converges.
// Concurrent runs for the same session are collapsed via singleflight.
type Reconciler struct {
	fetcher ProductFetcher
	logger  *logrus.Logger
	group   singleflight.Group
}

// NewReconciler creates a reconciler over the remote product gateway
func NewReconciler(fetcher ProductFetcher, logger *logrus.Logger) *Reconciler {
	return &Reconciler{fetcher: fetcher, logger: logger}
}

// Refresh reconciles the cart's product snapshots. It surfaces at most
// one success and one warning notification per run, never one per item.
// On a batch transport failure the existing snapshots stay untouched
// and a single error notification is emitted. Notifications are derived
// from the shared outcome after the singleflight call, so every
// collapsed caller's notifier fires, not just the one whose request
// executed.
func (r *Reconciler) Refresh(ctx context.Context, store *Store, notifier notify.Notifier) (ReconcileResult, error) {
	ids := store.ProductIDs(ctx)
	if len(ids) == 0 {
		return ReconcileResult{}, nil
	}

	v, err, _ := r.group.Do(store.SessionID(), func() (interface{}, error) {
		return r.run(ctx, store, ids)
	})
	if err != nil {
		notifier.Error(fmt.Sprintf("Không thể tải thông tin sản phẩm: %s", err.Error()))
		return ReconcileResult{}, err
	}

	result := v.(ReconcileResult)
	if result.Updated > 0 {
		notifier.Success(fmt.Sprintf("Đã cập nhật %d sản phẩm", result.Updated))
	}
	if result.Failed > 0 {
		notifier.Warning(fmt.Sprintf("Không thể cập nhật %d sản phẩm", result.Failed))
	}
	return result, nil
}

func (r *Reconciler) run(ctx context.Context, store *Store, ids []string) (ReconcileResult, error) {
	fresh, err := r.fetcher.FetchProductsByIDs(ctx, ids)
	if err != nil {
		r.logger.WithError(err).WithField("session_id", store.SessionID()).
			Warn("cart product refresh failed, keeping stale snapshots")
		return ReconcileResult{}, err
	}

	byID := make(map[string]product.Product, len(fresh))
	for _, p := range fresh {
		byID[p.ID] = p
	}

	var result ReconcileResult
	for _, id := range ids {
		p, ok := byID[id]
		if ok && store.UpdateProduct(ctx, id, p) {
			result.Updated++
		} else {
			// Missing from the batch response, or the line was
			// removed while the request was in flight.
			result.Failed++
		}
	}

	r.logger.WithFields(logrus.Fields{
		"session_id": store.SessionID(),
		"requested":  len(ids),
		"updated":    result.Updated,
		"failed":     result.Failed,
	}).Debug("cart product refresh completed")

	return result, nil
}
