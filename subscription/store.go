package subscription

import "context"

// Store persists the subscription and product collections as whole snapshots.
//
// Loads return empty collections when no data has been persisted yet; absence
// is not an error. Saves replace the persisted collection atomically: a
// reader never observes a partially written snapshot, and a failed save
// leaves the prior state authoritative.
type Store interface {
	LoadSubscriptions(ctx context.Context) ([]Subscription, error)
	SaveSubscriptions(ctx context.Context, subs []Subscription) error
	LoadProducts(ctx context.Context) ([]string, error)
	SaveProducts(ctx context.Context, products []string) error
}
