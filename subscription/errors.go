package subscription

import "errors"

var (
	// ErrInvalidInput is returned for malformed or semantically invalid input,
	// such as an unparseable or past end date.
	ErrInvalidInput = errors.New("subscription: invalid input")

	// ErrDuplicateSubscription is returned when the (client, product) pair
	// already has a subscription.
	ErrDuplicateSubscription = errors.New("subscription: client already subscribed to this product")

	// ErrDuplicateProduct is returned when adding a product name that already exists.
	ErrDuplicateProduct = errors.New("subscription: product already exists")

	// ErrSubscriptionNotFound is returned when no record matches the given
	// index or (client, product) pair.
	ErrSubscriptionNotFound = errors.New("subscription: subscription not found")

	// ErrProductNotFound is returned when an operation references a product
	// name absent from the product set.
	ErrProductNotFound = errors.New("subscription: product not found")
)
