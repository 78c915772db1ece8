// Package subscription holds the domain model and business rules for client
// product subscriptions.
//
// A Subscription ties a client to a product with an expiry date and a
// store-assigned 1-based index. The index is the record's identity on the
// wire: it is assigned once at creation and never adjusted at any layer.
// Assignment takes the current maximum plus one, so indices below the maximum
// are never reclaimed; numbering restarts at 1 only once the collection is
// empty again.
//
// The Service enforces the rules on top of a Store implementation: date
// validation, duplicate (client, product) rejection, product-set membership,
// and the two renewal modes (replace the end date, or extend it by days).
// All mutating operations run under one mutex so the load-validate-save cycle
// is atomic with respect to concurrent mutations.
package subscription
