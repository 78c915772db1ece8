// Package api exposes the subscription service as a JSON HTTP API.
//
// Paths and field names are fixed for interoperability with the existing
// desktop client: operation-style endpoints (/add_subscription,
// /view_subscriptions, ...) with flat JSON bodies and {"message": ...}
// confirmations. Domain rule violations map to 400, storage failures to 500.
package api
