// Package storage provides backends for the subscription.Store contract.
//
// Every backend persists the two collections (subscriptions, products) as
// complete snapshots: a save replaces the whole collection, a load returns
// the whole collection or an empty one when nothing has been persisted.
//
//   - File stores each collection as a JSON file, written to a temporary
//     file and renamed into place so readers never see a partial write.
//   - Memory keeps snapshots in process memory, for tests and ephemeral runs.
//   - Postgres keeps snapshots in two tables, replacing them inside a
//     transaction. It is the drop-in transactional substitute for the file
//     backend; the Service contract does not change.
package storage
