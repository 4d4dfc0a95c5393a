// Package shell contains the imperative shell around the pure loan domain: the interfaces of the
// collaborators (loan store, users and books directories), the mapping between store DTOs and
// domain types, error classification, the retry helper, display name resolution and shared
// observability helpers used by the command and query handlers.
package shell
