// Package domain contains the core business entities of the service: the
// Task record, its mutable fields and the validation errors raised before
// any storage access takes place.
package domain
