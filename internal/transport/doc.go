// Package transport is the shared HTTP client behind the pixiu API
// functions.
//
// A Transport carries the base URL and a fixed request timeout. Outbound
// requests pass through a RequestInterceptor (a no-op unless one is set) and
// successful responses are decoded straight into the caller's value, so
// callers never see the response envelope. Failed calls are logged once here
// and the error is handed back to the caller as-is.
//
// A Transport holds no mutable state after New and may be shared by any
// number of goroutines.
package transport
