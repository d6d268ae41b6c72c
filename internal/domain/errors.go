package domain

import "errors"

// Sentinel errors for the event store.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
	// ErrUpstream marks failures of an external data source such as Sessionize.
	ErrUpstream = errors.New("upstream error")
	// ErrCacheMiss is returned by EventCache.Get when the event is not cached.
	ErrCacheMiss = errors.New("cache miss")
	// ErrCacheStale is returned by EventCache.Set when the event changed since the fill began.
	ErrCacheStale = errors.New("stale cache fill")
)
