package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")

	// ErrInvalidReferenceData is returned when ingredient or concern tables fail validation
	ErrInvalidReferenceData = errors.New("invalid reference data")

	// ErrInvalidPolicy is returned when scoring weights or verdict bands are inconsistent
	ErrInvalidPolicy = errors.New("invalid scoring policy")
)
