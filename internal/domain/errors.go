package domain

import "errors"

var (
	// ErrProductNotFound is returned when a barcode has no OpenFoodFacts record
	ErrProductNotFound = errors.New("product not found in OpenFoodFacts")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrOFFAPIFailure is returned when an OpenFoodFacts API request fails
	ErrOFFAPIFailure = errors.New("OpenFoodFacts API request failed")
)
