package cache

import "github.com/pkg/errors"

var (
	// ErrAlreadyInProgress appears when attempting to mark a cache as in progress while it is
	// already in progress. The client should handle this error and wait for the in progress
	// data to resolve via Get.
	ErrAlreadyInProgress = errors.New("already in progress")
	errCastingFailed     = errors.New("item in cache is not of type state.BeaconState")
)
