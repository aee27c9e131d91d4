package domain

import "errors"

// ErrSweepNotFound is returned when a sweep ID cannot be found in the store.
var ErrSweepNotFound = errors.New("sweep not found")

// ErrSweepAborted is returned when the abort failure policy stops the sweep
// before all combinations ran.
var ErrSweepAborted = errors.New("sweep aborted by failure policy")
