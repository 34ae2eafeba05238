package cache

import "errors"

// ErrCapacityExceeded is returned by Put when a single value is larger than
// the total cache capacity.
var ErrCapacityExceeded = errors.New("cache.capacity_exceeded")
