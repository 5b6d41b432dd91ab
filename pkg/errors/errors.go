// Package errors holds cross-cutting sentinel errors.
package errors

import "errors"

// ErrOptimisticLock is returned when a versioned record was modified by
// another operation between read and write.
var ErrOptimisticLock = errors.New("record was modified by another operation, refresh and retry")
