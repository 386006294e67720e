// Package store contains the data-access layer. Every operation takes a
// context and a database handle and returns (value, error). A missing row is
// (nil, nil); a uniqueness conflict is ErrDuplicate. Nothing in this package
// logs — callers decide how to surface failures.
package store

import "errors"

// ErrDuplicate is returned when an insert would violate a uniqueness
// constraint (classification name, (make, model, year) tuple, wishlist pair).
var ErrDuplicate = errors.New("already exists")
