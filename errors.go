package btreeset

import "errors"

// ErrInvalidOrder is returned by New when the requested order is below
// the minimum the algorithm requires to guarantee a borrow or merge
// always restores occupancy.
var ErrInvalidOrder = errors.New("btreeset: order must be at least 2")

// ErrInvariant marks a caught structural corruption: a page a back-end
// returned mixes leaf and internal children (I2), has keys out of order
// (I3), or the delete-scoped cache was asked to re-read a page it had
// already deleted. Check returns it wrapped with the offending detail;
// the cache panics with it instead, per spec: a legitimate algorithm
// path should never produce a deleted-then-read, so reaching one is a
// programming or storage-corruption error, not a recoverable case.
var ErrInvariant = errors.New("btreeset: structural invariant violated")
