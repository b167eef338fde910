package eblb

import "errors"

var (
	// ErrParsing indicates structurally malformed input: a truncated or
	// oversized record, a sentinel field with the wrong value, a boolean
	// byte outside {0,1} or a tile payload of the wrong length.
	ErrParsing = errors.New("eblb: parsing error")

	// ErrBadData indicates input that is structurally plausible but
	// semantically invalid: non-zero mandatory padding, an out-of-range
	// type-table index or a non-rectangular tile grid.
	ErrBadData = errors.New("eblb: bad data")
)
