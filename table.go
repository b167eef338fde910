package eblb

import (
	"bytes"
	"fmt"
)

// typeTableMagic precedes the underworld type table, trailing null
// included.
const typeTableMagic = "UNDERWORLD_TYPES_TYP\x00"

// readTypeTable verifies the magic marker, reads count null-terminated
// names and skips the table's alignment padding.
func readTypeTable(r *reader, count int) ([]string, error) {
	magic, err := r.take(len(typeTableMagic))
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(magic, []byte(typeTableMagic)) {
		return nil, fmt.Errorf("%w: missing %q marker", ErrParsing, typeTableMagic[:len(typeTableMagic)-1])
	}

	types := make([]string, count)
	for i := range types {
		if types[i], err = r.cstring(); err != nil {
			return nil, err
		}
	}

	if err := r.skip(tableRegionPadding(types)); err != nil {
		return nil, err
	}

	return types, nil
}

// appendTypeTable writes the magic marker, the null-joined names with a
// trailing null, and the alignment padding.
func appendTypeTable(b []byte, types []string) []byte {
	b = append(b, typeTableMagic...)
	for _, s := range types {
		b = append(b, s...)
		b = append(b, 0)
	}
	return append(b, make([]byte, tableRegionPadding(types))...)
}

// tableRegionPadding spans the magic string (without its stored
// terminator) plus the names, matching how the table is laid out on disk.
func tableRegionPadding(types []string) int {
	return stringsPadding(append([]string{typeTableMagic[: len(typeTableMagic)-1]}, types...))
}

// buildTypeTable derives the encode-time table: the prior (decode-time)
// table keeps its order, unused entries included, and any new names
// follow in order of first use. Re-encoding an unmodified level
// therefore reproduces its original table byte for byte.
func buildTypeTable(objects []Object, prior []string) []string {
	types := make([]string, 0, len(prior))
	seen := make(map[string]bool, len(prior))
	for _, s := range prior {
		if !seen[s] {
			types = append(types, s)
			seen[s] = true
		}
	}
	for _, o := range objects {
		if !seen[o.UnderworldType] {
			types = append(types, o.UnderworldType)
			seen[o.UnderworldType] = true
		}
	}
	return types
}
