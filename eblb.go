/*
Package eblb decodes and encodes the EBLB binary level files used by a
side-scrolling game engine.

A level file holds a table of "underworld type" names, a list of placed
objects referencing that table, a default camera rectangle, a list of
entrance/exit doors each linked to a destination scene, and a trailing
tile grid of one byte per cell. All multi-byte fields are little-endian.

Level implements encoding.BinaryMarshaler and encoding.BinaryUnmarshaler
for the on-disk format, and carries json/yaml struct tags for an editable
structured form.
*/
package eblb
