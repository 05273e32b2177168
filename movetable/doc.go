// Package movetable implements the row-typed view (spec §4.2, component
// C2) over a packed.Table: it renames the first three columns
// ({LENGTH, POINTER, OFFSET} in relative mode, {START, POINTER, OFFSET} in
// absolute mode) and, when present, locates the RLBWT CHARACTER column and
// any RunPerm user columns appended after it.
//
// This is a small runtime enum plus offset arithmetic, replacing the
// template-metaprogrammed column-layout dispatch of the reference
// implementation (spec §9).
package movetable
