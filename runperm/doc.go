// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package runperm implements the Run-Permutation Layer (spec §4.5,
// component C5's generic half): it attaches caller-defined per-run data
// columns to a move.MoveStructure, either integrated into the same packed
// rows or held in a parallel packed table, and adds the up/down/pred/succ
// interval-granularity navigation spec §4.5 calls for.
//
// The reference implementation expresses user columns through template
// metaprogramming over a trait struct (spec §9). This package uses spec
// §9's prescribed replacement instead: a runtime storage-mode enum
// (Integrated/Separated) plus plain int column indices, with the caller
// responsible for defining its own named column constants (a "closed enum
// of column layouts" per spec §9, not a Go generic type parameter).
package runperm
