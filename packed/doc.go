// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package packed implements fixed-shape, bit-packed row-major matrices: m
// rows of k unsigned-integer columns, each column with its own bit width
// chosen by the caller. A single contiguous byte buffer backs the whole
// matrix; every cell read or write touches at most one unaligned 64-bit
// word, so reads and writes are O(1) regardless of column count.
//
// Two interchangeable implementations are provided. Matrix bit-packs
// columns as tightly as their widths allow (any width up to 57 bits).
// AlignedMatrix rounds every column up to a whole number of bytes, trading
// roughly 25% more space for simpler, branch-free byte-slice loads; it
// satisfies the same Table interface and is a drop-in substitute.
package packed
