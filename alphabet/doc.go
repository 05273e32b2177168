// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package alphabet implements the byte<->dense-code bijections RLBWT
// construction needs (spec §3, "Alphabet"): either a Dynamic alphabet that
// discovers σ <= 255 distinct byte values from the input, or the fixed
// Nucleotide alphabet ({TERM, SEP, A, C, G, T, N} -> {0..6}).
package alphabet
