// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package rlbwt builds the RLBWT-derived permutations of spec §4.5
// (component C5's specializations): LF and FL between the BWT's L and F
// columns, and the suffix-array neighbor permutations Φ and Φ⁻¹ sampled at
// run boundaries. Each builder produces a move.MoveStructure carrying a
// CHARACTER column (LF/FL) or built in absolute mode for SA lookup
// (Φ/Φ⁻¹), per spec §4.5's construction algorithms.
package rlbwt
