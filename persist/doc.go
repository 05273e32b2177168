// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package persist wraps move.MoveStructure, runperm.RunPerm, and
// rlbwt.Sequence's Serialize/Load with path-based I/O (local or "s3://",
// via github.com/grailbio/base/file), so a built structure can be saved to
// and loaded from the ".move" file spec §6 names without the caller
// managing byte buffers directly.
//
// It layers two integrity checks, both deliberately outside the
// byte-exact wire format spec §6 defines for a structure's own
// Serialize/Load (see SPEC_FULL.md's domain-stack notes): a seahash
// checksum over each component's raw serialized bytes, verified on load
// before those bytes ever reach move.Load/runperm.Load, and a whole-file
// highwayhash digest covering the checksummed payload, verified first and
// catching truncation or corruption the inner checksum alone would miss.
// An optional snappy or gzip compression stage sits between those two
// layers: the seahash checksum is computed over the uncompressed payload,
// and the highwayhash digest over the codec byte and the compressed bytes
// as written to the file.
package persist
