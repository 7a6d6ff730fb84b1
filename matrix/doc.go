// SPDX-License-Identifier: MIT

// Package matrix provides the dense row-major float64 storage used for cost
// matrices and shipment plans.
//
// What & Why:
//
//	Dense keeps its values in one flat buffer (offset = i*cols + j), which is
//	cache friendly for the row-by-row scans performed by the transportation
//	solver. The public surface never panics on bad indices: At and Set return
//	ErrOutOfRange wrapped with the offending coordinates.
//
// Numeric policy:
//
//	By default Set and NewDenseFromRows reject NaN and ±Inf (ErrNaNInf).
//	Cost and shipment data are always finite, so the policy is not configurable
//	per instance; callers that need to stage non-finite values should keep them
//	outside Dense.
//
// Complexity quicksheet:
//
//	NewDense: O(r*c) zero-init; At/Set: O(1); Clone/ToRows: O(r*c);
//	RowSums/ColSums: O(r*c).
package matrix
