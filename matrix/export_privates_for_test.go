// SPDX-License-Identifier: MIT

package matrix

// Test-Bridge (White-Box) for Private Kernels
//
// Purpose:
//   - Expose UNEXPORTED ew* micro-kernels to matrix_test ONLY.
//   - The file name ends in _test.go, so it never reaches production builds.
//
// AI-Hints:
//   - If a private helper changes signature, mirror the change here once, not across many tests.

var (
	// EwBroadcastSubCols_TestOnly exposes ewBroadcastSubCols.
	EwBroadcastSubCols_TestOnly = ewBroadcastSubCols
	// EwScaleCols_TestOnly exposes ewScaleCols.
	EwScaleCols_TestOnly = ewScaleCols
	// EwScaleColsCSR_TestOnly exposes ewScaleColsCSR.
	EwScaleColsCSR_TestOnly = ewScaleColsCSR
)
