// Package nft computes the nonlinear Fourier transform (NFT) of the nonlinear
// Schrödinger equation in pure Go.
//
// The transform is the scattering problem of the Zakharov–Shabat system
//
//	v_t = [[-iλ, q(t)], [-κ·conj(q(t)), iλ]]·v,   κ = +1 (focusing) or -1 (defocusing),
//
// solved numerically for a sampled potential q. The package implements the
// forward transform for vanishing boundaries (continuous spectrum and bound
// states), its inverse, and the main and auxiliary spectra of periodic
// potentials.
//
// # Features
//
//   - Nineteen splitting discretizations from first-order Lie splitting to
//     eighth-order extrapolated Strang splitting, plus the exact
//     piecewise-constant exponential (BO)
//   - Bound-state localization by polynomial root finding, Newton's method,
//     or subsampling with full-resolution refinement
//   - Norming constants computed bidirectionally, and residues
//   - Inverse transform by minimum-phase cepstrum and layer peeling, with
//     optional defect correction, and Darboux transforms for bound states
//   - Richardson extrapolation of forward results
//   - Data-parallel frequency sweeps with deterministic output
//   - SIMD-accelerated vector kernels via github.com/tphakala/simd
//
// # Quick Start
//
// Forward transform of q(t) = sech(t) sampled on [-20, 20]:
//
//	tw := nft.TimeWindow{T1: -20, T2: 20}
//	res, err := nft.ForwardSimple(q, tw, nft.Focusing)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.BoundStates)      // ≈ [0.5i]
//	fmt.Println(res.NormingConstants) // ≈ [-1]
//
// The inverse needs a frequency window tied to the time grid:
//
//	fw, err := nft.InverseXi(d, tw, m, nft.Split2A)
//	// evaluate or supply the reflection coefficient on fw.Nodes()
//	inv, err := nft.Inverse(refl, fw, nil, nil, d, tw, nft.Focusing, nil)
//
// # Options
//
// Each transform takes an options struct whose zero value selects the
// defaults; a nil pointer means all defaults. Options are validated once at
// call entry and invalid values return [ErrInvalidArgument].
//
// # Errors and Status
//
// Conditions that prevent a result are errors ([ErrInvalidArgument],
// [ErrFatal]). Recoverable conditions are reported as [Status] bits on the
// result: [StatusDegenerate] for frequency nodes where a(ξ) vanished,
// [StatusNonConvergence] for dropped Newton seeds or an inverse iteration
// that hit its cap, and [StatusCapacityExceeded] for truncated spectra.
//
// # Grids
//
// With vanishing boundaries, D samples sit at T1 + n·h, h = (T2-T1)/(D-1),
// and each represents a cell of width h centred on it. With periodic
// boundaries, h = (T2-T1)/D and T2 is one period after T1.
package nft
