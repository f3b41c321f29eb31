// Package aemultigrid assembles the per-level operators consumed by a
// multigrid angular-embedding solver: the degree-normalized diffusion
// operator P, the constraint operator U with the incomplete factor R of its
// normal-equations matrix, and the incremental blocks Ua/Ub/Rb that couple a
// level to its finer neighbor.
//
// The entry point is Build, which walks a vectorized multilevel Problem from
// the finest level to the coarsest, folding each level's weights into the
// next by truncation or by analytic (Schur-style) elimination through the
// constraint structure.
package aemultigrid
