// Package classy computes a hierarchical, allocation-annotated breakdown of a
// financial portfolio from a flat set of account balances.
//
// The engine works in three stages:
//   - Aggregation: valued account positions are grouped into a three-level
//     classification tree (portfolio, asset class, asset subclass, account)
//     with running totals, driven by per-commodity classification metadata.
//   - Allocation: a second pass annotates every level of the tree with its
//     percentage share of the portfolio, class, and subclass totals.
//   - Flattening: the rowspan subpackage turns the tree into a render-ready
//     table structure where group labels carry the number of physical rows
//     they must span.
//
// Cost basis, prices, and market values enter through the ValueResolver
// interface; the Snapshot type provides a reference implementation backed by
// an immutable set of balances and price histories. The engine itself is a
// pure, single-pass-per-request transform: it holds no state between calls
// and is safe to invoke concurrently over different snapshots.
//
// This package is the foundational logic for the `cpf` command-line tool.
package classy
