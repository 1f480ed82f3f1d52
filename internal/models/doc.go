// Package models defines the core domain models for tipsplit.
//
// # Models
//
//   - Participant: one person on the roster, optionally with a locked amount
//   - BillState: bill total, tip percentage and the ordered roster
//   - DistributionResult: tip, grand total and per-participant shares
//   - ShareChange: one changed entry between two results
//
// BillState is the only input the calculator sees. DistributionResult is always
// recomputed from the current BillState and is never persisted, so amounts
// cannot go stale relative to the bill, tip or locks.
//
// # Design Principles
//
// 1. **Snapshots in, fresh values out**: the calculator receives a copy of the
// state and returns a new result
// 2. **Stable identity**: participants are referenced by ID, never by name,
// since names can be edited and repeated
// 3. **Exact values**: amounts are kept unrounded; rounding to cents is a
// display concern
package models
