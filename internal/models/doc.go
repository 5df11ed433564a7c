// Package models defines the core domain models for Splitmate.
//
// # Models
//
//   - Friend: a member of the single shared group
//   - Expense: a payment by one friend, split evenly across a participant set
//   - Settlement: a direct payment from one friend to another
//
// # Design Principles
//
//  1. **One group**: there is no group or tenant model; every friend belongs to the ledger
//  2. **Integer IDs**: friends, expenses and settlements use surrogate int64 keys
//  3. **Avoid circular references**: relationships are IDs, never pointers
//  4. **Decimal money**: amounts are shopspring decimals, never float64
//
// # The distinguished friend
//
// One friend represents "me" for the you-owe / you-are-owed totals. It is not
// stored on the friend; callers pass its ID into the balance calculator.
// By convention it is the first-created friend (see calculator.ResolveDistinguished).
package models
