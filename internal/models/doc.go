// Package models defines the core domain models for Bill Split.
//
// # Models
//
//   - Item: a single line item on the bill, assignable to one or more users
//   - User: a person splitting the bill (no accounts, just display names)
//   - UserShare: one user's computed portion of the bill
//   - Breakdown: the full derived view (bill total plus all user shares)
//   - ExtractedBill: the validated response shape of the extraction service
//
// # Design Principles
//
//  1. The ledger (internal/ledger) is the only owner of Items and Users;
//     models carry no behavior beyond plain data.
//  2. Relationships use ID strings instead of pointers, so snapshots can be
//     copied and serialized without aliasing ledger state.
//  3. Derived types (UserShare, Breakdown) are produced fresh by the
//     calculator and never stored or mutated in place.
package models
