// Package models defines the core domain records for eventbudget.
//
// # Models
//
//   - User: a registered account; owns the events it creates
//   - Event: a shared occasion (e.g. a trip) with standard budgets per participant type
//   - Participant: an adult or child attending an event, optionally paired with a partner
//   - Payment: money paid towards an event, optionally linked to a participant
//
// # Design Principles
//
//  1. **Ids, not pointers**: relationships (creator, event, partner) are stored as id strings
//  2. **Symmetric pairing**: a partner link is always written on both participants at once by
//     the storage layer; readers never repair it
//  3. **Exact money**: amounts are shopspring decimals, never floats
//
// Budget figures are not stored. They are derived on read by package budget.
package models
