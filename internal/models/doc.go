// Package models defines the core domain models for divvy.
//
// # Models
//
//   - User: a registered account identified by email
//   - Group: a named set of member users that owns expenses
//   - Expense: an amount paid by one member and split evenly across members
//   - Balance: per-user paid/owes/net figures computed over a group's expenses
//
// # Design Principles
//
//  1. **No circular references**: models reference each other by ID string,
//     never by pointer.
//  2. **Explicit resolution**: models carry raw IDs; the *Detail view types
//     carry user references resolved to {id, name, email}. Resolution happens
//     through declared store calls, never implicitly on read.
//  3. **Secrets stay internal**: User.PasswordHash is never serialized.
package models
