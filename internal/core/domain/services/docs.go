// Package services provides domain services that orchestrate business rules
// spanning more than one aggregate.
//
// The package includes:
//   - BidSelector: the atomic "exactly one winner" selection rule across a
//     parcel and all of its bids
//   - VerificationGate: the pure decision function from a user's
//     verification profile to allow/redirect/defer for a requested action
//
// Domain services hold no state and perform no I/O; persistence and event
// publication around them belong to the application layer.
package services
