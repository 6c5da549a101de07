// Package bid contains the Bid aggregate: a courier's priced proposal to
// carry a specific parcel. A bid is courier-owned while pending and becomes
// read-only history once terminal (selected, rejected, withdrawn, expired).
//
// The cross-bid invariant (at most one selected bid per parcel, with every
// competing pending bid rejected in the same instant) is enforced by the
// selection rule in the domain services package together with the
// transactional unit of work; this package only guarantees that a single
// bid's transitions are legal.
package bid
