// Package parcel contains the Parcel aggregate: a sender's delivery request
// posted to the marketplace for couriers to bid on. The aggregate owns the
// forward-only lifecycle state machine (new, open_for_bids, bid_selected,
// pending_pickup, in_transit, delivered, canceled, failed) and the guards on
// every transition, including who is allowed to drive delivery progress.
//
// A parcel is sender-owned until a bid is selected; from then on the selected
// courier gains write access to delivery-progress transitions while the
// sender keeps read and cancel rights. Terminal states are immutable.
package parcel
