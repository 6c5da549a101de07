package bid

import (
	"fmt"

	"parcelmatch/internal/pkg/errs"
)

// Status represents the state of a single bid. Pending is the only live
// state; each of the four ways a bid can leave it is terminal:
//
//	Pending ──┬──> Selected   (sender accepted it)
//	          ├──> Rejected   (a competing bid was accepted)
//	          ├──> Withdrawn  (courier pulled it)
//	          └──> Expired    (bidding deadline passed)
//
// A terminal bid never transitions again.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending means the bid competes for the parcel.
	Pending

	// Selected means the sender accepted this bid. At most one bid per
	// parcel is ever in this state.
	Selected

	// Rejected means a competing bid was selected.
	Rejected

	// Withdrawn means the courier pulled the bid before a decision.
	Withdrawn

	// Expired means the parcel's bidding deadline passed while the bid was
	// still pending. Applied by the authoritative server-side sweep, never
	// by a client countdown.
	Expired
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Selected:  "selected",
		Rejected:  "rejected",
		Withdrawn: "withdrawn",
		Expired:   "expired",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "pending",
		Selected:  "selected",
		Rejected:  "rejected",
		Withdrawn: "withdrawn",
		Expired:   "expired",
	}
}

// StatusFromString parses the wire representation of a bid status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValidationErrorWithCause("status", fmt.Errorf("%q is not a valid bid status", s))
}

// Validate checks that the Status holds one of the defined values.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValidationErrorWithCause("status", fmt.Errorf("%d is not a valid bid status", s))
	}
	return nil
}

// String returns the wire name of the status. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the bid has left the pending state for good.
func (s Status) IsTerminal() bool {
	return s == Selected || s == Rejected || s == Withdrawn || s == Expired
}

// leavePending is the single transition rule: every move starts at Pending.
func (s Status) leavePending(to Status) (Status, error) {
	if s != Pending {
		return 0, errs.NewConflictError("bid", s.String(),
			fmt.Sprintf("cannot transition from %s to %s", s, to))
	}
	return to, nil
}

// Select transitions Pending -> Selected.
func (s Status) Select() (Status, error) {
	return s.leavePending(Selected)
}

// Reject transitions Pending -> Rejected.
func (s Status) Reject() (Status, error) {
	return s.leavePending(Rejected)
}

// Withdraw transitions Pending -> Withdrawn.
func (s Status) Withdraw() (Status, error) {
	return s.leavePending(Withdrawn)
}

// Expire transitions Pending -> Expired.
func (s Status) Expire() (Status, error) {
	return s.leavePending(Expired)
}
