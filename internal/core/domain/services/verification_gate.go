package services

import (
	"parcelmatch/internal/core/domain/model/account"
)

// Action categorizes what a user is trying to do, for the purpose of the
// verification gate. Lifecycle-affecting actions are gated; the allow-list
// actions are always reachable so a partially verified user can finish
// verifying.
type Action string

const (
	ActionPostParcel     Action = "post_package"
	ActionPlaceBid       Action = "place_bid"
	ActionSelectBid      Action = "select_bid"
	ActionWithdrawBid    Action = "withdraw_bid"
	ActionCancelParcel   Action = "cancel_package"
	ActionUpdateProgress Action = "update_progress"

	// Always-reachable surfaces.
	ActionDashboard    Action = "dashboard"
	ActionAuth         Action = "auth"
	ActionVerification Action = "verification"
)

// Redirect targets for incomplete verification, ordered by the flow the
// user should finish first.
const (
	RedirectVerifyEmail    = "/verify/email"
	RedirectVerifyPhone    = "/verify/phone"
	RedirectVerifyIdentity = "/verify/identity"
)

// Decision is the outcome of a gate check.
type Decision int

const (
	// Deferred means identity is unknown; a separate authentication guard
	// owns that case and the gate takes no position.
	Deferred Decision = iota

	// Allowed means the action may proceed.
	Allowed

	// Redirected means the action is denied and the user should be sent to
	// the named verification flow instead of shown an inline error.
	Redirected
)

// GateResult pairs the decision with the redirect target for Redirected.
type GateResult struct {
	Decision   Decision
	RedirectTo string
}

// VerificationGate is the single decision point from verification flags to
// allow/deny. It is a pure function of its inputs: no I/O, no clock, no
// rendering concerns, which keeps the role-by-flag matrix testable on its
// own.
//
// Rules:
//   - unknown identity (nil profile): defer
//   - allow-list actions (dashboard, auth, verification): allow
//   - admin: allow
//   - sender: email and phone verified
//   - courier and both: email, phone and id verified; "both" is held to
//     the stricter courier bar even for sender-only actions
type VerificationGate struct{}

// NewVerificationGate creates a new VerificationGate instance.
func NewVerificationGate() VerificationGate {
	return VerificationGate{}
}

// Decide evaluates the gate for a profile and a requested action.
// A nil profile means the identity is unknown.
func (g VerificationGate) Decide(profile *account.Profile, action Action) GateResult {
	if profile == nil {
		return GateResult{Decision: Deferred}
	}

	if isAlwaysReachable(action) {
		return GateResult{Decision: Allowed}
	}

	if profile.Role() == account.Admin {
		return GateResult{Decision: Allowed}
	}

	if !profile.EmailVerified() {
		return GateResult{Decision: Redirected, RedirectTo: RedirectVerifyEmail}
	}
	if !profile.PhoneVerified() {
		return GateResult{Decision: Redirected, RedirectTo: RedirectVerifyPhone}
	}
	if profile.Role().CarriesParcels() && !profile.IDVerified() {
		return GateResult{Decision: Redirected, RedirectTo: RedirectVerifyIdentity}
	}

	return GateResult{Decision: Allowed}
}

func isAlwaysReachable(action Action) bool {
	switch action {
	case ActionDashboard, ActionAuth, ActionVerification:
		return true
	default:
		return false
	}
}
