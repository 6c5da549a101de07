// Package account contains the progressive identity-verification profile of
// a marketplace user: the role (sender, courier, both, admin) and the three
// verification flags (email, phone, government id). The verification gate in
// the domain services package reads this profile to decide which lifecycle
// actions a user may perform.
package account
