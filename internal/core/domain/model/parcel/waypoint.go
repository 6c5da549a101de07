package parcel

import (
	"errors"

	"parcelmatch/internal/pkg/errs"
)

// ErrWaypointIsNotConstructed indicates a zero-value Waypoint that bypassed
// NewWaypoint.
var ErrWaypointIsNotConstructed = errs.NewValueIsRequiredError("Waypoint must be created via NewWaypoint")

// Waypoint is the pickup or dropoff endpoint of a parcel: a street address
// plus the contact to call on arrival. Geocoding is an external concern;
// the engine only carries the address text.
//
// Waypoint is an immutable value object.
type Waypoint struct {
	address       string
	contactName   string
	contactPhone  string
	isConstructed bool
}

// NewWaypoint creates a validated Waypoint. Address and contact name are
// required; the phone number is optional because some senders only accept
// in-app messages.
func NewWaypoint(address, contactName, contactPhone string) (Waypoint, error) {
	if err := errors.Join(
		requireNonEmpty("address", address),
		requireNonEmpty("contactName", contactName),
	); err != nil {
		return Waypoint{}, err
	}

	return Waypoint{
		address:       address,
		contactName:   contactName,
		contactPhone:  contactPhone,
		isConstructed: true,
	}, nil
}

func requireNonEmpty(param, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(param)
	}
	return nil
}

// Address returns the street address.
func (w Waypoint) Address() string {
	return w.address
}

// ContactName returns the on-site contact's name.
func (w Waypoint) ContactName() string {
	return w.contactName
}

// ContactPhone returns the contact phone number, empty when not provided.
func (w Waypoint) ContactPhone() string {
	return w.contactPhone
}

// IsEqual compares two waypoints field by field.
func (w Waypoint) IsEqual(other Waypoint) bool {
	return w.address == other.address &&
		w.contactName == other.contactName &&
		w.contactPhone == other.contactPhone
}

// Validate returns ErrWaypointIsNotConstructed for the zero value.
func (w Waypoint) Validate() error {
	if !w.isConstructed {
		return ErrWaypointIsNotConstructed
	}
	return nil
}
