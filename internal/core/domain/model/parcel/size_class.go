package parcel

import (
	"fmt"

	"parcelmatch/internal/pkg/errs"
)

// SizeClass buckets parcels into the four marketplace size categories.
// Couriers filter available parcels by size class, so the wire names are
// fixed.
type SizeClass int

const (
	// SizeUnknown represents an invalid or undefined size class.
	SizeUnknown SizeClass = iota

	Small
	Medium
	Large
	ExtraLarge
)

func getSizeClassStrings() map[SizeClass]string {
	//nolint:exhaustive // SizeUnknown is intentionally excluded as it's invalid
	return map[SizeClass]string{
		Small:      "small",
		Medium:     "medium",
		Large:      "large",
		ExtraLarge: "extra_large",
	}
}

// SizeClassFromString parses the wire representation of a size class.
func SizeClassFromString(s string) (SizeClass, error) {
	for size, str := range getSizeClassStrings() {
		if str == s {
			return size, nil
		}
	}
	return SizeUnknown, errs.NewValidationErrorWithCause("sizeClass", fmt.Errorf("%q is not a valid size class", s))
}

// Validate checks that the SizeClass holds one of the defined categories.
func (s SizeClass) Validate() error {
	if _, ok := getSizeClassStrings()[s]; !ok {
		return errs.NewValidationErrorWithCause("sizeClass", fmt.Errorf("%d is not a valid size class", s))
	}
	return nil
}

// String returns the wire name of the size class.
func (s SizeClass) String() string {
	if str, ok := getSizeClassStrings()[s]; ok {
		return str
	}
	return "unknown"
}
