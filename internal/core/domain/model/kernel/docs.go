// Package kernel contains shared value objects used across the domain model:
// identifiers and money amounts. Value objects here are immutable, compared
// by value, and must be created through their constructor functions; zero
// values fail Validate.
package kernel
