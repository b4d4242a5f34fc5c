// Package configuration implements the booking configuration section of an experience:
// per-option cutoff, group size limits, confirmation mode and languages.
package configuration
