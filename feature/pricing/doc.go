// Package pricing implements the internal pricing section of an experience.
//
// A price applies to one option over a date range in one currency and holds one row per pax
// type. Amounts are integer minor units. Rows are a sub-resource of the price and are written
// with a second call.
package pricing
