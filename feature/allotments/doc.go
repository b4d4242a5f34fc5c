// Package allotments implements the allotments section of an experience.
//
// An allotment is the capacity of one option over a date range, per weekday. The allotment
// service accepts the id chosen by the client, so new allotments carry a persisted-looking
// uuid from the start and are told apart from saved ones by their absence from the last
// saved snapshot.
package allotments
