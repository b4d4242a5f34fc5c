package allotments

import (
	"slices"

	"experience-manager/core/reconcile"
)

// Weekdays holds one capacity per day of the week.
type Weekdays struct {
	Monday    int `json:"monday"`
	Tuesday   int `json:"tuesday"`
	Wednesday int `json:"wednesday"`
	Thursday  int `json:"thursday"`
	Friday    int `json:"friday"`
	Saturday  int `json:"saturday"`
	Sunday    int `json:"sunday"`
}

func (w Weekdays) slice() []int {
	return []int{w.Monday, w.Tuesday, w.Wednesday, w.Thursday, w.Friday, w.Saturday, w.Sunday}
}

// Allotment is the capacity of an option over a date range.
type Allotment struct {
	ID        reconcile.EntityID `json:"id"`
	OptionID  string             `json:"option_id"`
	DateFrom  string             `json:"date_from"`
	DateTo    string             `json:"date_to"`
	Capacity  Weekdays           `json:"capacity"`
	Languages []string           `json:"languages"`
}

func (a Allotment) EntityID() reconcile.EntityID                 { return a.ID }
func (a Allotment) WithEntityID(id reconcile.EntityID) Allotment { a.ID = id; return a }

func (a Allotment) Clone() Allotment {
	a.Languages = slices.Clone(a.Languages)
	return a
}

// allotmentDTO is an allotment as the allotment service exchanges it.
// Slots is indexed by ISO weekday, Monday first.
type allotmentDTO struct {
	ID        string   `json:"id"`
	OptionID  string   `json:"optionId"`
	From      string   `json:"from"`
	To        string   `json:"to"`
	Slots     []int    `json:"slots"`
	Languages []string `json:"languages"`
}
