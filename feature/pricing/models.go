package pricing

import (
	"slices"

	"experience-manager/core/reconcile"
)

// Row is the price of one pax type, in minor units.
type Row struct {
	PaxType string `json:"pax_type"`
	Amount  int64  `json:"amount"`
}

// Price is an internal price of an option over a date range.
type Price struct {
	ID       reconcile.EntityID `json:"id"`
	OptionID string             `json:"option_id"`
	DateFrom string             `json:"date_from"`
	DateTo   string             `json:"date_to"`
	Currency string             `json:"currency"`
	Rows     []Row              `json:"rows"`
}

func (p Price) EntityID() reconcile.EntityID             { return p.ID }
func (p Price) WithEntityID(id reconcile.EntityID) Price { p.ID = id; return p }

func (p Price) Clone() Price {
	p.Rows = slices.Clone(p.Rows)
	return p
}

type priceDTO struct {
	ID       string   `json:"id"`
	OptionID string   `json:"optionId"`
	Period   period   `json:"period"`
	Currency string   `json:"currency"`
	Rows     []rowDTO `json:"rows"`
}

type period struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type rowDTO struct {
	PaxType string `json:"paxType"`
	Amount  int64  `json:"amountCents"`
}

type pricePayload struct {
	ExperienceID string `json:"experienceId"`
	OptionID     string `json:"optionId"`
	Period       period `json:"period"`
	Currency     string `json:"currency"`
}

type rowsPayload struct {
	Currency string   `json:"currency"`
	Rows     []rowDTO `json:"rows"`
}
