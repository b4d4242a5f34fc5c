package pricing

import (
	"errors"
	"fmt"
	"time"

	"experience-manager/core/reconcile"
)

const dateLayout = "2006-01-02"

var (
	errCurrency       = errors.New("currency must be a three letter ISO 4217 code")
	errDateRange      = errors.New("date_from is after date_to")
	errNegativeAmount = errors.New("amount cannot be negative")
	errDuplicatePax   = errors.New("duplicate pax type")
)

func fromDTO(dto priceDTO) Price {
	p := Price{
		ID:       reconcile.PersistedID(dto.ID),
		OptionID: dto.OptionID,
		DateFrom: dto.Period.Start,
		DateTo:   dto.Period.End,
		Currency: dto.Currency,
	}
	for _, r := range dto.Rows {
		p.Rows = append(p.Rows, Row{PaxType: r.PaxType, Amount: r.Amount})
	}
	return p
}

func fromDTOs(dtos []priceDTO) []Price {
	out := make([]Price, 0, len(dtos))
	for _, dto := range dtos {
		out = append(out, fromDTO(dto))
	}
	return out
}

func validCurrency(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, c := range code {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}

func toPayload(experienceID string, p Price) (pricePayload, error) {
	if !validCurrency(p.Currency) {
		return pricePayload{}, fmt.Errorf("%q: %w", p.Currency, errCurrency)
	}
	from, err := time.Parse(dateLayout, p.DateFrom)
	if err != nil {
		return pricePayload{}, fmt.Errorf("date_from: %w", err)
	}
	to, err := time.Parse(dateLayout, p.DateTo)
	if err != nil {
		return pricePayload{}, fmt.Errorf("date_to: %w", err)
	}
	if from.After(to) {
		return pricePayload{}, errDateRange
	}
	if _, err := toRows(p); err != nil {
		return pricePayload{}, err
	}

	return pricePayload{
		ExperienceID: experienceID,
		OptionID:     p.OptionID,
		Period:       period{Start: p.DateFrom, End: p.DateTo},
		Currency:     p.Currency,
	}, nil
}

func toRows(p Price) (rowsPayload, error) {
	out := rowsPayload{Currency: p.Currency, Rows: make([]rowDTO, 0, len(p.Rows))}
	seen := make(map[string]struct{}, len(p.Rows))
	for _, r := range p.Rows {
		if r.Amount < 0 {
			return rowsPayload{}, fmt.Errorf("%s: %w", r.PaxType, errNegativeAmount)
		}
		if _, ok := seen[r.PaxType]; ok {
			return rowsPayload{}, fmt.Errorf("%s: %w", r.PaxType, errDuplicatePax)
		}
		seen[r.PaxType] = struct{}{}
		out.Rows = append(out.Rows, rowDTO{PaxType: r.PaxType, Amount: r.Amount})
	}
	return out, nil
}
