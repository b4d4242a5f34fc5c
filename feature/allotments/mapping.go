package allotments

import (
	"errors"
	"fmt"
	"time"

	"experience-manager/core/reconcile"
)

const dateLayout = "2006-01-02"

var (
	errDateRange        = errors.New("date_from is after date_to")
	errNegativeCapacity = errors.New("capacity cannot be negative")
	errMissingOption    = errors.New("option_id is required")
)

func fromDTO(dto allotmentDTO) Allotment {
	a := Allotment{
		ID:       reconcile.PersistedID(dto.ID),
		OptionID: dto.OptionID,
		DateFrom: dto.From,
		DateTo:   dto.To,
	}
	slots := make([]int, 7)
	copy(slots, dto.Slots)
	a.Capacity = Weekdays{slots[0], slots[1], slots[2], slots[3], slots[4], slots[5], slots[6]}
	if len(dto.Languages) > 0 {
		a.Languages = dto.Languages
	}
	return a
}

func fromDTOs(dtos []allotmentDTO) []Allotment {
	out := make([]Allotment, 0, len(dtos))
	for _, dto := range dtos {
		out = append(out, fromDTO(dto))
	}
	return out
}

func toDTO(_ string, a Allotment) (allotmentDTO, error) {
	if a.OptionID == "" {
		return allotmentDTO{}, errMissingOption
	}
	from, err := time.Parse(dateLayout, a.DateFrom)
	if err != nil {
		return allotmentDTO{}, fmt.Errorf("date_from: %w", err)
	}
	to, err := time.Parse(dateLayout, a.DateTo)
	if err != nil {
		return allotmentDTO{}, fmt.Errorf("date_to: %w", err)
	}
	if from.After(to) {
		return allotmentDTO{}, fmt.Errorf("%s > %s: %w", a.DateFrom, a.DateTo, errDateRange)
	}

	slots := a.Capacity.slice()
	for _, n := range slots {
		if n < 0 {
			return allotmentDTO{}, errNegativeCapacity
		}
	}
	languages := a.Languages
	if languages == nil {
		languages = []string{}
	}
	return allotmentDTO{
		ID:        a.ID.Value(),
		OptionID:  a.OptionID,
		From:      a.DateFrom,
		To:        a.DateTo,
		Slots:     slots,
		Languages: languages,
	}, nil
}
