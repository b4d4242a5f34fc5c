package options

import (
	"errors"
	"fmt"

	"experience-manager/core/reconcile"
)

var errNegativeDuration = errors.New("duration cannot be negative")

func fromDTO(dto optionDTO) Option {
	o := Option{
		ID:              reconcile.PersistedID(dto.ID),
		Title:           dto.Title,
		Code:            dto.Code,
		DurationMinutes: dto.Duration.Hours*60 + dto.Duration.Minutes,
		IsDefault:       dto.Default,
	}
	if len(dto.Subchannels) > 0 {
		o.Subchannels = dto.Subchannels
	}
	for _, p := range dto.PaxTypes {
		o.PaxTypes = append(o.PaxTypes, p.Code)
	}
	return o
}

func fromDTOs(dtos []optionDTO) []Option {
	out := make([]Option, 0, len(dtos))
	for _, dto := range dtos {
		out = append(out, fromDTO(dto))
	}
	return out
}

func toPayload(experienceID string, o Option) (optionPayload, error) {
	if o.DurationMinutes < 0 {
		return optionPayload{}, fmt.Errorf("option %q: %w", o.Title, errNegativeDuration)
	}
	subchannels := o.Subchannels
	if subchannels == nil {
		subchannels = []string{}
	}
	return optionPayload{
		ExperienceID: experienceID,
		Title:        o.Title,
		Code:         o.Code,
		Duration:     durationDTO{Hours: o.DurationMinutes / 60, Minutes: o.DurationMinutes % 60},
		Subchannels:  subchannels,
		Default:      o.IsDefault,
	}, nil
}

func toPaxTypes(o Option) paxTypesPayload {
	pax := o.PaxTypes
	if pax == nil {
		pax = []string{}
	}
	return paxTypesPayload{PaxTypes: pax}
}
