package configuration

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"experience-manager/core/reconcile"
)

var (
	errPaxRange     = errors.New("min_pax must be between 1 and max_pax")
	errCutoff       = errors.New("cutoff cannot be negative")
	errConfirmation = errors.New("unknown confirmation mode")
)

func fromDTO(dto settingDTO) Setting {
	s := Setting{
		ID:               reconcile.PersistedID(dto.ID),
		OptionID:         dto.OptionID,
		CutoffMinutes:    int(math.Round(dto.CutoffHours * 60)),
		MinPax:           dto.Participants.Min,
		MaxPax:           dto.Participants.Max,
		ConfirmationMode: strings.ToLower(dto.Confirmation),
	}
	if len(dto.Languages) > 0 {
		s.Languages = dto.Languages
	}
	return s
}

func fromDTOs(dtos []settingDTO) []Setting {
	out := make([]Setting, 0, len(dtos))
	for _, dto := range dtos {
		out = append(out, fromDTO(dto))
	}
	return out
}

func toPayload(experienceID string, s Setting) (settingPayload, error) {
	if s.CutoffMinutes < 0 {
		return settingPayload{}, errCutoff
	}
	if s.MinPax < 1 || (s.MaxPax > 0 && s.MinPax > s.MaxPax) {
		return settingPayload{}, fmt.Errorf("%d..%d: %w", s.MinPax, s.MaxPax, errPaxRange)
	}
	switch s.ConfirmationMode {
	case ConfirmationInstant, ConfirmationManual:
	default:
		return settingPayload{}, fmt.Errorf("%q: %w", s.ConfirmationMode, errConfirmation)
	}
	languages := s.Languages
	if languages == nil {
		languages = []string{}
	}
	var id string
	if s.ID.IsPersisted() {
		id = s.ID.Value()
	}

	return settingPayload{
		ExperienceID: experienceID,
		settingDTO: settingDTO{
			ID:           id,
			OptionID:     s.OptionID,
			CutoffHours:  float64(s.CutoffMinutes) / 60,
			Participants: paxRange{Min: s.MinPax, Max: s.MaxPax},
			Confirmation: strings.ToUpper(s.ConfirmationMode),
			Languages:    languages,
		},
	}, nil
}
