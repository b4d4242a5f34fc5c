package configuration

import (
	"slices"

	"experience-manager/core/reconcile"
)

// Confirmation modes accepted by the configuration service.
const (
	ConfirmationInstant = "instant"
	ConfirmationManual  = "manual"
)

// Setting is the booking configuration of one option.
type Setting struct {
	ID               reconcile.EntityID `json:"id"`
	OptionID         string             `json:"option_id"`
	CutoffMinutes    int                `json:"cutoff_minutes"`
	MinPax           int                `json:"min_pax"`
	MaxPax           int                `json:"max_pax"`
	ConfirmationMode string             `json:"confirmation_mode"`
	Languages        []string           `json:"languages"`
}

func (s Setting) EntityID() reconcile.EntityID               { return s.ID }
func (s Setting) WithEntityID(id reconcile.EntityID) Setting { s.ID = id; return s }

func (s Setting) Clone() Setting {
	s.Languages = slices.Clone(s.Languages)
	return s
}

type settingDTO struct {
	ID           string   `json:"id,omitempty"`
	OptionID     string   `json:"optionId"`
	CutoffHours  float64  `json:"cutoffHours"`
	Participants paxRange `json:"participants"`
	Confirmation string   `json:"confirmation"`
	Languages    []string `json:"languages"`
}

type paxRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type settingPayload struct {
	ExperienceID string `json:"experienceId"`
	settingDTO
}
