package options

import (
	"slices"

	"experience-manager/core/reconcile"
)

// Option is a bookable variant of an experience.
type Option struct {
	ID              reconcile.EntityID `json:"id"`
	Title           string             `json:"title"`
	Code            string             `json:"code"`
	DurationMinutes int                `json:"duration_minutes"`
	Subchannels     []string           `json:"subchannels"`
	PaxTypes        []string           `json:"pax_types"`
	IsDefault       bool               `json:"is_default"`
}

func (o Option) EntityID() reconcile.EntityID              { return o.ID }
func (o Option) WithEntityID(id reconcile.EntityID) Option { o.ID = id; return o }

func (o Option) Clone() Option {
	o.Subchannels = slices.Clone(o.Subchannels)
	o.PaxTypes = slices.Clone(o.PaxTypes)
	return o
}

// optionDTO is an option as the options service returns it.
type optionDTO struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Code        string      `json:"internalCode"`
	Duration    durationDTO `json:"duration"`
	Subchannels []string    `json:"subchannels"`
	PaxTypes    []paxDTO    `json:"paxTypes"`
	Default     bool        `json:"default"`
}

type durationDTO struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

type paxDTO struct {
	Code string `json:"code"`
}

// optionPayload is the body of an option create or update.
type optionPayload struct {
	ExperienceID string      `json:"experienceId"`
	Title        string      `json:"title"`
	Code         string      `json:"internalCode"`
	Duration     durationDTO `json:"duration"`
	Subchannels  []string    `json:"subchannels"`
	Default      bool        `json:"default"`
}

// paxTypesPayload sets the pax types allowed on an option.
type paxTypesPayload struct {
	PaxTypes []string `json:"paxTypes"`
}
