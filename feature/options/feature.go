package options

import "experience-manager/core/sectionapi"

// NewFeature creates the options feature.
func NewFeature(rt *sectionapi.Runtime) (*sectionapi.Feature[Option], error) {
	return sectionapi.NewFeature(rt, Blueprint(rt.Gateway), Completion)
}
