package configuration

import "experience-manager/core/sectionapi"

// NewFeature creates the configuration feature.
func NewFeature(rt *sectionapi.Runtime) (*sectionapi.Feature[Setting], error) {
	return sectionapi.NewFeature(rt, Blueprint(rt.Gateway), Completion)
}
