package pricing

import "experience-manager/core/sectionapi"

// NewFeature creates the internal pricing feature.
func NewFeature(rt *sectionapi.Runtime) (*sectionapi.Feature[Price], error) {
	return sectionapi.NewFeature(rt, Blueprint(rt.Gateway), Completion)
}
