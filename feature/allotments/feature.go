package allotments

import "experience-manager/core/sectionapi"

// NewFeature creates the allotments feature.
func NewFeature(rt *sectionapi.Runtime) (*sectionapi.Feature[Allotment], error) {
	return sectionapi.NewFeature(rt, Blueprint(rt.Gateway), Completion)
}
