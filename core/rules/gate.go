package rules

import "experience-manager/core/reconcile"

// SaveGate adapts p to the CanSave hook of a section.
func SaveGate[T reconcile.Entity[T]](p *Predicate) func(reconcile.SectionData[T]) (bool, error) {
	return func(data reconcile.SectionData[T]) (bool, error) {
		return p.Eval(data.Items)
	}
}
