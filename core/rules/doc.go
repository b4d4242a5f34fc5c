// Package rules evaluates completion checklists and save gates over a section's working copy.
//
// Expressions are written in the expr language (github.com/expr-lang/expr) and see the
// working copy items as the "items" variable. Struct fields are addressed by their Go names:
//
//	all(items, .Title != "")
//	len(items) > 0 && none(items, .Capacity < 0)
//
// A Checklist turns a list of rules into per-field validity and a completion percentage.
// A Predicate is one boolean expression, used as a section's CanSave gate.
package rules
