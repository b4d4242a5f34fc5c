package options

import "experience-manager/core/rules"

// Completion is the sidebar checklist of the options section.
var Completion = rules.MustChecklist(
	rules.Rule{Field: "options", Expr: `len(items) > 0`},
	rules.Rule{Field: "title", Expr: `len(items) > 0 && all(items, .Title != "")`},
	rules.Rule{Field: "code", Expr: `len(items) > 0 && all(items, .Code != "")`},
	rules.Rule{Field: "duration", Expr: `len(items) > 0 && all(items, .DurationMinutes > 0)`},
	rules.Rule{Field: "pax_types", Expr: `len(items) > 0 && all(items, len(.PaxTypes) > 0)`},
	rules.Rule{Field: "default", Expr: `one(items, .IsDefault)`},
)
