package configuration

import "experience-manager/core/rules"

// Completion is the sidebar checklist of the configuration section.
var Completion = rules.MustChecklist(
	rules.Rule{Field: "settings", Expr: `len(items) > 0`},
	rules.Rule{Field: "pax", Expr: `len(items) > 0 && all(items, .MinPax >= 1 && .MaxPax >= .MinPax)`},
	rules.Rule{Field: "confirmation", Expr: `len(items) > 0 && all(items, .ConfirmationMode in ["instant", "manual"])`},
	rules.Rule{Field: "languages", Expr: `len(items) > 0 && all(items, len(.Languages) > 0)`},
)
