package pricing

import "experience-manager/core/rules"

// Completion is the sidebar checklist of the internal pricing section.
var Completion = rules.MustChecklist(
	rules.Rule{Field: "prices", Expr: `len(items) > 0`},
	rules.Rule{Field: "option", Expr: `len(items) > 0 && all(items, .OptionID != "")`},
	rules.Rule{Field: "currency", Expr: `len(items) > 0 && all(items, len(.Currency) == 3)`},
	rules.Rule{Field: "rows", Expr: `len(items) > 0 && all(items, len(.Rows) > 0 && all(.Rows, .Amount > 0))`},
)
