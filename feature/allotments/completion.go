package allotments

import "experience-manager/core/rules"

// Completion is the sidebar checklist of the allotments section.
var Completion = rules.MustChecklist(
	rules.Rule{Field: "allotments", Expr: `len(items) > 0`},
	rules.Rule{Field: "option", Expr: `len(items) > 0 && all(items, .OptionID != "")`},
	rules.Rule{Field: "dates", Expr: `len(items) > 0 && all(items, .DateFrom != "" && .DateTo != "" && .DateFrom <= .DateTo)`},
	rules.Rule{Field: "capacity", Expr: `len(items) > 0 && all(items, .Capacity.Monday + .Capacity.Tuesday + .Capacity.Wednesday + .Capacity.Thursday + .Capacity.Friday + .Capacity.Saturday + .Capacity.Sunday > 0)`},
	rules.Rule{Field: "languages", Expr: `len(items) > 0 && all(items, len(.Languages) > 0)`},
)
