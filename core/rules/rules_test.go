package rules_test

import (
	"testing"

	"experience-manager/core/reconcile"
	"experience-manager/core/rules"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slot struct {
	ID       reconcile.EntityID
	Title    string
	Capacity int
}

func (s slot) EntityID() reconcile.EntityID            { return s.ID }
func (s slot) WithEntityID(id reconcile.EntityID) slot { s.ID = id; return s }
func (s slot) Clone() slot                             { return s }

func TestChecklist_Evaluate(t *testing.T) {
	c, err := rules.NewChecklist([]rules.Rule{
		{Field: "present", Expr: "len(items) > 0"},
		{Field: "titles", Expr: `all(items, .Title != "")`},
		{Field: "capacity", Expr: "all(items, .Capacity > 0)"},
	})
	require.NoError(t, err)

	got, err := c.Evaluate([]slot{{Title: "A", Capacity: 4}, {Title: "", Capacity: 2}})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"present": true, "titles": false, "capacity": true}, got.Fields)
	assert.Equal(t, 67, got.Percentage)

	got, err = c.Evaluate([]slot{{Title: "A", Capacity: 1}})
	require.NoError(t, err)
	assert.Equal(t, 100, got.Percentage)
}

func TestChecklist_Empty(t *testing.T) {
	c := rules.MustChecklist()
	got, err := c.Evaluate(nil)
	require.NoError(t, err)
	assert.Equal(t, 100, got.Percentage)
	assert.Empty(t, got.Fields)
}

func TestNewChecklist_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		rules []rules.Rule
	}{
		{"MissingField", []rules.Rule{{Expr: "true"}}},
		{"DuplicateField", []rules.Rule{{Field: "a", Expr: "true"}, {Field: "a", Expr: "false"}}},
		{"EmptyExpression", []rules.Rule{{Field: "a"}}},
		{"SyntaxError", []rules.Rule{{Field: "a", Expr: "len(items"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rules.NewChecklist(tt.rules)
			assert.Error(t, err)
		})
	}
}

func TestChecklist_NonBooleanResult(t *testing.T) {
	c := rules.MustChecklist(rules.Rule{Field: "count", Expr: "len(items)"})
	_, err := c.Evaluate([]slot{{}})
	assert.ErrorContains(t, err, "not a boolean")
}

func TestPredicate(t *testing.T) {
	p, err := rules.NewPredicate("")
	require.NoError(t, err)
	assert.Equal(t, "true", p.String())
	ok, err := p.Eval(nil)
	require.NoError(t, err)
	assert.True(t, ok)

	p, err = rules.NewPredicate("none(items, .Capacity < 0)")
	require.NoError(t, err)
	ok, err = p.Eval([]slot{{Capacity: 1}, {Capacity: -1}})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSaveGate(t *testing.T) {
	p, err := rules.NewPredicate("len(items) <= 1")
	require.NoError(t, err)
	gate := rules.SaveGate[slot](p)

	ok, err := gate(reconcile.NewSectionData(slot{ID: reconcile.LocalID()}))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = gate(reconcile.NewSectionData(slot{ID: reconcile.LocalID()}, slot{ID: reconcile.LocalID()}))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConfig_CanSave(t *testing.T) {
	cfg := rules.Config{OptionsCanSave: "a", AllotmentsCanSave: "b", PricingCanSave: "c", ConfigurationCanSave: "d"}
	assert.Equal(t, "a", cfg.CanSave("options"))
	assert.Equal(t, "b", cfg.CanSave("allotments"))
	assert.Equal(t, "c", cfg.CanSave("pricing"))
	assert.Equal(t, "d", cfg.CanSave("configuration"))
	assert.Equal(t, "", cfg.CanSave("unknown"))
}
