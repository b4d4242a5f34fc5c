package configuration

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"experience-manager/core/gateway"
	"experience-manager/core/reconcile"
	"experience-manager/core/sectionapi"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type service struct {
	mu       sync.Mutex
	settings []settingDTO
	created  []settingPayload
	updated  map[string]settingPayload
}

func (s *service) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /experiences/{eid}/configurations", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		assert.NoError(t, json.NewEncoder(w).Encode(s.settings))
	})
	mux.HandleFunc("POST /experiences/{eid}/configurations", func(w http.ResponseWriter, r *http.Request) {
		var p settingPayload
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &p))

		s.mu.Lock()
		defer s.mu.Unlock()
		s.created = append(s.created, p)
		dto := p.settingDTO
		dto.ID = "cfg-new"
		s.settings = append(s.settings, dto)
		w.Header().Set("Location", "/configurations/cfg-new")
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("PUT /configurations/{id}", func(w http.ResponseWriter, r *http.Request) {
		var p settingPayload
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &p))

		s.mu.Lock()
		defer s.mu.Unlock()
		s.updated[r.PathValue("id")] = p
		for i := range s.settings {
			if s.settings[i].ID == r.PathValue("id") {
				s.settings[i] = p.settingDTO
			}
		}
		w.WriteHeader(http.StatusNoContent)
	})
	return mux
}

func setup(t *testing.T, svc *service) *reconcile.Section[Setting] {
	t.Helper()
	srv := httptest.NewServer(svc.handler(t))
	t.Cleanup(srv.Close)

	rt := &sectionapi.Runtime{Gateway: gateway.New(gateway.Config{BaseURL: srv.URL})}
	create, err := sectionapi.NewFactory(rt, Blueprint(rt.Gateway))
	require.NoError(t, err)
	section, err := create(context.Background(), "exp-1")
	require.NoError(t, err)
	return section
}

func TestConfiguration_Save(t *testing.T) {
	svc := &service{
		settings: []settingDTO{{
			ID:           "cfg1",
			OptionID:     "opt1",
			CutoffHours:  1.5,
			Participants: paxRange{Min: 1, Max: 10},
			Confirmation: "INSTANT",
			Languages:    []string{"en"},
		}},
		updated: make(map[string]settingPayload),
	}
	section := setup(t, svc)

	loaded := section.WorkingCopy().Items[0]
	assert.Equal(t, 90, loaded.CutoffMinutes)
	assert.Equal(t, ConfirmationInstant, loaded.ConfirmationMode)

	loaded.MaxPax = 12
	require.NoError(t, section.Update(loaded))
	_, err := section.Add(Setting{OptionID: "opt2", CutoffMinutes: 30, MinPax: 2, MaxPax: 6, ConfirmationMode: ConfirmationManual})
	require.NoError(t, err)

	_, err = section.Save(context.Background())
	require.NoError(t, err)

	svc.mu.Lock()
	require.Len(t, svc.created, 1)
	created := svc.created[0]
	updated := svc.updated["cfg1"]
	svc.mu.Unlock()

	assert.Equal(t, "exp-1", created.ExperienceID)
	assert.Empty(t, created.ID, "local ids are never sent")
	assert.Equal(t, "MANUAL", created.Confirmation)
	assert.InDelta(t, 0.5, created.CutoffHours, 1e-9)
	assert.Equal(t, []string{}, created.Languages)
	assert.Equal(t, 12, updated.Participants.Max)
	assert.Equal(t, "cfg1", updated.ID)

	items := section.WorkingCopy().Items
	require.Len(t, items, 2)
	assert.Equal(t, reconcile.PersistedID("cfg-new"), items[1].ID)
	assert.Equal(t, ConfirmationManual, items[1].ConfirmationMode)
}

func TestMapping_Validation(t *testing.T) {
	valid := Setting{ID: reconcile.PersistedID("cfg1"), OptionID: "opt1", MinPax: 1, MaxPax: 4, ConfirmationMode: ConfirmationInstant}
	_, err := toPayload("exp-1", valid)
	require.NoError(t, err)

	unbounded := valid
	unbounded.MaxPax = 0
	_, err = toPayload("exp-1", unbounded)
	assert.NoError(t, err)

	tests := []struct {
		name string
		edit func(*Setting)
		want error
	}{
		{"Cutoff", func(s *Setting) { s.CutoffMinutes = -1 }, errCutoff},
		{"ZeroMin", func(s *Setting) { s.MinPax = 0 }, errPaxRange},
		{"MinAboveMax", func(s *Setting) { s.MinPax = 5 }, errPaxRange},
		{"Mode", func(s *Setting) { s.ConfirmationMode = "auto" }, errConfirmation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := valid.Clone()
			tt.edit(&bad)
			_, err := toPayload("exp-1", bad)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCompletion(t *testing.T) {
	items := []Setting{{MinPax: 1, MaxPax: 4, ConfirmationMode: ConfirmationManual, Languages: []string{"en"}}}
	c, err := Completion.Evaluate(items)
	require.NoError(t, err)
	assert.Equal(t, 100, c.Percentage)

	items[0].ConfirmationMode = ""
	c, err = Completion.Evaluate(items)
	require.NoError(t, err)
	assert.False(t, c.Fields["confirmation"])
	assert.Equal(t, 75, c.Percentage)
}
