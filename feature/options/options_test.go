package options

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"

	"experience-manager/core/gateway"
	"experience-manager/core/reconcile"
	"experience-manager/core/sectionapi"
	"experience-manager/core/session"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// service is an in-memory options service.
type service struct {
	mu      sync.Mutex
	next    int
	options map[string]optionDTO
	calls   []string
	failPax bool
}

func newService(seed ...optionDTO) *service {
	s := &service{options: make(map[string]optionDTO)}
	for _, o := range seed {
		s.options[o.ID] = o
	}
	return s
}

func (s *service) record(r *http.Request) {
	s.calls = append(s.calls, r.Method+" "+r.URL.Path)
}

func (s *service) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /experiences/{eid}/options", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		out := make([]optionDTO, 0, len(s.options))
		for _, o := range s.options {
			out = append(out, o)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
		w.Header().Set("Content-Type", "application/json")
		assert.NoError(t, json.NewEncoder(w).Encode(out))
	})
	mux.HandleFunc("POST /experiences/{eid}/options", func(w http.ResponseWriter, r *http.Request) {
		var p optionPayload
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &p))
		assert.Equal(t, r.PathValue("eid"), p.ExperienceID)

		s.mu.Lock()
		defer s.mu.Unlock()
		s.record(r)
		s.next++
		id := fmt.Sprintf("opt-new-%d", s.next)
		s.options[id] = optionDTO{ID: id, Title: p.Title, Code: p.Code, Duration: p.Duration, Subchannels: p.Subchannels, Default: p.Default}
		w.Header().Set("Location", "/api/v1/options/"+id)
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("PUT /options/{id}", func(w http.ResponseWriter, r *http.Request) {
		var p optionPayload
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &p))

		s.mu.Lock()
		defer s.mu.Unlock()
		s.record(r)
		o, ok := s.options[r.PathValue("id")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		o.Title, o.Code, o.Duration, o.Subchannels, o.Default = p.Title, p.Code, p.Duration, p.Subchannels, p.Default
		s.options[o.ID] = o
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("PUT /options/{id}/pax-types", func(w http.ResponseWriter, r *http.Request) {
		var p paxTypesPayload
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &p))

		s.mu.Lock()
		defer s.mu.Unlock()
		s.record(r)
		if s.failPax {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		o := s.options[r.PathValue("id")]
		o.PaxTypes = nil
		for _, code := range p.PaxTypes {
			o.PaxTypes = append(o.PaxTypes, paxDTO{Code: code})
		}
		s.options[o.ID] = o
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("DELETE /options/{id}", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.record(r)
		delete(s.options, r.PathValue("id"))
		w.WriteHeader(http.StatusNoContent)
	})
	return mux
}

func (s *service) sortedCalls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]string(nil), s.calls...)
	sort.Strings(out)
	return out
}

func setup(t *testing.T, svc *service) *reconcile.Section[Option] {
	t.Helper()
	srv := httptest.NewServer(svc.handler(t))
	t.Cleanup(srv.Close)

	rt := &sectionapi.Runtime{
		Gateway:  gateway.New(gateway.Config{BaseURL: srv.URL}),
		Sessions: session.Config{Size: 4, TTLMinutes: 5},
	}
	create, err := sectionapi.NewFactory(rt, Blueprint(rt.Gateway))
	require.NoError(t, err)
	section, err := create(context.Background(), "exp-1")
	require.NoError(t, err)
	return section
}

func seed() []optionDTO {
	return []optionDTO{
		{ID: "opt1", Title: "Morning", Code: "AM", Duration: durationDTO{Hours: 2}, PaxTypes: []paxDTO{{Code: "adult"}}, Default: true},
		{ID: "opt2", Title: "Evening", Code: "PM", Duration: durationDTO{Hours: 1, Minutes: 30}},
	}
}

func TestOptions_Load(t *testing.T) {
	section := setup(t, newService(seed()...))

	view := section.View()
	assert.Equal(t, reconcile.StateSettled, view.State)
	require.Len(t, view.WorkingCopy.Items, 2)

	first := view.WorkingCopy.Items[0]
	assert.Equal(t, reconcile.PersistedID("opt1"), first.ID)
	assert.Equal(t, 120, first.DurationMinutes)
	assert.Equal(t, []string{"adult"}, first.PaxTypes)
	assert.Equal(t, 90, view.WorkingCopy.Items[1].DurationMinutes)
	assert.Equal(t, view.LastSaved.Items, view.WorkingCopy.Items)
}

func TestOptions_Save(t *testing.T) {
	svc := newService(seed()...)
	section := setup(t, svc)

	require.NoError(t, section.Edit(func(data *reconcile.SectionData[Option]) error {
		data.Items[0].Title = "Edited"
		data.Items = data.Items[:1]
		return nil
	}))
	added, err := section.Add(Option{Title: "Sunset", Code: "SS", DurationMinutes: 75, PaxTypes: []string{"adult", "child"}})
	require.NoError(t, err)
	require.True(t, added.ID.IsLocal())

	plan := section.Plan()
	require.Len(t, plan.New, 1)
	require.Len(t, plan.Edited, 1)
	assert.Equal(t, "Edited", plan.Edited[0].Title)
	assert.Equal(t, []reconcile.EntityID{reconcile.PersistedID("opt2")}, plan.RemovedIDs)

	report, err := section.Save(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Succeeded())

	assert.Equal(t, []string{
		"DELETE /options/opt2",
		"POST /experiences/exp-1/options",
		"PUT /options/opt-new-1/pax-types",
		"PUT /options/opt1",
		"PUT /options/opt1/pax-types",
	}, svc.sortedCalls())

	items := section.WorkingCopy().Items
	require.Len(t, items, 2)
	assert.Equal(t, reconcile.PersistedID("opt-new-1"), items[0].ID)
	assert.Equal(t, "Sunset", items[0].Title)
	assert.Equal(t, 75, items[0].DurationMinutes)
	assert.Equal(t, []string{"adult", "child"}, items[0].PaxTypes)
	assert.Equal(t, "Edited", items[1].Title)
	assert.True(t, section.Plan().IsEmpty())
}

func TestOptions_SaveWithoutChanges(t *testing.T) {
	svc := newService(seed()...)
	section := setup(t, svc)

	report, err := section.Save(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Outcomes)
	assert.Empty(t, svc.sortedCalls())
}

func TestOptions_PaxTypesFailure(t *testing.T) {
	svc := newService(seed()...)
	svc.failPax = true
	section := setup(t, svc)

	_, err := section.Add(Option{Title: "Sunset", Code: "SS", DurationMinutes: 60, PaxTypes: []string{"adult"}})
	require.NoError(t, err)

	report, err := section.Save(context.Background())
	require.Error(t, err)
	var apiErr *gateway.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)

	require.Len(t, report.Outcomes, 1)
	assert.False(t, report.Outcomes[0].Succeeded)
	assert.Equal(t, "opt-new-1", report.Outcomes[0].RemoteID)

	// The option itself was created and is not rolled back.
	svc.mu.Lock()
	_, created := svc.options["opt-new-1"]
	svc.mu.Unlock()
	assert.True(t, created)
	assert.True(t, section.WorkingCopy().Items[2].ID.IsLocal())
}

func TestMapping(t *testing.T) {
	o := fromDTO(optionDTO{ID: "7", Title: "Tour", Duration: durationDTO{Hours: 1, Minutes: 15}, Subchannels: []string{}})
	assert.Equal(t, 75, o.DurationMinutes)
	assert.Nil(t, o.Subchannels)
	assert.Nil(t, o.PaxTypes)

	p, err := toPayload("exp-1", o)
	require.NoError(t, err)
	assert.Equal(t, durationDTO{Hours: 1, Minutes: 15}, p.Duration)
	assert.Equal(t, []string{}, p.Subchannels)
	assert.Equal(t, "exp-1", p.ExperienceID)
	assert.Equal(t, []string{}, toPaxTypes(o).PaxTypes)

	o.DurationMinutes = -5
	_, err = toPayload("exp-1", o)
	assert.ErrorIs(t, err, errNegativeDuration)
}

func TestCompletion(t *testing.T) {
	c, err := Completion.Evaluate([]Option{})
	require.NoError(t, err)
	assert.Equal(t, 0, c.Percentage)

	complete := []Option{{Title: "Morning", Code: "AM", DurationMinutes: 60, PaxTypes: []string{"adult"}, IsDefault: true}}
	c, err = Completion.Evaluate(complete)
	require.NoError(t, err)
	assert.Equal(t, 100, c.Percentage)

	complete = append(complete, Option{Title: "Evening", DurationMinutes: 60, PaxTypes: []string{"adult"}})
	c, err = Completion.Evaluate(complete)
	require.NoError(t, err)
	assert.False(t, c.Fields["code"])
	assert.True(t, c.Fields["default"])
	assert.Equal(t, 83, c.Percentage)
}
