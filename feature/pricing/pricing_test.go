package pricing

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
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
	mu     sync.Mutex
	prices map[string]priceDTO
	calls  []string

	failCreate bool
}

func newService(seed ...priceDTO) *service {
	s := &service{prices: make(map[string]priceDTO)}
	for _, p := range seed {
		s.prices[p.ID] = p
	}
	return s
}

func (s *service) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /experiences/{eid}/prices", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		out := make([]priceDTO, 0, len(s.prices))
		for _, p := range s.prices {
			out = append(out, p)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
		assert.NoError(t, json.NewEncoder(w).Encode(out))
	})
	mux.HandleFunc("POST /experiences/{eid}/prices", func(w http.ResponseWriter, r *http.Request) {
		var p pricePayload
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &p))

		s.mu.Lock()
		defer s.mu.Unlock()
		s.calls = append(s.calls, r.Method+" "+r.URL.Path)
		if s.failCreate {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"code":"overlap","message":"period overlaps an existing price"}`))
			return
		}
		id := "p-new"
		s.prices[id] = priceDTO{ID: id, OptionID: p.OptionID, Period: p.Period, Currency: p.Currency}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"` + id + `"}`))
	})
	mux.HandleFunc("PUT /prices/{id}", func(w http.ResponseWriter, r *http.Request) {
		var p pricePayload
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &p))

		s.mu.Lock()
		defer s.mu.Unlock()
		s.calls = append(s.calls, r.Method+" "+r.URL.Path)
		dto := s.prices[r.PathValue("id")]
		dto.OptionID, dto.Period, dto.Currency = p.OptionID, p.Period, p.Currency
		s.prices[dto.ID] = dto
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("PUT /prices/{id}/rows", func(w http.ResponseWriter, r *http.Request) {
		var p rowsPayload
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &p))

		s.mu.Lock()
		defer s.mu.Unlock()
		s.calls = append(s.calls, r.Method+" "+r.URL.Path)
		dto := s.prices[r.PathValue("id")]
		dto.Rows = p.Rows
		s.prices[r.PathValue("id")] = dto
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("DELETE /prices/{id}", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.calls = append(s.calls, r.Method+" "+r.URL.Path)
		delete(s.prices, r.PathValue("id"))
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

func (s *service) get(id string) priceDTO {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prices[id]
}

func setup(t *testing.T, svc *service) *reconcile.Section[Price] {
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

func p1() priceDTO {
	return priceDTO{
		ID:       "p1",
		OptionID: "opt1",
		Period:   period{Start: "2026-01-01", End: "2026-12-31"},
		Currency: "EUR",
		Rows:     []rowDTO{{PaxType: "adult", Amount: 4500}, {PaxType: "child", Amount: 2000}},
	}
}

func newPrice() Price {
	return Price{
		OptionID: "opt2",
		DateFrom: "2026-01-01",
		DateTo:   "2026-06-30",
		Currency: "USD",
		Rows:     []Row{{PaxType: "adult", Amount: 9900}},
	}
}

func TestPricing_Save(t *testing.T) {
	svc := newService(p1())
	section := setup(t, svc)

	require.NoError(t, section.Edit(func(data *reconcile.SectionData[Price]) error {
		data.Items[0].Rows[1].Amount = 2500
		return nil
	}))
	_, err := section.Add(newPrice())
	require.NoError(t, err)

	_, err = section.Save(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"POST /experiences/exp-1/prices",
		"PUT /prices/p-new/rows",
		"PUT /prices/p1",
		"PUT /prices/p1/rows",
	}, svc.sortedCalls())
	assert.Equal(t, []rowDTO{{PaxType: "adult", Amount: 9900}}, svc.get("p-new").Rows)
	assert.Equal(t, int64(2500), svc.get("p1").Rows[1].Amount)

	items := section.WorkingCopy().Items
	require.Len(t, items, 2)
	assert.Equal(t, reconcile.PersistedID("p-new"), items[0].ID)
	assert.Equal(t, "USD", items[0].Currency)
}

func TestPricing_FailedCreateStillUpdates(t *testing.T) {
	svc := newService(p1())
	svc.failCreate = true
	section := setup(t, svc)

	require.NoError(t, section.Edit(func(data *reconcile.SectionData[Price]) error {
		data.Items[0].Currency = "GBP"
		return nil
	}))
	_, err := section.Add(newPrice())
	require.NoError(t, err)

	report, err := section.Save(context.Background())
	require.Error(t, err)

	var apiErr *gateway.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "overlap", apiErr.Code)
	assert.True(t, report.Partial())

	assert.Equal(t, "GBP", svc.get("p1").Currency, "update ran despite the failed create")
	assert.Contains(t, svc.sortedCalls(), "PUT /prices/p1")

	// Nothing was refreshed: the new price is still local.
	last := section.LastSaved()
	assert.Equal(t, "EUR", last.Items[0].Currency)
	assert.True(t, section.WorkingCopy().Items[1].ID.IsLocal())
}

func TestPricing_Remove(t *testing.T) {
	svc := newService(p1())
	section := setup(t, svc)

	require.NoError(t, section.Remove(reconcile.PersistedID("p1")))
	_, err := section.Save(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"DELETE /prices/p1"}, svc.sortedCalls())
	assert.Empty(t, section.WorkingCopy().Items)
}

func TestMapping(t *testing.T) {
	p := fromDTO(p1())
	assert.Equal(t, "2026-01-01", p.DateFrom)
	assert.Equal(t, []Row{{"adult", 4500}, {"child", 2000}}, p.Rows)

	payload, err := toPayload("exp-1", p)
	require.NoError(t, err)
	assert.Equal(t, period{Start: "2026-01-01", End: "2026-12-31"}, payload.Period)

	tests := []struct {
		name string
		edit func(*Price)
		want error
	}{
		{"LowerCurrency", func(p *Price) { p.Currency = "eur" }, errCurrency},
		{"ShortCurrency", func(p *Price) { p.Currency = "EU" }, errCurrency},
		{"Range", func(p *Price) { p.DateTo = "2025-12-31" }, errDateRange},
		{"Negative", func(p *Price) { p.Rows[0].Amount = -1 }, errNegativeAmount},
		{"DuplicatePax", func(p *Price) { p.Rows[1].PaxType = "adult" }, errDuplicatePax},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := p.Clone()
			tt.edit(&bad)
			_, err := toPayload("exp-1", bad)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCompletion(t *testing.T) {
	c, err := Completion.Evaluate([]Price{fromDTO(p1())})
	require.NoError(t, err)
	assert.Equal(t, 100, c.Percentage)

	free := newPrice()
	free.Rows[0].Amount = 0
	c, err = Completion.Evaluate([]Price{free})
	require.NoError(t, err)
	assert.False(t, c.Fields["rows"])
	assert.Equal(t, 75, c.Percentage)
}
