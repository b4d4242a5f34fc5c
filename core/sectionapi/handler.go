package sectionapi

import (
	"context"
	"errors"
	"strconv"

	"experience-manager/core/gateway"
	"experience-manager/core/journal"
	"experience-manager/core/logger"
	"experience-manager/core/reconcile"
	"experience-manager/core/rules"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Sessions resolves the live section of an experience.
type Sessions[T reconcile.Entity[T]] interface {
	Get(ctx context.Context, experienceID string) (*reconcile.Section[T], error)
}

// History lists past saves of a section.
type History interface {
	History(ctx context.Context, section, experienceID string, limit int) ([]journal.SaveRecord, error)
}

// Deps bundles what a section handler needs.
type Deps[T reconcile.Entity[T]] struct {
	// Name is the section name and its route segment.
	Name string

	Sessions Sessions[T]

	// Completion, if set, is evaluated on the working copy of every view.
	Completion *rules.Checklist

	// History, if set, serves the save journal of the section.
	History History

	Logger *zap.Logger
}

// Handler serves one section of every experience over HTTP.
type Handler[T reconcile.Entity[T]] struct {
	deps Deps[T]
}

// NewHandler creates a section handler.
func NewHandler[T reconcile.Entity[T]](deps Deps[T]) *Handler[T] {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Handler[T]{deps: deps}
}

// View is the section state returned by every read and edit.
type View[T reconcile.Entity[T]] struct {
	reconcile.SectionView[T]
	Completion *rules.Completion `json:"completion,omitempty"`
}

// SaveResponse is returned by a save.
type SaveResponse[T reconcile.Entity[T]] struct {
	Report *reconcile.SaveReport `json:"report,omitempty"`
	View   *View[T]              `json:"view,omitempty"`
	Error  string                `json:"error,omitempty"`
}

// RegisterRoutes mounts the section routes under /experiences/:experienceId/<name>.
func (h *Handler[T]) RegisterRoutes(app fiber.Router) {
	group := app.Group("/experiences/:experienceId/" + h.deps.Name)
	group.Get("/", h.HandleGet)
	group.Put("/", h.HandleReplace)
	group.Post("/items", h.HandleAdd)
	group.Post("/items/:id/duplicate", h.HandleDuplicate)
	group.Put("/items/:id", h.HandleUpdate)
	group.Delete("/items/:id", h.HandleRemove)
	group.Get("/plan", h.HandlePlan)
	group.Post("/save", h.HandleSave)
	group.Post("/refresh", h.HandleRefresh)
	if h.deps.History != nil {
		group.Get("/history", h.HandleHistory)
	}
}

// HandleGet returns the section state.
// @Summary Get Section
// @Description Get the working copy, last-saved snapshot, flags and completion of a section.
// @Tags sections
// @Produce json
// @Param experienceId path string true "Experience ID"
// @Param section path string true "Section" Enums(options, allotments, pricing, configuration)
// @Success 200 {object} map[string]any "Section view"
// @Failure 502 {object} map[string]string "Upstream error"
// @Router /experiences/{experienceId}/{section} [get]
func (h *Handler[T]) HandleGet(c *fiber.Ctx) error {
	s, err := h.section(c)
	if err != nil {
		return h.fail(c, err)
	}
	return h.view(c, s)
}

// HandleReplace swaps the whole working copy.
// @Summary Replace Working Copy
// @Tags sections
// @Accept json
// @Produce json
// @Param experienceId path string true "Experience ID"
// @Param section path string true "Section" Enums(options, allotments, pricing, configuration)
// @Success 200 {object} map[string]any "Section view"
// @Failure 400 {object} map[string]string "Invalid body"
// @Router /experiences/{experienceId}/{section} [put]
func (h *Handler[T]) HandleReplace(c *fiber.Ctx) error {
	var body reconcile.SectionData[T]
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return badRequest(c, err)
	}
	s, err := h.section(c)
	if err != nil {
		return h.fail(c, err)
	}
	if err := s.Replace(body.Items); err != nil {
		return h.fail(c, err)
	}
	return h.view(c, s)
}

// HandleAdd appends an item to the working copy.
// @Summary Add Item
// @Tags sections
// @Accept json
// @Produce json
// @Param experienceId path string true "Experience ID"
// @Param section path string true "Section" Enums(options, allotments, pricing, configuration)
// @Success 201 {object} map[string]any "Section view"
// @Router /experiences/{experienceId}/{section}/items [post]
func (h *Handler[T]) HandleAdd(c *fiber.Ctx) error {
	var item T
	if err := json.Unmarshal(c.Body(), &item); err != nil {
		return badRequest(c, err)
	}
	s, err := h.section(c)
	if err != nil {
		return h.fail(c, err)
	}
	if _, err := s.Add(item); err != nil {
		return h.fail(c, err)
	}
	c.Status(fiber.StatusCreated)
	return h.view(c, s)
}

// HandleDuplicate copies an item under a fresh id.
// @Summary Duplicate Item
// @Tags sections
// @Produce json
// @Param experienceId path string true "Experience ID"
// @Param section path string true "Section" Enums(options, allotments, pricing, configuration)
// @Param id path string true "Entity ID (kind:value)"
// @Success 201 {object} map[string]any "Section view"
// @Failure 404 {object} map[string]string "Unknown item"
// @Router /experiences/{experienceId}/{section}/items/{id}/duplicate [post]
func (h *Handler[T]) HandleDuplicate(c *fiber.Ctx) error {
	id, err := reconcile.ParseEntityID(c.Params("id"))
	if err != nil {
		return badRequest(c, err)
	}
	s, err := h.section(c)
	if err != nil {
		return h.fail(c, err)
	}
	if _, err := s.Duplicate(id); err != nil {
		return h.fail(c, err)
	}
	c.Status(fiber.StatusCreated)
	return h.view(c, s)
}

// HandleUpdate replaces one item of the working copy.
// @Summary Update Item
// @Tags sections
// @Accept json
// @Produce json
// @Param experienceId path string true "Experience ID"
// @Param section path string true "Section" Enums(options, allotments, pricing, configuration)
// @Param id path string true "Entity ID (kind:value)"
// @Success 200 {object} map[string]any "Section view"
// @Failure 404 {object} map[string]string "Unknown item"
// @Router /experiences/{experienceId}/{section}/items/{id} [put]
func (h *Handler[T]) HandleUpdate(c *fiber.Ctx) error {
	id, err := reconcile.ParseEntityID(c.Params("id"))
	if err != nil {
		return badRequest(c, err)
	}
	var item T
	if err := json.Unmarshal(c.Body(), &item); err != nil {
		return badRequest(c, err)
	}
	s, err := h.section(c)
	if err != nil {
		return h.fail(c, err)
	}
	if err := s.Update(item.WithEntityID(id)); err != nil {
		return h.fail(c, err)
	}
	return h.view(c, s)
}

// HandleRemove drops one item from the working copy.
// @Summary Remove Item
// @Tags sections
// @Produce json
// @Param experienceId path string true "Experience ID"
// @Param section path string true "Section" Enums(options, allotments, pricing, configuration)
// @Param id path string true "Entity ID (kind:value)"
// @Success 200 {object} map[string]any "Section view"
// @Failure 404 {object} map[string]string "Unknown item"
// @Router /experiences/{experienceId}/{section}/items/{id} [delete]
func (h *Handler[T]) HandleRemove(c *fiber.Ctx) error {
	id, err := reconcile.ParseEntityID(c.Params("id"))
	if err != nil {
		return badRequest(c, err)
	}
	s, err := h.section(c)
	if err != nil {
		return h.fail(c, err)
	}
	if err := s.Remove(id); err != nil {
		return h.fail(c, err)
	}
	return h.view(c, s)
}

// HandlePlan returns what a save would send upstream.
// @Summary Plan Save
// @Tags sections
// @Produce json
// @Param experienceId path string true "Experience ID"
// @Param section path string true "Section" Enums(options, allotments, pricing, configuration)
// @Success 200 {object} map[string]any "Plan"
// @Router /experiences/{experienceId}/{section}/plan [get]
func (h *Handler[T]) HandlePlan(c *fiber.Ctx) error {
	s, err := h.section(c)
	if err != nil {
		return h.fail(c, err)
	}
	plan := s.Plan()
	return c.JSON(fiber.Map{
		"summary": plan.Summary(),
		"plan":    plan,
	})
}

// HandleSave reconciles the working copy with the upstream service.
// @Summary Save Section
// @Description Create, update and delete upstream entities so they match the working copy.
// @Tags sections
// @Produce json
// @Param experienceId path string true "Experience ID"
// @Param section path string true "Section" Enums(options, allotments, pricing, configuration)
// @Success 200 {object} map[string]any "Save report and refreshed view"
// @Failure 409 {object} map[string]string "Save already running"
// @Failure 422 {object} map[string]string "Working copy not saveable"
// @Failure 502 {object} map[string]any "Upstream failure with partial report"
// @Router /experiences/{experienceId}/{section}/save [post]
func (h *Handler[T]) HandleSave(c *fiber.Ctx) error {
	s, err := h.section(c)
	if err != nil {
		return h.fail(c, err)
	}

	l := logger.WithRayID(h.deps.Logger, c)
	report, err := s.Save(c.Context())
	if err != nil {
		l.Warn("Section save failed",
			zap.String("section", h.deps.Name),
			zap.String("experience_id", s.ExperienceID()),
			zap.Error(err),
		)
		if report == nil {
			return h.fail(c, err)
		}
		v, verr := h.buildView(s)
		if verr != nil {
			v = nil
		}
		return c.Status(StatusFor(err)).JSON(SaveResponse[T]{Report: report, View: v, Error: err.Error()})
	}

	v, err := h.buildView(s)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(SaveResponse[T]{Report: report, View: v})
}

// HandleRefresh drops the cached snapshot and reloads it, resetting the working copy.
// @Summary Refresh Section
// @Tags sections
// @Produce json
// @Param experienceId path string true "Experience ID"
// @Param section path string true "Section" Enums(options, allotments, pricing, configuration)
// @Success 200 {object} map[string]any "Section view"
// @Router /experiences/{experienceId}/{section}/refresh [post]
func (h *Handler[T]) HandleRefresh(c *fiber.Ctx) error {
	s, err := h.section(c)
	if err != nil {
		return h.fail(c, err)
	}
	if err := s.Reload(c.Context()); err != nil {
		return h.fail(c, err)
	}
	return h.view(c, s)
}

// HandleHistory lists the latest journaled saves.
// @Summary Save History
// @Tags sections
// @Produce json
// @Param experienceId path string true "Experience ID"
// @Param section path string true "Section" Enums(options, allotments, pricing, configuration)
// @Param limit query int false "Maximum records (default 20)"
// @Success 200 {array} journal.SaveRecord "Saves, newest first"
// @Router /experiences/{experienceId}/{section}/history [get]
func (h *Handler[T]) HandleHistory(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	records, err := h.deps.History.History(c.Context(), h.deps.Name, c.Params("experienceId"), limit)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(records)
}

func (h *Handler[T]) section(c *fiber.Ctx) (*reconcile.Section[T], error) {
	return h.deps.Sessions.Get(c.Context(), c.Params("experienceId"))
}

func (h *Handler[T]) buildView(s *reconcile.Section[T]) (*View[T], error) {
	v := &View[T]{SectionView: s.View()}
	if h.deps.Completion != nil {
		completion, err := h.deps.Completion.Evaluate(v.WorkingCopy.Items)
		if err != nil {
			return nil, err
		}
		v.Completion = &completion
	}
	return v, nil
}

func (h *Handler[T]) view(c *fiber.Ctx, s *reconcile.Section[T]) error {
	v, err := h.buildView(s)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(v)
}

func (h *Handler[T]) fail(c *fiber.Ctx, err error) error {
	status := StatusFor(err)
	if status >= fiber.StatusInternalServerError {
		logger.WithRayID(h.deps.Logger, c).Error("Section request failed",
			zap.String("section", h.deps.Name),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}

// StatusFor maps engine and gateway errors to HTTP statuses.
func StatusFor(err error) int {
	var apiErr *gateway.APIError
	switch {
	case errors.Is(err, reconcile.ErrSaveInProgress), errors.Is(err, reconcile.ErrDuplicateID):
		return fiber.StatusConflict
	case errors.Is(err, reconcile.ErrSaveRejected):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, reconcile.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, reconcile.ErrInvalidID), errors.Is(err, reconcile.ErrLocalID),
		errors.Is(err, reconcile.ErrMissingParent):
		return fiber.StatusBadRequest
	case errors.As(err, &apiErr), errors.Is(err, gateway.ErrNoLocation):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
