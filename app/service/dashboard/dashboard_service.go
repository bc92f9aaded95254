package service

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberutils "github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	models "school-dashboard/app/models/dashboard"
	"school-dashboard/app/repository/source"
)

type DashboardService struct {
	store  *Store
	loader *Loader
	launch func(func())
}

type Option func(*DashboardService)

// WithLauncher replaces the goroutine that runs each session load.
func WithLauncher(launch func(func())) Option {
	return func(s *DashboardService) { s.launch = launch }
}

func NewDashboardService(src source.RecordSource, store *Store, timeout time.Duration, opts ...Option) *DashboardService {
	s := &DashboardService{
		store:  store,
		loader: NewLoader(src, timeout),
		launch: func(fn func()) { go fn() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// === GET /screens ===
func (s *DashboardService) ListScreens(c *fiber.Ctx) error {
	screens := Screens()
	out := make([]models.ScreenSummary, 0, len(screens))
	for _, screen := range screens {
		out = append(out, screen.Summary())
	}
	return c.JSON(out)
}

// === POST /screens/:screen/sessions ===
func (s *DashboardService) CreateSession(c *fiber.Ctx) error {
	screen, ok := FindScreen(c.Params("screen"))
	if !ok {
		return c.Status(404).JSON(fiber.Map{"error": "Screen not found"})
	}

	sess := NewSession(screen)
	s.store.Add(sess)

	// The load is fire-and-forget: closing the session does not cancel it,
	// the session just refuses the late result.
	s.launch(func() { s.loader.Load(context.Background(), sess) })

	log.Info().Str("session", sess.ID.String()).Str("screen", screen.Name).Msg("session opened")
	return c.Status(201).JSON(sess.View())
}

// === GET /sessions/:id ===
func (s *DashboardService) GetSession(c *fiber.Ctx) error {
	sess, err := s.session(c)
	if err != nil {
		return respondError(c, err)
	}

	view := sess.View()
	switch view.State {
	case models.StateLoading:
		return c.Status(202).JSON(view)
	case models.StateFailed:
		return c.Status(502).JSON(view)
	}
	return c.JSON(view)
}

// === GET /sessions/:id/records/:dataset ===
func (s *DashboardService) GetRecords(c *fiber.Ctx) error {
	sess, err := s.session(c)
	if err != nil {
		return respondError(c, err)
	}

	records, err := sess.Records(c.Params("dataset"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(records), "data": records})
}

// === POST /sessions/:id/filters/:dataset/toggle ===
func (s *DashboardService) ToggleFilter(c *fiber.Ctx) error {
	return s.fieldValue(c, func(sess *Session, dataset string, req models.FieldValueRequest) (models.ScreenView, error) {
		return sess.ToggleFilter(dataset, req.Field, req.Value)
	})
}

// === POST /sessions/:id/filters/:dataset/only ===
func (s *DashboardService) SelectOnlyFilter(c *fiber.Ctx) error {
	return s.fieldValue(c, func(sess *Session, dataset string, req models.FieldValueRequest) (models.ScreenView, error) {
		return sess.SelectOnly(dataset, req.Field, req.Value)
	})
}

// === POST /sessions/:id/drill/:dataset ===
func (s *DashboardService) Drill(c *fiber.Ctx) error {
	return s.fieldValue(c, func(sess *Session, dataset string, req models.FieldValueRequest) (models.ScreenView, error) {
		return sess.Drill(dataset, req.Field, req.Value)
	})
}

// === DELETE /sessions/:id/drill/:dataset/:field ===
func (s *DashboardService) ClearDrill(c *fiber.Ctx) error {
	sess, err := s.session(c)
	if err != nil {
		return respondError(c, err)
	}

	view, err := sess.ClearDrill(c.Params("dataset"), c.Params("field"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}

// === POST /sessions/:id/charts/:chart/activate ===
func (s *DashboardService) ActivateChart(c *fiber.Ctx) error {
	sess, err := s.session(c)
	if err != nil {
		return respondError(c, err)
	}

	var req models.ActivateRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
		}
	}

	view, err := sess.Activate(c.Params("chart"), req.Index)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}

// === DELETE /sessions/:id ===
func (s *DashboardService) CloseSession(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid session ID"})
	}
	if err := s.store.Remove(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Session closed"})
}

func (s *DashboardService) session(c *fiber.Ctx) (*Session, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, errInvalidID
	}
	return s.store.Get(id)
}

func (s *DashboardService) fieldValue(c *fiber.Ctx, apply func(*Session, string, models.FieldValueRequest) (models.ScreenView, error)) error {
	sess, err := s.session(c)
	if err != nil {
		return respondError(c, err)
	}

	var req models.FieldValueRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	// Form values alias the pooled request buffer; the session keeps them.
	req.Field = fiberutils.CopyString(req.Field)
	req.Value = fiberutils.CopyString(req.Value)

	view, err := apply(sess, c.Params("dataset"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}

var errInvalidID = errors.New("invalid session ID")

func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, errInvalidID):
		return c.Status(400).JSON(fiber.Map{"error": "Invalid session ID"})
	case errors.Is(err, ErrMissingField):
		return c.Status(400).JSON(fiber.Map{"error": "Field is required"})
	case errors.Is(err, ErrMissingValue):
		return c.Status(400).JSON(fiber.Map{"error": "Value is required"})
	case errors.Is(err, ErrSessionNotFound):
		return c.Status(404).JSON(fiber.Map{"error": "Session not found"})
	case errors.Is(err, ErrUnknownDataset):
		return c.Status(404).JSON(fiber.Map{"error": "Dataset not found"})
	case errors.Is(err, ErrUnknownChart):
		return c.Status(404).JSON(fiber.Map{"error": "Chart not found"})
	case errors.Is(err, ErrNotReady):
		return c.Status(409).JSON(fiber.Map{"error": "Session is still loading"})
	case errors.Is(err, ErrLoadFailed):
		return c.Status(502).JSON(fiber.Map{"error": source.FailureMessage})
	}
	log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
	return c.Status(500).JSON(fiber.Map{"error": "Internal server error"})
}
