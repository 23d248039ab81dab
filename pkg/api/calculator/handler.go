package calculator

import (
	"bytes"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"stock_potential/pkg/core/config"
	"stock_potential/pkg/core/display"
	"stock_potential/pkg/core/equity"
	"stock_potential/pkg/core/logging"
	"stock_potential/pkg/core/report"
	"stock_potential/pkg/core/scenario"
)

const reportTitle = "Stock Potential Calculator"

// Handler serves the calculator endpoints. It holds no model: every request
// builds its own from the configured defaults plus the posted scenario.
type Handler struct {
	cfg *config.Config
}

func NewHandler(cfg *config.Config) *Handler {
	return &Handler{cfg: cfg}
}

// Register mounts the routes on a fiber router.
func (h *Handler) Register(app fiber.Router) {
	app.Get("/", h.Page)

	g := app.Group("/api/calculator")
	g.Get("/defaults", h.Defaults)
	g.Post("/compute", h.Compute)
	g.Post("/projection", h.Projection)
	g.Post("/chart", h.Chart)
	g.Post("/report", h.Report)
}

// Defaults handles GET /api/calculator/defaults
func (h *Handler) Defaults(c *fiber.Ctx) error {
	m := equity.FromState(h.cfg.Defaults)
	return c.JSON(h.respond(uuid.NewString(), m, []scenario.Result{}))
}

// Compute handles POST /api/calculator/compute
//
// The body is a scenario document: {"base": {...}, "edits": [{"field", "value"}]}.
// An empty body computes the defaults.
func (h *Handler) Compute(c *fiber.Ctx) error {
	id := uuid.NewString()
	m, results, err := h.build(c)
	if err != nil {
		return err
	}

	rejected := 0
	for _, r := range results {
		if !r.Accepted {
			rejected++
		}
	}
	logging.L().Infow("[CALC] compute",
		"calculation_id", id,
		"request_id", c.Locals("requestid"),
		"edits", len(results),
		"rejected", rejected,
	)
	return c.JSON(h.respond(id, m, results))
}

// Projection handles POST /api/calculator/projection?format=json|csv
func (h *Handler) Projection(c *fiber.Ctx) error {
	m, _, err := h.build(c)
	if err != nil {
		return err
	}
	sched, err := h.project(m)
	if err != nil {
		return err
	}

	switch c.Query("format", "json") {
	case "json":
		return c.JSON(projection(uuid.NewString(), sched))
	case "csv":
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="projection.csv"`)
		return report.WriteCSV(c, sched)
	}
	return fiber.NewError(fiber.StatusBadRequest, "format must be json or csv")
}

// Chart handles POST /api/calculator/chart?format=png|svg
func (h *Handler) Chart(c *fiber.Ctx) error {
	format, err := report.ParseChartFormat(c.Query("format"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	m, _, err := h.build(c)
	if err != nil {
		return err
	}
	sched, err := h.project(m)
	if err != nil {
		return err
	}

	img, err := report.Chart(sched, format)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, format.ContentType())
	return c.Send(img)
}

// Page handles GET / with a report for the defaults.
func (h *Handler) Page(c *fiber.Ctx) error {
	return h.sendReport(c, equity.FromState(h.cfg.Defaults))
}

// Report handles POST /api/calculator/report
func (h *Handler) Report(c *fiber.Ctx) error {
	m, _, err := h.build(c)
	if err != nil {
		return err
	}
	return h.sendReport(c, m)
}

func (h *Handler) sendReport(c *fiber.Ctx, m *equity.Model) error {
	page, err := report.HTML(reportTitle, report.Markdown(report.NewInput(m.State(), h.cfg.MaxRounds)))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(page)
}

// build decodes the request body as a scenario and replays it on the defaults.
func (h *Handler) build(c *fiber.Ctx) (*equity.Model, []scenario.Result, error) {
	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return equity.FromState(h.cfg.Defaults), []scenario.Result{}, nil
	}

	doc, err := scenario.Decode(body, scenario.FormatJSON)
	if err != nil {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "invalid scenario: "+err.Error())
	}
	m, results, err := doc.Build(h.cfg.Defaults)
	if err != nil {
		if errors.Cause(err) == equity.ErrUnknownField {
			return nil, nil, fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return m, results, nil
}

func (h *Handler) project(m *equity.Model) (equity.Schedule, error) {
	sched, err := equity.Project(m.State(), h.cfg.MaxRounds)
	if err != nil {
		return sched, fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}
	return sched, nil
}

func (h *Handler) respond(id string, m *equity.Model, results []scenario.Result) ComputeResponse {
	out := m.ComputeOutputs()
	return ComputeResponse{
		CalculationID: id,
		State:         stateFields(m.State()),
		Outputs:       outputs(out),
		Display:       display.Render(out),
		Edits:         results,
	}
}
