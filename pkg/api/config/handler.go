package config

import (
	"github.com/gofiber/fiber/v2"

	"stock_potential/pkg/core/config"
	"stock_potential/pkg/core/equity"
)

type Response struct {
	Environment string       `json:"environment"`
	Source      string       `json:"source,omitempty"`
	MaxRounds   int          `json:"max_rounds"`
	Defaults    equity.State `json:"defaults"`
	Fields      []FieldInfo  `json:"fields"`
}

// FieldInfo describes one form input so a client can build the form.
type FieldInfo struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// Handler holds dependencies for config endpoints
type Handler struct {
	Config *config.Config
}

// NewHandler creates a new config handler
func NewHandler(cfg *config.Config) *Handler {
	return &Handler{
		Config: cfg,
	}
}

// HandleConfig handles GET /api/config
func (h *Handler) HandleConfig(c *fiber.Ctx) error {
	fields := make([]FieldInfo, 0, len(equity.Fields))
	for _, f := range equity.Fields {
		fields = append(fields, FieldInfo{Name: f.String(), Label: f.Label()})
	}

	return c.JSON(Response{
		Environment: h.Config.Environment,
		Source:      h.Config.Source,
		MaxRounds:   h.Config.MaxRounds,
		Defaults:    h.Config.Defaults,
		Fields:      fields,
	})
}
