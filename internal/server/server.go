package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/vichi100/style-api-server/internal/domain"
	"github.com/vichi100/style-api-server/internal/scoring"
)

// Server is the thin HTTP surface over the scoring engine. All business
// logic lives in the scoring package; handlers only translate requests and
// error classes.
type Server struct {
	svc    *scoring.Service
	logger *slog.Logger
	echo   *echo.Echo
}

// ScoreRequest is the vector-score request body. At least one of top or
// bottom must be present.
type ScoreRequest struct {
	Top    *domain.OutfitItem `json:"top,omitempty"`
	Bottom *domain.OutfitItem `json:"bottom,omitempty"`
	Mood   string             `json:"mood,omitempty"`
}

type envelope struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
	Error  string `json:"error,omitempty"`
}

func New(svc *scoring.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	s := &Server{svc: svc, logger: logger, echo: e}
	e.GET("/healthz", s.health)
	api := e.Group("/api/v1")
	api.POST("/vector-score", s.scoreOutfit)
	api.GET("/rules/search", s.searchRules)
	return s
}

// Start serves until the listener fails or is shut down.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Handler exposes the routing tree, used by tests.
func (s *Server) Handler() http.Handler { return s.echo }

func (s *Server) health(c echo.Context) error {
	if !s.svc.Ready() {
		return c.JSON(http.StatusServiceUnavailable, envelope{Status: "initializing"})
	}
	return c.JSON(http.StatusOK, envelope{Status: "ok"})
}

func (s *Server) scoreOutfit(c echo.Context) error {
	var req ScoreRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, envelope{Status: "error", Error: "invalid request body"})
	}
	if req.Top == nil && req.Bottom == nil {
		return c.JSON(http.StatusBadRequest, envelope{Status: "error", Error: "at least one of top or bottom is required"})
	}
	result, err := s.svc.ScoreOutfitSemantic(c.Request().Context(), req.Top, req.Bottom, req.Mood)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, envelope{Status: "success", Data: result})
}

func (s *Server) searchRules(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return c.JSON(http.StatusBadRequest, envelope{Status: "error", Error: "missing query parameter q"})
	}
	limit := 0
	if err := echo.QueryParamsBinder(c).Int("limit", &limit).BindError(); err != nil {
		return c.JSON(http.StatusBadRequest, envelope{Status: "error", Error: "invalid limit"})
	}
	source := c.QueryParam("source")

	var context string
	var err error
	if source != "" {
		context, err = s.svc.RetrieveFromSource(c.Request().Context(), query, source, limit)
	} else {
		context, err = s.svc.RetrieveRelevantRules(c.Request().Context(), query, limit)
	}
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, envelope{Status: "success", Data: map[string]string{"context": context}})
}

// fail maps error classes to status codes. Index-not-ready and embedding
// failures are explicit; nothing degrades into a bogus success.
func (s *Server) fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrEmptyOutfit):
		return c.JSON(http.StatusBadRequest, envelope{Status: "error", Error: err.Error()})
	case errors.Is(err, domain.ErrIndexUnavailable):
		return c.JSON(http.StatusServiceUnavailable, envelope{Status: "error", Error: err.Error()})
	default:
		s.logger.Error("request failed", "path", c.Path(), "error", err)
		return c.JSON(http.StatusInternalServerError, envelope{Status: "error", Error: err.Error()})
	}
}
