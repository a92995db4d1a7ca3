package server

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"SmartMoneyIndex/internal/advisor"
	"SmartMoneyIndex/internal/loader"
	"SmartMoneyIndex/internal/model"
	"SmartMoneyIndex/internal/scoring"
)

// operatorHint accompanies empty-series failures, mirroring the panel's
// troubleshooting note.
const operatorHint = "排查建议：检查 FRED API Key 是否正确，或网络是否能访问 Yahoo Finance。"

// Handler serves the dashboard API.
type Handler struct {
	Loader      *loader.Loader
	Validate    *validator.Validate
	DefaultCash float64
}

// NewHandler creates the API handler.
func NewHandler(l *loader.Loader, defaultCash float64) *Handler {
	return &Handler{
		Loader:      l,
		Validate:    validator.New(),
		DefaultCash: defaultCash,
	}
}

// RegisterRoutes registers all API routes.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Dashboard)
	e.GET("/healthz", h.Health)

	g := e.Group("/api")
	g.GET("/score", h.Score)
	g.GET("/snapshot", h.Snapshot)
	g.GET("/series/:name", h.SeriesByName)
	g.POST("/advice", h.Advice)
}

type apiError struct {
	Error string `json:"error"`
	Hint  string `json:"hint,omitempty"`
}

// Health answers liveness probes.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Dashboard serves the embedded panel page.
func (h *Handler) Dashboard(c echo.Context) error {
	return echo.StaticFileHandler("dashboard.html", dashboardFS)(c)
}

// Score computes the composite from the current snapshot. The survey
// cash level may be supplied as a query parameter; the configured
// default applies otherwise.
func (h *Handler) Score(c echo.Context) error {
	cash := h.DefaultCash
	if v := c.QueryParam("cash"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 || f > 100 {
			return c.JSON(http.StatusBadRequest, apiError{Error: "invalid cash parameter"})
		}
		cash = f
	}

	snap, err := h.Loader.Load(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, apiError{Error: err.Error(), Hint: operatorHint})
	}
	card, err := scoring.Evaluate(snap, cash)
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, apiError{Error: err.Error(), Hint: operatorHint})
	}
	return c.JSON(http.StatusOK, card)
}

type reading struct {
	Name  string    `json:"name"`
	Value float64   `json:"value"`
	Delta float64   `json:"delta"`
	At    time.Time `json:"at"`
}

type snapshotResponse struct {
	Readings  []reading `json:"readings"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Snapshot returns the latest reading and 5-observation delta per series.
func (h *Handler) Snapshot(c echo.Context) error {
	snap, err := h.Loader.Load(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, apiError{Error: err.Error(), Hint: operatorHint})
	}

	resp := snapshotResponse{FetchedAt: snap.FetchedAt}
	series := []model.Series{
		snap.RealYield, snap.CurrencyIndex, snap.Copper, snap.Gold,
		snap.HKD, snap.CreditSpread, snap.MomentumRatio, snap.MomentumMA,
	}
	for _, t := range sortedKeys(snap.EquityIndices) {
		series = append(series, snap.EquityIndices[t])
	}
	for _, s := range series {
		v, ok := s.Last()
		if !ok {
			continue
		}
		at := s.Points[len(s.Points)-1].Time
		resp.Readings = append(resp.Readings, reading{
			Name:  s.Name,
			Value: v,
			Delta: s.Delta(5),
			At:    at,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

// SeriesByName returns the tail of one series for charting.
func (h *Handler) SeriesByName(c echo.Context) error {
	limit := 120
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return c.JSON(http.StatusBadRequest, apiError{Error: "invalid limit parameter"})
		}
		limit = n
	}

	snap, err := h.Loader.Load(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, apiError{Error: err.Error(), Hint: operatorHint})
	}
	s, ok := snap.ByName(c.Param("name"))
	if !ok {
		return c.JSON(http.StatusNotFound, apiError{Error: "unknown series: " + c.Param("name")})
	}
	return c.JSON(http.StatusOK, model.Series{
		Name:      s.Name,
		Points:    s.Tail(limit),
		FetchedAt: s.FetchedAt,
	})
}

type adviceResponse struct {
	Card   *model.ScoreCard `json:"card"`
	Advice model.Advice     `json:"advice"`
}

// Advice runs the decision layer over the posted survey input. Survey
// readings are never persisted.
func (h *Handler) Advice(c echo.Context) error {
	var in model.SurveyInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, apiError{Error: "invalid request body"})
	}
	if in.CashLevel == 0 {
		in.CashLevel = h.DefaultCash
	}
	if err := h.Validate.Struct(in); err != nil {
		return c.JSON(http.StatusBadRequest, apiError{Error: err.Error()})
	}

	snap, err := h.Loader.Load(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, apiError{Error: err.Error(), Hint: operatorHint})
	}
	card, err := scoring.Evaluate(snap, in.CashLevel)
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, apiError{Error: err.Error(), Hint: operatorHint})
	}
	return c.JSON(http.StatusOK, adviceResponse{
		Card:   card,
		Advice: advisor.Advise(snap, card, in),
	})
}

func sortedKeys(m map[string]model.Series) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
