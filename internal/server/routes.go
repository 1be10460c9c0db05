package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mwiater/codsim/internal/chart"
	"github.com/mwiater/codsim/internal/logging"
	"github.com/mwiater/codsim/internal/presenter"
	"github.com/mwiater/codsim/internal/simulation"
)

const maxBodyBytes = 1 << 20

// APIError is the body of every error response.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ErrorEnvelope wraps APIError.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// SimulateResponse is returned by POST /api/simulate.
type SimulateResponse struct {
	Request simulation.Request         `json:"request"`
	Result  simulation.Result          `json:"result"`
	Summary string                     `json:"summary"`
	Table   [3]presenter.ComparisonRow `json:"table"`
	CSV     string                     `json:"csv"`
	Chart   map[string]any             `json:"chart"`
}

// Option is one selectable form value.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// TokenLimitRange describes the token-limit slider.
type TokenLimitRange struct {
	Min     int `json:"min"`
	Max     int `json:"max"`
	Step    int `json:"step"`
	Default int `json:"default"`
}

// OptionsResponse is returned by GET /api/options.
type OptionsResponse struct {
	Strategies []Option        `json:"strategies"`
	TaskTypes  []Option        `json:"taskTypes"`
	Models     []Option        `json:"models"`
	TokenLimit TokenLimitRange `json:"tokenLimit"`
}

type handlers struct {
	cfg Config
}

func newRouter(cfg Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestID())
	r.Use(requestLogger())
	r.Use(corsMiddleware(cfg.AllowOrigins))

	h := &handlers{cfg: cfg}
	r.GET("/", h.dashboard)
	r.GET("/healthz", h.health)

	api := r.Group("/api")
	{
		api.GET("/options", h.options)
		api.POST("/simulate", h.simulate)
		api.GET("/export", h.export)
		api.GET("/chart.png", h.chartPNG)
	}
	return r
}

func respondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{Error: APIError{Message: msg, Code: code}})
}

func (h *handlers) health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (h *handlers) options(c *gin.Context) {
	c.JSON(http.StatusOK, buildOptions(h.cfg.Defaults))
}

func buildOptions(defaults simulation.Request) OptionsResponse {
	resp := OptionsResponse{
		TokenLimit: TokenLimitRange{
			Min:     simulation.MinTokenLimit,
			Max:     simulation.MaxTokenLimit,
			Step:    simulation.TokenLimitStep,
			Default: defaults.TokenLimit,
		},
	}
	for _, s := range simulation.Strategies {
		resp.Strategies = append(resp.Strategies, Option{Value: string(s), Label: s.Label()})
	}
	for _, t := range simulation.TaskTypes {
		resp.TaskTypes = append(resp.TaskTypes, Option{Value: string(t), Label: t.Label()})
	}
	for _, m := range simulation.Models {
		resp.Models = append(resp.Models, Option{Value: string(m), Label: m.Label()})
	}
	return resp
}

func (h *handlers) simulate(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	req, err := simulation.DecodeRequestJSON(body)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	res, err := simulation.Run(h.cfg.Simulator, req)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	logging.LogSimulation("http", req, res)

	p := presenter.Present(req, res)
	c.JSON(http.StatusOK, SimulateResponse{
		Request: p.Request,
		Result:  p.Result,
		Summary: p.Summary,
		Table:   p.Table,
		CSV:     string(p.Export),
		Chart:   chart.FromTable(p.Table).ChartJSConfig(),
	})
}

func (h *handlers) export(c *gin.Context) {
	res, err := resultFromQuery(c, true)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_result", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", presenter.ExportFileName))
	c.Data(http.StatusOK, presenter.ExportMIMEType, presenter.ExportCSV(res))
}

func (h *handlers) chartPNG(c *gin.Context) {
	res, err := resultFromQuery(c, false)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_result", err)
		return
	}
	data, err := chart.RenderPNG(chart.FromTable(presenter.Compare(res)), chart.DefaultPNGWidth, chart.DefaultPNGHeight)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "render_failed", err)
		return
	}
	c.Data(http.StatusOK, "image/png", data)
}

var errMissingParam = errors.New("missing query parameter")

// resultFromQuery rebuilds a result from query parameters so exports stay
// stateless. Latency is only required when needLatency is set.
func resultFromQuery(c *gin.Context, needLatency bool) (simulation.Result, error) {
	accuracy, err := floatParam(c, "accuracy")
	if err != nil {
		return simulation.Result{}, err
	}
	if accuracy < 0 || accuracy > 100 {
		return simulation.Result{}, fmt.Errorf("accuracy %v outside [0,100]", accuracy)
	}

	rawTokens, ok := c.GetQuery("token_usage")
	if !ok {
		return simulation.Result{}, fmt.Errorf("%w: token_usage", errMissingParam)
	}
	tokens, err := strconv.Atoi(rawTokens)
	if err != nil || tokens < 0 {
		return simulation.Result{}, fmt.Errorf("token_usage %q must be a non-negative integer", rawTokens)
	}

	latency := 0.0
	if needLatency {
		latency, err = floatParam(c, "latency")
		if err != nil {
			return simulation.Result{}, err
		}
		if latency < 0 {
			return simulation.Result{}, fmt.Errorf("latency %v must be non-negative", latency)
		}
	}
	return simulation.Result{Accuracy: accuracy, TokenUsage: tokens, Latency: latency}, nil
}

func floatParam(c *gin.Context, name string) (float64, error) {
	raw, ok := c.GetQuery(name)
	if !ok {
		return 0, fmt.Errorf("%w: %s", errMissingParam, name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s %q is not a number", name, raw)
	}
	return v, nil
}
