// Package server exposes forecasts over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/hhforecast/household-forecast/internal/buildinfo"
	"github.com/hhforecast/household-forecast/internal/calculation"
	"github.com/hhforecast/household-forecast/internal/config"
	"github.com/hhforecast/household-forecast/internal/domain"
	"github.com/hhforecast/household-forecast/internal/output"
	"github.com/hhforecast/household-forecast/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// CoreBalanceResponse answers POST /api/core-balance. CoreBalance is null when
// there are fewer than two monthly balances.
type CoreBalanceResponse struct {
	CoreBalance *decimal.Decimal `json:"core_balance"`
	Available   bool             `json:"available"`
}

// Server routes requests to the engine. Engine, Store and Parser must be set.
type Server struct {
	Engine *calculation.CalculationEngine
	Store  storage.Store
	Key    string
	Parser *config.InputParser
	Logger calculation.Logger
}

// New wires a server around a store key.
func New(engine *calculation.CalculationEngine, store storage.Store, key string) *Server {
	return &Server{
		Engine: engine,
		Store:  store,
		Key:    key,
		Parser: config.NewInputParser(),
		Logger: engine.Logger,
	}
}

// ListenAndServe blocks serving on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.Logger.Infof("household forecast server listening on %s", addr)
	return fasthttp.ListenAndServe(addr, s.Handle)
}

// Handle is the fasthttp request handler.
func (s *Server) Handle(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	switch path {
	case "/healthz":
		if !ctx.IsGet() {
			writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok", "version": buildinfo.String()})
	case "/api/forecast":
		switch {
		case ctx.IsGet():
			s.handleStoredForecast(ctx)
		case ctx.IsPost():
			s.handlePostedForecast(ctx)
		default:
			writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		}
	case "/api/core-balance":
		if !ctx.IsPost() {
			writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		s.handleCoreBalance(ctx)
	default:
		writeError(ctx, fasthttp.StatusNotFound, fmt.Sprintf("No route for %s", path))
	}
}

func (s *Server) handleStoredForecast(ctx *fasthttp.RequestCtx) {
	m, err := s.Store.Load(context.Background(), s.Key)
	if err != nil {
		if !errors.Is(err, storage.ErrLoadFailed) {
			writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
			return
		}
		s.Logger.Warnf("stored household unreadable, forecasting defaults: %v", err)
	}
	s.writeForecast(ctx, m)
}

func (s *Server) handlePostedForecast(ctx *fasthttp.RequestCtx) {
	m, ok := s.decodeModel(ctx)
	if !ok {
		return
	}
	s.writeForecast(ctx, m)
}

func (s *Server) handleCoreBalance(ctx *fasthttp.RequestCtx) {
	m, ok := s.decodeModel(ctx)
	if !ok {
		return
	}
	resp := CoreBalanceResponse{}
	if cb, found := s.Engine.EstimateCoreBalance(calculation.CoreBalanceFromModel(m)); found {
		resp.CoreBalance = &cb
		resp.Available = true
	}
	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (s *Server) decodeModel(ctx *fasthttp.RequestCtx) (*domain.DataModel, bool) {
	m, err := s.Parser.Parse(ctx.PostBody(), "json")
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return nil, false
	}
	if err := s.Parser.ValidateDataModel(m); err != nil {
		writeError(ctx, fasthttp.StatusUnprocessableEntity, err.Error())
		return nil, false
	}
	return m, true
}

// writeForecast renders the report as JSON, or through any registered formatter named by ?format=.
func (s *Server) writeForecast(ctx *fasthttp.RequestCtx, m *domain.DataModel) {
	report := s.Engine.Forecast(m)

	format := string(ctx.QueryArgs().Peek("format"))
	if format == "" || output.NormalizeFormatName(format) == "json" {
		writeJSON(ctx, fasthttp.StatusOK, report)
		return
	}
	f := output.GetFormatterByName(format)
	if f == nil {
		writeError(ctx, fasthttp.StatusBadRequest, fmt.Sprintf("%v: %q", output.ErrUnsupportedFormat, format))
		return
	}
	body, err := f.Format(report)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
		return
	}
	ctx.SetContentType(contentType(f.Name()))
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(body)
}

func contentType(formatter string) string {
	switch formatter {
	case "csv", "detailed-csv":
		return "text/csv; charset=utf-8"
	case "html":
		return "text/html; charset=utf-8"
	case "pdf":
		return "application/pdf"
	default:
		return "text/plain; charset=utf-8"
	}
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	body, _ := json.Marshal(ErrorResponse{Status: status, Message: message})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}
