package api

import (
	"errors"
	"time"

	"github.com/labstack/echo/v4"

	"DropWatch/internal/domain/models"
	"DropWatch/internal/usecase"
	xhttp "DropWatch/pkg/http"
	xlogger "DropWatch/pkg/logger"
	"DropWatch/pkg/util"
)

// ReportEchoHandler exposes the alert pipeline over HTTP.
type ReportEchoHandler struct {
	logger  *xlogger.Logger
	runner  *usecase.Runner
	repeats *usecase.RepeatDetector
	history *usecase.HistoryUseCase
}

func NewReportEchoHandler(logger *xlogger.Logger, runner *usecase.Runner, repeats *usecase.RepeatDetector, history *usecase.HistoryUseCase) *ReportEchoHandler {
	return &ReportEchoHandler{logger: logger, runner: runner, repeats: repeats, history: history}
}

func (h *ReportEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)
	g := e.Group("/api")
	g.GET("/report", h.Report)
	g.GET("/signals", h.Signals)
	g.GET("/repeats", h.Repeats)
	g.GET("/history", h.History)
	g.POST("/run", h.Run)
}

// Health reports process liveness.
func (h *ReportEchoHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

// Report returns the latest run's aggregated report.
func (h *ReportEchoHandler) Report(c echo.Context) error {
	report, ok := h.runner.LatestReport()
	if !ok {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError("no report yet; trigger a run first"))
	}
	return xhttp.SuccessResponse(c, report)
}

// Signals returns the latest run's records, optionally filtered by symbol.
func (h *ReportEchoHandler) Signals(c echo.Context) error {
	req := &models.SignalRequest{}
	// symbol is optional here; an empty request means the full batch.
	_ = c.Bind(req)

	records := h.runner.LatestRecords()
	if records == nil {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError("no signals yet; trigger a run first"))
	}

	if req.Symbol != "" {
		symbol := util.NormalizeSymbol(req.Symbol)
		for _, r := range records {
			if r.Symbol == symbol {
				return xhttp.SuccessResponse(c, r)
			}
		}
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError("symbol not in latest scan"))
	}
	return xhttp.ListResponse(c, records, int64(len(records)))
}

// Repeats returns repeat large-drop counts over a business-day window.
func (h *ReportEchoHandler) Repeats(c echo.Context) error {
	req := &models.RepeatRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	counts, err := h.repeats.CountRepeats(c.Request().Context(), models.AlertPctDrop, time.Now().UTC(), req.DaysBack)
	if err != nil {
		h.logger.Error("repeat scan error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	out := make(map[string]int, len(counts))
	for sym, n := range counts {
		if n >= req.Min {
			out[sym] = n
		}
	}
	return xhttp.SuccessResponse(c, out)
}

// History returns stored signal records for a symbol.
func (h *ReportEchoHandler) History(c echo.Context) error {
	if !h.history.Enabled() {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError("signal store not configured"))
	}
	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.history.GetHistory(c.Request().Context(), usecase.HistoryParams{
		Symbol: req.Symbol,
		Days:   req.Days,
	})
	if err != nil {
		h.logger.Error("history usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

// Run triggers an immediate pipeline run and returns its report.
func (h *ReportEchoHandler) Run(c echo.Context) error {
	req := &models.RunRequest{}
	_ = c.Bind(req)

	report, err := h.runner.Run(c.Request().Context(), req.DryRun)
	if err != nil {
		if errors.Is(err, usecase.ErrRunInProgress) {
			return xhttp.AppErrorResponse(c, xhttp.ConflictError("a run is already in progress"))
		}
		h.logger.Error("run usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("run failed").WithError(err))
	}
	return xhttp.AcceptedResponse(c, report)
}
