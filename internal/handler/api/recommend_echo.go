package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	models "BidSnapper/internal/domain/models"
	domrepo "BidSnapper/internal/domain/repository"
	domsvc "BidSnapper/internal/domain/service"
	"BidSnapper/internal/services/conventions"
	"BidSnapper/internal/services/features"
	"BidSnapper/internal/services/rules"
	"BidSnapper/internal/usecase"
	xhttp "BidSnapper/pkg/http"
	xlogger "BidSnapper/pkg/logger"
	"BidSnapper/pkg/queue"

	"github.com/labstack/echo/v4"
)

// RecommendEchoHandler implements Echo-based HTTP handlers following Clean Architecture.
type RecommendEchoHandler struct {
	logger     *xlogger.Logger
	engine     domsvc.Recommender
	advisor    domsvc.ConventionAdvisor
	preprocess *usecase.PreprocessUseCase
	dataset    *usecase.DatasetUseCase
	metrics    domrepo.Metrics

	// jobs is optional; when nil, async preprocess requests run inline.
	jobs queue.QueueService

	// health probes backing storage for /healthz.
	health func(context.Context) error
}

func NewRecommendEchoHandler(
	logger *xlogger.Logger,
	engine domsvc.Recommender,
	advisor domsvc.ConventionAdvisor,
	preprocess *usecase.PreprocessUseCase,
	dataset *usecase.DatasetUseCase,
	metrics domrepo.Metrics,
) *RecommendEchoHandler {
	return &RecommendEchoHandler{
		logger:     logger,
		engine:     engine,
		advisor:    advisor,
		preprocess: preprocess,
		dataset:    dataset,
		metrics:    metrics,
	}
}

// SetQueue enables async preprocessing through the job queue.
func (h *RecommendEchoHandler) SetQueue(q queue.QueueService) { h.jobs = q }

// SetHealthCheck registers a storage probe for /healthz.
func (h *RecommendEchoHandler) SetHealthCheck(fn func(context.Context) error) { h.health = fn }

func (h *RecommendEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)

	g := e.Group("/api")
	g.POST("/recommend", h.Recommend)
	g.POST("/validate", h.Validate)
	g.POST("/convention", h.Convention)
	g.GET("/conventions", h.Conventions)
	g.POST("/dataset/preprocess", h.Preprocess)
	g.GET("/dataset/rows", h.DatasetRows)
	g.GET("/dataset/latest", h.DatasetLatest)
}

func (h *RecommendEchoHandler) Healthz(c echo.Context) error {
	status := map[string]string{"status": "ok"}
	if h.health != nil {
		if err := h.health(c.Request().Context()); err != nil {
			status["status"] = "degraded"
			status["storage"] = err.Error()
			return c.JSON(http.StatusServiceUnavailable, status)
		}
		status["storage"] = "ok"
	}
	return c.JSON(http.StatusOK, status)
}

func (h *RecommendEchoHandler) Recommend(c echo.Context) error {
	start := time.Now()
	req := &models.RecommendRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	hand1, err := models.ParseHand(req.Hand1)
	if err != nil {
		return xhttp.BadRequestResponse(c, err.Error())
	}
	hand2, err := models.ParseHand(req.Hand2)
	if err != nil {
		return xhttp.BadRequestResponse(c, err.Error())
	}
	if shared := models.SharedCards(hand1, hand2); len(shared) > 0 {
		return xhttp.BadRequestResponse(c, sharedCardsMessage(shared))
	}

	opts := models.RecommendOptions{
		Generations: req.Generations,
		Population:  req.Population,
		Seed:        req.Seed,
	}
	rec, err := h.engine.Recommend(c.Request().Context(), hand1, hand2, opts)
	if err != nil {
		h.logger.Error("recommend usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	if h.metrics != nil {
		h.metrics.RecordRecommendation(string(rec.Contract.Strain), rec.Valid)
		h.metrics.RecordLatency("recommend", time.Since(start).Seconds())
	}
	return xhttp.SuccessResponse(c, rec)
}

func (h *RecommendEchoHandler) Validate(c echo.Context) error {
	req := &models.ValidateRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	hand1, err := models.ParseHand(req.Hand1)
	if err != nil {
		return xhttp.BadRequestResponse(c, err.Error())
	}
	hand2, err := models.ParseHand(req.Hand2)
	if err != nil {
		return xhttp.BadRequestResponse(c, err.Error())
	}
	if shared := models.SharedCards(hand1, hand2); len(shared) > 0 {
		return xhttp.BadRequestResponse(c, sharedCardsMessage(shared))
	}
	f, err := features.Extract(hand1, hand2)
	if err != nil {
		return xhttp.BadRequestResponse(c, err.Error())
	}
	res, err := rules.ValidateString(f, req.Contract)
	if err != nil {
		return xhttp.BadRequestResponse(c, err.Error())
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *RecommendEchoHandler) Convention(c echo.Context) error {
	req := &models.ConventionRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	hand, err := models.ParseHand(req.Cards)
	if err != nil {
		return xhttp.BadRequestResponse(c, err.Error())
	}
	advice, err := h.advisor.Suggest(c.Request().Context(), hand, req.Strategy)
	if err != nil {
		return xhttp.BadRequestResponse(c, err.Error())
	}
	return xhttp.SuccessResponse(c, advice)
}

func (h *RecommendEchoHandler) Conventions(c echo.Context) error {
	return xhttp.SuccessResponse(c, conventions.Strategies())
}

func (h *RecommendEchoHandler) Preprocess(c echo.Context) error {
	req := &models.PreprocessRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	params := usecase.PreprocessParams{Boards: req.Boards}
	if req.Async && h.jobs != nil {
		if err := h.jobs.PublishMessage(c.Request().Context(), usecase.PreprocessJobType, params); err != nil {
			h.logger.Error("preprocess enqueue error", xlogger.Error(err))
			return xhttp.AppErrorResponse(c, err)
		}
		return xhttp.DataResponse(c, http.StatusAccepted, map[string]int{"queued": len(req.Boards)})
	}

	res, err := h.preprocess.Preprocess(c.Request().Context(), params)
	if err != nil {
		h.logger.Error("preprocess usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *RecommendEchoHandler) DatasetRows(c echo.Context) error {
	req := &models.DatasetRowsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	now := time.Now().UTC()
	res, err := h.dataset.GetRows(c.Request().Context(), usecase.GetRowsParams{
		From:  xhttp.ParseTimeDefault(req.From, now.Add(-24*time.Hour)),
		To:    xhttp.ParseTimeDefault(req.To, now),
		Limit: req.Limit,
	})
	if err != nil {
		h.logger.Error("dataset rows usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, res.Rows, int64(res.Count))
}

func (h *RecommendEchoHandler) DatasetLatest(c echo.Context) error {
	req := &models.DatasetLatestRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.dataset.GetLatest(c.Request().Context(), req.N)
	if err != nil {
		h.logger.Error("dataset latest usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, res.Rows, int64(res.Count))
}

// sharedCardsMessage names every card claimed by both hands of a request.
func sharedCardsMessage(shared []models.Card) string {
	names := make([]string, len(shared))
	for i, card := range shared {
		names[i] = card.String()
	}
	return "hands share cards: " + strings.Join(names, ", ")
}
