package api

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	models "BidSnapper/internal/domain/models"
	domsvc "BidSnapper/internal/domain/service"
	icache "BidSnapper/internal/service/cache"
	"BidSnapper/internal/service/metrics"
	"BidSnapper/internal/service/ratelimit"
	applogger "BidSnapper/pkg/logger"
)

// RecommendHandler serves the recommendation API over plain net/http.
// It fronts the engine with a rate limiter and an optional response cache.
type RecommendHandler struct {
	engine  domsvc.Recommender
	advisor domsvc.ConventionAdvisor
	cache   icache.BytesCache
	rl      *ratelimit.Limiter
	l       *applogger.Logger
}

func NewRecommendHandler(engine domsvc.Recommender, advisor domsvc.ConventionAdvisor) *RecommendHandler {
	metrics.Register()
	return &RecommendHandler{engine: engine, advisor: advisor, rl: ratelimit.New()}
}

func (h *RecommendHandler) SetCache(c icache.BytesCache) { h.cache = c }

// SetLogger injects a structured logger.
func (h *RecommendHandler) SetLogger(l *applogger.Logger) { h.l = l }

func recommendCacheKey(req *models.RecommendRequest) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%d|%d|%d",
		strings.Join(req.Hand1, ","), strings.Join(req.Hand2, ","),
		req.Generations, req.Population, req.Seed)))
	return "recommend:" + hex.EncodeToString(sum[:16])
}

func (h *RecommendHandler) Recommend() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		endpoint := "recommend"
		defer func() { metrics.EndpointLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req models.RecommendRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			if h.l != nil {
				h.l.Warn("recommend bad_json", applogger.Error(err))
			}
			http.Error(w, "invalid json body", http.StatusBadRequest)
			return
		}
		if len(req.Hand1) != 13 || len(req.Hand2) != 13 {
			if h.l != nil {
				h.l.Warn("recommend bad_hands")
			}
			http.Error(w, "hand1 and hand2 must hold 13 cards each", http.StatusBadRequest)
			return
		}
		if !h.rl.Allow(r.RemoteAddr+":recommend", 5, 2) {
			if h.l != nil {
				h.l.Warn("recommend rate_limited", applogger.String("remote", r.RemoteAddr))
			}
			http.Error(w, "rate limited", http.StatusTooManyRequests)
			return
		}
		cacheKey := recommendCacheKey(&req)
		if h.cache != nil {
			if b, ok, err := h.cache.GetBytes(cacheKey); err != nil {
				if h.l != nil {
					h.l.Warn("recommend cache_get_error", applogger.Error(err))
				}
			} else if ok {
				w.Header().Set("Content-Type", "application/json")
				if h.l != nil {
					h.l.Debug("recommend cache_hit", applogger.String("key", cacheKey))
				}
				if _, err := w.Write(b); err != nil && h.l != nil {
					h.l.Warn("recommend write_error", applogger.Error(err))
				}
				return
			}
			if h.l != nil {
				h.l.Debug("recommend cache_miss", applogger.String("key", cacheKey))
			}
		}
		hand1, err := models.ParseHand(req.Hand1)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		hand2, err := models.ParseHand(req.Hand2)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if shared := models.SharedCards(hand1, hand2); len(shared) > 0 {
			http.Error(w, sharedCardsMessage(shared), http.StatusBadRequest)
			return
		}
		opts := models.RecommendOptions{Generations: req.Generations, Population: req.Population, Seed: req.Seed}
		res, err := h.engine.Recommend(r.Context(), hand1, hand2, opts)
		if err != nil {
			metrics.EndpointErrors.WithLabelValues(endpoint).Inc()
			if h.l != nil {
				h.l.Error("recommend error", applogger.Error(err))
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		b, err := json.Marshal(res)
		if err != nil {
			if h.l != nil {
				h.l.Error("recommend marshal_error", applogger.Error(err))
			}
			http.Error(w, "encode error", http.StatusInternalServerError)
			return
		}
		if h.cache != nil {
			if err := h.cache.SetBytes(cacheKey, b, 60*time.Second); err != nil && h.l != nil {
				h.l.Warn("recommend cache_set_error", applogger.Error(err))
			}
		}
		if _, err := w.Write(b); err != nil && h.l != nil {
			h.l.Warn("recommend write_error", applogger.Error(err))
		}
	}
}

func (h *RecommendHandler) Convention() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		endpoint := "convention"
		defer func() { metrics.EndpointLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req models.ConventionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			if h.l != nil {
				h.l.Warn("convention bad_json", applogger.Error(err))
			}
			http.Error(w, "invalid json body", http.StatusBadRequest)
			return
		}
		if !h.rl.Allow(r.RemoteAddr+":convention", 10, 5) {
			if h.l != nil {
				h.l.Warn("convention rate_limited", applogger.String("remote", r.RemoteAddr))
			}
			http.Error(w, "rate limited", http.StatusTooManyRequests)
			return
		}
		hand, err := models.ParseHand(req.Cards)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		res, err := h.advisor.Suggest(r.Context(), hand, req.Strategy)
		if err != nil {
			metrics.EndpointErrors.WithLabelValues(endpoint).Inc()
			if h.l != nil {
				h.l.Error("convention error", applogger.Error(err))
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(res); err != nil && h.l != nil {
			h.l.Warn("convention write_error", applogger.Error(err))
		}
	}
}
