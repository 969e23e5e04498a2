package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"options-payoff/internal/catalog"
	"options-payoff/internal/logging"
	"options-payoff/internal/payoff"
	"options-payoff/internal/store"
)

// strategySummary is one catalog entry in list responses.
type strategySummary struct {
	Name     string `json:"name"`
	Summary  string `json:"summary"`
	Strikes  int    `json:"strikes"`
	Premiums int    `json:"premiums"`
}

// evaluateStrategyRequest is the body for evaluating a catalog preset.
type evaluateStrategyRequest struct {
	Strikes  []float64 `json:"strikes"`
	Premiums []float64 `json:"premiums"`
	Quantity int       `json:"quantity"`
	MinPrice *float64  `json:"min_price"`
	MaxPrice *float64  `json:"max_price"`
	Step     float64   `json:"step"`
}

// evaluateLegsRequest is the body for evaluating an ad-hoc leg list.
type evaluateLegsRequest struct {
	Legs     []payoff.Leg `json:"legs"`
	MinPrice *float64     `json:"min_price"`
	MaxPrice *float64     `json:"max_price"`
	Step     float64      `json:"step"`
}

// handleListStrategies lists the strategy catalog.
// GET /api/v1/strategies
func (s *Server) handleListStrategies(c *gin.Context) {
	defs := catalog.All()

	out := make([]strategySummary, 0, len(defs))
	for _, def := range defs {
		out = append(out, strategySummary{
			Name:     def.Name,
			Summary:  def.Summary,
			Strikes:  def.NumStrikes(),
			Premiums: def.NumPremiums(),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"count":      len(out),
		"strategies": out,
	})
}

// handleGetStrategy returns one catalog definition with its leg specs.
// GET /api/v1/strategies/:name
func (s *Server) handleGetStrategy(c *gin.Context) {
	def, err := catalog.Lookup(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Unknown strategy",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, def)
}

// handleEvaluateStrategy evaluates a catalog preset at the supplied
// strikes and premiums.
// POST /api/v1/strategies/:name/evaluate
func (s *Server) handleEvaluateStrategy(c *gin.Context) {
	def, err := catalog.Lookup(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Unknown strategy",
			"details": err.Error(),
		})
		return
	}

	var req evaluateStrategyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	legs, err := def.Build(req.Strikes, req.Premiums, quantity)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid strategy parameters",
			"details": err.Error(),
		})
		return
	}

	s.evaluate(c, def.Name, legs, req.MinPrice, req.MaxPrice, req.Step)
}

// handleEvaluateLegs evaluates an ad-hoc leg list.
// POST /api/v1/evaluate
func (s *Server) handleEvaluateLegs(c *gin.Context) {
	var req evaluateLegsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	if len(req.Legs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "At least one leg is required",
		})
		return
	}

	// Accept relaxed spellings and default the quantity; anything still
	// invalid is rejected by leg validation inside Evaluate.
	for i := range req.Legs {
		l := &req.Legs[i]
		if inst, err := payoff.ParseInstrument(string(l.Instrument)); err == nil {
			l.Instrument = inst
		}
		if dir, err := payoff.ParseDirection(string(l.Direction)); err == nil {
			l.Direction = dir
		}
		if l.Quantity == 0 {
			l.Quantity = 1
		}
	}

	s.evaluate(c, "", req.Legs, req.MinPrice, req.MaxPrice, req.Step)
}

// evaluate runs the engine for the handlers above, applying the default
// window and step, recording metrics and best-effort history.
func (s *Server) evaluate(c *gin.Context, strategy string, legs []payoff.Leg, minPrice, maxPrice *float64, step float64) {
	rng := payoff.DefaultRange(legs, s.cfg.Engine.RangePaddingPercent)
	if minPrice != nil {
		rng.Min = *minPrice
	}
	if maxPrice != nil {
		rng.Max = *maxPrice
	}
	if step == 0 {
		step = s.cfg.Engine.Step
	}

	label := strategy
	if label == "" {
		label = "adhoc"
	}

	start := time.Now()
	curve, err := payoff.Evaluate(legs, rng, step)
	elapsed := time.Since(start)
	EvaluationDuration.Observe(elapsed.Seconds())

	if err != nil {
		Evaluations.WithLabelValues(label, "error").Inc()
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Evaluation failed",
			"details": err.Error(),
		})
		return
	}

	Evaluations.WithLabelValues(label, "ok").Inc()
	logger := logging.WithStrategy(logging.FromContext(c.Request.Context()), label)
	logging.LogEvaluation(logger, len(legs), curve.MaxProfit, curve.MaxLoss, len(curve.Breakevens), elapsed)

	if s.store != nil {
		rec := &store.Evaluation{
			Strategy:   strategy,
			Legs:       legs,
			Range:      rng,
			Step:       step,
			MaxProfit:  curve.MaxProfit,
			MaxLoss:    curve.MaxLoss,
			Breakevens: curve.Breakevens,
		}
		if _, err := s.store.SaveEvaluation(c.Request.Context(), rec); err != nil {
			logger.Warn().Err(err).Msg("Failed to record evaluation")
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"strategy": strategy,
		"legs":     legs,
		"range":    rng,
		"step":     step,
		"curve":    curve,
	})
}
