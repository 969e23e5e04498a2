// Package store provides persistence for evaluation history and saved strategies.
package store

import (
	"context"
	"time"

	"options-payoff/internal/payoff"
)

// Store defines the interface for history persistence.
type Store interface {
	// Evaluations
	SaveEvaluation(ctx context.Context, rec *Evaluation) (int64, error)
	GetEvaluation(ctx context.Context, id int64) (*Evaluation, error)
	ListEvaluations(ctx context.Context, filter EvaluationFilter) ([]Evaluation, error)

	// Saved strategies
	SaveStrategy(ctx context.Context, rec *SavedStrategy) error
	GetStrategy(ctx context.Context, name string) (*SavedStrategy, error)
	ListStrategies(ctx context.Context) ([]SavedStrategy, error)
	DeleteStrategy(ctx context.Context, name string) error

	// Lifecycle
	Close() error
}

// Evaluation is one recorded evaluation run. MaxProfit and MaxLoss carry
// the IEEE infinities for unbounded strategies; the database layer maps
// them to NULL columns plus unlimited flags.
type Evaluation struct {
	ID         int64
	CreatedAt  time.Time
	Strategy   string // empty for ad-hoc leg lists
	Legs       []payoff.Leg
	Range      payoff.Range
	Step       float64
	MaxProfit  float64
	MaxLoss    float64
	Breakevens []float64
}

// SavedStrategy is a named, reusable leg list.
type SavedStrategy struct {
	Name      string
	Legs      []payoff.Leg
	Note      string
	CreatedAt time.Time
}

// EvaluationFilter represents filters for querying recorded evaluations.
type EvaluationFilter struct {
	Strategy string
	Since    time.Time
	Limit    int
}
