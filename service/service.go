// Package service serves price quotes on top of a loaded ml.Estimator.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"homeprice/ml"
	"homeprice/monitoring"
)

// History persists served quotes.
type History interface {
	Record(ctx context.Context, quote Quote) error
	Recent(ctx context.Context, limit int) ([]Quote, error)
}

type Options struct {
	// CacheSize is the number of quotes kept in memory. Zero disables caching.
	CacheSize int
	History   History
	Metrics   *monitoring.Metrics
	Logger    *zap.Logger
}

type Service struct {
	estimator *ml.Estimator
	cache     *lru.Cache[cacheKey, Quote]
	history   History
	metrics   *monitoring.Metrics
	logger    *zap.Logger
	now       func() time.Time
}

func New(estimator *ml.Estimator, opts Options) (*Service, error) {
	if estimator == nil {
		return nil, errors.New("estimator is required")
	}
	s := &Service{
		estimator: estimator,
		history:   opts.History,
		metrics:   opts.Metrics,
		logger:    opts.Logger,
		now:       time.Now,
	}
	if s.metrics == nil {
		s.metrics = monitoring.NewMetrics(prometheus.NewRegistry())
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if opts.CacheSize > 0 {
		cache, err := lru.New[cacheKey, Quote](opts.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("quote cache: %w", err)
		}
		s.cache = cache
	}
	return s, nil
}

// Locations lists the recognised locations in schema order.
func (s *Service) Locations() []string {
	return s.estimator.Locations()
}

// Estimate prices req. The request is not validated here; callers that
// enforce form bounds call req.Validate first.
func (s *Service) Estimate(ctx context.Context, req Request) (Quote, error) {
	start := time.Now()
	key := req.key()

	quote, hit := s.lookup(key)
	if hit {
		s.metrics.ObserveCacheHit()
	} else {
		price, err := s.estimator.Estimate(req.Location, req.TotalSqft, float64(req.Bath), float64(req.BHK))
		if err != nil {
			return Quote{}, err
		}
		_, matched := s.estimator.MatchLocation(req.Location)
		quote = Quote{
			Location:        DisplayLocation(req.Location),
			TotalSqft:       req.TotalSqft,
			Bath:            req.Bath,
			BHK:             req.BHK,
			Price:           price,
			Unit:            PriceUnit,
			Display:         FormatPrice(price),
			LocationMatched: matched,
		}
		if s.cache != nil {
			s.cache.Add(key, quote)
		}
	}
	quote.CreatedAt = s.now().UTC()
	s.metrics.ObserveEstimate(quote.LocationMatched, time.Since(start))

	if !quote.LocationMatched {
		s.logger.Debug("unrecognised location, estimating without location signal",
			zap.String("location", req.Location))
	}

	if s.history != nil {
		if err := s.history.Record(ctx, quote); err != nil {
			s.logger.Warn("failed to record estimate", zap.Error(err))
		}
	}
	return quote, nil
}

// Recent returns the latest recorded quotes, newest first. Without a
// history store it returns an empty list.
func (s *Service) Recent(ctx context.Context, limit int) ([]Quote, error) {
	if s.history == nil {
		return []Quote{}, nil
	}
	return s.history.Recent(ctx, limit)
}

func (s *Service) lookup(key cacheKey) (Quote, bool) {
	if s.cache == nil {
		return Quote{}, false
	}
	return s.cache.Get(key)
}
