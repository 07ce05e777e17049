// Package analyzer runs one analysis: it fetches provider data for a
// ticker and composes the signals into a report.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/seenimoa/marketmind/internal/analysis/technical"
	"github.com/seenimoa/marketmind/internal/observability"
	"github.com/seenimoa/marketmind/pkg/models"
	"github.com/seenimoa/marketmind/pkg/utils"
)

// MarketData supplies fundamentals and daily price history.
type MarketData interface {
	Snapshot(ctx context.Context, ticker string) (*models.Snapshot, error)
	History(ctx context.Context, ticker string, days int) ([]models.PricePoint, error)
}

// NewsFeed supplies recent headlines for a search query.
type NewsFeed interface {
	Headlines(ctx context.Context, query string) ([]string, error)
}

// Provider names used in ProviderError and metrics.
const (
	ProviderMarketData = "market_data"
	ProviderNews       = "news"
)

// ErrEmptyTicker is returned when the ticker is blank after normalisation.
var ErrEmptyTicker = errors.New("ticker is empty")

// ProviderError reports a failed provider call. It aborts the analysis.
type ProviderError struct {
	Provider string
	Op       string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Options configure an Analyzer.
type Options struct {
	PsychologyWindowDays int // default 30
	AlertWindowDays      int // default 7
	Engine               *Engine
	Metrics              *observability.Metrics
}

// Analyzer fetches provider data and composes reports.
type Analyzer struct {
	market         MarketData
	news           NewsFeed
	engine         *Engine
	metrics        *observability.Metrics
	psychologyDays int
	alertDays      int
}

// New creates an analyzer.
func New(market MarketData, news NewsFeed, opts Options) *Analyzer {
	if opts.PsychologyWindowDays <= 0 {
		opts.PsychologyWindowDays = 30
	}
	if opts.AlertWindowDays <= 0 {
		opts.AlertWindowDays = DefaultAlertWindowDays
	}
	if opts.Engine == nil {
		opts.Engine = defaultEngine
	}
	return &Analyzer{
		market:         market,
		news:           news,
		engine:         opts.Engine,
		metrics:        opts.Metrics,
		psychologyDays: opts.PsychologyWindowDays,
		alertDays:      opts.AlertWindowDays,
	}
}

// Analyze normalises ticker, fetches the snapshot, history and headlines in
// parallel and composes the report. Any provider failure aborts the run with
// a *ProviderError. A nil profile omits the advice section.
func (a *Analyzer) Analyze(ctx context.Context, ticker string, profile *models.InvestorProfile) (*models.Report, error) {
	symbol := utils.NormalizeTicker(ticker)
	if symbol == "" {
		return nil, ErrEmptyTicker
	}

	start := time.Now()
	logger := log.With().Str("run_id", uuid.NewString()).Str("ticker", symbol).Logger()
	logger.Info().Msg("analysis started")

	in := Inputs{
		Ticker:          symbol,
		Profile:         profile,
		AlertWindowDays: a.alertDays,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		snap, err := a.market.Snapshot(gctx, symbol)
		if err != nil {
			return &ProviderError{Provider: ProviderMarketData, Op: "snapshot", Err: err}
		}
		in.Snapshot = snap
		return nil
	})

	g.Go(func() error {
		history, err := a.market.History(gctx, symbol, a.psychologyDays)
		if err != nil {
			return &ProviderError{Provider: ProviderMarketData, Op: "history", Err: err}
		}
		in.History = history
		return nil
	})

	g.Go(func() error {
		headlines, err := a.news.Headlines(gctx, utils.BaseSymbol(symbol))
		if err != nil {
			return &ProviderError{Provider: ProviderNews, Op: "headlines", Err: err}
		}
		in.Headlines = headlines
		return nil
	})

	if err := g.Wait(); err != nil {
		a.recordFailure(err)
		logger.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("analysis failed")
		return nil, err
	}

	report := a.engine.Compose(in)
	elapsed := time.Since(start)
	a.metrics.RecordAnalysis(string(report.Recommendation.Verdict), report.Recommendation.MarketMindScore, elapsed)

	logger.Info().
		Str("sector", report.Sector).
		Int("score", report.Fundamentals.Score).
		Str("verdict", string(report.Recommendation.Verdict)).
		Int("marketmind_score", report.Recommendation.MarketMindScore).
		Dur("elapsed", elapsed).
		Msg("analysis complete")

	return &report, nil
}

// Alerts fetches only the alert window of history and returns the
// short-term price and volume alerts.
func (a *Analyzer) Alerts(ctx context.Context, ticker string) (models.ShortTermAlerts, error) {
	symbol := utils.NormalizeTicker(ticker)
	if symbol == "" {
		return models.ShortTermAlerts{}, ErrEmptyTicker
	}

	history, err := a.market.History(ctx, symbol, a.alertDays)
	if err != nil {
		perr := &ProviderError{Provider: ProviderMarketData, Op: "history", Err: err}
		a.recordFailure(perr)
		return models.ShortTermAlerts{}, perr
	}

	log.Debug().Str("ticker", symbol).Int("bars", len(history)).Msg("alerts computed")
	return technical.ShortTermAlerts(technical.TrailingWindow(history, a.alertDays)), nil
}

func (a *Analyzer) recordFailure(err error) {
	var perr *ProviderError
	if errors.As(err, &perr) {
		a.metrics.RecordAnalysisError(perr.Provider)
	}
}
