package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/seenimoa/marketmind/internal/config"
	"github.com/seenimoa/marketmind/internal/observability"
	"github.com/seenimoa/marketmind/pkg/models"
)

// ProviderYFinance names the Yahoo Finance provider in errors and metrics.
const ProviderYFinance = "yfinance"

// quoteSummaryModules are the quoteSummary modules a Snapshot is built from.
var quoteSummaryModules = []string{
	"assetProfile", "financialData", "defaultKeyStatistics", "summaryDetail", "price",
}

// YFinance fetches fundamentals and daily price history from Yahoo Finance.
type YFinance struct {
	client   *client
	quoteURL string
	chartURL string
	now      func() time.Time
}

// NewYFinance creates a Yahoo Finance provider from the provider config.
func NewYFinance(cfg config.ProviderConfig, metrics *observability.Metrics) *YFinance {
	return &YFinance{
		client: newClient(ProviderYFinance, ClientOptions{
			Timeout:            time.Duration(cfg.TimeoutSec) * time.Second,
			RequestsPerSec:     cfg.RequestsPerSec,
			Burst:              cfg.Burst,
			BreakerMaxRequests: cfg.BreakerMaxRequests,
			BreakerTimeout:     time.Duration(cfg.BreakerTimeoutSec) * time.Second,
			UserAgent:          cfg.UserAgent,
		}, metrics),
		quoteURL: strings.TrimRight(cfg.QuoteURL, "/"),
		chartURL: strings.TrimRight(cfg.ChartURL, "/"),
		now:      time.Now,
	}
}

// Name returns the data source name.
func (y *YFinance) Name() string { return ProviderYFinance }

// --- Yahoo Finance API types ---

type yfError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// yfValue is Yahoo's {"raw": ..., "fmt": ...} wrapper. Missing values come
// back as {} or null.
type yfValue struct {
	Raw *float64 `json:"raw"`
}

func (v *yfValue) ptr() *float64 {
	if v == nil || v.Raw == nil {
		return nil
	}
	raw := *v.Raw
	return &raw
}

type yfSummaryResponse struct {
	QuoteSummary struct {
		Result []yfSummaryResult `json:"result"`
		Error  *yfError          `json:"error"`
	} `json:"quoteSummary"`
}

type yfSummaryResult struct {
	AssetProfile struct {
		Sector   string `json:"sector"`
		Industry string `json:"industry"`
	} `json:"assetProfile"`
	FinancialData struct {
		CurrentPrice   *yfValue `json:"currentPrice"`
		ReturnOnEquity *yfValue `json:"returnOnEquity"`
		ProfitMargins  *yfValue `json:"profitMargins"`
		EarningsGrowth *yfValue `json:"earningsGrowth"`
		FreeCashflow   *yfValue `json:"freeCashflow"`
	} `json:"financialData"`
	DefaultKeyStatistics struct {
		TrailingEps *yfValue `json:"trailingEps"`
		PriceToBook *yfValue `json:"priceToBook"`
	} `json:"defaultKeyStatistics"`
	SummaryDetail struct {
		TrailingPE *yfValue `json:"trailingPE"`
	} `json:"summaryDetail"`
	Price struct {
		Symbol             string   `json:"symbol"`
		LongName           string   `json:"longName"`
		ShortName          string   `json:"shortName"`
		Currency           string   `json:"currency"`
		RegularMarketPrice *yfValue `json:"regularMarketPrice"`
	} `json:"price"`
}

type yfChartResponse struct {
	Chart struct {
		Result []yfChartResult `json:"result"`
		Error  *yfError        `json:"error"`
	} `json:"chart"`
}

type yfChartResult struct {
	Timestamp  []int64      `json:"timestamp"`
	Indicators yfIndicators `json:"indicators"`
}

type yfIndicators struct {
	Quote []yfQuoteSeries `json:"quote"`
}

type yfQuoteSeries struct {
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}

// --- Public methods ---

// Snapshot returns the fundamentals snapshot for ticker (a Yahoo symbol such
// as "INFY.NS").
func (y *YFinance) Snapshot(ctx context.Context, ticker string) (*models.Snapshot, error) {
	u := fmt.Sprintf("%s/%s?modules=%s",
		y.quoteURL, url.PathEscape(ticker), strings.Join(quoteSummaryModules, ","))

	data, err := y.client.get(ctx, "snapshot", u, map[string]string{"Accept": "application/json"})
	if err != nil {
		return nil, fmt.Errorf("yfinance quoteSummary %s: %w", ticker, err)
	}

	var resp yfSummaryResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parse yfinance quoteSummary: %w", err)
	}
	if resp.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("yfinance API error: %s", resp.QuoteSummary.Error.Description)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTickerNotFound, ticker)
	}

	return parseSnapshot(ticker, resp.QuoteSummary.Result[0]), nil
}

// History returns daily closes and volumes covering the last days calendar
// days, oldest first.
func (y *YFinance) History(ctx context.Context, ticker string, days int) ([]models.PricePoint, error) {
	to := y.now()
	from := to.AddDate(0, 0, -days)
	u := fmt.Sprintf("%s/%s?period1=%d&period2=%d&interval=1d",
		y.chartURL, url.PathEscape(ticker), from.Unix(), to.Unix())

	data, err := y.client.get(ctx, "history", u, map[string]string{"Accept": "application/json"})
	if err != nil {
		return nil, fmt.Errorf("yfinance chart %s: %w", ticker, err)
	}

	var resp yfChartResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parse yfinance chart: %w", err)
	}
	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("yfinance chart error: %s", resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTickerNotFound, ticker)
	}

	return parseYFHistory(resp.Chart.Result[0]), nil
}

// --- Helpers ---

func parseSnapshot(ticker string, r yfSummaryResult) *models.Snapshot {
	price := r.FinancialData.CurrentPrice.ptr()
	if price == nil {
		price = r.Price.RegularMarketPrice.ptr()
	}

	return &models.Snapshot{
		Ticker:         ticker,
		Name:           coalesce(r.Price.LongName, r.Price.ShortName, ticker),
		Sector:         r.AssetProfile.Sector,
		Industry:       r.AssetProfile.Industry,
		Currency:       r.Price.Currency,
		TrailingPE:     r.SummaryDetail.TrailingPE.ptr(),
		ReturnOnEquity: r.FinancialData.ReturnOnEquity.ptr(),
		ProfitMargin:   r.FinancialData.ProfitMargins.ptr(),
		PriceToBook:    r.DefaultKeyStatistics.PriceToBook.ptr(),
		TrailingEPS:    r.DefaultKeyStatistics.TrailingEps.ptr(),
		CurrentPrice:   price,
		EarningsGrowth: r.FinancialData.EarningsGrowth.ptr(),
		FreeCashFlow:   r.FinancialData.FreeCashflow.ptr(),
	}
}

// parseYFHistory converts a chart result to price points. Bars without a
// close (trading halts, partial sessions) are skipped.
func parseYFHistory(result yfChartResult) []models.PricePoint {
	if len(result.Indicators.Quote) == 0 {
		return nil
	}

	q := result.Indicators.Quote[0]
	points := make([]models.PricePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(q.Close) || q.Close[i] == nil {
			continue
		}
		p := models.PricePoint{
			Date:  time.Unix(ts, 0).UTC(),
			Close: *q.Close[i],
		}
		if i < len(q.Volume) && q.Volume[i] != nil {
			p.Volume = *q.Volume[i]
		}
		points = append(points, p)
	}
	return points
}

func coalesce(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
