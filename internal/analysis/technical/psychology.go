// Package technical classifies short-horizon price and volume behaviour.
package technical

import (
	"math"
	"time"

	"github.com/seenimoa/marketmind/pkg/models"
)

// Thresholds for the 30-day psychology classification.
const (
	fomoPriceChange   = 10.0
	fomoVolumeRatio   = 1.5
	panicPriceChange  = -10.0
	activeVolumeRatio = 2.0
)

// Thresholds for the 7-day alert view.
const (
	alertPriceChange = 7.0
	alertVolumeRatio = 1.5
)

// ClassifyPsychology classifies a trailing window (nominally 30 calendar
// days) of daily bars. The first matching rule wins:
//
//	change > 10% and volume ratio > 1.5 → FOMO
//	change < -10%                       → PanicSelling
//	volume ratio > 2                    → HighActivity
//	otherwise                           → Neutral
//
// An empty window is Unavailable.
func ClassifyPsychology(window []models.PricePoint) models.Psychology {
	if len(window) == 0 {
		return models.Psychology{State: models.PsychologyUnavailable}
	}

	change := priceChangePct(window)
	ratio := volumeRatio(window)

	p := models.Psychology{PriceChangePct: change, VolumeRatio: ratio}
	switch {
	case change > fomoPriceChange && ratio > fomoVolumeRatio:
		p.State = models.PsychologyFOMO
	case change < panicPriceChange:
		p.State = models.PsychologyPanicSelling
	case ratio > activeVolumeRatio:
		p.State = models.PsychologyHighActivity
	default:
		p.State = models.PsychologyNeutral
	}
	return p
}

// ShortTermAlerts computes the 7-day view: a price alert when the absolute
// change exceeds 7%, and a volume alert when the latest volume is above
// 1.5× the window mean. It is a separate view from ClassifyPsychology with
// its own window and thresholds.
func ShortTermAlerts(window []models.PricePoint) models.ShortTermAlerts {
	if len(window) == 0 {
		return models.ShortTermAlerts{}
	}

	change := priceChangePct(window)
	ratio := volumeRatio(window)
	mean := meanVolume(window)
	latest := float64(window[len(window)-1].Volume)

	return models.ShortTermAlerts{
		Available:      true,
		PriceChangePct: change,
		VolumeRatio:    ratio,
		PriceAlert:     math.Abs(change) > alertPriceChange,
		VolumeAlert:    latest > alertVolumeRatio*mean,
	}
}

// TrailingWindow returns the bars dated within `days` calendar days of the
// most recent bar. The anchor is the data itself, not the wall clock, so the
// result depends only on the input.
func TrailingWindow(points []models.PricePoint, days int) []models.PricePoint {
	if len(points) == 0 || days <= 0 {
		return nil
	}
	cutoff := points[len(points)-1].Date.Add(-time.Duration(days) * 24 * time.Hour)

	start := len(points)
	for i := len(points) - 1; i >= 0; i-- {
		if points[i].Date.Before(cutoff) {
			break
		}
		start = i
	}
	return points[start:]
}

// priceChangePct is (last-first)/first × 100, or 0 when first is 0.
func priceChangePct(window []models.PricePoint) float64 {
	first := window[0].Close
	last := window[len(window)-1].Close
	if first == 0 {
		return 0
	}
	return (last - first) / first * 100
}

// volumeRatio is latest volume / mean volume, or 1 when the mean is 0.
func volumeRatio(window []models.PricePoint) float64 {
	mean := meanVolume(window)
	if mean <= 0 {
		return 1
	}
	return float64(window[len(window)-1].Volume) / mean
}

func meanVolume(window []models.PricePoint) float64 {
	if len(window) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range window {
		sum += float64(p.Volume)
	}
	return sum / float64(len(window))
}
