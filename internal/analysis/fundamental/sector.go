package fundamental

import (
	"sort"
	"strings"

	"github.com/seenimoa/marketmind/pkg/models"
)

// DefaultSector is the canonical fallback sector. It always has a benchmark.
const DefaultSector = "Default"

// Canonical sectors.
const (
	SectorIT        = "IT"
	SectorUtilities = "Utilities"
	SectorBanking   = "Banking"
	SectorFMCG      = "FMCG"
	SectorAuto      = "Auto"
)

// SectorTable is the static sector configuration: raw label → canonical
// sector, per-sector benchmarks and display icons. Build one with
// DefaultSectorTable or NewSectorTable and pass it to the components that
// need it; it is never modified after construction.
type SectorTable struct {
	labels     map[string]string
	benchmarks map[string]models.SectorBenchmark
	icons      map[string]string
}

// NewSectorTable builds a table from the given maps. Label keys are matched
// case-insensitively. A Default benchmark is added if missing.
func NewSectorTable(labels map[string]string, benchmarks map[string]models.SectorBenchmark, icons map[string]string) SectorTable {
	t := SectorTable{
		labels:     make(map[string]string, len(labels)),
		benchmarks: make(map[string]models.SectorBenchmark, len(benchmarks)+1),
		icons:      make(map[string]string, len(icons)),
	}
	for k, v := range labels {
		t.labels[strings.ToLower(strings.TrimSpace(k))] = v
	}
	for k, v := range benchmarks {
		t.benchmarks[k] = v
	}
	if _, ok := t.benchmarks[DefaultSector]; !ok {
		t.benchmarks[DefaultSector] = models.SectorBenchmark{PE: 25, PB: 3}
	}
	for k, v := range icons {
		t.icons[k] = v
	}
	return t
}

// DefaultSectorTable returns the built-in Indian-market sector configuration.
func DefaultSectorTable() SectorTable {
	return NewSectorTable(
		map[string]string{
			"Information Technology": SectorIT,
			"Technology":             SectorIT,
			"Utilities":              SectorUtilities,
			"Banking":                SectorBanking,
			"Financial Services":     SectorBanking,
			"Consumer Defensive":     SectorFMCG,
			"Consumer Cyclical":      SectorAuto,
			"Auto":                   SectorAuto,
			"Industrial":             SectorAuto,
			"Industrials":            SectorAuto,
		},
		map[string]models.SectorBenchmark{
			SectorIT:        {PE: 28, PB: 6},
			SectorUtilities: {PE: 12, PB: 2},
			SectorBanking:   {PE: 15, PB: 2.5},
			SectorFMCG:      {PE: 40, PB: 10},
			SectorAuto:      {PE: 20, PB: 3},
			DefaultSector:   {PE: 25, PB: 3},
		},
		map[string]string{
			SectorIT:        "💻",
			SectorUtilities: "⚡",
			SectorBanking:   "🏦",
			SectorFMCG:      "🛒",
			SectorAuto:      "🚗",
			DefaultSector:   "🏢",
		},
	)
}

// Classify maps a raw provider label to a canonical sector. Unknown or empty
// labels map to DefaultSector.
func (t SectorTable) Classify(raw string) string {
	if s, ok := t.labels[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return s
	}
	return DefaultSector
}

// Benchmark returns the benchmark for a canonical sector, falling back to
// the Default entry.
func (t SectorTable) Benchmark(sector string) models.SectorBenchmark {
	if b, ok := t.benchmarks[sector]; ok {
		return b
	}
	return t.benchmarks[DefaultSector]
}

// Icon returns the display icon for a canonical sector.
func (t SectorTable) Icon(sector string) string {
	if i, ok := t.icons[sector]; ok {
		return i
	}
	return t.icons[DefaultSector]
}

// Sectors lists the canonical sectors that have a benchmark, sorted.
func (t SectorTable) Sectors() []string {
	out := make([]string, 0, len(t.benchmarks))
	for s := range t.benchmarks {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
