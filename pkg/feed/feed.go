// Package feed provides the built-in demo quote feed. Prices follow a
// seeded random walk so the terminal is fully usable offline, and fixed
// seeds give reproducible sessions for demos and tests.
package feed

import (
	"math"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"
)

// Quote is one symbol's current state plus its recent price history.
type Quote struct {
	Symbol    string
	Name      string
	Last      float64
	Open      float64 // session open, the reference for Change
	Change    float64
	ChangePct float64
	Volume    int64
	Updated   time.Time

	// History holds the most recent prices, oldest first.
	History []float64
}

// Config controls a Feed instance.
type Config struct {
	// Symbols seeds the tradable universe. Empty falls back to a small
	// default set.
	Symbols []string

	// Seed fixes the random walk. Zero derives a seed from the clock.
	Seed int64

	// MaxHistory bounds per-symbol price history. Zero means 120 points.
	MaxHistory int
}

func (c Config) defaults() Config {
	if len(c.Symbols) == 0 {
		c.Symbols = []string{"VNM", "VCB", "HPG", "FPT"}
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	if c.MaxHistory == 0 {
		c.MaxHistory = 120
	}
	return c
}

// companyNames maps known demo symbols to display names.
var companyNames = map[string]string{
	"VNM": "Vietnam Dairy Products",
	"VCB": "Vietcombank",
	"HPG": "Hoa Phat Group",
	"FPT": "FPT Corporation",
	"VIC": "Vingroup",
	"MSN": "Masan Group",
	"VHM": "Vinhomes",
	"MWG": "Mobile World Group",
}

// Feed is a concurrency-safe quote source. Step advances every symbol one
// tick; reads always return copies.
type Feed struct {
	mu     sync.RWMutex
	rng    *rand.Rand
	quotes map[string]*Quote
	order  []string
	max    int
}

// New creates a feed with an initial price per symbol.
func New(cfg Config) *Feed {
	cfg = cfg.defaults()
	f := &Feed{
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		quotes: make(map[string]*Quote, len(cfg.Symbols)),
		max:    cfg.MaxHistory,
	}
	for _, sym := range cfg.Symbols {
		f.add(strings.ToUpper(sym))
	}
	return f
}

// add seeds one symbol. Caller holds no lock (construction) or mu.
func (f *Feed) add(sym string) {
	if _, ok := f.quotes[sym]; ok {
		return
	}
	// Initial price in a plausible 10..110 band.
	price := round2(10 + f.rng.Float64()*100)
	f.quotes[sym] = &Quote{
		Symbol:  sym,
		Name:    companyNames[sym],
		Last:    price,
		Open:    price,
		Updated: time.Now(),
		History: []float64{price},
	}
	f.order = append(f.order, sym)
	sort.Strings(f.order)
}

// Track adds a symbol to the universe if it is not already present.
func (f *Feed) Track(symbol string) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.add(symbol)
}

// Step advances every symbol one tick of the random walk.
func (f *Feed) Step() {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now()
	for _, sym := range f.order {
		q := f.quotes[sym]

		// Mild drift with ±0.6% noise per tick.
		move := (f.rng.Float64() - 0.5) * 0.012
		q.Last = round2(q.Last * (1 + move))
		if q.Last < 0.01 {
			q.Last = 0.01
		}
		q.Change = round2(q.Last - q.Open)
		if q.Open != 0 {
			q.ChangePct = round2(q.Change / q.Open * 100)
		}
		q.Volume += int64(f.rng.Intn(50_000))
		q.Updated = now

		q.History = append(q.History, q.Last)
		if len(q.History) > f.max {
			q.History = q.History[len(q.History)-f.max:]
		}
	}
}

// Quote returns a copy of one symbol's quote.
func (f *Feed) Quote(symbol string) (Quote, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	q, ok := f.quotes[strings.ToUpper(symbol)]
	if !ok {
		return Quote{}, false
	}
	return copyQuote(q), true
}

// Snapshot returns copies of all quotes sorted by symbol.
func (f *Feed) Snapshot() []Quote {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]Quote, 0, len(f.order))
	for _, sym := range f.order {
		out = append(out, copyQuote(f.quotes[sym]))
	}
	return out
}

// Movers returns all quotes sorted by percent change, gainers first.
func (f *Feed) Movers() []Quote {
	out := f.Snapshot()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ChangePct > out[j].ChangePct
	})
	return out
}

// Symbols returns the tracked universe sorted alphabetically.
func (f *Feed) Symbols() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

func copyQuote(q *Quote) Quote {
	out := *q
	out.History = make([]float64, len(q.History))
	copy(out.History, q.History)
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
