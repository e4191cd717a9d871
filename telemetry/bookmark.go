package telemetry

import (
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/evgen/config"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkExtinction       BookmarkType = "extinction"
	BookmarkPopulationBoom   BookmarkType = "population_boom"
	BookmarkPopulationCrash  BookmarkType = "population_crash"
	BookmarkFoliageDepleted  BookmarkType = "foliage_depleted"
	BookmarkGenomeDominance  BookmarkType = "genome_dominance"
	BookmarkStablePopulation BookmarkType = "stable_population"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Epoch       int          `csv:"epoch"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"epoch", b.Epoch,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in the simulation.
type BookmarkDetector struct {
	cfg config.BookmarksConfig

	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	recentPeak         int  // peak animal count since the last crash
	extinct            bool // extinction already reported
	depleted           bool // foliage depletion already reported
	dominant           bool // dominance already reported for the current genome
	dominantGenome     string
	stableWindowsCount int // consecutive windows with a stable population
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int, cfg config.BookmarksConfig) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5 // minimum for stable population detection
	}
	return &BookmarkDetector{
		cfg:         cfg,
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	for _, check := range []func(WindowStats) *Bookmark{
		bd.checkExtinction,
		bd.checkFoliageDepleted,
		bd.checkGenomeDominance,
	} {
		if b := check(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	if bd.historyFull || bd.historyIdx > 0 {
		// Boom: population well above the rolling mean
		if b := bd.checkPopulationBoom(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Crash: large drop from the recent peak
		if b := bd.checkPopulationCrash(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Stable: low variance over several windows
		if b := bd.checkStablePopulation(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	// Update history
	bd.addToHistory(stats)

	if stats.Animals > bd.recentPeak {
		bd.recentPeak = stats.Animals
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// getHistory returns the stored windows, oldest first.
func (bd *BookmarkDetector) getHistory() []WindowStats {
	if !bd.historyFull {
		return bd.history[:bd.historyIdx]
	}
	ordered := make([]WindowStats, 0, bd.historySize)
	ordered = append(ordered, bd.history[bd.historyIdx:]...)
	return append(ordered, bd.history[:bd.historyIdx]...)
}

func (bd *BookmarkDetector) checkExtinction(stats WindowStats) *Bookmark {
	if stats.Animals > 0 {
		bd.extinct = false
		return nil
	}
	if bd.extinct || bd.recentPeak == 0 {
		return nil
	}
	bd.extinct = true
	return &Bookmark{
		Type:        BookmarkExtinction,
		Epoch:       stats.WindowEndEpoch,
		Description: fmt.Sprintf("Last animal died (average life %.2f epochs)", stats.AvgLifeLength),
	}
}

func (bd *BookmarkDetector) checkFoliageDepleted(stats WindowStats) *Bookmark {
	if stats.Foliage > 0 || stats.Animals == 0 {
		bd.depleted = false
		return nil
	}
	if bd.depleted {
		return nil
	}
	bd.depleted = true
	return &Bookmark{
		Type:        BookmarkFoliageDepleted,
		Epoch:       stats.WindowEndEpoch,
		Description: fmt.Sprintf("No foliage left for %d animals", stats.Animals),
	}
}

func (bd *BookmarkDetector) checkGenomeDominance(stats WindowStats) *Bookmark {
	cfg := bd.cfg.GenomeDominance
	if stats.Animals < cfg.MinAnimals || stats.DominantShare < cfg.Share {
		bd.dominant = false
		return nil
	}
	if bd.dominant && bd.dominantGenome == stats.MostPopularGenome {
		return nil
	}
	bd.dominant = true
	bd.dominantGenome = stats.MostPopularGenome
	return &Bookmark{
		Type:        BookmarkGenomeDominance,
		Epoch:       stats.WindowEndEpoch,
		Description: fmt.Sprintf("Genome %s carried by %d of %d animals", stats.MostPopularGenome, stats.MostPopularCount, stats.Animals),
	}
}

func (bd *BookmarkDetector) checkPopulationBoom(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	counts := make([]float64, len(history))
	for i, h := range history {
		counts[i] = float64(h.Animals)
	}
	avg := stat.Mean(counts, nil)
	if avg == 0 {
		return nil
	}

	cfg := bd.cfg.PopulationBoom
	if float64(stats.Animals) > avg*cfg.Multiplier && stats.Animals >= cfg.MinAnimals {
		return &Bookmark{
			Type:        BookmarkPopulationBoom,
			Epoch:       stats.WindowEndEpoch,
			Description: fmt.Sprintf("Population %d is %.1fx average (%.1f)", stats.Animals, float64(stats.Animals)/avg, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkPopulationCrash(stats WindowStats) *Bookmark {
	if bd.recentPeak == 0 {
		return nil
	}

	cfg := bd.cfg.PopulationCrash
	dropFraction := 1.0 - float64(stats.Animals)/float64(bd.recentPeak)
	if dropFraction > cfg.DropFraction && stats.Animals <= bd.recentPeak-cfg.MinDrop {
		// Reset peak after crash
		oldPeak := bd.recentPeak
		bd.recentPeak = stats.Animals

		return &Bookmark{
			Type:        BookmarkPopulationCrash,
			Epoch:       stats.WindowEndEpoch,
			Description: fmt.Sprintf("Population crashed %.0f%% from peak %d to %d", dropFraction*100, oldPeak, stats.Animals),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkStablePopulation(stats WindowStats) *Bookmark {
	cfg := bd.cfg.StablePopulation
	if stats.Animals < cfg.MinAnimals {
		bd.stableWindowsCount = 0
		return nil
	}

	history := bd.getHistory()
	if len(history) < 4 {
		return nil
	}

	recent := history[len(history)-4:]
	counts := make([]float64, len(recent))
	for i, h := range recent {
		counts[i] = float64(h.Animals)
	}
	mean, variance := stat.PopMeanVariance(counts, nil)

	cv := math.Inf(1)
	if mean > 0 {
		cv = math.Sqrt(variance) / mean
	}

	if cv < cfg.MaxCV {
		bd.stableWindowsCount++
	} else {
		bd.stableWindowsCount = 0
	}

	if bd.stableWindowsCount == cfg.Windows { // trigger exactly once
		return &Bookmark{
			Type:        BookmarkStablePopulation,
			Epoch:       stats.WindowEndEpoch,
			Description: fmt.Sprintf("Stable population of %d animals over %d+ windows", stats.Animals, cfg.Windows),
		}
	}
	return nil
}
