package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkFirstBlood  BookmarkType = "first_blood"
	BookmarkDamageSpike BookmarkType = "damage_spike"
	BookmarkMassacre    BookmarkType = "massacre"
	BookmarkStalemate   BookmarkType = "stalemate"
)

// Bookmark marks a turn worth looking at when replaying a match log.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Turn        int          `csv:"turn"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"turn", b.Turn,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting turns from the per-turn stats.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []TurnStats
	historySize int
	historyIdx  int
	historyFull bool

	firstBloodSeen bool
	quietTurns     int // consecutive turns without damage
	stalemateSent  bool
}

// NewBookmarkDetector creates a detector with the given history size.
// historySize is also the number of quiet turns reported as a stalemate.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5
	}
	return &BookmarkDetector{
		history:     make([]TurnStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats TurnStats) []Bookmark {
	var bookmarks []Bookmark

	if !bd.firstBloodSeen && stats.Deaths > 0 {
		bd.firstBloodSeen = true
		bookmarks = append(bookmarks, Bookmark{
			Type:        BookmarkFirstBlood,
			Turn:        stats.Turn,
			Description: fmt.Sprintf("first death, caused on %s's turn", stats.Worm),
		})
	}

	if stats.Deaths >= 2 {
		bookmarks = append(bookmarks, Bookmark{
			Type:        BookmarkMassacre,
			Turn:        stats.Turn,
			Description: fmt.Sprintf("%d worms died in one turn", stats.Deaths),
		})
	}

	if b := bd.checkDamageSpike(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	if b := bd.checkStalemate(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats TurnStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []TurnStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// checkDamageSpike fires when a turn deals more than twice the rolling average total damage.
func (bd *BookmarkDetector) checkDamageSpike(stats TurnStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.Damage + h.FallDamage
	}
	avg := float64(total) / float64(len(history))
	current := float64(stats.Damage + stats.FallDamage)
	if avg <= 0 || current <= 2*avg {
		return nil
	}

	return &Bookmark{
		Type:        BookmarkDamageSpike,
		Turn:        stats.Turn,
		Description: fmt.Sprintf("%.0f damage vs %.1f average", current, avg),
	}
}

// checkStalemate fires once per quiet stretch of historySize turns.
func (bd *BookmarkDetector) checkStalemate(stats TurnStats) *Bookmark {
	if stats.Damage > 0 || stats.FallDamage > 0 || stats.Deaths > 0 {
		bd.quietTurns = 0
		bd.stalemateSent = false
		return nil
	}

	bd.quietTurns++
	if bd.stalemateSent || bd.quietTurns < bd.historySize {
		return nil
	}
	bd.stalemateSent = true
	return &Bookmark{
		Type:        BookmarkStalemate,
		Turn:        stats.Turn,
		Description: fmt.Sprintf("no damage for %d turns", bd.quietTurns),
	}
}
