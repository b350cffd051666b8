package telemetry

import "testing"

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_FirstBloodOnce(t *testing.T) {
	bd := NewBookmarkDetector(10)

	if got := bd.Check(TurnStats{Turn: 1, Damage: 20}); hasBookmark(got, BookmarkFirstBlood) {
		t.Error("first_blood without a death")
	}
	if got := bd.Check(TurnStats{Turn: 2, Deaths: 1, Damage: 80}); !hasBookmark(got, BookmarkFirstBlood) {
		t.Error("expected first_blood bookmark")
	}
	if got := bd.Check(TurnStats{Turn: 3, Deaths: 1, Damage: 80}); hasBookmark(got, BookmarkFirstBlood) {
		t.Error("first_blood reported twice")
	}
}

func TestBookmarkDetector_Massacre(t *testing.T) {
	bd := NewBookmarkDetector(10)
	if got := bd.Check(TurnStats{Turn: 1, Deaths: 2}); !hasBookmark(got, BookmarkMassacre) {
		t.Error("expected massacre bookmark")
	}
}

func TestBookmarkDetector_DamageSpike(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(TurnStats{Turn: i, Damage: 20})
	}

	if got := bd.Check(TurnStats{Turn: 5, Damage: 80}); !hasBookmark(got, BookmarkDamageSpike) {
		t.Error("expected damage_spike bookmark")
	}
	if got := bd.Check(TurnStats{Turn: 6, Damage: 30}); hasBookmark(got, BookmarkDamageSpike) {
		t.Error("unexpected damage_spike for an ordinary turn")
	}
}

func TestBookmarkDetector_Stalemate(t *testing.T) {
	bd := NewBookmarkDetector(5)

	var fired []int
	for i := 1; i <= 12; i++ {
		if hasBookmark(bd.Check(TurnStats{Turn: i}), BookmarkStalemate) {
			fired = append(fired, i)
		}
	}
	if len(fired) != 1 || fired[0] != 5 {
		t.Errorf("stalemate fired on turns %v, want [5]", fired)
	}

	// Damage resets the quiet stretch
	bd.Check(TurnStats{Turn: 13, Damage: 10})
	fired = fired[:0]
	for i := 14; i <= 18; i++ {
		if hasBookmark(bd.Check(TurnStats{Turn: i}), BookmarkStalemate) {
			fired = append(fired, i)
		}
	}
	if len(fired) != 1 || fired[0] != 18 {
		t.Errorf("stalemate after reset fired on turns %v, want [18]", fired)
	}
}
