package game

import (
	"log/slog"

	"github.com/pthm-cable/worms/telemetry"
)

// record forwards ev to the attached recorder, if any.
func (w *World) record(ev telemetry.Event) {
	if w.rec != nil {
		w.rec.Record(ev)
	}
}

// Sample collects the population state telemetry cannot derive from events.
func (w *World) Sample() telemetry.WorldSample {
	sample := telemetry.WorldSample{
		Worms: len(w.worms),
		Food:  len(w.food),
		Teams: len(w.teams),
	}

	query := w.wormFilter.Query()
	for query.Next() {
		body, vitals, _ := query.Get()
		sample.HP = append(sample.HP, float64(vitals.HP))
		sample.Radii = append(sample.Radii, body.Radius)
	}
	return sample
}

// flushTelemetry closes the stats for the turn that just ended and writes them out.
func (m *Match) flushTelemetry(worm string) {
	if m.collector == nil {
		return
	}

	stats := m.collector.Flush(m.world.Turn(), worm, m.world.Sample())

	if m.logStats {
		stats.LogStats()
	}

	if err := m.output.WriteTurn(stats); err != nil {
		slog.Error("failed to write turn stats", "error", err)
	}
	if err := m.output.WriteEvents(m.collector.DrainEvents()); err != nil {
		slog.Error("failed to write events", "error", err)
	}

	for _, bm := range m.bookmarks.Check(stats) {
		if m.logStats {
			bm.LogBookmark()
		}
		if err := m.output.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
		if m.output != nil {
			snap := m.world.Snapshot(m.seed)
			snap.Bookmark = &bm
			if _, err := telemetry.SaveSnapshot(snap, m.output.Dir()); err != nil {
				slog.Error("failed to save snapshot", "error", err)
			}
		}
	}
}

// Snapshot captures the board for a bookmark snapshot.
func (w *World) Snapshot(seed int64) *telemetry.Snapshot {
	snap := &telemetry.Snapshot{
		Version:     telemetry.SnapshotVersion,
		Seed:        seed,
		WorldWidth:  w.Width(),
		WorldHeight: w.Height(),
		Turn:        w.turn,
	}
	for _, worm := range w.Worms() {
		team, _ := worm.Team()
		snap.Worms = append(snap.Worms, telemetry.WormState{
			ID:     worm.ID(),
			Name:   worm.Name(),
			Team:   team.Name(),
			X:      worm.X(),
			Y:      worm.Y(),
			Angle:  worm.Angle(),
			Radius: worm.Radius(),
			AP:     worm.AP(),
			HP:     worm.HP(),
			Weapon: worm.Weapon().String(),
		})
	}
	for _, f := range w.Food() {
		snap.Food = append(snap.Food, telemetry.FoodState{X: f.X(), Y: f.Y()})
	}
	for _, t := range w.Teams() {
		snap.Teams = append(snap.Teams, t.Name())
	}
	return snap
}
