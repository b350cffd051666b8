// Package telemetry provides match event tracking, per-turn statistics and CSV output.
package telemetry

import "strconv"

// EventType identifies telemetry events.
type EventType uint8

const (
	EventSpawn EventType = iota
	EventTurnStart
	EventRotate
	EventMove
	EventJump
	EventFall
	EventShot
	EventHit
	EventEat
	EventDeath
	EventTeamEliminated
	EventGameOver
)

var eventNames = [...]string{
	EventSpawn:          "spawn",
	EventTurnStart:      "turn_start",
	EventRotate:         "rotate",
	EventMove:           "move",
	EventJump:           "jump",
	EventFall:           "fall",
	EventShot:           "shot",
	EventHit:            "hit",
	EventEat:            "eat",
	EventDeath:          "death",
	EventTeamEliminated: "team_eliminated",
	EventGameOver:       "game_over",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// MarshalCSV writes the event name instead of its number.
func (t EventType) MarshalCSV() (string, error) {
	return t.String(), nil
}

// Event represents a single telemetry event.
type Event struct {
	Type   EventType `csv:"type"`
	Turn   int       `csv:"turn"`
	WormID uint32    `csv:"worm_id"`
	Worm   string    `csv:"worm"`

	// Optional fields depending on event type
	TargetID uint32  `csv:"target_id"` // worm hit by a projectile
	Amount   float64 `csv:"amount"`    // AP spent, meters moved or fallen, yield, radius
	Damage   int     `csv:"damage"`    // HP lost by the worm concerned (or the target of a hit)
	Detail   string  `csv:"detail"`    // team, weapon or winner name
	X        float64 `csv:"x"`
	Y        float64 `csv:"y"`
}

// Recorder receives events as they happen.
type Recorder interface {
	Record(ev Event)
}

// NewSpawnEvent creates a spawn event for a worm joining the world.
func NewSpawnEvent(turn int, wormID uint32, name, team string, radius, x, y float64) Event {
	return Event{Type: EventSpawn, Turn: turn, WormID: wormID, Worm: name, Amount: radius, Detail: team, X: x, Y: y}
}

// NewTurnStartEvent creates an event for a worm starting its turn.
func NewTurnStartEvent(turn int, wormID uint32, name string, x, y float64) Event {
	return Event{Type: EventTurnStart, Turn: turn, WormID: wormID, Worm: name, X: x, Y: y}
}

// NewRotateEvent creates a rotation event.
func NewRotateEvent(turn int, wormID uint32, name string, angle float64, apCost int) Event {
	return Event{Type: EventRotate, Turn: turn, WormID: wormID, Worm: name, Amount: float64(apCost), Detail: formatAngle(angle)}
}

// NewMoveEvent creates a move event; distance is the step length in meters.
func NewMoveEvent(turn int, wormID uint32, name string, distance, x, y float64) Event {
	return Event{Type: EventMove, Turn: turn, WormID: wormID, Worm: name, Amount: distance, X: x, Y: y}
}

// NewJumpEvent creates a jump event; flightTime is in seconds.
func NewJumpEvent(turn int, wormID uint32, name string, flightTime float64, damage int, x, y float64) Event {
	return Event{Type: EventJump, Turn: turn, WormID: wormID, Worm: name, Amount: flightTime, Damage: damage, X: x, Y: y}
}

// NewFallEvent creates a fall event.
func NewFallEvent(turn int, wormID uint32, name string, meters float64, damage int, x, y float64) Event {
	return Event{Type: EventFall, Turn: turn, WormID: wormID, Worm: name, Amount: meters, Damage: damage, X: x, Y: y}
}

// NewShotEvent creates a shot event.
func NewShotEvent(turn int, wormID uint32, name, weapon string, yield int, x, y float64) Event {
	return Event{Type: EventShot, Turn: turn, WormID: wormID, Worm: name, Amount: float64(yield), Detail: weapon, X: x, Y: y}
}

// NewHitEvent creates an event for a projectile striking a worm.
func NewHitEvent(turn int, shooterID uint32, shooter string, targetID uint32, damage int, x, y float64) Event {
	return Event{Type: EventHit, Turn: turn, WormID: shooterID, Worm: shooter, TargetID: targetID, Damage: damage, X: x, Y: y}
}

// NewEatEvent creates an event for a worm eating food; radius is the grown radius.
func NewEatEvent(turn int, wormID uint32, name string, radius, x, y float64) Event {
	return Event{Type: EventEat, Turn: turn, WormID: wormID, Worm: name, Amount: radius, X: x, Y: y}
}

// NewDeathEvent creates a death event.
func NewDeathEvent(turn int, wormID uint32, name, team string) Event {
	return Event{Type: EventDeath, Turn: turn, WormID: wormID, Worm: name, Detail: team}
}

// NewTeamEliminatedEvent creates an event for a team losing its last member.
func NewTeamEliminatedEvent(turn int, team string) Event {
	return Event{Type: EventTeamEliminated, Turn: turn, Detail: team}
}

// NewGameOverEvent creates the final event of a match.
func NewGameOverEvent(turn int, winner string) Event {
	return Event{Type: EventGameOver, Turn: turn, Detail: winner}
}

func formatAngle(angle float64) string {
	return strconv.FormatFloat(angle, 'f', 4, 64)
}
