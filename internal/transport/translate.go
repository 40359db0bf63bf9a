package transport

import (
	"github.com/rcaelers/swoqbot/internal/model"
	"github.com/rcaelers/swoqbot/internal/world"
)

// ToObservation translates one tick's wire state into the domain
// Observation type world.State.Update consumes, keeping the wire schema
// out of every other package.
func (s WireState) ToObservation() world.Observation {
	obs := world.Observation{
		Tick:    s.Tick,
		Level:   s.Level,
		Players: make([]world.PlayerObservation, len(s.Players)),
	}
	for i, wp := range s.Players {
		tiles := make([]model.Tile, len(wp.Surroundings))
		for j, t := range wp.Surroundings {
			tiles[j] = model.Tile(t)
		}
		obs.Players[i] = world.PlayerObservation{
			Position:     model.NewPosition(wp.X, wp.Y),
			Health:       wp.Health,
			Inventory:    model.Inventory(wp.Inventory),
			HasSword:     wp.HasSword,
			IsActive:     wp.IsActive,
			Surroundings: tiles,
		}
	}
	return obs
}

// IsActive reports whether the game status reported in this tick's state
// is still Active — the loop-continuation condition in original_source's
// game.rs's `while status == Active`.
func (s WireState) IsActive() bool {
	return s.Status == "Active"
}
