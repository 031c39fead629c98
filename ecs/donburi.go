// Package ecs provides ECS adapters for tidewalk.
package ecs

import (
	"github.com/phanxgames/tidewalk"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// MoveEventType is the Donburi event type for tidewalk movement events.
// Subscribe to this in your ECS systems to receive cell, facing and walk
// state changes of the player.
var MoveEventType = events.NewEventType[tidewalk.MoveEvent]()

// PlayerState mirrors the player's latest movement state.
type PlayerState struct {
	Cell    tidewalk.Cell
	Facing  tidewalk.Direction
	Walking bool
	Tick    int64
}

// PlayerComponent holds the PlayerState of the store's player entity.
var PlayerComponent = donburi.NewComponentType[PlayerState]()

// DonburiStore forwards movement events into a Donburi world.
type DonburiStore struct {
	world  donburi.World
	player donburi.Entity
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Movement events are published to MoveEventType and can be consumed with
// events.Subscribe and ProcessEvents. The store also creates a player entity
// whose PlayerComponent is kept current as events arrive.
func NewDonburiStore(world donburi.World) *DonburiStore {
	return &DonburiStore{world: world, player: world.Create(PlayerComponent)}
}

// Player returns the entity carrying PlayerComponent.
func (s *DonburiStore) Player() donburi.Entity {
	return s.player
}

// EmitEvent implements tidewalk.EntityStore.
func (s *DonburiStore) EmitEvent(event tidewalk.MoveEvent) {
	if s.world.Valid(s.player) {
		st := PlayerComponent.Get(s.world.Entry(s.player))
		st.Cell = event.Cell
		st.Facing = event.Facing
		st.Tick = event.Tick
		switch event.Type {
		case tidewalk.EventWalkStarted:
			st.Walking = true
		case tidewalk.EventWalkStopped:
			st.Walking = false
		}
	}
	MoveEventType.Publish(s.world, event)
}
