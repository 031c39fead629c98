// Package ecs provides ECS adapters for tidewalk's movement events.
//
// The primary adapter is [NewDonburiStore], which bridges player movement
// events (cell entered, facing changed, walk started and stopped) into a
// [Donburi] world as typed events. Subscribe to [MoveEventType] in your ECS
// systems to receive them, or read [PlayerComponent] from the store's player
// entity.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
