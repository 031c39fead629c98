// Package tidewalk is a top-down tile scene viewer core for [Ebitengine].
//
// Tidewalk renders a layered tile map, a walking player built from several
// sprite parts and any number of placed NPCs, moves the player with sub-tile
// precision against an obstruction layer, and keeps it in view with a
// dead-zone camera.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	m, _ := tidewalk.LoadMap(data)
//	textures := tidewalk.NewTextureCache()
//	textures.LoadSheets(m, "assets")
//	player := &tidewalk.Player{Cell: tidewalk.Cell{X: 10, Y: 15}, Outfit: outfit}
//	scene, _ := tidewalk.NewScene(m, textures, player, tidewalk.DefaultConfig())
//	tidewalk.Run(scene, textures, tidewalk.RunConfig{
//		Title: "Viewer", Width: 960, Height: 640,
//	})
//
// For full control, implement [ebiten.Game] yourself, forward key edges to
// [Scene.KeyDown] and [Scene.KeyUp], and call [Scene.Update] and
// [Scene.Draw] directly. [Scene.Compose] returns the frame as a list of
// [DrawOp] values without touching the GPU, which is how the tests inspect
// draw order.
//
// # Draw order
//
// Layers draw in map order. The player is drawn inside the layer right below
// the foreground so that tiles in the row below the player cover its feet
// (see [PlayerSlot]). NPCs follow, and the last layer is drawn on top of
// everything.
//
// # Movement
//
// Each frame the held movement keys move the player by speed*dt per axis.
// The offset from the cell center stays within ±8 px; passing it moves the
// player into the neighbouring cell unless the [CollisionProbe] blocks it.
// A diagonal step asks the probe about the diagonal cell only.
//
// # Cutscenes
//
// [ParseEventHeader] reads the placement header of an event script and
// [Scene.ApplyPlacement] positions the viewport and characters. Event
// commands past the header are kept as text and not run.
//
// [Ebitengine]: https://ebitengine.org
package tidewalk
