package common

// Logical battle screen size. Everything in the battle layer is laid out in
// these units and scaled by the game's Layout.
const (
	BaseWidth  = 240
	BaseHeight = 160
)
