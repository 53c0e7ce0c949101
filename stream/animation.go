package stream

import "github.com/matt-g-everett/ledgif/player"

// An Animation renders itself at a requested matrix size. *player.Player
// is an Animation.
type Animation interface {
	Render(width, height int) (player.Matrix, error)
}
