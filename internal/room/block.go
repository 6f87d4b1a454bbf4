package room

import (
	"fmt"
	"math"
	"regexp"

	"github.com/pixil98/go-errors"
)

const maxBlockIdLength = 128

var colorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Block is a single placed voxel. Id is generated by the client and is
// unique within a room; the grid position is not.
type Block struct {
	Id        string `json:"id"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Z         int    `json:"z"`
	BlockType string `json:"blockType,omitempty"`
	Color     string `json:"color,omitempty"` // used only when BlockType is empty
}

// Validate checks the block is well-formed. It does not look at the catalog.
func (b *Block) Validate() error {
	el := errors.NewErrorList()

	if b.Id == "" {
		el.Add(fmt.Errorf("block id is required"))
	} else if len(b.Id) > maxBlockIdLength {
		el.Add(fmt.Errorf("block id must be at most %d bytes", maxBlockIdLength))
	}

	if b.Color != "" && !colorPattern.MatchString(b.Color) {
		el.Add(fmt.Errorf("block color %q must be #rgb or #rrggbb", b.Color))
	}

	return el.Err()
}

// Position is a point in world space.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (p Position) Validate() error {
	el := errors.NewErrorList()

	axes := []struct {
		name string
		v    float64
	}{{"x", p.X}, {"y", p.Y}, {"z", p.Z}}
	for _, a := range axes {
		if math.IsNaN(a.v) || math.IsInf(a.v, 0) {
			el.Add(fmt.Errorf("position %s must be finite", a.name))
		}
	}

	return el.Err()
}

// Player is an avatar present in a room. The display name is its identity
// on the wire.
type Player struct {
	Name string `json:"name"`
	Position

	// owner is the connection that registered the player. Only that
	// connection's cleanup removes it.
	owner string
}
