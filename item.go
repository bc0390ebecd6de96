package atlas

import (
	"fmt"
	"image"

	"github.com/gogpu/atlas/boxpack"
)

// Range is a closed range of normalized texture coordinates.
type Range struct {
	Min, Max float32
}

// Item describes an entry's location in the atlas.
type Item struct {
	// ID is the packing ID. It becomes invalid once the item is evicted.
	ID boxpack.ID

	// Size is the item size in pixels.
	Size image.Point

	// Box is the item rectangle in atlas pixel space, border excluded.
	Box image.Rectangle

	// UV ranges [0, 1] for texture sampling.
	U, V Range
}

// IsValid returns true if the item refers to a packed entry.
func (it Item) IsValid() bool {
	return it.ID != boxpack.InvalidID && it.Size.X > 0 && it.Size.Y > 0
}

// UV returns the texture coordinates of the item corners.
func (it Item) UV() (u0, v0, u1, v1 float32) {
	return it.U.Min, it.V.Min, it.U.Max, it.V.Max
}

// String returns a string representation of the item.
func (it Item) String() string {
	return fmt.Sprintf("Item#%d(%d,%d %dx%d)", it.ID, it.Box.Min.X, it.Box.Min.Y, it.Size.X, it.Size.Y)
}

// toItem converts a packed node into an item of an atlas of the given size.
func toItem(p *boxpack.Packer, n boxpack.Node, atlasSize int) Item {
	box := p.Content(n)
	s := float32(atlasSize)
	return Item{
		ID:   n.ID,
		Size: box.Size(),
		Box:  box,
		U:    Range{Min: float32(box.Min.X) / s, Max: float32(box.Max.X) / s},
		V:    Range{Min: float32(box.Min.Y) / s, Max: float32(box.Max.Y) / s},
	}
}
