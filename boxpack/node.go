package boxpack

import (
	"fmt"
	"image"
)

// ID identifies an occupied node.
type ID int64

// InvalidID is the ID of free and branch nodes.
const InvalidID ID = -1

// Timestamp is a value of a packer's logical clock.
type Timestamp uint64

// none marks a missing arena index.
const none int32 = -1

// node is the arena representation of a tree node.
// Children are owned by the parent; parent is a back-reference used only
// when merging free siblings.
type node struct {
	box       image.Rectangle
	id        ID
	timestamp Timestamp
	parent    int32
	children  [2]int32
}

func (n *node) isBranch() bool {
	return n.children[0] != none
}

func (n *node) isFreeLeaf() bool {
	return !n.isBranch() && n.id == InvalidID
}

// Node is a snapshot of a tree node.
// It is a value: later packer operations do not update it.
type Node struct {
	// Box is the cell owned by the node, border included.
	Box image.Rectangle

	// ID is the packing ID, or InvalidID for free and branch nodes.
	ID ID

	// Timestamp is the clock value of the last insertion or touch.
	Timestamp Timestamp

	branch bool
}

// IsBranch reports whether the node has been split into two children.
func (n Node) IsBranch() bool {
	return n.branch
}

// IsOccupied reports whether the node is a leaf holding an entry.
func (n Node) IsOccupied() bool {
	return !n.branch && n.ID != InvalidID
}

// String returns a string representation of the node.
func (n Node) String() string {
	switch {
	case n.branch:
		return fmt.Sprintf("Branch(%d,%d %dx%d)", n.Box.Min.X, n.Box.Min.Y, n.Box.Dx(), n.Box.Dy())
	case n.ID == InvalidID:
		return fmt.Sprintf("Free(%d,%d %dx%d)", n.Box.Min.X, n.Box.Min.Y, n.Box.Dx(), n.Box.Dy())
	default:
		return fmt.Sprintf("Node#%d(%d,%d %dx%d @%d)", n.ID, n.Box.Min.X, n.Box.Min.Y, n.Box.Dx(), n.Box.Dy(), n.Timestamp)
	}
}
