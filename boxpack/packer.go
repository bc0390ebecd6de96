package boxpack

import "image"

// Packer packs rectangles into a fixed-size area.
//
// Nodes live in an arena indexed by int32; the root is always index 0.
// The id index holds arena indices only and never owns a node.
type Packer struct {
	size   image.Point
	border int

	nodes []node
	free  []int32 // recycled arena slots
	index map[ID]int32

	nextID ID
	clock  Timestamp

	// Tracking for utilization
	usedArea int
}

// New creates a packer covering [0,0]x[size.X,size.Y].
// Each inserted rectangle is padded by border pixels on every side so that
// the contents of adjacent cells never touch. Negative values are clamped
// to zero.
func New(size image.Point, border int) *Packer {
	if size.X < 0 {
		size.X = 0
	}
	if size.Y < 0 {
		size.Y = 0
	}
	if border < 0 {
		border = 0
	}

	p := &Packer{
		size:   size,
		border: border,
		nodes:  make([]node, 0, 64),
		index:  make(map[ID]int32),
	}
	p.Reset()
	return p
}

// Reset removes every entry, leaving a single free root leaf.
// IDs and the clock keep counting so that IDs handed out before Reset are
// never reused.
func (p *Packer) Reset() {
	p.nodes = p.nodes[:0]
	p.free = p.free[:0]
	clear(p.index)
	p.usedArea = 0

	p.nodes = append(p.nodes, node{
		box:      image.Rectangle{Max: p.size},
		id:       InvalidID,
		parent:   none,
		children: [2]int32{none, none},
	})
}

// Size returns the dimensions of the packed area.
func (p *Packer) Size() image.Point {
	return p.size
}

// Border returns the padding applied on every side of an inserted rectangle.
func (p *Packer) Border() int {
	return p.border
}

// Clock returns the current value of the logical clock.
func (p *Packer) Clock() Timestamp {
	return p.clock
}

// padded returns size grown by the border on every side.
func (p *Packer) padded(size image.Point) image.Point {
	return size.Add(image.Pt(2*p.border, 2*p.border))
}

// Fits reports whether a rectangle of the given size could be placed in an
// empty packer. Requests that do not fit can never succeed, no matter how
// many entries are removed.
func (p *Packer) Fits(size image.Point) bool {
	if size.X <= 0 || size.Y <= 0 {
		return false
	}
	padded := p.padded(size)
	return padded.X <= p.size.X && padded.Y <= p.size.Y
}

// Insert places a rectangle of the given size.
// The returned node's Box is the padded cell; use Content to get the
// rectangle the caller may draw into. Insert returns false when no free
// leaf is large enough.
func (p *Packer) Insert(size image.Point) (Node, bool) {
	if !p.Fits(size) {
		return Node{}, false
	}
	i := p.insert(0, p.padded(size))
	if i == none {
		return Node{}, false
	}
	return p.snapshot(i), true
}

// insert searches the subtree at i, depth-first and leftmost first, for a
// free leaf that holds want.
func (p *Packer) insert(i int32, want image.Point) int32 {
	if p.nodes[i].isBranch() {
		children := p.nodes[i].children
		if r := p.insert(children[0], want); r != none {
			return r
		}
		return p.insert(children[1], want)
	}

	n := &p.nodes[i]
	if n.id != InvalidID {
		return none
	}
	have := n.box.Size()
	if want.X > have.X || want.Y > have.Y {
		return none
	}

	if want == have {
		n.id = p.nextID
		p.nextID++
		p.clock++
		n.timestamp = p.clock
		p.index[n.id] = i
		p.usedArea += have.X * have.Y
		return i
	}

	// Split along the axis with the larger leftover so the first child
	// matches the request on one axis.
	box := n.box
	var first, second image.Rectangle
	if have.X-want.X > have.Y-want.Y {
		first = image.Rect(box.Min.X, box.Min.Y, box.Min.X+want.X, box.Max.Y)
		second = image.Rect(box.Min.X+want.X, box.Min.Y, box.Max.X, box.Max.Y)
	} else {
		first = image.Rect(box.Min.X, box.Min.Y, box.Max.X, box.Min.Y+want.Y)
		second = image.Rect(box.Min.X, box.Min.Y+want.Y, box.Max.X, box.Max.Y)
	}

	// alloc may grow the arena, so n must not be used past this point.
	a := p.alloc(first, i)
	b := p.alloc(second, i)
	p.nodes[i].children = [2]int32{a, b}

	return p.insert(a, want)
}

// alloc creates a free leaf, reusing a recycled slot when one exists.
func (p *Packer) alloc(box image.Rectangle, parent int32) int32 {
	n := node{
		box:      box,
		id:       InvalidID,
		parent:   parent,
		children: [2]int32{none, none},
	}
	if k := len(p.free); k > 0 {
		i := p.free[k-1]
		p.free = p.free[:k-1]
		p.nodes[i] = n
		return i
	}
	p.nodes = append(p.nodes, n)
	return int32(len(p.nodes) - 1) //nolint:gosec // arena size is bounded by packed area
}

// Node returns the node with the given ID and touches its timestamp.
// It returns false if the ID is unknown or was removed.
func (p *Packer) Node(id ID) (Node, bool) {
	i, ok := p.index[id]
	if !ok {
		return Node{}, false
	}
	p.clock++
	p.nodes[i].timestamp = p.clock
	return p.snapshot(i), true
}

// Peek returns the node with the given ID without touching it.
func (p *Packer) Peek(id ID) (Node, bool) {
	i, ok := p.index[id]
	if !ok {
		return Node{}, false
	}
	return p.snapshot(i), true
}

// Remove frees the node with the given ID and merges free siblings back
// into their parent. Unknown IDs are ignored. Remove reports whether a node
// was freed.
func (p *Packer) Remove(id ID) bool {
	i, ok := p.index[id]
	if !ok {
		return false
	}
	delete(p.index, id)

	n := &p.nodes[i]
	p.usedArea -= n.box.Dx() * n.box.Dy()
	n.id = InvalidID
	n.timestamp = 0

	p.coalesce(n.parent)
	return true
}

// coalesce collapses branches whose children are both free leaves, walking
// up from i towards the root.
func (p *Packer) coalesce(i int32) {
	for i != none {
		n := &p.nodes[i]
		a, b := n.children[0], n.children[1]
		if !p.nodes[a].isFreeLeaf() || !p.nodes[b].isFreeLeaf() {
			return
		}
		n.children = [2]int32{none, none}
		p.free = append(p.free, a, b)
		i = n.parent
	}
}

// Content returns the drawable rectangle of a node: its box without the
// border.
func (p *Packer) Content(n Node) image.Rectangle {
	return n.Box.Inset(p.border)
}

// Root returns a snapshot of the root node.
func (p *Packer) Root() Node {
	return p.snapshot(0)
}

// Nodes returns every occupied leaf in pre-order.
func (p *Packer) Nodes() []Node {
	out := make([]Node, 0, len(p.index))
	p.walk(0, func(i int32) bool {
		if n := &p.nodes[i]; !n.isBranch() && n.id != InvalidID {
			out = append(out, p.snapshot(i))
		}
		return true
	})
	return out
}

// Walk calls fn for every node of the tree in pre-order, branches included.
// Walking stops when fn returns false. fn must not modify the packer.
func (p *Packer) Walk(fn func(Node) bool) {
	p.walk(0, func(i int32) bool {
		return fn(p.snapshot(i))
	})
}

func (p *Packer) walk(i int32, fn func(int32) bool) bool {
	if !fn(i) {
		return false
	}
	if n := &p.nodes[i]; n.isBranch() {
		for _, c := range n.children {
			if !p.walk(c, fn) {
				return false
			}
		}
	}
	return true
}

func (p *Packer) snapshot(i int32) Node {
	n := &p.nodes[i]
	return Node{
		Box:       n.box,
		ID:        n.id,
		Timestamp: n.timestamp,
		branch:    n.isBranch(),
	}
}

// Len returns the number of occupied nodes.
func (p *Packer) Len() int {
	return len(p.index)
}

// NodeCount returns the number of nodes reachable from the root.
func (p *Packer) NodeCount() int {
	return len(p.nodes) - len(p.free)
}

// UsedArea returns the total area of occupied cells, borders included.
func (p *Packer) UsedArea() int {
	return p.usedArea
}

// TotalArea returns the area of the packer.
func (p *Packer) TotalArea() int {
	return p.size.X * p.size.Y
}

// Utilization returns the fraction of the area occupied (0.0 to 1.0).
func (p *Packer) Utilization() float64 {
	total := p.TotalArea()
	if total <= 0 {
		return 0
	}
	return float64(p.usedArea) / float64(total)
}
