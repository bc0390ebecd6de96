package atlas

import (
	"cmp"
	"image"
	"slices"

	"github.com/gogpu/atlas/boxpack"
)

// evictFor removes entries, least recently used first, until a rectangle
// of the given size can be inserted or the eviction budget is spent.
// Victims are ranked globally by timestamp regardless of where they sit in
// the tree. It returns the inserted node on success.
func (a *TextureAtlas) evictFor(size image.Point) (boxpack.Node, bool) {
	victims := a.packer.Nodes()
	slices.SortFunc(victims, func(x, y boxpack.Node) int {
		if c := cmp.Compare(x.Timestamp, y.Timestamp); c != 0 {
			return c
		}
		return cmp.Compare(x.ID, y.ID)
	})

	budget := a.config.MaxEvictions
	if budget <= 0 || budget > len(victims) {
		budget = len(victims)
	}

	for _, v := range victims[:budget] {
		a.packer.Remove(v.ID)
		a.stats.Evictions++
		Logger().Debug("atlas: evicted",
			"id", v.ID,
			"box", v.Box,
			"timestamp", v.Timestamp)

		if n, ok := a.packer.Insert(size); ok {
			return n, true
		}
	}
	return boxpack.Node{}, false
}
