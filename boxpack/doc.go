// Package boxpack packs rectangles into a fixed-size area using a binary
// tree of nodes.
//
// # Algorithm
//
// The packer implements the classic lightmap packing scheme: the tree
// starts as a single free leaf covering the whole area. Insert searches the
// tree depth-first, leftmost child first, for the first free leaf that can
// hold the requested size plus the border on every side. An exact fit is
// occupied in place; a larger leaf is split in two along the axis with the
// larger leftover, and the insertion recurses into the first child.
//
//	+---------+-------+      +----+----+-------+
//	|         |       |      | id |    |       |
//	|  free   |       |  ->  +----+    |       |
//	|         |       |      |free|    |       |
//	+---------+-------+      +----+----+-------+
//
// Every successful insertion receives a fresh [ID] and every insertion or
// lookup advances the packer's logical clock, which is stamped into the
// touched node. Timestamps are used by the atlas eviction policy to find the
// least recently used entries.
//
// # Removal
//
// Remove frees a node and merges free sibling leaves back into their parent,
// so a packer whose entries have all been removed returns to a single free
// root leaf.
//
// # Thread Safety
//
// A Packer is not safe for concurrent use. Callers that share one across
// goroutines must serialize every method call.
//
// # References
//
//   - http://blackpawn.com/texts/lightmaps/
package boxpack
