package atlas

import (
	"image"
	"sync"

	"github.com/gogpu/atlas/boxpack"
)

// Locked serializes access to a TextureAtlas behind a mutex, for renderers
// that fill the atlas from background goroutines while drawing on another.
//
// Locked must not be copied after creation (has mutex).
type Locked struct {
	mu    sync.Mutex
	atlas *TextureAtlas
}

// NewLocked wraps a. The caller must not use a directly afterwards.
func NewLocked(a *TextureAtlas) *Locked {
	return &Locked{atlas: a}
}

// AddItem calls TextureAtlas.AddItem under the lock.
func (l *Locked) AddItem(img image.Image) (Item, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.atlas.AddItem(img)
}

// GetItem calls TextureAtlas.GetItem under the lock.
func (l *Locked) GetItem(id boxpack.ID) (Item, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.atlas.GetItem(id)
}

// RemoveItem calls TextureAtlas.RemoveItem under the lock.
func (l *Locked) RemoveItem(id boxpack.ID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.atlas.RemoveItem(id)
}

// Flush calls TextureAtlas.Flush under the lock.
// u runs while the lock is held.
func (l *Locked) Flush(u Uploader) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.atlas.Flush(u)
}

// Stats calls TextureAtlas.Stats under the lock.
func (l *Locked) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.atlas.Stats()
}

// PercentageUsed calls TextureAtlas.PercentageUsed under the lock.
func (l *Locked) PercentageUsed() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.atlas.PercentageUsed()
}

// Do runs fn with exclusive access to the atlas.
func (l *Locked) Do(fn func(a *TextureAtlas)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.atlas)
}
