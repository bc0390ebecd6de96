package keyindex

import (
	"testing"

	"github.com/gogpu/atlas/boxpack"
)

func TestIndex_SetGet(t *testing.T) {
	x := New[string, int]()

	x.Set("a", 1, 10)
	id, v, ok := x.Get("a")
	if !ok || id != 1 || v != 10 {
		t.Errorf("Get(a) = %d, %d, %v; want 1, 10, true", id, v, ok)
	}
	if key, ok := x.Key(1); !ok || key != "a" {
		t.Errorf("Key(1) = %q, %v", key, ok)
	}

	id, _, ok = x.Get("missing")
	if ok || id != boxpack.InvalidID {
		t.Errorf("Get(missing) = %d, %v; want InvalidID, false", id, ok)
	}
}

func TestIndex_SetReplaces(t *testing.T) {
	x := New[string, int]()

	x.Set("a", 1, 0)
	x.Set("a", 2, 0) // key moves to a new id
	if _, ok := x.Key(1); ok {
		t.Error("stale id 1 still mapped")
	}

	x.Set("b", 2, 0) // id reused for another key
	if _, _, ok := x.Get("a"); ok {
		t.Error("key a still mapped after its id was reassigned")
	}
	if x.Len() != 1 {
		t.Errorf("Len = %d, want 1", x.Len())
	}
}

func TestIndex_Delete(t *testing.T) {
	x := New[string, int]()
	x.Set("a", 1, 0)
	x.Set("b", 2, 0)

	if !x.Delete("a") || x.Delete("a") {
		t.Error("Delete(a) should succeed once")
	}
	if key, ok := x.DeleteID(2); !ok || key != "b" {
		t.Errorf("DeleteID(2) = %q, %v", key, ok)
	}
	if x.Len() != 0 {
		t.Errorf("Len = %d, want 0", x.Len())
	}
}

func TestIndex_Prune(t *testing.T) {
	x := New[int, struct{}]()
	for i := 0; i < 10; i++ {
		x.Set(i, boxpack.ID(i), struct{}{})
	}

	removed := x.Prune(func(id boxpack.ID) bool { return id%2 == 0 })
	if removed != 5 {
		t.Errorf("Prune removed %d, want 5", removed)
	}
	for i := 0; i < 10; i++ {
		_, _, ok := x.Get(i)
		if ok != (i%2 == 0) {
			t.Errorf("Get(%d) ok = %v after prune", i, ok)
		}
	}

	x.Clear()
	if x.Len() != 0 {
		t.Errorf("Len = %d after Clear", x.Len())
	}
}
