package scene

import (
	"testing"

	"github.com/Faultbox/spritebatch/internal/engine/sprite"
)

func TestGroupByTexture(t *testing.T) {
	in := []sprite.Instance{
		{Texture: 5, Depth: 0},
		{Texture: 2, Depth: 0},
		{Texture: 5, Depth: 0},
		{Texture: 2, Depth: 1},
		{Texture: 2, Depth: 0},
	}
	for i := range in {
		in[i].Position.X = float32(i)
	}

	var g Grouper
	batches := g.Group(in)

	type want struct {
		tex   sprite.TextureID
		order []float32
	}
	wants := []want{
		{2, []float32{1, 4}},
		{5, []float32{0, 2}},
		{2, []float32{3}},
	}
	if len(batches) != len(wants) {
		t.Fatalf("got %d batches, want %d", len(batches), len(wants))
	}
	for i, w := range wants {
		b := batches[i]
		if b.Texture != w.tex {
			t.Errorf("batch %d texture = %d, want %d", i, b.Texture, w.tex)
		}
		if len(b.Sprites) != len(w.order) {
			t.Fatalf("batch %d has %d sprites, want %d", i, len(b.Sprites), len(w.order))
		}
		for j, s := range b.Sprites {
			if s.Texture != b.Texture {
				t.Errorf("batch %d sprite %d texture %d", i, j, s.Texture)
			}
			if s.Position.X != w.order[j] {
				t.Errorf("batch %d sprite %d is input %v, want %v", i, j, s.Position.X, w.order[j])
			}
		}
	}

	// Input must not be reordered.
	for i := range in {
		if in[i].Position.X != float32(i) {
			t.Fatal("Group modified its input")
		}
	}
}

func TestGroupEmpty(t *testing.T) {
	var g Grouper
	if got := g.Group(nil); len(got) != 0 {
		t.Errorf("Group(nil) = %d batches, want 0", len(got))
	}
}

func TestGroupScene3(t *testing.T) {
	var g Grouper
	sprites := All[3].Build(CatalogTable(), 0, nil)
	batches := g.Group(sprites)

	// Seven single monsters plus one batch for the polish grid.
	if len(batches) != 8 {
		t.Fatalf("got %d batches, want 8", len(batches))
	}
	total := 0
	for _, b := range batches {
		total += len(b.Sprites)
	}
	if total != len(sprites) {
		t.Errorf("batches hold %d sprites, want %d", total, len(sprites))
	}
}
