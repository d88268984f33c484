// Package scene holds the demo sprite scenes and a simple texture grouper
// that stands in for an atlas manager.
package scene

import (
	stdmath "math"

	"github.com/Faultbox/spritebatch/internal/engine/sprite"
)

// Image names a catalog image and the size used when its file is missing.
type Image struct {
	Name   string
	Width  int
	Height int
}

// Catalog image indices.
const (
	Basu = iota
	Bat
	Behemoth
	Crow
	DragonZombie
	FireWhirl
	GiantPignon
	NightSpirit
	Orangebell
	Petit
	Polish
	PowerCritter
)

// Catalog lists the demo images in index order.
var Catalog = []Image{
	Basu:         {"basu.png", 24, 26},
	Bat:          {"bat.png", 19, 13},
	Behemoth:     {"behemoth.png", 47, 38},
	Crow:         {"crow.png", 17, 15},
	DragonZombie: {"dragon_zombie.png", 56, 46},
	FireWhirl:    {"fire_whirl.png", 30, 34},
	GiantPignon:  {"giant_pignon.png", 36, 29},
	NightSpirit:  {"night_spirit.png", 28, 36},
	Orangebell:   {"orangebell.png", 16, 17},
	Petit:        {"petit.png", 20, 21},
	Polish:       {"polish.png", 16, 16},
	PowerCritter: {"power_critter.png", 22, 20},
}

// Resolver maps a catalog index to its texture and actual image size.
type Resolver interface {
	Resolve(index int) (tex sprite.TextureID, width, height int)
}

// Entry is one resolved catalog image.
type Entry struct {
	Texture sprite.TextureID
	Width   int
	Height  int
}

// Table is a Resolver indexed by catalog index.
type Table []Entry

// Resolve implements Resolver.
func (t Table) Resolve(index int) (sprite.TextureID, int, int) {
	e := t[index]
	return e.Texture, e.Width, e.Height
}

// CatalogTable resolves every catalog image to texture id index+1 at its
// catalog size. Used when no GPU textures exist.
func CatalogTable() Table {
	t := make(Table, len(Catalog))
	for i, img := range Catalog {
		t[i] = Entry{Texture: sprite.TextureID(i + 1), Width: img.Width, Height: img.Height}
	}
	return t
}

// Scene appends one frame of sprites to out and returns it.
type Scene struct {
	Name  string
	Build func(r Resolver, tick int, out []sprite.Instance) []sprite.Instance
}

// All lists the demo scenes in the order the space key cycles them.
var All = []Scene{
	{Name: "four sprites", Build: buildScene0},
	{Name: "two sprites", Build: buildScene1},
	{Name: "one sprite per tick", Build: buildScene2},
	{Name: "monsters and grid", Build: buildScene3},
}

// makeSprite builds an instance at the image's doubled size.
func makeSprite(r Resolver, index int, x, y, scale, angle float32, depth int) sprite.Instance {
	tex, w, h := r.Resolve(index)
	return sprite.New(tex, w, h, x, y, scale, angle, depth)
}

const quarterPi = stdmath.Pi / 4

func scene0Sprites(r Resolver) [4]sprite.Instance {
	return [4]sprite.Instance{
		makeSprite(r, Basu, 0, 0, 1, 0, 0),
		makeSprite(r, Bat, 30, 30, 1, 0, 0),
		makeSprite(r, Behemoth, 80, 30, 1, quarterPi, 0),
		makeSprite(r, Crow, 70, -50, 1, -quarterPi, 0),
	}
}

func buildScene0(r Resolver, _ int, out []sprite.Instance) []sprite.Instance {
	s := scene0Sprites(r)
	return append(out, s[:]...)
}

func buildScene1(r Resolver, _ int, out []sprite.Instance) []sprite.Instance {
	s := scene0Sprites(r)
	return append(out, s[0], s[1])
}

// buildScene2 shows one of the scene 0 sprites, advancing each tick.
func buildScene2(r Resolver, tick int, out []sprite.Instance) []sprite.Instance {
	s := scene0Sprites(r)
	return append(out, s[tick%len(s)])
}

func buildScene3(r Resolver, _ int, out []sprite.Instance) []sprite.Instance {
	out = append(out,
		makeSprite(r, DragonZombie, -250, -200, 1, 0, 0),
		makeSprite(r, FireWhirl, -150, -100, 1, 0, 0),
		makeSprite(r, GiantPignon, -200, 0, 1, 0, 0),
		makeSprite(r, NightSpirit, -225, 100, 1, 0, 0),
		makeSprite(r, Orangebell, -200, 200, 1, 0, 0),
		makeSprite(r, Petit, -100, 200, 1, 0, 0),
		makeSprite(r, PowerCritter, -25, 75, 1, 0, 0),
	)

	// 4x6 grid of polish, each cell one sprite size apart.
	polish := makeSprite(r, Polish, 50, 180, 1, 0, 0)
	for i := 0; i < 4; i++ {
		for j := 0; j < 6; j++ {
			p := polish
			p.Position.X = polish.Position.X + polish.HalfExtents.X*float32(i)
			p.Position.Y = polish.Position.Y - polish.HalfExtents.Y*float32(j)
			out = append(out, p)
		}
	}
	return out
}
