package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/image/bmp"

	"github.com/Faultbox/spritebatch/internal/logger"
)

// ErrUnknownImage is returned for image ids the store never loaded.
var ErrUnknownImage = errors.New("texture: unknown image id")

// Image is a decoded RGBA8 image with straight alpha, the layout the GL
// backend blends with SRC_ALPHA, ONE_MINUS_SRC_ALPHA.
type Image struct {
	Name        string
	Width       int
	Height      int
	Pix         []byte
	Placeholder bool // generated because the file was missing
}

// Store holds decoded sprite images. Image ids are assigned in load order
// starting at zero.
type Store struct {
	dir    string
	images []Image
}

// NewStore creates a store reading images from dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Load decodes a PNG or TGA file from the store directory and returns its
// id. A missing file is replaced by a placeholder of the given size so the
// demo runs without assets; any other failure is returned.
func (s *Store) Load(name string, width, height int) (uint64, error) {
	img, err := decodeFile(filepath.Join(s.dir, name))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Warn("image missing, using placeholder",
			zap.String("name", name),
			zap.Int("width", width),
			zap.Int("height", height),
		)
		return s.Add(Image{
			Name:        name,
			Width:       width,
			Height:      height,
			Pix:         placeholder(width, height, len(s.images)),
			Placeholder: true,
		}), nil
	case err != nil:
		return 0, fmt.Errorf("loading image %s: %w", name, err)
	}

	b := img.Bounds()
	return s.Add(Image{Name: name, Width: b.Dx(), Height: b.Dy(), Pix: img.Pix}), nil
}

// Add stores an already decoded image and returns its id.
func (s *Store) Add(img Image) uint64 {
	s.images = append(s.images, img)
	return uint64(len(s.images) - 1)
}

// Image returns the image with the given id.
func (s *Store) Image(id uint64) (Image, bool) {
	if id >= uint64(len(s.images)) {
		return Image{}, false
	}
	return s.images[id], true
}

// IDs returns every loaded image id in load order.
func (s *Store) IDs() []uint64 {
	ids := make([]uint64, len(s.images))
	for i := range ids {
		ids[i] = uint64(i)
	}
	return ids
}

// Len returns the number of loaded images.
func (s *Store) Len() int {
	return len(s.images)
}

// Pixels implements PixelSource.
func (s *Store) Pixels(id uint64) ([]byte, int, int, error) {
	img, ok := s.Image(id)
	if !ok {
		return nil, 0, 0, fmt.Errorf("%w: %d", ErrUnknownImage, id)
	}
	return img.Pix, img.Width, img.Height, nil
}

// decodeFile reads a PNG, TGA or BMP file into a tightly packed image with
// straight alpha.
func decodeFile(path string) (*image.NRGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".tga":
		return DecodeTGA(data)
	case ".png":
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return toNRGBA(img), nil
	case ".bmp":
		img, err := bmp.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		nrgba := toNRGBA(img)
		keyMagenta(nrgba.Pix)
		return nrgba, nil
	default:
		return nil, fmt.Errorf("unsupported image format %q", filepath.Ext(path))
	}
}

// toNRGBA converts img to an *image.NRGBA whose origin is (0, 0), keeping
// alpha straight.
func toNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	if n, ok := img.(*image.NRGBA); ok && b.Min == (image.Point{}) && n.Stride == 4*b.Dx() {
		return n
	}
	n := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			n.Set(x-b.Min.X, y-b.Min.Y, img.At(x, y))
		}
	}
	return n
}

// keyMagenta makes RGB(255,0,255) pixels transparent. BMP sprites carry no
// alpha channel and use magenta as the color key.
func keyMagenta(pix []byte) {
	for i := 0; i+3 < len(pix); i += 4 {
		if pix[i] == 255 && pix[i+1] == 0 && pix[i+2] == 255 {
			pix[i], pix[i+2], pix[i+3] = 0, 0, 0
		}
	}
}

// placeholder returns a checkerboard in a color picked from seed.
func placeholder(width, height, seed int) []byte {
	palette := [][3]byte{
		{230, 80, 80}, {80, 200, 90}, {90, 120, 230}, {230, 200, 70},
		{200, 90, 220}, {70, 210, 210}, {240, 140, 60}, {160, 160, 160},
	}
	c := palette[seed%len(palette)]

	pix := make([]byte, width*height*4)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := (y*width + x) * 4
			shade := byte(255)
			if (x/4+y/4)%2 == 1 {
				shade = 180
			}
			pix[i] = byte(int(c[0]) * int(shade) / 255)
			pix[i+1] = byte(int(c[1]) * int(shade) / 255)
			pix[i+2] = byte(int(c[2]) * int(shade) / 255)
			pix[i+3] = 255
		}
	}
	return pix
}
