// pkg/render/engo/assets.go
package engo

import (
	"image"
	"image/color"

	"github.com/EngoEngine/engo/common"
)

// Sprite names the generated images.
type Sprite string

const (
	SpriteRocket   Sprite = "rocket"
	SpriteFlame    Sprite = "flame"
	SpriteDebris   Sprite = "debris"
	SpriteSparkle  Sprite = "sparkle"
	SpriteBackdrop Sprite = "backdrop"
)

var (
	rocketPattern = []string{
		"...##...",
		"..####..",
		"..#..#..",
		"..####..",
		"..####..",
		".######.",
		"##.##.##",
		"#......#",
	}
	flamePattern = []string{
		".##.",
		"####",
		"####",
		".##.",
	}
	debrisPattern = []string{
		"#..#",
		".##.",
		".##.",
		"#..#",
	}
	sparklePattern = []string{
		".#.",
		"###",
		".#.",
	}
)

// AssetManager generates the game's sprites. There are no image files: each
// sprite is drawn from a pattern where '#' is an opaque pixel.
type AssetManager struct {
	images   map[Sprite]*image.NRGBA
	textures map[Sprite]common.Drawable

	// upload turns an image into a drawable; it needs a GL context.
	upload func(*image.NRGBA) common.Drawable
}

// NewAssetManager creates an asset manager with the images generated but
// nothing uploaded yet.
func NewAssetManager() *AssetManager {
	am := &AssetManager{
		images:   make(map[Sprite]*image.NRGBA),
		textures: make(map[Sprite]common.Drawable),
		upload:   uploadTexture,
	}
	am.images[SpriteRocket] = patternImage(rocketPattern, color.White)
	am.images[SpriteFlame] = patternImage(flamePattern, color.White)
	am.images[SpriteDebris] = patternImage(debrisPattern, color.White)
	am.images[SpriteSparkle] = patternImage(sparklePattern, color.White)
	am.images[SpriteBackdrop] = starfield(64, 64)
	return am
}

// LoadAssets uploads every generated image. Call it from Preload or Setup,
// once the window exists.
func (am *AssetManager) LoadAssets() error {
	for name, img := range am.images {
		am.textures[name] = am.upload(img)
	}
	return nil
}

// Image returns the generated image for name.
func (am *AssetManager) Image(name Sprite) (*image.NRGBA, bool) {
	img, ok := am.images[name]
	return img, ok
}

// Drawable returns the uploaded texture for name, or nil before LoadAssets.
// Callers fall back to a plain shape when it is nil.
func (am *AssetManager) Drawable(name Sprite) common.Drawable {
	return am.textures[name]
}

func patternImage(pattern []string, c color.Color) *image.NRGBA {
	width := 0
	for _, row := range pattern {
		if len(row) > width {
			width = len(row)
		}
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, len(pattern)))
	for y, row := range pattern {
		for x, px := range row {
			if px == '#' {
				img.Set(x, y, c)
			}
		}
	}
	return img
}

// starfield scatters a fixed set of dim stars over a transparent tile.
func starfield(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	star := color.NRGBA{R: 200, G: 200, B: 255, A: 160}
	for i := 0; i < height; i += 8 {
		x := (i*37 + 11) % width
		img.Set(x, i, star)
		img.Set((x+width/2)%width, (i+5)%height, star)
	}
	return img
}

func uploadTexture(img *image.NRGBA) common.Drawable {
	return common.NewTextureSingle(common.NewImageObject(img))
}
