package export

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Canvas geometry. Width is fixed; height grows with the number of receipt
// lines but never drops below the floor.
const (
	bitmapWidth      = 640
	bitmapMinHeight  = 240
	bitmapLineHeight = 18
	bitmapMarginX    = 16
	bitmapMarginY    = 28
)

// Bitmap rasterises receipt text onto a white canvas and encodes it as JPEG.
// The lossy encode keeps the artifact small enough for messaging-app
// attachment limits.
type Bitmap struct {
	// Quality is the JPEG quality factor (1-100). Zero selects the default.
	Quality int

	once sync.Once
	face font.Face
}

// DefaultQuality is used when no quality factor is configured.
const DefaultQuality = 80

// Render draws each line of text top-to-bottom at a fixed pitch and returns
// the encoded JPEG bytes. Font loading cannot fail the render: when the
// embedded Go Mono face is unusable the built-in bitmap face is used instead.
func (r *Bitmap) Render(text string) ([]byte, error) {
	r.once.Do(func() { r.face = monoFace() })

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	height := bitmapMarginY + bitmapLineHeight*len(lines) + bitmapMarginY/2
	if height < bitmapMinHeight {
		height = bitmapMinHeight
	}

	canvas := image.NewRGBA(image.Rect(0, 0, bitmapWidth, height))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  canvas,
		Src:  image.Black,
		Face: r.face,
	}
	for i, line := range lines {
		drawer.Dot = fixed.P(bitmapMarginX, bitmapMarginY+i*bitmapLineHeight)
		drawer.DrawString(line)
	}

	quality := r.Quality
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, canvas, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("%w: jpeg: %v", ErrEncode, err)
	}
	return buf.Bytes(), nil
}

// monoFace parses the embedded Go Mono TTF. Falling back to Face7x13 keeps
// rendering alive when the parse fails; it is never an error.
func monoFace() font.Face {
	parsed, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    14,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}
