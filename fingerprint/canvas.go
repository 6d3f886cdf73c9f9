// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package fingerprint

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	canvasWidth  = 200
	canvasHeight = 50
	canvasText   = "ULES Voting <canvas> 1.0"
)

// RenderCanvas draws the fixed test scene and returns it as a PNG data URI.
func RenderCanvas() (string, error) {
	img := image.NewRGBA(image.Rect(0, 0, canvasWidth, canvasHeight))

	draw.Draw(img, image.Rect(125, 1, 187, 21), image.NewUniform(color.RGBA{R: 0xff, G: 0x66, A: 0xff}), image.Point{}, draw.Src)

	drawText(img, 2, 15, canvasText, color.RGBA{G: 0x66, B: 0x99, A: 0xff})
	drawText(img, 4, 17, canvasText, color.NRGBA{R: 102, G: 204, A: 178})

	// diagonal stroke across the filled box
	stroke := color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	for x := 0; x < 60; x++ {
		img.Set(127+x, 2+x/3, stroke)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode canvas: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func drawText(dst draw.Image, x, y int, s string, c color.Color) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
