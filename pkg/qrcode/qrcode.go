package qr

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"

	"github.com/fogleman/gg"
	"github.com/nfnt/resize"
	"github.com/skip2/go-qrcode"
)

// Config describes how a QR code is rendered.
type Config struct {
	Size          int     // side of the QR area in pixels, quiet zone excluded
	QuietZone     int     // margin around the QR area in pixels
	RecoveryLevel int     // qrcode.RecoveryLevel
	DotScale      float64 // 1 draws square modules, below 1 draws round dots of that relative size
	Background    color.Color
	Foreground    color.Color

	LogoPath       string
	LogoScale      float64 // logo side relative to Size
	LogoBackground color.Color
}

// Generate renders content as a PNG image.
func (c Config) Generate(content string) ([]byte, error) {
	if c.Size <= 0 {
		return nil, errors.New("qr size must be positive")
	}
	code, err := qrcode.New(content, qrcode.RecoveryLevel(c.RecoveryLevel))
	if err != nil {
		return nil, err
	}
	code.DisableBorder = true
	bitmap := code.Bitmap()

	total := c.Size + 2*c.QuietZone
	dc := gg.NewContext(total, total)
	dc.SetColor(c.Background)
	dc.Clear()

	module := float64(c.Size) / float64(len(bitmap))
	offset := float64(c.QuietZone)
	dc.SetColor(c.Foreground)
	for y, row := range bitmap {
		for x, dark := range row {
			if !dark {
				continue
			}
			px := offset + float64(x)*module
			py := offset + float64(y)*module
			if c.DotScale <= 0 || c.DotScale >= 1 {
				dc.DrawRectangle(px, py, module, module)
			} else {
				dc.DrawCircle(px+module/2, py+module/2, module*c.DotScale/2)
			}
		}
	}
	dc.Fill()

	if c.LogoPath != "" {
		logo, errLoad := gg.LoadImage(c.LogoPath)
		if errLoad != nil {
			return nil, errLoad
		}
		c.drawLogo(dc, logo, total)
	}

	var buf bytes.Buffer
	if err = png.Encode(&buf, dc.Image()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// drawLogo places logo in a round badge at the center of the code.
func (c Config) drawLogo(dc *gg.Context, logo image.Image, total int) {
	scale := c.LogoScale
	if scale <= 0 || scale > 0.3 {
		scale = 0.2
	}
	side := int(float64(c.Size) * scale)
	if side <= 0 {
		return
	}
	center := float64(total) / 2
	radius := float64(side) / 2

	background := c.LogoBackground
	if background == nil {
		background = c.Background
	}
	dc.SetColor(background)
	dc.DrawCircle(center, center, radius*1.15)
	dc.Fill()

	resized := resize.Resize(uint(side), uint(side), logo, resize.Lanczos3)
	dc.Push()
	dc.DrawCircle(center, center, radius)
	dc.Clip()
	dc.DrawImageAnchored(resized, int(center), int(center), 0.5, 0.5)
	dc.ResetClip()
	dc.Pop()
}
