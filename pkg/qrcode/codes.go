package qr

import "image/color"

// Certificate is the default look of certificate verification codes.
var Certificate = Config{
	Size:          512,
	QuietZone:     32,
	RecoveryLevel: 2,
	DotScale:      1,
	Background:    color.RGBA{R: 255, G: 255, B: 255, A: 255},
	Foreground:    color.RGBA{R: 20, G: 20, B: 20, A: 255},
	LogoScale:     0.2,
}
