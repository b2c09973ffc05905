package overlay

import colorful "github.com/lucasb-eyer/go-colorful"

// BlendOverBackground alpha-blends fgHex over bgHex in RGB space and
// returns the resulting color as a hex string ("#rrggbb"). alpha is
// clamped to [0,1]; 0 returns bgHex unchanged, 1 returns fgHex unchanged.
// Used to soften a secondary caret's or decoration's color against the
// surface's theme background rather than painting it at full opacity.
func BlendOverBackground(fgHex, bgHex string, alpha float64) (string, error) {
	fg, err := colorful.Hex(fgHex)
	if err != nil {
		return "", err
	}
	bg, err := colorful.Hex(bgHex)
	if err != nil {
		return "", err
	}
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	return bg.BlendRgb(fg, alpha).Hex(), nil
}

// ContrastingTextColor returns "#000000" or "#ffffff", whichever reads
// better against bgHex, using the CIE L* channel (perceptual lightness)
// of bgHex's Lab representation rather than naive sRGB averaging.
func ContrastingTextColor(bgHex string) (string, error) {
	bg, err := colorful.Hex(bgHex)
	if err != nil {
		return "", err
	}
	l, _, _ := bg.Lab()
	if l > 55 {
		return "#000000", nil
	}
	return "#ffffff", nil
}
