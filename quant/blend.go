package quant

import "sync"

// Blend interpolates entry for entry between two palettes of equal length.
// Ratio 0 returns the anchor palette, ratio 1 the saturated one. The ratio
// is not clamped, so values outside [0, 1] extrapolate, but every channel
// saturates to [0, 255].
func Blend(anchor, saturated Palette, ratio float64) (Palette, error) {
	if len(anchor) != len(saturated) {
		return nil, ErrPaletteLength
	}
	out := make(Palette, len(anchor))
	for i := range anchor {
		out[i] = Color{
			R: blend8(anchor[i].R, saturated[i].R, ratio),
			G: blend8(anchor[i].G, saturated[i].G, ratio),
			B: blend8(anchor[i].B, saturated[i].B, ratio),
		}
	}
	return out, nil
}

func blend8(anchor, saturated uint8, ratio float64) uint8 {
	return clamp8(float64(saturated)*ratio + float64(anchor)*(1-ratio))
}

// BlendCache memoizes Blend results for one anchor/saturated pair, keyed by
// the exact ratio value. It is safe for concurrent use. Callers must treat
// the returned palettes as read-only.
type BlendCache struct {
	anchor    Palette
	saturated Palette

	mu     sync.RWMutex
	blends map[float64]Palette
}

// NewBlendCache validates the pair once and returns an empty cache.
func NewBlendCache(anchor, saturated Palette) (*BlendCache, error) {
	if len(anchor) != len(saturated) {
		return nil, ErrPaletteLength
	}
	return &BlendCache{
		anchor:    anchor,
		saturated: saturated,
		blends:    make(map[float64]Palette),
	}, nil
}

// Get returns the blend at ratio, computing and caching it on first use.
// Two goroutines racing on a cold ratio may both compute it; they store
// equal palettes, so the last write wins harmlessly.
func (c *BlendCache) Get(ratio float64) Palette {
	c.mu.RLock()
	p, ok := c.blends[ratio]
	c.mu.RUnlock()
	if ok {
		return p
	}

	p, _ = Blend(c.anchor, c.saturated, ratio)
	c.mu.Lock()
	c.blends[ratio] = p
	c.mu.Unlock()
	return p
}
