// Package palette holds the dashboard's color configuration: named colors,
// rating thresholds and the series/bucket assignments handed to renderers.
package palette

import "sort"

// Named colors.
const (
	Primary   = "#6366f1"
	Secondary = "#ec4899"
	Accent    = "#14b8a6"
	Warning   = "#f59e0b"
	Success   = "#10b981"
	Danger    = "#ef4444"
	Purple    = "#8b5cf6"
	Blue      = "#3b82f6"
	Neutral   = "#e5e7eb"
	Ink       = "#1f2937"
)

// Threshold assigns Color to values at or above Min.
type Threshold struct {
	Min   float64 `json:"min"`
	Color string  `json:"color"`
	Label string  `json:"label"`
}

// Scale maps a rating to a color through descending thresholds. Values
// below every threshold take Below.
type Scale struct {
	Thresholds []Threshold `json:"thresholds"`
	Below      Threshold   `json:"below"`
}

// NewScale returns a Scale with thresholds sorted highest first.
func NewScale(below Threshold, thresholds ...Threshold) Scale {
	ts := append([]Threshold(nil), thresholds...)
	sort.SliceStable(ts, func(i, j int) bool { return ts[i].Min > ts[j].Min })
	return Scale{Thresholds: ts, Below: below}
}

// Color returns the color for v.
func (s Scale) Color(v float64) string {
	for _, t := range s.Thresholds {
		if v >= t.Min {
			return t.Color
		}
	}
	return s.Below.Color
}

// Legend returns the thresholds followed by the below-range entry.
func (s Scale) Legend() []Threshold {
	out := make([]Threshold, 0, len(s.Thresholds)+1)
	out = append(out, s.Thresholds...)
	return append(out, s.Below)
}

// Palette bundles every color assignment used by the dashboard.
type Palette struct {
	Named        map[string]string `json:"named"`
	RegionScale  Scale             `json:"region_scale"`
	Unknown      string            `json:"unknown"`
	Series       map[string]string `json:"series"`
	Distribution map[string]string `json:"distribution"`
	Accents      []string          `json:"accents"`
}

// Default returns the dashboard palette.
func Default() Palette {
	return Palette{
		Named: map[string]string{
			"primary":   Primary,
			"secondary": Secondary,
			"accent":    Accent,
			"warning":   Warning,
			"success":   Success,
			"danger":    Danger,
			"purple":    Purple,
			"blue":      Blue,
		},
		RegionScale: NewScale(
			Threshold{Min: 0, Color: Danger, Label: "<3.5 Stars"},
			Threshold{Min: 4.5, Color: Success, Label: "4.5+ Stars"},
			Threshold{Min: 4, Color: Primary, Label: "4-4.5 Stars"},
			Threshold{Min: 3.5, Color: Warning, Label: "3.5-4 Stars"},
		),
		Unknown: Neutral,
		Series: map[string]string{
			"national":  Ink,
			"west":      Success,
			"south":     Warning,
			"midwest":   Primary,
			"northeast": Secondary,
		},
		Distribution: map[string]string{
			"5":       Success,
			"4":       Primary,
			"3":       Warning,
			"below_3": Danger,
		},
		Accents: []string{Primary, Secondary, Accent, Warning},
	}
}

// RegionColor colors a region by its average rating. ok=false (no rollup
// for the region) yields the neutral color.
func (p Palette) RegionColor(avg float64, ok bool) string {
	if !ok {
		return p.Unknown
	}
	return p.RegionScale.Color(avg)
}

// DistributionColor returns the color for a distribution bucket key.
func (p Palette) DistributionColor(key string) string {
	if c, ok := p.Distribution[key]; ok {
		return c
	}
	return p.Unknown
}
