package detection

import (
	"fmt"

	"github.com/ironsheep/badge-verify/internal/imaging"
)

// Interval is a closed integer range [Min, Max].
type Interval struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether Min <= v <= Max.
func (i Interval) Contains(v int) bool {
	return v >= i.Min && v <= i.Max
}

// HappyRange is the band of HSL colors that read as cheerful.
//
// A color is happy only if all three components fall inside their interval.
// HappyRange is a plain value; copies can be adjusted freely in tests without
// touching DefaultHappyRange.
type HappyRange struct {
	Hue        Interval `json:"hue"`
	Saturation Interval `json:"saturation"`
	Lightness  Interval `json:"lightness"`
}

// DefaultHappyRange returns the built-in happy band: yellow-green to yellow
// hues (30-90°), moderate to full saturation (50-100%) and medium lightness
// (40-80%).
func DefaultHappyRange() HappyRange {
	return HappyRange{
		Hue:        Interval{Min: 30, Max: 90},
		Saturation: Interval{Min: 50, Max: 100},
		Lightness:  Interval{Min: 40, Max: 80},
	}
}

// Validate checks that every interval has Min <= Max.
func (r HappyRange) Validate() error {
	for _, d := range []struct {
		name string
		iv   Interval
	}{
		{"hue", r.Hue},
		{"saturation", r.Saturation},
		{"lightness", r.Lightness},
	} {
		if d.iv.Min > d.iv.Max {
			return fmt.Errorf("happy range %s: min %d greater than max %d", d.name, d.iv.Min, d.iv.Max)
		}
	}
	return nil
}

// Contains reports whether c lies inside all three intervals.
func (r HappyRange) Contains(c imaging.HSLColor) bool {
	return r.Hue.Contains(c.H) &&
		r.Saturation.Contains(c.S) &&
		r.Lightness.Contains(c.L)
}

// IsHappy classifies c against DefaultHappyRange.
func IsHappy(c imaging.HSLColor) bool {
	return DefaultHappyRange().Contains(c)
}

// CheckHappyColors averages the HSL color of g and classifies it against r.
//
// It returns the average alongside the verdict. Errors from the average (an
// empty grid yields imaging.ErrEmptyImage) are returned unchanged.
func CheckHappyColors(g imaging.Grid, r HappyRange) (bool, imaging.HSLColor, error) {
	avg, err := imaging.AverageHSL(g)
	if err != nil {
		return false, imaging.HSLColor{}, err
	}
	return r.Contains(avg), avg, nil
}
