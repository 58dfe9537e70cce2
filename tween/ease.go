// Package tween drives a numeric value from a start to an end over time.
// A Tween is sampled once per frame by the caller; it never schedules itself.
package tween

import (
	"fmt"
	"math"
	"strings"
)

// Ease maps linear time t in [0,1] to an eased fraction.
type Ease func(t float32) float32

// Linear is the identity ease.
func Linear(t float32) float32 { return t }

func powIn(p float64) Ease {
	return func(t float32) float32 {
		return float32(math.Pow(float64(t), p))
	}
}

func powOut(p float64) Ease {
	return func(t float32) float32 {
		return 1 - float32(math.Pow(float64(1-t), p))
	}
}

func powInOut(p float64) Ease {
	return func(t float32) float32 {
		if t < 0.5 {
			return float32(math.Pow(float64(t)*2, p)) / 2
		}
		return 1 - float32(math.Pow(float64(1-t)*2, p))/2
	}
}

func sineIn(t float32) float32 {
	return 1 - float32(math.Cos(float64(t)*math.Pi/2))
}

func sineOut(t float32) float32 {
	return float32(math.Sin(float64(t) * math.Pi / 2))
}

func sineInOut(t float32) float32 {
	return -(float32(math.Cos(math.Pi*float64(t))) - 1) / 2
}

var eases = map[string]Ease{
	"none":         Linear,
	"linear":       Linear,
	"power1.in":    powIn(2),
	"power1.out":   powOut(2),
	"power1.inout": powInOut(2),
	"power2.in":    powIn(3),
	"power2.out":   powOut(3),
	"power2.inout": powInOut(3),
	"power3.in":    powIn(4),
	"power3.out":   powOut(4),
	"power3.inout": powInOut(4),
	"power4.in":    powIn(5),
	"power4.out":   powOut(5),
	"power4.inout": powInOut(5),
	"sine.in":      sineIn,
	"sine.out":     sineOut,
	"sine.inout":   sineInOut,
}

// ByName looks up an ease such as "none", "power2.inOut" or "sine.out".
// Names are case-insensitive; an empty name is linear.
func ByName(name string) (Ease, error) {
	if name == "" {
		return Linear, nil
	}
	e, ok := eases[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown ease %q", name)
	}
	return e, nil
}
