package tiled

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	gotiled "github.com/lafriks/go-tiled"
)

type Property struct {
	Name  string
	Type  string
	Value string
}

type Properties []Property

func convertProperties(src *gotiled.Properties) Properties {
	if src == nil {
		return nil
	}
	out := make(Properties, 0, len(*src))
	for _, p := range *src {
		if p == nil {
			continue
		}
		out = append(out, Property{Name: p.Name, Type: p.Type, Value: p.Value})
	}
	return out
}

func (ps Properties) Lookup(name string) (Property, bool) {
	for _, p := range ps {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

func (ps Properties) GetString(name, def string) string {
	p, ok := ps.Lookup(name)
	if !ok {
		return def
	}
	return strings.TrimSpace(p.Value)
}

func (ps Properties) GetInt(name string, def int) int {
	p, ok := ps.Lookup(name)
	if !ok {
		return def
	}
	v, err := strconv.Atoi(strings.TrimSpace(p.Value))
	if err != nil {
		return def
	}
	return v
}

func (ps Properties) GetFloat(name string, def float64) float64 {
	p, ok := ps.Lookup(name)
	if !ok {
		return def
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(p.Value), 64)
	if err != nil {
		return def
	}
	return v
}

func (ps Properties) GetBool(name string, def bool) bool {
	p, ok := ps.Lookup(name)
	if !ok {
		return def
	}
	v, err := strconv.ParseBool(strings.TrimSpace(p.Value))
	if err != nil {
		return def
	}
	return v
}

// Color reads a Tiled color property (#AARRGGBB or #RRGGBB).
func (ps Properties) GetColor(name string, def color.Color) color.Color {
	p, ok := ps.Lookup(name)
	if !ok {
		return def
	}
	c, err := ParseColor(strings.TrimSpace(p.Value))
	if err != nil {
		return def
	}
	return c
}

// ParseColor parses Tiled's color notation. Tiled writes alpha first.
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	var a uint64 = 0xff
	switch len(hex) {
	case 6:
	case 8:
		v, err := strconv.ParseUint(hex[:2], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("tiled: color %q: %w", s, err)
		}
		a = v
		hex = hex[2:]
	default:
		return color.NRGBA{}, fmt.Errorf("tiled: color %q: bad length", s)
	}
	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("tiled: color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(rgb >> 16), G: uint8(rgb >> 8), B: uint8(rgb), A: uint8(a)}, nil
}
