package system

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/isotiled/prefabs"
	"github.com/milk9111/isotiled/tilemap"
)

// LabelFormatter turns a tile position into label text by running a tengo
// script that reads x and y and assigns label.
type LabelFormatter struct {
	compiled *tengo.Compiled
}

func NewLabelFormatter(src []byte) (*LabelFormatter, error) {
	script := tengo.NewScript(src)
	_ = script.Add("x", 0)
	_ = script.Add("y", 0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("label format: compile: %w", err)
	}
	if !compiled.IsDefined("label") {
		return nil, fmt.Errorf("label format: script does not define label")
	}
	return &LabelFormatter{compiled: compiled}, nil
}

// LoadLabelFormatter compiles a script from the prefabs scripts directory.
func LoadLabelFormatter(name string) (*LabelFormatter, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("label format: load %s: %w", name, err)
	}
	return NewLabelFormatter(src)
}

// Format returns the label for pos. A nil formatter, or one whose script
// fails, yields the plain "x, y" form.
func (f *LabelFormatter) Format(pos tilemap.TilePos) (string, error) {
	if f == nil || f.compiled == nil {
		return pos.String(), nil
	}
	if err := f.compiled.Set("x", pos.X); err != nil {
		return pos.String(), err
	}
	if err := f.compiled.Set("y", pos.Y); err != nil {
		return pos.String(), err
	}
	if err := f.compiled.Run(); err != nil {
		return pos.String(), fmt.Errorf("label format: run: %w", err)
	}
	return f.compiled.Get("label").String(), nil
}
