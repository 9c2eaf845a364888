package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
)

//go:embed testmap
var assetsFS embed.FS

// Dir is where disk copies of assets are looked up before the embedded ones.
var Dir = "assets"

// FS returns a filesystem that serves files from Dir when present and from
// the embedded copy otherwise.
func FS() fs.FS {
	return overlayFS{disk: os.DirFS(Dir), embedded: assetsFS}
}

type overlayFS struct {
	disk     fs.FS
	embedded fs.FS
}

func (o overlayFS) Open(name string) (fs.File, error) {
	if f, err := o.disk.Open(name); err == nil {
		return f, nil
	}
	return o.embedded.Open(name)
}

// LoadFile loads an asset by assets-relative path.
func LoadFile(p string) ([]byte, error) {
	return fs.ReadFile(FS(), cleanAssetPath(p))
}

// LoadImage loads and decodes an image asset.
func LoadImage(p string) (*ebiten.Image, error) {
	b, err := LoadFile(p)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("assets: decode %q: %w", p, err)
	}
	return ebiten.NewImageFromImage(img), nil
}

var (
	fontOnce   sync.Once
	fontSource *text.GoTextFaceSource
	fontErr    error
)

// LoadFontFace returns the label face at the given size.
func LoadFontFace(size float64) (*text.GoTextFace, error) {
	fontOnce.Do(func() {
		fontSource, fontErr = text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	})
	if fontErr != nil {
		return nil, fmt.Errorf("assets: load font: %w", fontErr)
	}
	return &text.GoTextFace{Source: fontSource, Size: size}, nil
}

func cleanAssetPath(p string) string {
	s := filepath.ToSlash(p)
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		s = after
	}
	return strings.TrimPrefix(s, "/")
}
