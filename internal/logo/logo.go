// Package logo stamps a logo onto rendered map images.
package logo

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/filatov87/SEO-BOG/internal/config"
)

// Options positions the logo. CropHeight pixels are removed from the bottom
// of the base image first; the logo is then placed LeftOffset pixels from the
// left edge and LiftHeight pixels above the new bottom edge.
type Options struct {
	CropHeight int
	LeftOffset int
	LiftHeight int
}

// OptionsFrom builds Options from the logo config.
func OptionsFrom(cfg config.LogoConfig) Options {
	return Options{CropHeight: cfg.CropHeight, LeftOffset: cfg.LeftOffset, LiftHeight: cfg.LiftHeight}
}

// Compose crops base and overlays logo on it.
func Compose(base, logo image.Image, opts Options) (*image.NRGBA, error) {
	b := base.Bounds()
	h := b.Dy() - opts.CropHeight
	if h <= 0 {
		return nil, fmt.Errorf("crop height %d exceeds image height %d", opts.CropHeight, b.Dy())
	}
	cropped := imaging.Crop(base, image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Min.Y+h))

	pos := image.Pt(opts.LeftOffset, h-logo.Bounds().Dy()-opts.LiftHeight)
	return imaging.Overlay(cropped, logo, pos, 1.0), nil
}

// Report lists the outcome of ProcessDir.
type Report struct {
	Written []string
	Failed  map[string]error
}

// ProcessDir stamps logo onto every .png in inDir and writes the results
// under the same names in outDir. Unreadable images are reported and skipped.
func ProcessDir(inDir, outDir string, logo image.Image, opts Options) (Report, error) {
	rep := Report{Failed: make(map[string]error)}

	entries, err := os.ReadDir(inDir)
	if err != nil {
		return rep, fmt.Errorf("reading %s: %w", inDir, err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return rep, fmt.Errorf("creating %s: %w", outDir, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".png") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		base, err := imaging.Open(filepath.Join(inDir, name))
		if err != nil {
			rep.Failed[name] = err
			continue
		}
		out, err := Compose(base, logo, opts)
		if err != nil {
			rep.Failed[name] = err
			continue
		}
		path := filepath.Join(outDir, name)
		if err := imaging.Save(out, path); err != nil {
			return rep, fmt.Errorf("saving %s: %w", path, err)
		}
		rep.Written = append(rep.Written, path)
	}
	return rep, nil
}
