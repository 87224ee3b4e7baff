package logo

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
)

var (
	red  = color.NRGBA{R: 255, A: 255}
	blue = color.NRGBA{B: 255, A: 255}
)

func defaultOptions() Options {
	return Options{CropHeight: 25, LeftOffset: 30, LiftHeight: 30}
}

func TestCompose(t *testing.T) {
	base := imaging.New(100, 100, red)
	logo := imaging.New(10, 10, blue)

	out, err := Compose(base, logo, defaultOptions())
	require.NoError(t, err)
	require.Equal(t, 100, out.Bounds().Dx())
	require.Equal(t, 75, out.Bounds().Dy())

	// Logo top-left sits at (30, 75-10-30).
	require.Equal(t, blue, out.NRGBAAt(30, 35))
	require.Equal(t, blue, out.NRGBAAt(39, 44))
	require.Equal(t, red, out.NRGBAAt(29, 35))
	require.Equal(t, red, out.NRGBAAt(30, 45))
}

func TestComposeTransparentLogo(t *testing.T) {
	base := imaging.New(50, 50, red)
	logo := imaging.New(5, 5, color.NRGBA{})

	out, err := Compose(base, logo, Options{})
	require.NoError(t, err)
	require.Equal(t, red, out.NRGBAAt(0, 45))
}

func TestComposeCropTooLarge(t *testing.T) {
	_, err := Compose(imaging.New(20, 20, red), imaging.New(1, 1, blue), Options{CropHeight: 20})
	require.Error(t, err)
}

func TestProcessDir(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "with_logo")

	require.NoError(t, imaging.Save(imaging.New(100, 100, red), filepath.Join(in, "Lima_Cusco_map_0703.png")))
	require.NoError(t, os.WriteFile(filepath.Join(in, "broken.png"), []byte("nope"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(in, "notes.txt"), []byte("x"), 0o644))

	rep, err := ProcessDir(in, out, imaging.New(10, 10, blue), defaultOptions())
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(out, "Lima_Cusco_map_0703.png")}, rep.Written)
	require.Contains(t, rep.Failed, "broken.png")
	require.Len(t, rep.Failed, 1)

	img, err := imaging.Open(rep.Written[0])
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 100, 75), img.Bounds())
}
