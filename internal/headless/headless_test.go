package headless

import (
	"bytes"
	"image"
	"testing"

	"github.com/ItsNotGoodName/x-panelwm/geom"
	"github.com/ItsNotGoodName/x-panelwm/wm"
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasureDesktopRect(t *testing.T) {
	h := New(geom.Rect{Width: 800, Height: 600})

	rect, err := h.MeasureDesktopRect(0)
	require.NoError(t, err)
	assert.Equal(t, geom.Rect{Width: 800, Height: 600}, rect)

	h.Resize(1, geom.Rect{Width: 100, Height: 50})
	rect, err = h.MeasureDesktopRect(1)
	require.NoError(t, err)
	assert.Equal(t, 100.0, rect.Width)

	_, err = New(geom.Rect{}).MeasureDesktopRect(0)
	assert.Error(t, err)
}

func TestDecodeSurface(t *testing.T) {
	h := New(geom.Rect{Width: 800, Height: 600})

	img, err := h.CaptureVisibleBitmap(0, "a")
	require.NoError(t, err)
	assert.Nil(t, img)

	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 40, 20)), imaging.PNG))
	require.NoError(t, h.DecodeSurface(0, "a", &buf))

	img, err = h.CaptureVisibleBitmap(0, "a")
	require.NoError(t, err)
	require.NotNil(t, img)
	assert.Equal(t, image.Pt(40, 20), img.Bounds().Size())

	assert.Error(t, h.DecodeSurface(0, "a", bytes.NewReader([]byte("not an image"))))

	h.RemoveSurface(0, "a")
	img, err = h.CaptureVisibleBitmap(0, "a")
	require.NoError(t, err)
	assert.Nil(t, img)
}

func TestTransitions(t *testing.T) {
	h := New(geom.Rect{Width: 800, Height: 600})

	h.SetTransitions(2, true)
	assert.True(t, h.Transitions(2))
	assert.False(t, h.Transitions(0))
}

func TestPruneSurfaces(t *testing.T) {
	h := New(geom.Rect{Width: 800, Height: 600})
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	h.SetSurface(0, "a", img)
	h.SetSurface(0, "b", img)
	h.SetSurface(1, "c", img)

	assert.Equal(t, 1, h.PruneSurfaces(0, []wm.PanelID{"a"}))

	for _, tt := range []struct {
		desktop wm.DesktopID
		panel   wm.PanelID
		kept    bool
	}{
		{0, "a", true},
		{0, "b", false},
		{1, "c", true},
	} {
		got, err := h.CaptureVisibleBitmap(tt.desktop, tt.panel)
		require.NoError(t, err)
		assert.Equal(t, tt.kept, got != nil, tt.panel)
	}
}
