package wm

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func surface(w, h int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := range w {
		img.Set(x, 0, color.White)
	}
	return img
}

func TestTaskbarThumbnail(t *testing.T) {
	host := newFakeHost()
	r, d := newTestRegistry(t, host)
	ids := addWindows(t, r, d, 2)

	// Nothing drawn yet.
	assert.True(t, mustPanel(t, r, d, ids[0]).TaskbarUpdates.Thumbnail)

	host.setSurface(ids[0], surface(300, 100))
	require.NoError(t, r.Refresh(d))

	assert.False(t, mustPanel(t, r, d, ids[0]).TaskbarUpdates.Thumbnail)
	assert.True(t, mustPanel(t, r, d, ids[1]).TaskbarUpdates.Thumbnail)

	thumb, err := r.Thumbnail(d, ids[0])
	require.NoError(t, err)
	require.NotNil(t, thumb)
	assert.Equal(t, 450, thumb.Bounds().Dx())
	assert.Equal(t, 150, thumb.Bounds().Dy())

	thumb, err = r.Thumbnail(d, ids[1])
	require.NoError(t, err)
	assert.Nil(t, thumb)
}

func TestRequestThumbnails(t *testing.T) {
	host := newFakeHost()
	r, d := newTestRegistry(t, host)
	id := addWindows(t, r, d, 1)[0]

	host.setSurface(id, surface(100, 100))
	require.NoError(t, r.Refresh(d))
	host.setSurface(id, surface(200, 100))

	require.NoError(t, r.Refresh(d))
	thumb, err := r.Thumbnail(d, id)
	require.NoError(t, err)
	assert.Equal(t, 150, thumb.Bounds().Dx())

	require.NoError(t, r.RequestThumbnails(d))
	thumb, err = r.Thumbnail(d, id)
	require.NoError(t, err)
	assert.Equal(t, 300, thumb.Bounds().Dx())
}

func TestTaskbarState(t *testing.T) {
	r, d := newTestRegistry(t, newFakeHost())
	ids := addWindows(t, r, d, 2)

	taskbar := &recordingTaskbar{}
	require.NoError(t, r.SubscribeTaskbar(d, taskbar))

	require.NoError(t, r.SetEmbrace(d, ids[0], true))
	_, err := r.GroupEmbraced(d)
	require.NoError(t, err)
	require.NoError(t, r.MinimizeWindow(d, ids[1], GeometryPatch{}))

	require.Len(t, taskbar.entries, 2)
	grouped, minimized := taskbar.entries[0], taskbar.entries[1]

	assert.Equal(t, "#f5173e", grouped.Color)
	assert.Equal(t, 1.0, grouped.Opacity)
	assert.False(t, grouped.Minimized)

	assert.Equal(t, "#ffffff", minimized.Color)
	assert.Equal(t, 0.4, minimized.Opacity)
	assert.True(t, minimized.Minimized)

	assert.False(t, mustPanel(t, r, d, ids[1]).TaskbarUpdates.State)
}

func TestTaskbarUnknownDesktop(t *testing.T) {
	r, _ := newTestRegistry(t, newFakeHost())

	_, err := r.Taskbar(7)
	assert.ErrorIs(t, err, ErrUnknownDesktop)
	assert.ErrorIs(t, r.RequestThumbnails(7), ErrUnknownDesktop)
}
