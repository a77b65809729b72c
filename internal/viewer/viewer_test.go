package viewer

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkage-renderer/internal/input"
	"linkage-renderer/internal/raster"
	"linkage-renderer/internal/scene"
	"linkage-renderer/internal/shape"
)

func newViewer(t *testing.T, step float64) *Viewer {
	t.Helper()
	v, err := New(shape.NewCache(), raster.Options{Width: 40, Height: 30, Supersample: 1, Background: scene.BlueGreen}, step)
	require.NoError(t, err)
	return v
}

func TestPlayScript(t *testing.T) {
	v := newViewer(t, 5)
	events, err := input.ParseScript("1 up up right down")
	require.NoError(t, err)
	require.NoError(t, v.Play(events))

	st := v.State()
	assert.Equal(t, "editing", st.Mode)
	assert.Equal(t, []string{"body"}, st.Selected)

	body, err := v.Assembly.Part("body")
	require.NoError(t, err)
	assert.Equal(t, [3]float64{10, -5, 0}, body.Angles())
}

func TestPlayStopsAtError(t *testing.T) {
	v := newViewer(t, 0)
	err := v.Play([]input.Event{input.Key("1"), input.Key("?"), input.Key("up")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, input.ErrUnboundKey))

	body, _ := v.Assembly.Part("body")
	assert.Equal(t, [3]float64{}, body.Angles(), "events after the failure are not applied")
}

func TestFrameTracksCamera(t *testing.T) {
	v := newViewer(t, 0)
	before := v.Frame()
	require.Equal(t, 40, before.Bounds().Dx())

	require.NoError(t, v.Handle(input.Drag(80, 0)))
	assert.NotEqual(t, before.Pix, v.Frame().Pix)

	require.NoError(t, v.Handle(input.Key("r")))
	assert.Equal(t, before.Pix, v.Frame().Pix)
}
