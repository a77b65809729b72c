package web

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkage-renderer/internal/control"
	"linkage-renderer/internal/export"
	"linkage-renderer/internal/raster"
	"linkage-renderer/internal/scene"
	"linkage-renderer/internal/shape"
	"linkage-renderer/internal/texture"
	"linkage-renderer/internal/viewer"
)

func startSession(t *testing.T) (*Session, *Server) {
	t.Helper()
	return startSessionWith(t, nil)
}

func startSessionWith(t *testing.T, backdrops *texture.Cache) (*Session, *Server) {
	t.Helper()
	v, err := viewer.New(shape.NewCache(), raster.Options{Width: 32, Height: 24, Supersample: 1, Background: scene.BlueGreen}, 0)
	require.NoError(t, err)

	hub := NewHub()
	s := NewSession(v, hub, export.PNG)
	s.UseBackdrops(backdrops)
	ctx, cancel := context.WithCancel(context.Background())
	go s.Run(ctx)
	t.Cleanup(cancel)
	return s, NewServer(s, hub)
}

func serve(t *testing.T, srv *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) control.State {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var st control.State
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	return st
}

func TestKeyRoutes(t *testing.T) {
	s, srv := startSession(t)

	st := decodeState(t, serve(t, srv, http.MethodGet, "/state", ""))
	assert.Equal(t, "idle", st.Mode)
	assert.Equal(t, -1, st.Pose)

	st = decodeState(t, serve(t, srv, http.MethodPost, "/key/1", ""))
	assert.Equal(t, "editing", st.Mode)
	assert.Equal(t, []string{"body"}, st.Selected)

	decodeState(t, serve(t, srv, http.MethodPost, "/key/up", ""))
	st = decodeState(t, serve(t, srv, http.MethodPost, "/key/right", ""))
	assert.Equal(t, "V", st.Axis)

	var angles [3]float64
	require.NoError(t, s.do(context.Background(), func(v *viewer.Viewer) error {
		body, err := v.Assembly.Part("body")
		if err != nil {
			return err
		}
		angles = body.Angles()
		return nil
	}))
	assert.Equal(t, [3]float64{control.DefaultStep, 0, 0}, angles)

	st = decodeState(t, serve(t, srv, http.MethodPost, "/key/esc", ""))
	assert.Equal(t, "idle", st.Mode)

	rec := serve(t, srv, http.MethodPost, "/key/%3F", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "unbound key")

	rec = serve(t, srv, http.MethodPost, "/key/home", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, srv, http.MethodGet, "/key/1", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestPoseAndScriptRoutes(t *testing.T) {
	_, srv := startSession(t)

	st := decodeState(t, serve(t, srv, http.MethodPost, "/pose/1", ""))
	assert.Equal(t, 1, st.Pose)
	assert.Equal(t, "grab", st.PoseName)

	st = decodeState(t, serve(t, srv, http.MethodPost, "/pose/-1", ""))
	assert.Equal(t, 4, st.Pose)

	st = decodeState(t, serve(t, srv, http.MethodPost, "/script", "t 2 3 drag:10,5 zoom:1"))
	assert.Equal(t, 0, st.Pose)
	assert.Len(t, st.Selected, 2)

	rec := serve(t, srv, http.MethodPost, "/script", "wobble:1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	st = decodeState(t, serve(t, srv, http.MethodPost, "/drag?dx=5&dy=-3&button=middle", ""))
	assert.Len(t, st.Selected, 2)
	rec = serve(t, srv, http.MethodPost, "/drag?dx=5", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	decodeState(t, serve(t, srv, http.MethodPost, "/scroll?dy=2", ""))
}

func TestNonFiniteInputRejected(t *testing.T) {
	s, srv := startSession(t)

	for _, target := range []string{"/drag?dx=NaN&dy=0", "/drag?dx=0&dy=Inf", "/scroll?dy=NaN", "/scroll?dy=-Inf"} {
		rec := serve(t, srv, http.MethodPost, target, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
	rec := serve(t, srv, http.MethodPost, "/script", "drag:NaN,1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var theta, dist float64
	require.NoError(t, s.do(context.Background(), func(v *viewer.Viewer) error {
		theta, dist = v.Camera.Theta, v.Camera.Distance
		return nil
	}))
	assert.False(t, math.IsNaN(theta))
	assert.False(t, math.IsNaN(dist))
}

func TestBackdropRoute(t *testing.T) {
	dir := t.TempDir()
	red := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(red.Pix); i += 4 {
		red.Pix[i], red.Pix[i+3] = 255, 255
	}
	f, err := os.Create(filepath.Join(dir, "coral.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, red))
	require.NoError(t, f.Close())

	_, srv := startSessionWith(t, texture.NewCache(texture.BuildIndex(dir)))
	corner := func() color.NRGBA {
		rec := serve(t, srv, http.MethodGet, "/frame.png", "")
		require.Equal(t, http.StatusOK, rec.Code)
		img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
		require.NoError(t, err)
		return color.NRGBAModel.Convert(img.At(0, 0)).(color.NRGBA)
	}

	decodeState(t, serve(t, srv, http.MethodPost, "/backdrop/coral", ""))
	assert.Equal(t, color.NRGBA{255, 0, 0, 255}, corner())

	rec := serve(t, srv, http.MethodPost, "/backdrop/kelp", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	decodeState(t, serve(t, srv, http.MethodPost, "/backdrop/none", ""))
	assert.Equal(t, scene.BlueGreen.NRGBA(), corner())
}

func TestSelectAndModelRoutes(t *testing.T) {
	_, srv := startSession(t)

	st := decodeState(t, serve(t, srv, http.MethodPost, "/select/ffoot2", ""))
	assert.Equal(t, []string{"ffoot2"}, st.Selected)

	rec := serve(t, srv, http.MethodPost, "/select/tail", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(t, srv, http.MethodGet, "/model.glb", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "model/gltf-binary", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "glTF"))

	rec = serve(t, srv, http.MethodGet, "/model.gltf", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Contains(t, doc, "nodes")
}

func TestFrameRoute(t *testing.T) {
	_, srv := startSession(t)

	rec := serve(t, srv, http.MethodGet, "/frame.png", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())

	rec = serve(t, srv, http.MethodGet, "/frame.webp", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/webp", rec.Header().Get("Content-Type"))

	rec = serve(t, srv, http.MethodGet, "/frame.gif", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(t, srv, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/ws")
}

func TestSessionClosed(t *testing.T) {
	v, err := viewer.New(shape.NewCache(), raster.Options{Width: 8, Height: 8}, 0)
	require.NoError(t, err)
	s := NewSession(v, nil, export.PNG)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	_, err = s.State(context.Background())
	require.NoError(t, err)

	cancel()
	<-done
	_, err = s.State(context.Background())
	assert.True(t, errors.Is(err, ErrClosed))
}

func TestWebsocketPushesUpdates(t *testing.T) {
	_, srv := startSession(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	readState := func() control.State {
		for {
			kind, data, err := conn.ReadMessage()
			require.NoError(t, err)
			if kind == websocket.TextMessage {
				var st control.State
				require.NoError(t, json.Unmarshal(data, &st))
				return st
			}
		}
	}

	assert.Equal(t, "idle", readState().Mode)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("1 2")))
	st := readState()
	assert.Equal(t, "editing", st.Mode)
	assert.Equal(t, []string{"body", "arm1"}, st.Selected)

	// the frame follows its state
	kind, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.BinaryMessage, kind)
	_, err = png.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
}
