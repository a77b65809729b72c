// Package web serves an interactive crab viewer over HTTP. One Session owns
// the scene; handlers and websocket clients talk to it through its job queue.
package web

import (
	_ "embed"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"linkage-renderer/internal/control"
	"linkage-renderer/internal/export"
	"linkage-renderer/internal/input"
	"linkage-renderer/internal/scene"
	"linkage-renderer/internal/texture"
)

//go:embed index.html
var indexHTML []byte

const maxScript = 64 << 10

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Server holds the routes for one session.
type Server struct {
	session *Session
	hub     *Hub
	router  *mux.Router
}

// NewServer builds the router.
func NewServer(s *Session, hub *Hub) *Server {
	srv := &Server{session: s, hub: hub, router: mux.NewRouter()}

	r := srv.router
	r.HandleFunc("/", srv.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/frame.{format:webp|png|tga}", srv.handleFrame).Methods(http.MethodGet)
	r.HandleFunc("/model.{ext:glb|gltf}", srv.handleModel).Methods(http.MethodGet)
	r.HandleFunc("/state", srv.handleState).Methods(http.MethodGet)
	r.HandleFunc("/select/{name}", srv.handleSelect).Methods(http.MethodPost)
	r.HandleFunc("/key/{key}", srv.handleKey).Methods(http.MethodPost)
	r.HandleFunc("/drag", srv.handleDrag).Methods(http.MethodPost)
	r.HandleFunc("/scroll", srv.handleScroll).Methods(http.MethodPost)
	r.HandleFunc("/pose/{index:-?[0-9]+}", srv.handlePose).Methods(http.MethodPost)
	r.HandleFunc("/backdrop/{name}", srv.handleBackdrop).Methods(http.MethodPost)
	r.HandleFunc("/script", srv.handleScript).Methods(http.MethodPost)
	r.HandleFunc("/ws", srv.handleWS)
	return srv
}

// Handler wraps the router with panic recovery and access logging.
func (srv *Server) Handler() http.Handler {
	h := handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(srv.router)
	return handlers.LoggingHandler(os.Stdout, h)
}

// ListenAndServe serves on addr until the listener fails.
func (srv *Server) ListenAndServe(addr string) error {
	log.Printf("[web] Starting server %v", addr)
	return http.ListenAndServe(addr, srv.Handler())
}

func (srv *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	writeResult(w, indexHTML)
}

func (srv *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	f := export.Format(mux.Vars(r)["format"])
	data, err := srv.session.Frame(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	writeResult(w, data)
}

func (srv *Server) handleModel(w http.ResponseWriter, r *http.Request) {
	ext := mux.Vars(r)["ext"]
	data, err := srv.session.Model(r.Context(), ext == "glb")
	if err != nil {
		writeError(w, err)
		return
	}
	if ext == "glb" {
		w.Header().Set("Content-Type", "model/gltf-binary")
	} else {
		w.Header().Set("Content-Type", "model/gltf+json")
	}
	w.Header().Set("Content-Disposition", "attachment; filename=\"crab."+ext+"\"")
	writeResult(w, data)
}

func (srv *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	st, err := srv.session.Select(r.Context(), mux.Vars(r)["name"])
	writeState(w, st, err)
}

func (srv *Server) handleBackdrop(w http.ResponseWriter, r *http.Request) {
	st, err := srv.session.SetBackdrop(r.Context(), mux.Vars(r)["name"])
	writeState(w, st, err)
}

func (srv *Server) handleState(w http.ResponseWriter, r *http.Request) {
	st, err := srv.session.State(r.Context())
	writeState(w, st, err)
}

func (srv *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	key, err := input.ParseKey(mux.Vars(r)["key"])
	if err != nil {
		writeError(w, err)
		return
	}
	st, err := srv.session.Play(r.Context(), input.Key(key))
	writeState(w, st, err)
}

func (srv *Server) handleDrag(w http.ResponseWriter, r *http.Request) {
	dx, err := queryFloat(r, "dx")
	var dy float64
	if err == nil {
		dy, err = queryFloat(r, "dy")
	}
	if err != nil {
		writeError(w, err)
		return
	}
	ev := input.Drag(dx, dy)
	if r.URL.Query().Get("button") == "middle" {
		ev.Button = input.ButtonMiddle
	}
	st, err := srv.session.Play(r.Context(), ev)
	writeState(w, st, err)
}

func (srv *Server) handleScroll(w http.ResponseWriter, r *http.Request) {
	dy, err := queryFloat(r, "dy")
	if err != nil {
		writeError(w, err)
		return
	}
	st, err := srv.session.Play(r.Context(), input.Event{Kind: input.Scroll, DY: dy})
	writeState(w, st, err)
}

func (srv *Server) handlePose(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		writeError(w, errors.Wrap(err, "pose index"))
		return
	}
	st, err := srv.session.ApplyPose(r.Context(), index)
	writeState(w, st, err)
}

func (srv *Server) handleScript(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxScript))
	if err != nil {
		writeError(w, errors.Wrap(err, "read script"))
		return
	}
	events, err := input.ParseScript(string(body))
	if err != nil {
		writeError(w, err)
		return
	}
	st, err := srv.session.Play(r.Context(), events...)
	writeState(w, st, err)
}

// handleWS pushes updates to the client and plays any text message it sends
// as an input script.
func (srv *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[web] ws upgrade error: %v", err)
		return
	}
	c := srv.hub.register(conn)
	defer srv.hub.unregister(c)

	ctx := r.Context()
	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if kind != websocket.TextMessage {
			continue
		}
		events, err := input.ParseScript(string(data))
		if err == nil {
			_, err = srv.session.Play(ctx, events...)
		}
		if err != nil {
			log.Printf("[web] ws script %q: %v", data, err)
		}
	}
}

func queryFloat(r *http.Request, key string) (float64, error) {
	v, err := input.ParseFinite(r.URL.Query().Get(key))
	return v, errors.Wrapf(err, "query %s", key)
}

func writeState(w http.ResponseWriter, st control.State, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	writeResult(w, data)
}

func writeResult(w http.ResponseWriter, data []byte) {
	if _, err := w.Write(data); err != nil {
		log.Printf("[web] Error when writing response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := http.StatusBadRequest
	switch {
	case errors.Is(err, input.ErrUnboundKey), errors.Is(err, scene.ErrUnknownComponent),
		errors.Is(err, texture.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, ErrClosed):
		code = http.StatusServiceUnavailable
	}
	log.Printf("[web] HERR %d: %v", code, err)
	writeJSON(w, code, struct {
		Error string `json:"error"`
	}{err.Error()})
}
