// Package api serves rendered frames over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/image/draw"

	"github.com/matt-g-everett/ledgif/player"
	"github.com/matt-g-everett/ledgif/stream"
)

// DefaultPreviewScale is the number of preview pixels per matrix pixel
// when no scale is requested.
const DefaultPreviewScale = 8

// MaxDimension is the largest width or height that can be requested.
const MaxDimension = 1024

type Api struct {
	animation stream.Animation
	static    string
}

// NewApi returns an Api rendering animation and serving static files
// from the static directory.
func NewApi(animation stream.Animation, static string) *Api {
	a := new(Api)
	a.animation = animation
	a.static = static
	return a
}

// Handler returns the HTTP handler for the api.
func (a *Api) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/frame", a.handleFrame)
	mux.HandleFunc("/preview.png", a.handlePreview)
	mux.Handle("/", http.FileServer(http.Dir(a.static)))
	return mux
}

// Serve listens on addr until ctx is done.
func (a *Api) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("Listening on %s...", addr)
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// render renders the animation at the size given in the request's query.
func (a *Api) render(w http.ResponseWriter, r *http.Request) (player.Matrix, bool) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return nil, false
	}
	width, height, err := player.Dimensions(player.QueryLookup(r.URL.Query()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	if width > MaxDimension || height > MaxDimension {
		http.Error(w, fmt.Sprintf("size %dx%d larger than %dx%d", width, height, MaxDimension, MaxDimension), http.StatusBadRequest)
		return nil, false
	}
	m, err := a.animation.Render(width, height)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, player.ErrInvalidDimension) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return nil, false
	}
	return m, true
}

func (a *Api) handleFrame(w http.ResponseWriter, r *http.Request) {
	m, ok := a.render(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(m)
	if err != nil {
		log.Printf("write frame: %v", err)
	}
}

func (a *Api) handlePreview(w http.ResponseWriter, r *http.Request) {
	scale := DefaultPreviewScale
	if s := r.URL.Query().Get("scale"); s != "" {
		var err error
		scale, err = strconv.Atoi(s)
		if err != nil || scale < 1 || scale > 64 {
			http.Error(w, "invalid scale: "+s, http.StatusBadRequest)
			return
		}
	}
	m, ok := a.render(w, r)
	if !ok {
		return
	}
	if m.Width() == 0 || m.Height() == 0 {
		http.Error(w, "empty preview", http.StatusBadRequest)
		return
	}

	src := m.Image()
	dst := image.NewNRGBA(image.Rect(0, 0, m.Width()*scale, m.Height()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	w.Header().Set("Content-Type", "image/png")
	err := png.Encode(w, dst)
	if err != nil {
		log.Printf("write preview: %v", err)
	}
}
