package api

import (
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matt-g-everett/ledgif/player"
	"github.com/matt-g-everett/ledgif/source"
)

// newTestApi returns an Api over a 2×2 animation with one opaque red
// frame, serving an index page from a temporary directory.
func newTestApi(t *testing.T) *Api {
	t.Helper()
	p, err := player.New(&source.Animation{
		Width:  2,
		Height: 2,
		Frames: []source.Frame{{
			Width:  2,
			Height: 2,
			Pix: []uint8{
				255, 0, 0, 255, 255, 0, 0, 255,
				255, 0, 0, 255, 255, 0, 0, 255,
			},
		}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dir := t.TempDir()
	err = os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>ledgif</html>"), 0o644)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return NewApi(p, dir)
}

func TestFrame(t *testing.T) {
	a := newTestApi(t)
	srv := httptest.NewServer(a.Handler())
	defer srv.Close()

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantBody   string
	}{
		{name: "valid", query: "width=1&height=2", wantStatus: http.StatusOK, wantBody: "[[[0,0,255,255]],[[0,0,255,255]]]\n"},
		{name: "zero_width", query: "width=0&height=2", wantStatus: http.StatusOK, wantBody: "[]\n"},
		{name: "missing", query: "width=1", wantStatus: http.StatusBadRequest},
		{name: "not_number", query: "width=one&height=1", wantStatus: http.StatusBadRequest},
		{name: "negative", query: "width=-1&height=1", wantStatus: http.StatusBadRequest},
		{name: "too_wide", query: "width=3000&height=1", wantStatus: http.StatusBadRequest},
		{name: "too_tall", query: "width=1&height=1025", wantStatus: http.StatusBadRequest},
		{name: "largest", query: "width=1024&height=1", wantStatus: http.StatusOK},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			resp, err := http.Get(srv.URL + "/frame?" + test.query)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != test.wantStatus {
				t.Fatalf("unexpected status: got:%d want:%d", resp.StatusCode, test.wantStatus)
			}
			if test.wantBody == "" {
				return
			}
			body, err := io.ReadAll(resp.Body)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := string(body); got != test.wantBody {
				t.Errorf("unexpected body:\n--- want:\n+++ got:\n%s", cmp.Diff(test.wantBody, got))
			}
		})
	}
}

func TestFrameMethod(t *testing.T) {
	a := newTestApi(t)
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/frame?width=1&height=1", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("unexpected status: got:%d want:%d", rec.Code, http.StatusMethodNotAllowed)
	}
}

func TestPreview(t *testing.T) {
	a := newTestApi(t)
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/preview.png?width=2&height=1&scale=3", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got:%d want:%d body:%s", rec.Code, http.StatusOK, rec.Body)
	}
	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("unexpected error decoding preview: %v", err)
	}
	if got := img.Bounds().Size(); got.X != 6 || got.Y != 3 {
		t.Errorf("unexpected preview size: got:%v want:(6,3)", got)
	}
	r, g, b, alpha := img.At(5, 2).RGBA()
	if r>>8 != 255 || g != 0 || b != 0 || alpha>>8 != 255 {
		t.Errorf("unexpected preview colour: %d %d %d %d", r>>8, g>>8, b>>8, alpha>>8)
	}

	for _, query := range []string{"width=2&height=1&scale=0", "width=0&height=1", "width=100000&height=100000"} {
		rec := httptest.NewRecorder()
		a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/preview.png?"+query, nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("unexpected status for %q: got:%d want:%d", query, rec.Code, http.StatusBadRequest)
		}
	}
}

func TestStatic(t *testing.T) {
	a := newTestApi(t)
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got:%d want:%d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "ledgif") {
		t.Errorf("unexpected static body: %s", rec.Body)
	}
}
