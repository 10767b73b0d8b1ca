package res

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"golang.org/x/image/bmp"
)

const logoSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 164 88">
<rect x="0" y="0" width="164" height="88" fill="#144176"/>
<circle cx="40" cy="44" r="30" fill="#f97415"/>
</svg>`

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func encode(t *testing.T, img image.Image, withBMP bool) []byte {
	t.Helper()
	var buf bytes.Buffer
	var err error
	if withBMP {
		err = bmp.Encode(&buf, img)
	} else {
		err = png.Encode(&buf, img)
	}
	if err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		res        *Resource
		maxWidth   int
		wantFormat string
		wantWidth  int
		wantHeight int
	}{
		{
			name:       "opaque bmp becomes jpeg",
			res:        &Resource{URL: "a.bmp", Data: encode(t, solid(40, 20, color.NRGBA{R: 200, A: 255}), true)},
			wantFormat: "jpeg", wantWidth: 40, wantHeight: 20,
		},
		{
			name:       "transparent png stays png",
			res:        &Resource{URL: "b.png", Data: encode(t, solid(30, 30, color.NRGBA{B: 200, A: 100}), false)},
			wantFormat: "png", wantWidth: 30, wantHeight: 30,
		},
		{
			name:       "wide photo is scaled down",
			res:        &Resource{URL: "c.png", Data: encode(t, solid(400, 100, color.NRGBA{G: 200, A: 255}), false)},
			maxWidth:   200,
			wantFormat: "jpeg", wantWidth: 200, wantHeight: 50,
		},
		{
			name:       "svg is rasterised",
			res:        &Resource{URL: "logo.svg", Data: []byte(logoSVG), MimeType: "image/svg+xml"},
			maxWidth:   328,
			wantFormat: "png", wantWidth: 328, wantHeight: 176,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Normalize(tt.res, tt.maxWidth)
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}
			cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
			if err != nil {
				t.Fatalf("output does not decode: %v", err)
			}
			if format != tt.wantFormat || cfg.Width != tt.wantWidth || cfg.Height != tt.wantHeight {
				t.Errorf("Normalize() = %s %dx%d, want %s %dx%d",
					format, cfg.Width, cfg.Height, tt.wantFormat, tt.wantWidth, tt.wantHeight)
			}
		})
	}
}

// withSize rewrites the IHDR chunk of a PNG so that it declares w x h
// pixels without carrying them
func withSize(data []byte, w, h uint32) []byte {
	out := append([]byte(nil), data...)
	// 8-byte signature, 4-byte length, then "IHDR" and its 13 data bytes
	binary.BigEndian.PutUint32(out[16:], w)
	binary.BigEndian.PutUint32(out[20:], h)
	binary.BigEndian.PutUint32(out[29:], crc32.ChecksumIEEE(out[12:29]))
	return out
}

func TestNormalizeRejectsHugeImages(t *testing.T) {
	small := encode(t, solid(4, 4, color.NRGBA{R: 10, A: 255}), false)
	huge := withSize(small, 20000, 20000)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(huge))
	if err != nil || cfg.Width != 20000 {
		t.Fatalf("forged header does not decode: %v", err)
	}
	_, err = Normalize(&Resource{URL: "huge.png", Data: huge}, 0)
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("Normalize() error = %v, want ErrTooLarge", err)
	}
}

func TestNormalizeRejectsGarbage(t *testing.T) {
	if _, err := Normalize(&Resource{URL: "x", Data: []byte("<html>error</html>")}, 0); err == nil {
		t.Error("Normalize() of HTML returned no error")
	}
}

func TestSVGSniffing(t *testing.T) {
	tests := []struct {
		res  Resource
		want bool
	}{
		{Resource{MimeType: "image/svg+xml"}, true},
		{Resource{Data: []byte("  <svg viewBox='0 0 1 1'/>")}, true},
		{Resource{Data: []byte(`<?xml version="1.0"?><svg/>`)}, true},
		{Resource{Data: []byte("\x89PNG")}, false},
		{Resource{}, false},
	}
	for _, tt := range tests {
		if got := tt.res.IsSVG(); got != tt.want {
			t.Errorf("IsSVG(%q, %q) = %v, want %v", tt.res.MimeType, tt.res.Data, got, tt.want)
		}
	}
}

func TestImagesFetchCaches(t *testing.T) {
	var hits atomic.Int32
	photo := encode(t, solid(10, 10, color.NRGBA{R: 10, G: 20, B: 30, A: 255}), false)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if strings.HasSuffix(r.URL.Path, "/bad") {
			w.Write([]byte("not an image"))
			return
		}
		w.Write(photo)
	}))
	defer srv.Close()

	imgs := NewImages(NewLoader(""), 0)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		data, err := imgs.Fetch(ctx, srv.URL+"/p.png")
		if err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}
		if !bytes.HasPrefix(data, []byte{0xff, 0xd8}) {
			t.Fatalf("Fetch() did not return a JPEG")
		}
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server hit %d times, want 1", got)
	}
	if _, err := imgs.Fetch(ctx, srv.URL+"/bad"); err == nil {
		t.Error("Fetch() of a non-image returned no error")
	}
}
