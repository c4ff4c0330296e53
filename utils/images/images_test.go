package images

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"
)

func testImage(t *testing.T, w, h int) image.Image {
	t.Helper()
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

func TestDecodeFormats(t *testing.T) {
	src := testImage(t, 6, 4)

	t.Run("png", func(t *testing.T) {
		var buf bytes.Buffer
		if err := png.Encode(&buf, src); err != nil {
			t.Fatal(err)
		}
		_, format, err := Decode(buf.Bytes())
		if err != nil {
			t.Fatal(err)
		}
		if format != "png" {
			t.Errorf("format = %q, want png", format)
		}
	})

	t.Run("bmp", func(t *testing.T) {
		var buf bytes.Buffer
		if err := bmp.Encode(&buf, src); err != nil {
			t.Fatal(err)
		}
		img, format, err := Decode(buf.Bytes())
		if err != nil {
			t.Fatal(err)
		}
		if format != "bmp" {
			t.Errorf("format = %q, want bmp", format)
		}
		if img.Bounds().Dx() != 6 {
			t.Errorf("unexpected width: %d", img.Bounds().Dx())
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, _, err := Decode([]byte("not an image")); err == nil {
			t.Error("expected decode error")
		}
	})
}

func TestFitHeight(t *testing.T) {
	src := testImage(t, 100, 200)

	t.Run("downscale", func(t *testing.T) {
		out := FitHeight(src, 50)
		if out.Bounds().Dy() != 50 {
			t.Errorf("height = %d, want 50", out.Bounds().Dy())
		}
		if out.Bounds().Dx() != 25 {
			t.Errorf("width = %d, aspect ratio not preserved", out.Bounds().Dx())
		}
	})

	t.Run("already fits", func(t *testing.T) {
		if out := FitHeight(src, 200); out != src {
			t.Error("image at target height should be returned as is")
		}
	})

	t.Run("no height", func(t *testing.T) {
		if out := FitHeight(src, 0); out != src {
			t.Error("zero height should be a no-op")
		}
	})

	t.Run("nil image", func(t *testing.T) {
		if out := FitHeight(nil, 100); out != nil {
			t.Error("nil image should pass through")
		}
	})
}

func TestEnsureJFIFAPP0(t *testing.T) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, testImage(t, 4, 4), nil); err != nil {
		t.Fatal(err)
	}

	out, changed, err := EnsureJFIFAPP0(buf.Bytes(), DpiPxPerInch, 300, 300)
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Fatal("expected APP0 segment to be inserted")
	}

	// still a valid jpeg
	if _, err := jpeg.Decode(bytes.NewReader(out)); err != nil {
		t.Fatalf("patched jpeg does not decode: %v", err)
	}

	// second pass finds the segment and leaves data alone
	again, changed, err := EnsureJFIFAPP0(out, DpiPxPerInch, 300, 300)
	if err != nil {
		t.Fatal(err)
	}
	if changed {
		t.Error("second pass must not modify data")
	}
	if !bytes.Equal(again, out) {
		t.Error("second pass changed bytes")
	}
}

func TestEnsureJFIFAPP0Errors(t *testing.T) {
	if _, _, err := EnsureJFIFAPP0([]byte{0xFF}, DpiPxPerInch, 72, 72); err == nil {
		t.Error("expected error for truncated data")
	}
	if _, _, err := EnsureJFIFAPP0([]byte("PNG data here"), DpiPxPerInch, 72, 72); err == nil {
		t.Error("expected error for non-jpeg data")
	}
}

func TestEncodeJPEGWithDPI(t *testing.T) {
	data, err := EncodeJPEGWithDPI(testImage(t, 8, 8), 85, 300)
	if err != nil {
		t.Fatal(err)
	}

	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 8 {
		t.Errorf("unexpected width: %d", img.Bounds().Dx())
	}

	// APP0 right after SOI
	if data[2] != 0xFF || data[3] != 0xE0 {
		t.Error("expected APP0 marker after SOI")
	}
}

func TestRasterizeSVGToImage(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 200"><rect x="10" y="10" width="80" height="180" fill="#000"/></svg>`)

	t.Run("intrinsic size", func(t *testing.T) {
		img, err := RasterizeSVGToImage(svg, 0, 0)
		if err != nil {
			t.Fatal(err)
		}
		if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 200 {
			t.Errorf("unexpected size: %v", b)
		}
	})

	t.Run("scale by height", func(t *testing.T) {
		img, err := RasterizeSVGToImage(svg, 0, 400)
		if err != nil {
			t.Fatal(err)
		}
		if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 400 {
			t.Errorf("aspect ratio not preserved: %v", b)
		}
	})

	t.Run("fit into box", func(t *testing.T) {
		img, err := RasterizeSVGToImage(svg, 100, 100)
		if err != nil {
			t.Fatal(err)
		}
		if b := img.Bounds(); b.Dx() != 50 || b.Dy() != 100 {
			t.Errorf("unexpected fit: %v", b)
		}
	})

	t.Run("invalid svg", func(t *testing.T) {
		if _, err := RasterizeSVGToImage([]byte("<not svg"), 0, 0); err == nil {
			t.Error("expected error for invalid svg")
		}
	})
}
