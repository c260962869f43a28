package oss

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

var ErrUnsupportedImage = fmt.Errorf("unsupported image format (use jpg/png/webp)")

type WebPOptions struct {
	MaxW    int
	MaxH    int
	Quality float32
}

var (
	// PhotoOptions: member photos and kid photos.
	PhotoOptions = WebPOptions{MaxW: 800, MaxH: 800, Quality: 80}
	// LogoOptions: church logos.
	LogoOptions = WebPOptions{MaxW: 512, MaxH: 512, Quality: 85}
)

/* =======================================================================
   Decode (jpeg/png/webp) with MIME sniffing, falling back to extension
======================================================================= */

func decodeImage(all []byte, filename string) (image.Image, error) {
	if len(all) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	head := all
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)

	kind := ""
	switch {
	case strings.Contains(ct, "jpeg"):
		kind = "jpeg"
	case strings.Contains(ct, "png"):
		kind = "png"
	case strings.Contains(ct, "webp"):
		kind = "webp"
	default:
		switch strings.ToLower(filepath.Ext(filename)) {
		case ".jpg", ".jpeg":
			kind = "jpeg"
		case ".png":
			kind = "png"
		case ".webp":
			kind = "webp"
		}
	}

	r := bytes.NewReader(all)
	switch kind {
	case "jpeg":
		return jpeg.Decode(r)
	case "png":
		return png.Decode(r)
	case "webp":
		return webp.Decode(r)
	}
	return nil, ErrUnsupportedImage
}

// ConvertToWebP decodes src, fits it inside MaxW x MaxH (keeping aspect) and
// re-encodes it as lossy webp.
func ConvertToWebP(src io.Reader, filename string, opt WebPOptions) ([]byte, error) {
	all, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	img, err := decodeImage(all, filename)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	if (opt.MaxW > 0 && b.Dx() > opt.MaxW) || (opt.MaxH > 0 && b.Dy() > opt.MaxH) {
		maxW, maxH := opt.MaxW, opt.MaxH
		if maxW <= 0 {
			maxW = b.Dx()
		}
		if maxH <= 0 {
			maxH = b.Dy()
		}
		img = imaging.Fit(img, maxW, maxH, imaging.Lanczos)
	}

	q := opt.Quality
	if q <= 0 {
		q = 80
	}
	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: q}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}
