package oss

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildObjectKey(t *testing.T) {
	now := time.Date(2025, 3, 9, 10, 4, 5, 0, time.UTC)
	key := BuildObjectKey("/churches/abc/documents/", "Estudo Bíblico.PDF", now)

	assert.True(t, strings.HasPrefix(key, "churches/abc/documents/estudo-biblico_20250309_100405_"), key)
	assert.True(t, strings.HasSuffix(key, ".pdf"), key)
}

func TestChurchDir(t *testing.T) {
	id := uuid.MustParse("7d7f5c6e-1b7a-4ad0-9c53-2f1b1d7a9e10")
	assert.Equal(t, "churches/7d7f5c6e-1b7a-4ad0-9c53-2f1b1d7a9e10/logo", ChurchDir(id, "/logo/"))
}

func TestKeyFromPublicURL(t *testing.T) {
	key, err := KeyFromPublicURL("https://cdn.example.com/churches/a/logo/x.webp", "https://cdn.example.com/")
	require.NoError(t, err)
	assert.Equal(t, "churches/a/logo/x.webp", key)

	key, err = KeyFromPublicURL("https://bucket.oss-ap-southeast-5.aliyuncs.com/churches/a/x.webp", "")
	require.NoError(t, err)
	assert.Equal(t, "churches/a/x.webp", key)

	_, err = KeyFromPublicURL("", "")
	assert.Error(t, err)
}

func TestPublicURL(t *testing.T) {
	s := &OSSService{Endpoint: "https://oss-ap-southeast-5.aliyuncs.com", BucketName: "ecclesia"}
	assert.Equal(t, "https://ecclesia.oss-ap-southeast-5.aliyuncs.com/k.webp", s.PublicURL("k.webp"))

	s.PublicBase = "https://cdn.example.com"
	assert.Equal(t, "https://cdn.example.com/k.webp", s.PublicURL("k.webp"))
	assert.Equal(t, "", s.PublicURL(""))
}

func TestConvertToWebPDownscales(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1200, 600))
	for x := 0; x < 1200; x++ {
		src.Set(x, x%600, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	out, err := ConvertToWebP(&buf, "wide.png", WebPOptions{MaxW: 300, MaxH: 300, Quality: 70})
	require.NoError(t, err)

	img, err := webp.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.Equal(t, 150, img.Bounds().Dy())
}

func TestConvertToWebPRejectsUnknownFormat(t *testing.T) {
	_, err := ConvertToWebP(strings.NewReader("plain text, not an image"), "notes.txt", PhotoOptions)
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}
