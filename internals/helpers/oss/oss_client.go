package oss

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	alioss "github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/gofiber/fiber/v2"

	helper "ecclesia_backend/internals/helpers"
)

const maxUploadSize = int64(10 * 1024 * 1024)

var ErrStorageDisabled = errors.New("object storage is not configured")

// BlobStore is what controllers need from object storage.
type BlobStore interface {
	UploadImage(ctx context.Context, dir string, fh *multipart.FileHeader, opt WebPOptions) (publicURL string, err error)
	UploadFile(ctx context.Context, dir string, fh *multipart.FileHeader) (publicURL, objectKey, contentType string, err error)
	DeleteObject(ctx context.Context, key string) error
	DeleteByPublicURL(ctx context.Context, publicURL string) error
}

type Config struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	Bucket     string
	PublicBase string
}

/* =======================================================================
   OSS Service
======================================================================= */

type OSSService struct {
	Bucket     *alioss.Bucket
	Endpoint   string
	BucketName string
	PublicBase string
}

var _ BlobStore = (*OSSService)(nil)

func NewOSSService(cfg Config) (*OSSService, error) {
	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" || cfg.Bucket == "" {
		return nil, ErrStorageDisabled
	}
	client, err := alioss.New(cfg.Endpoint, cfg.AccessKey, cfg.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}
	bkt, err := client.Bucket(cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	if loc, err := client.GetBucketLocation(cfg.Bucket); err != nil {
		if se, ok := err.(alioss.ServiceError); ok && se.StatusCode == 403 {
			log.Printf("[OSS] warn: skip location check (bucket=%s): %s", cfg.Bucket, se.Code)
		} else {
			return nil, fmt.Errorf("verify bucket: %w", err)
		}
	} else {
		log.Printf("[OSS] bucket %s location: %s", cfg.Bucket, loc)
	}

	return &OSSService{
		Bucket:     bkt,
		Endpoint:   cfg.Endpoint,
		BucketName: cfg.Bucket,
		PublicBase: strings.TrimRight(cfg.PublicBase, "/"),
	}, nil
}

// UploadImage re-encodes an image to webp and stores it under dir.
func (s *OSSService) UploadImage(ctx context.Context, dir string, fh *multipart.FileHeader, opt WebPOptions) (string, error) {
	if fh == nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "file is required")
	}
	if fh.Size > maxUploadSize {
		return "", fiber.NewError(fiber.StatusRequestEntityTooLarge, "file too large")
	}
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer src.Close()

	data, err := ConvertToWebP(src, fh.Filename, opt)
	if err != nil {
		if errors.Is(err, ErrUnsupportedImage) {
			return "", fiber.NewError(fiber.StatusUnsupportedMediaType, err.Error())
		}
		return "", err
	}

	base := strings.TrimSuffix(fh.Filename, filepath.Ext(fh.Filename))
	key := BuildObjectKey(dir, base+".webp", time.Now())
	if err := s.put(ctx, key, bytes.NewReader(data), "image/webp", true); err != nil {
		return "", err
	}
	return s.PublicURL(key), nil
}

// UploadFile stores the file as-is under dir.
func (s *OSSService) UploadFile(ctx context.Context, dir string, fh *multipart.FileHeader) (string, string, string, error) {
	if fh == nil {
		return "", "", "", fiber.NewError(fiber.StatusBadRequest, "file is required")
	}
	if fh.Size > maxUploadSize {
		return "", "", "", fiber.NewError(fiber.StatusRequestEntityTooLarge, "file too large")
	}
	src, err := fh.Open()
	if err != nil {
		return "", "", "", fmt.Errorf("open file: %w", err)
	}
	defer src.Close()

	ct, reader, err := detectContentType(src, fh.Filename)
	if err != nil {
		return "", "", "", err
	}
	key := BuildObjectKey(dir, fh.Filename, time.Now())
	if err := s.put(ctx, key, reader, ct, false); err != nil {
		return "", "", "", err
	}
	return s.PublicURL(key), key, ct, nil
}

func (s *OSSService) put(ctx context.Context, key string, r io.Reader, contentType string, inline bool) error {
	disposition := "attachment"
	if inline {
		disposition = "inline"
	}
	return s.Bucket.PutObject(key, r,
		alioss.WithContext(ctx),
		alioss.ContentType(contentType),
		alioss.ContentDisposition(disposition),
		alioss.CacheControl("public, max-age=31536000, immutable"),
	)
}

func (s *OSSService) DeleteObject(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	return s.Bucket.DeleteObject(key, alioss.WithContext(ctx))
}

func (s *OSSService) DeleteByPublicURL(ctx context.Context, publicURL string) error {
	key, err := KeyFromPublicURL(publicURL, s.PublicBase)
	if err != nil {
		return err
	}
	return s.DeleteObject(ctx, key)
}

/* =======================================================================
   Public URL & Key utils
======================================================================= */

func (s *OSSService) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	if s.PublicBase != "" {
		return s.PublicBase + "/" + key
	}
	end := strings.TrimPrefix(strings.TrimPrefix(s.Endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.BucketName, end, key)
}

// KeyFromPublicURL strips the public base (or scheme + host) from a URL.
func KeyFromPublicURL(publicURL, publicBase string) (string, error) {
	if strings.TrimSpace(publicURL) == "" {
		return "", fmt.Errorf("empty url")
	}
	if publicBase != "" {
		base := strings.TrimRight(publicBase, "/") + "/"
		if strings.HasPrefix(publicURL, base) {
			return strings.TrimPrefix(publicURL, base), nil
		}
	}
	u := publicURL
	if i := strings.Index(u, "://"); i >= 0 {
		u = u[i+3:]
	}
	if i := strings.Index(u, "/"); i >= 0 && i+1 < len(u) {
		return u[i+1:], nil
	}
	return "", fmt.Errorf("cannot extract key from url: %s", publicURL)
}

// BuildObjectKey: <dir>/<slug>_<yyyymmdd_hhmmss>_<rand6><ext>
func BuildObjectKey(dir, filename string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(filename))
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	slug := helper.Slugify(base, 60)
	if slug == "" {
		slug = "file"
	}
	name := fmt.Sprintf("%s_%s_%s%s", slug, now.Format("20060102_150405"), randHex(3), ext)

	dir = strings.Trim(dir, "/")
	if dir == "" {
		return name
	}
	return dir + "/" + name
}

// ChurchDir: churches/<church_id>/<slot>
func ChurchDir(churchID fmt.Stringer, slot string) string {
	return "churches/" + churchID.String() + "/" + strings.Trim(slot, "/")
}

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func detectContentType(src multipart.File, filename string) (string, io.Reader, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	ct := mime.TypeByExtension(ext)

	head := make([]byte, 512)
	n, _ := io.ReadFull(io.LimitReader(src, 512), head)
	if n > 0 && (ct == "" || ct == "application/octet-stream") {
		ct = http.DetectContentType(head[:n])
	}
	if ct == "" {
		ct = "application/octet-stream"
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", nil, fmt.Errorf("rewind file: %w", err)
	}
	return ct, src, nil
}

/* =======================================================================
   Multipart helpers
======================================================================= */

func IsMultipart(c *fiber.Ctx) bool {
	ct := strings.ToLower(strings.TrimSpace(c.Get(fiber.HeaderContentType)))
	return strings.HasPrefix(ct, "multipart/form-data")
}

// GetFormFile returns the first file found under fieldNames, or (nil, nil).
func GetFormFile(c *fiber.Ctx, fieldNames ...string) (*multipart.FileHeader, error) {
	if !IsMultipart(c) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "use multipart/form-data")
	}
	if len(fieldNames) == 0 {
		fieldNames = []string{"file", "image", "photo", "logo"}
	}
	for _, fn := range fieldNames {
		if fh, err := c.FormFile(fn); err == nil && fh != nil {
			return fh, nil
		}
	}
	return nil, nil
}

// DisabledStore is used when OSS credentials are missing; every call fails
// with 503 so uploads are refused instead of silently dropped.
type DisabledStore struct{}

var _ BlobStore = DisabledStore{}

func (DisabledStore) UploadImage(context.Context, string, *multipart.FileHeader, WebPOptions) (string, error) {
	return "", fiber.NewError(fiber.StatusServiceUnavailable, ErrStorageDisabled.Error())
}

func (DisabledStore) UploadFile(context.Context, string, *multipart.FileHeader) (string, string, string, error) {
	return "", "", "", fiber.NewError(fiber.StatusServiceUnavailable, ErrStorageDisabled.Error())
}

func (DisabledStore) DeleteObject(context.Context, string) error { return nil }

func (DisabledStore) DeleteByPublicURL(context.Context, string) error { return nil }

// NewBlobStore returns an OSS-backed store, or DisabledStore when not configured.
func NewBlobStore(cfg Config) BlobStore {
	svc, err := NewOSSService(cfg)
	if err != nil {
		if !errors.Is(err, ErrStorageDisabled) {
			log.Printf("[ERROR] OSS init: %v", err)
		} else {
			log.Println("[WARN] OSS not configured, uploads disabled")
		}
		return DisabledStore{}
	}
	return svc
}
