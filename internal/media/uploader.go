// Package media uploads note attachments to the upload proxy.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrNoLocation is returned when the proxy accepted a file without telling
// where it is stored.
var ErrNoLocation = errors.New("upload response has no Location header")

type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
	KindAudio Kind = "audio"
)

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindImage, KindVideo, KindAudio:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("invalid media kind %q, valid values are %q, %q or %q", s, KindImage, KindVideo, KindAudio)
	}
}

func (k Kind) extension() string {
	switch k {
	case KindImage:
		return "jpg"
	case KindAudio:
		return "mp3"
	default:
		return "mp4"
	}
}

// FileName is the name an upload is stored under, e.g. media-1711828800000.jpg.
func FileName(kind Kind, at time.Time) string {
	return "media-" + strconv.FormatInt(at.UnixMilli(), 10) + "." + kind.extension()
}

type Uploader struct {
	httpClient *resty.Client
	now        func() time.Time
}

// NewUploader returns an uploader for the proxy at baseURL, which is the
// prefix uploadFile is resolved against.
func NewUploader(baseURL string) *Uploader {
	return &Uploader{
		httpClient: resty.New().SetBaseURL(baseURL),
		now:        time.Now,
	}
}

// Upload posts r as the single file of a multipart form and returns the URL
// of the stored object. It is attempted once.
func (u *Uploader) Upload(ctx context.Context, kind Kind, r io.Reader) (string, error) {
	name := FileName(kind, u.now())
	res, err := u.httpClient.R().
		SetContext(ctx).
		SetMultipartField("file", name, kind.contentType(), r).
		Post("uploadFile")
	if err != nil {
		return "", fmt.Errorf("client.R.Post(uploadFile) > %w", err)
	}
	if res.IsError() {
		return "", fmt.Errorf("upload %s: status code: %d, body: %s", name, res.StatusCode(), res.String())
	}

	location := res.Header().Get("Location")
	if location == "" {
		return "", fmt.Errorf("upload %s: status code: %d > %w", name, res.StatusCode(), ErrNoLocation)
	}
	slog.Default().Debug("uploaded media",
		"name", name,
		"location", location,
	)
	return location, nil
}

func (k Kind) contentType() string {
	switch k {
	case KindImage:
		return "image/jpeg"
	case KindAudio:
		return "audio/mpeg"
	default:
		return "video/mp4"
	}
}
