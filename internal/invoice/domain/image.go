package domain

import (
	"encoding/base64"
	"errors"
	"strings"
)

var ErrMalformedImage = errors.New("malformed_image")

// ImageAttachment is a self-describing raster image blob: raw bytes
// plus the declared MIME subtype ("png", "jpeg", ...). The format is
// declared by the uploader, not verified here; consumers that cannot
// handle the declared format skip the image.
type ImageAttachment struct {
	Format string `json:"format"`
	Data   []byte `json:"data"`
}

// ParseDataURL decodes a data:image/...;base64 payload, the form in
// which browser file readers hand images over.
func ParseDataURL(s string) (*ImageAttachment, error) {
	const prefix = "data:image/"
	if !strings.HasPrefix(s, prefix) {
		return nil, ErrMalformedImage
	}
	rest := s[len(prefix):]
	sep := strings.Index(rest, ";base64,")
	if sep < 0 {
		return nil, ErrMalformedImage
	}
	format := strings.ToLower(rest[:sep])
	if format == "" {
		return nil, ErrMalformedImage
	}
	data, err := base64.StdEncoding.DecodeString(rest[sep+len(";base64,"):])
	if err != nil || len(data) == 0 {
		return nil, ErrMalformedImage
	}
	return &ImageAttachment{Format: format, Data: data}, nil
}

// DataURL re-encodes the attachment for embedding into HTML previews.
func (a *ImageAttachment) DataURL() string {
	if a == nil || len(a.Data) == 0 {
		return ""
	}
	return "data:image/" + a.Format + ";base64," + base64.StdEncoding.EncodeToString(a.Data)
}
