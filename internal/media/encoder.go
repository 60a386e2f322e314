package media

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"photomotion/internal/domain"
)

// EncodedImage is a transport-safe image payload: raw base64 without any
// data-URI envelope, plus the sniffed content type.
type EncodedImage struct {
	Data     string
	MIMEType string
}

// Encode reads an image and returns its base64 payload and MIME type. The
// type is sniffed from the leading bytes, so the caller does not need to
// trust file extensions.
func Encode(r io.Reader) (*EncodedImage, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRead, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty image", domain.ErrRead)
	}
	return &EncodedImage{
		Data:     base64.StdEncoding.EncodeToString(raw),
		MIMEType: http.DetectContentType(raw),
	}, nil
}

// EncodeFile encodes the image at path.
func EncodeFile(path string) (*EncodedImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRead, err)
	}
	defer f.Close()
	return Encode(f)
}

// ParseDataURI accepts a browser-style data URI ("data:image/png;base64,...")
// or a bare base64 string and returns the payload with the envelope stripped.
func ParseDataURI(s string) (*EncodedImage, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty payload", domain.ErrRead)
	}
	if !strings.HasPrefix(s, "data:") {
		if _, err := base64.StdEncoding.DecodeString(s); err != nil {
			return nil, fmt.Errorf("%w: invalid base64 payload", domain.ErrRead)
		}
		return &EncodedImage{Data: s, MIMEType: "application/octet-stream"}, nil
	}
	meta, payload, ok := strings.Cut(s[len("data:"):], ",")
	if !ok {
		return nil, fmt.Errorf("%w: malformed data uri", domain.ErrRead)
	}
	mime := strings.TrimSuffix(meta, ";base64")
	if mime == meta {
		return nil, fmt.Errorf("%w: data uri is not base64 encoded", domain.ErrRead)
	}
	if mime == "" {
		mime = "application/octet-stream"
	}
	if _, err := base64.StdEncoding.DecodeString(payload); err != nil {
		return nil, fmt.Errorf("%w: invalid base64 payload", domain.ErrRead)
	}
	return &EncodedImage{Data: payload, MIMEType: mime}, nil
}
