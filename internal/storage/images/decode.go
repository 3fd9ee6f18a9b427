package images

import (
	"encoding/base64"
	"mime"
	"strings"
	"unicode"

	"github.com/stockhaus/stockhaus-backend/internal/apperr"
)

const defaultContentType = "image/jpeg"

// extensions maps the accepted upload types to their object key extension.
var extensions = map[string]string{
	"image/jpeg": "jpeg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

var (
	errEmptyImage  = apperr.ValidationFields("Invalid image", map[string]string{"imageBase64": "required"})
	errBadEncoding = apperr.ValidationFields("Invalid image", map[string]string{"imageBase64": "invalid base64"})
	errNotAnImage  = apperr.ValidationFields("Invalid image", map[string]string{"imageBase64": "unsupported content type"})
	errBadDataURI  = apperr.ValidationFields("Invalid image", map[string]string{"imageBase64": "malformed data uri"})
)

// Image is a decoded upload.
type Image struct {
	Data        []byte
	ContentType string
}

// Ext is the fixed file extension for the image's content type.
func (img Image) Ext() string {
	if ext, ok := extensions[img.ContentType]; ok {
		return ext
	}
	return "jpeg"
}

// Decode accepts "data:<mime>;base64,<data>" or bare base64, which is taken
// to be a JPEG. Only jpeg, png, webp and gif are accepted; media type
// parameters are dropped.
func Decode(payload string) (*Image, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, errEmptyImage
	}

	contentType := defaultContentType
	data := payload
	if strings.HasPrefix(payload, "data:") {
		meta, rest, ok := strings.Cut(payload[len("data:"):], ",")
		if !ok || !strings.HasSuffix(meta, ";base64") {
			return nil, errBadDataURI
		}
		mediaType, _, err := mime.ParseMediaType(strings.TrimSuffix(meta, ";base64"))
		if err != nil {
			return nil, errNotAnImage
		}
		contentType = mediaType
		data = rest
	}

	if _, ok := extensions[contentType]; !ok {
		return nil, errNotAnImage
	}

	raw, err := decodeBase64(stripSpace(data))
	if err != nil {
		return nil, errBadEncoding
	}
	if len(raw) == 0 {
		return nil, errEmptyImage
	}
	return &Image{Data: raw, ContentType: contentType}, nil
}

func decodeBase64(s string) ([]byte, error) {
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
