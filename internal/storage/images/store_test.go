package images

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockhaus/stockhaus-backend/internal/apperr"
	"github.com/stockhaus/stockhaus-backend/internal/logging"
)

var pixel = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}

type fakeBackend struct {
	objects map[string][]byte
	types   map[string]string
	putErr  error
	delErr  error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeBackend) Put(_ context.Context, key string, r io.Reader, size int64, contentType string) error {
	if f.putErr != nil {
		return f.putErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if int64(len(b)) != size {
		return errors.New("size mismatch")
	}
	f.objects[key] = b
	f.types[key] = contentType
	return nil
}

func (f *fakeBackend) Delete(_ context.Context, key string) error {
	if f.delErr != nil {
		return f.delErr
	}
	delete(f.objects, key)
	return nil
}

func (f *fakeBackend) PublicURL(key string) string {
	return PublicURL("http://cdn.local/", "paintings", key)
}

func TestDecode(t *testing.T) {
	enc := base64.StdEncoding.EncodeToString(pixel)

	img, err := Decode("data:image/png;base64," + enc)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.ContentType)
	assert.Equal(t, "png", img.Ext())
	assert.Equal(t, pixel, img.Data)

	img, err = Decode(enc)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", img.ContentType)
	assert.Equal(t, "jpeg", img.Ext())

	// unpadded and wrapped payloads from some clients
	img, err = Decode(base64.RawStdEncoding.EncodeToString(pixel))
	require.NoError(t, err)
	assert.Equal(t, pixel, img.Data)
	img, err = Decode(enc[:4] + "\n" + enc[4:])
	require.NoError(t, err)
	assert.Equal(t, pixel, img.Data)

	// parameters never reach the stored content type
	img, err = Decode("data:Image/WEBP;name=a.webp;base64," + enc)
	require.NoError(t, err)
	assert.Equal(t, "image/webp", img.ContentType)
	assert.Equal(t, "webp", img.Ext())

	for name, payload := range map[string]string{
		"empty":           "  ",
		"not base64":      "@@@not-base64@@@",
		"not image":       "data:application/pdf;base64," + enc,
		"no encoding":     "data:image/png," + enc,
		"no payload":      "data:image/png;base64,",
		"svg":             "data:image/svg+xml;base64," + enc,
		"unknown subtype": "data:image/tiff;base64," + enc,
		"slash in type":   "data:image/x/../../../victim/proj/evil;base64," + enc,
		"dots in type":    "data:image/..;base64," + enc,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(payload)
			assert.True(t, apperr.IsKind(err, apperr.KindValidation), "got %v", err)
		})
	}
}

func TestStore_Store(t *testing.T) {
	backend := newFakeBackend()
	s := NewStore(backend, logging.Nop())
	s.newID = func() string { return "fixed" }

	img, err := s.Store(context.Background(), "u1", "p1", "data:image/png;base64,"+base64.StdEncoding.EncodeToString(pixel))
	require.NoError(t, err)
	assert.Equal(t, "u1/p1/fixed.png", img.Key)
	assert.Equal(t, "http://cdn.local/paintings/u1/p1/fixed.png", img.URL)
	assert.Equal(t, len(pixel), img.Size)
	assert.True(t, bytes.Equal(pixel, backend.objects[img.Key]))
	assert.Equal(t, "image/png", backend.types[img.Key])

	require.NoError(t, s.Remove(context.Background(), img.Key))
	assert.Empty(t, backend.objects)
	assert.NoError(t, s.Remove(context.Background(), ""))
}

func TestStore_KeyStaysInOwnerPrefix(t *testing.T) {
	backend := newFakeBackend()
	s := NewStore(backend, logging.Nop())
	s.newID = func() string { return "fixed" }
	enc := base64.StdEncoding.EncodeToString(pixel)

	for _, payload := range []string{
		"data:image/x/../../../victim/proj/evil;base64," + enc,
		"data:image/png/../../other;base64," + enc,
		"data:image/svg+xml;base64," + enc,
	} {
		_, err := s.Store(context.Background(), "u1", "p1", payload)
		assert.True(t, apperr.IsKind(err, apperr.KindValidation), "payload %q: %v", payload, err)
	}
	assert.Empty(t, backend.objects)

	for ct, ext := range map[string]string{"image/jpeg": "jpeg", "image/png": "png", "image/webp": "webp", "image/gif": "gif"} {
		img, err := s.Store(context.Background(), "u1", "p1", "data:"+ct+";base64,"+enc)
		require.NoError(t, err)
		assert.Equal(t, "u1/p1/fixed."+ext, img.Key)
		assert.Equal(t, ct, backend.types[img.Key])
	}
}

func TestStore_UniqueKeys(t *testing.T) {
	backend := newFakeBackend()
	s := NewStore(backend, logging.Nop())
	payload := base64.StdEncoding.EncodeToString(pixel)

	a, err := s.Store(context.Background(), "u1", "p1", payload)
	require.NoError(t, err)
	b, err := s.Store(context.Background(), "u1", "p1", payload)
	require.NoError(t, err)
	assert.NotEqual(t, a.Key, b.Key)
	assert.Len(t, backend.objects, 2)
}

func TestStore_Failures(t *testing.T) {
	backend := newFakeBackend()
	s := NewStore(backend, logging.Nop())

	_, err := s.Store(context.Background(), "u1", "p1", "")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	backend.putErr = errors.New("access denied")
	_, err = s.Store(context.Background(), "u1", "p1", base64.StdEncoding.EncodeToString(pixel))
	assert.True(t, apperr.IsKind(err, apperr.KindStorage))
	assert.ErrorContains(t, err, "access denied")

	backend.delErr = errors.New("gone")
	err = s.Remove(context.Background(), "u1/p1/x.png")
	assert.True(t, apperr.IsKind(err, apperr.KindStorage))
}
