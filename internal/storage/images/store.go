// Package images turns client image payloads into stored objects with public
// URLs.
package images

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/stockhaus/stockhaus-backend/internal/apperr"
	"github.com/stockhaus/stockhaus-backend/internal/metrics"
)

// Backend is an object store holding image blobs.
type Backend interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

// StoredImage describes an object written by Store.
type StoredImage struct {
	Key         string
	URL         string
	ContentType string
	Size        int
}

type Store struct {
	backend Backend
	log     logrus.FieldLogger
	newID   func() string
}

func NewStore(backend Backend, log logrus.FieldLogger) *Store {
	return &Store{
		backend: backend,
		log:     log,
		newID:   func() string { return uuid.NewString() },
	}
}

// ObjectKey names an object as {owner}/{project}/{id}.{ext}.
func ObjectKey(ownerUserID, projectID, id, ext string) string {
	return fmt.Sprintf("%s/%s/%s.%s", ownerUserID, projectID, id, ext)
}

// PublicURL joins a public base URL, bucket and key.
func PublicURL(base, bucket, key string) string {
	return strings.TrimRight(base, "/") + "/" + bucket + "/" + key
}

// Store decodes payload and writes it under a fresh key. Every call writes
// a new object, so nothing is ever overwritten.
func (s *Store) Store(ctx context.Context, ownerUserID, projectID, payload string) (*StoredImage, error) {
	img, err := Decode(payload)
	if err != nil {
		metrics.RecordImageUpload("invalid", 0)
		return nil, err
	}

	key := ObjectKey(ownerUserID, projectID, s.newID(), img.Ext())
	if err := s.backend.Put(ctx, key, bytes.NewReader(img.Data), int64(len(img.Data)), img.ContentType); err != nil {
		metrics.RecordImageUpload("error", 0)
		return nil, apperr.Storage("Unable to store image", fmt.Errorf("put %s: %w", key, err))
	}

	metrics.RecordImageUpload("ok", len(img.Data))
	s.log.WithFields(logrus.Fields{
		"user_id":      ownerUserID,
		"project_id":   projectID,
		"image_key":    key,
		"content_type": img.ContentType,
		"size":         len(img.Data),
	}).Debug("image stored")

	return &StoredImage{
		Key:         key,
		URL:         s.backend.PublicURL(key),
		ContentType: img.ContentType,
		Size:        len(img.Data),
	}, nil
}

// Remove deletes a stored object. An empty key is a no-op.
func (s *Store) Remove(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	if err := s.backend.Delete(ctx, key); err != nil {
		return apperr.Storage("Unable to remove image", fmt.Errorf("delete %s: %w", key, err))
	}
	return nil
}
