package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	minioLib "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMinio implements minioAPI for testing without network.
type fakeMinio struct {
	bucketExists    bool
	bucketExistsErr error
	makeBucketErr   error
	policyErr       error

	made   bool
	policy string

	putKey  string
	putBody []byte
	putOpts minioLib.PutObjectOptions
	putErr  error

	removed   string
	removeErr error
}

func (f *fakeMinio) BucketExists(context.Context, string) (bool, error) {
	return f.bucketExists, f.bucketExistsErr
}

func (f *fakeMinio) MakeBucket(context.Context, string, minioLib.MakeBucketOptions) error {
	f.made = true
	return f.makeBucketErr
}

func (f *fakeMinio) SetBucketPolicy(_ context.Context, _ string, policy string) error {
	f.policy = policy
	return f.policyErr
}

func (f *fakeMinio) PutObject(_ context.Context, _ string, key string, r io.Reader, _ int64, opts minioLib.PutObjectOptions) (minioLib.UploadInfo, error) {
	if f.putErr != nil {
		return minioLib.UploadInfo{}, f.putErr
	}
	f.putKey = key
	f.putOpts = opts
	f.putBody, _ = io.ReadAll(r)
	return minioLib.UploadInfo{Key: key}, nil
}

func (f *fakeMinio) RemoveObject(_ context.Context, _ string, key string, _ minioLib.RemoveObjectOptions) error {
	f.removed = key
	return f.removeErr
}

func TestNewClientWithAPI_BucketExists(t *testing.T) {
	api := &fakeMinio{bucketExists: true}
	c, err := NewClientWithAPI(context.Background(), api, "paintings", "http://localhost:9000")
	require.NoError(t, err)
	assert.Equal(t, "paintings", c.bucket)
	assert.False(t, api.made)
	assert.Empty(t, api.policy)
}

func TestNewClientWithAPI_CreatesPublicBucket(t *testing.T) {
	api := &fakeMinio{}
	_, err := NewClientWithAPI(context.Background(), api, "paintings", "http://localhost:9000")
	require.NoError(t, err)
	assert.True(t, api.made)
	assert.Contains(t, api.policy, "arn:aws:s3:::paintings/*")
	assert.Contains(t, api.policy, "s3:GetObject")
}

func TestNewClientWithAPI_Errors(t *testing.T) {
	for name, api := range map[string]*fakeMinio{
		"exists": {bucketExistsErr: errors.New("boom")},
		"make":   {makeBucketErr: errors.New("fail")},
		"policy": {policyErr: errors.New("denied")},
	} {
		t.Run(name, func(t *testing.T) {
			c, err := NewClientWithAPI(context.Background(), api, "paintings", "")
			assert.Nil(t, c)
			assert.ErrorContains(t, err, "failed to ensure bucket exists")
		})
	}
}

func TestClient_PutDelete(t *testing.T) {
	api := &fakeMinio{bucketExists: true}
	c, err := NewClientWithAPI(context.Background(), api, "paintings", "http://localhost:9000/")
	require.NoError(t, err)

	require.NoError(t, c.Put(context.Background(), "u/p/1.png", bytes.NewReader([]byte("img")), 3, "image/png"))
	assert.Equal(t, "u/p/1.png", api.putKey)
	assert.Equal(t, []byte("img"), api.putBody)
	assert.Equal(t, "image/png", api.putOpts.ContentType)
	assert.Equal(t, "http://localhost:9000/paintings/u/p/1.png", c.PublicURL("u/p/1.png"))

	require.NoError(t, c.Delete(context.Background(), "u/p/1.png"))
	assert.Equal(t, "u/p/1.png", api.removed)

	api.putErr = errors.New("network")
	assert.ErrorContains(t, c.Put(context.Background(), "k", bytes.NewReader(nil), 0, "image/png"), "failed to upload object")
	api.removeErr = errors.New("network")
	assert.ErrorContains(t, c.Delete(context.Background(), "k"), "failed to delete object")
}
