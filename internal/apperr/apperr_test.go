package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	notFound := NotFound("Project not found")
	wrapped := fmt.Errorf("get project: %w", notFound)

	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.True(t, errors.Is(wrapped, notFound))
	assert.Equal(t, KindUnexpected, KindOf(errors.New("boom")))
	assert.True(t, IsKind(wrapped, KindNotFound))
	assert.False(t, IsKind(nil, KindUnexpected))
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:   http.StatusBadRequest,
		KindUnauthorized: http.StatusUnauthorized,
		KindNotFound:     http.StatusNotFound,
		KindRateLimited:  http.StatusTooManyRequests,
		KindStorage:      http.StatusInternalServerError,
		KindUnexpected:   http.StatusInternalServerError,
	}
	for kind, status := range cases {
		assert.Equal(t, status, kind.HTTPStatus(), kind.String())
	}
}

func TestErrorMessageIncludesCause(t *testing.T) {
	err := Storage("Unable to store image", errors.New("bucket missing"))
	assert.Equal(t, "Unable to store image: bucket missing", err.Error())
	assert.EqualError(t, errors.Unwrap(err), "bucket missing")
}
