package httpErrors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseErrors(t *testing.T) {
	t.Parallel()

	t.Run("rest errors pass through", func(t *testing.T) {
		restErr := ParseErrors(NewVideoNotFoundError())
		assert.Equal(t, http.StatusNotFound, restErr.Status())
		assert.Equal(t, CodeVideoNotFound, restErr.Code())
	})

	t.Run("wrapped rest errors are unwrapped", func(t *testing.T) {
		wrapped := errors.Wrap(NewUploadTooLargeError(), "handler")
		restErr := ParseErrors(wrapped)
		assert.Equal(t, CodeUploadTooLarge, restErr.Code())
	})

	t.Run("unclassified failures get the generic code", func(t *testing.T) {
		restErr := ParseErrors(fmt.Errorf("connection refused"))
		assert.Equal(t, http.StatusInternalServerError, restErr.Status())
		assert.Equal(t, CodeInternalError, restErr.Code())
	})
}

// The pipeline failure codes describe states the record can be left in; the
// generic constructor must never stamp one of them on an infrastructure error.
func TestInternalErrorCodeIsDistinct(t *testing.T) {
	t.Parallel()

	restErr := NewInternalServerError("db down")
	require.Equal(t, CodeInternalError, restErr.Code())
	for _, code := range []string{
		CodeProcessingFailed,
		CodeProxyGenerationFailed,
		CodeStorageIOError,
	} {
		assert.NotEqual(t, code, restErr.Code())
	}
}
