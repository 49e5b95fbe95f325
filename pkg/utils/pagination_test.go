package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paginationCtx(query string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/videos?"+query, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestGetPaginationFromCtx(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		p, err := GetPaginationFromCtx(paginationCtx(""))
		require.NoError(t, err)
		assert.Equal(t, 0, p.GetPage())
		assert.Equal(t, 50, p.GetSize())
	})

	t.Run("explicit values", func(t *testing.T) {
		p, err := GetPaginationFromCtx(paginationCtx("page=2&size=10"))
		require.NoError(t, err)
		assert.Equal(t, 2, p.GetPage())
		assert.Equal(t, 10, p.GetSize())
		assert.Equal(t, 20, p.GetOffset())
		assert.Equal(t, 10, p.GetLimit())
	})

	t.Run("negative page rejected", func(t *testing.T) {
		_, err := GetPaginationFromCtx(paginationCtx("page=-1"))
		require.Error(t, err)
	})

	t.Run("zero size rejected", func(t *testing.T) {
		_, err := GetPaginationFromCtx(paginationCtx("size=0"))
		require.Error(t, err)
	})

	t.Run("garbage rejected", func(t *testing.T) {
		_, err := GetPaginationFromCtx(paginationCtx("page=abc"))
		require.Error(t, err)
	})
}

func TestGetHasMore(t *testing.T) {
	t.Parallel()

	assert.True(t, GetHasMore(0, 100, 50))
	assert.False(t, GetHasMore(1, 100, 50))
	assert.False(t, GetHasMore(0, 10, 50))
}

func TestGetTotalPages(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 2, GetTotalPages(100, 50))
	assert.Equal(t, 3, GetTotalPages(101, 50))
	assert.Equal(t, 0, GetTotalPages(10, 0))
}
