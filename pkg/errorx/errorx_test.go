package errorx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapAndUnwrap(t *testing.T) {
	cause := errors.New("disk on fire")
	err := Wrapf(cause, CodeDBError, "save user %s", "U_1")

	assert.Equal(t, CodeDBError, GetCode(err))
	assert.Contains(t, err.Error(), "save user U_1")
	assert.Contains(t, err.Error(), "disk on fire")
	assert.True(t, errors.Is(err, cause))
}

func TestGetCodeFallback(t *testing.T) {
	// 非 CodeError 一律按服务繁忙处理
	assert.Equal(t, CodeServerBusy, GetCode(errors.New("plain error")))

	// 再包装一层 fmt 也能追溯到
	wrapped := fmt.Errorf("outer: %w", New(CodeForbidden, "no"))
	assert.Equal(t, CodeForbidden, GetCode(wrapped))
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := map[int]int{
		CodeInvalidParam: http.StatusBadRequest,
		CodeUnauthorized: http.StatusUnauthorized,
		CodeForbidden:    http.StatusForbidden,
		CodeNotFound:     http.StatusNotFound,
		CodeConflict:     http.StatusConflict,
		CodeInvalidState: http.StatusConflict,
		CodeServerBusy:   http.StatusInternalServerError,
		CodeDBError:      http.StatusInternalServerError,
		CodeCacheError:   http.StatusInternalServerError,
	}
	for code, status := range cases {
		assert.Equal(t, status, HTTPStatus(code), "code %d", code)
	}
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(New(CodeNotFound, "room not found")))
	assert.True(t, IsNotFound(Wrap(errors.New("record not found"), CodeNotFound, "find room")))
	assert.False(t, IsNotFound(New(CodeConflict, "taken")))
	assert.False(t, IsNotFound(nil))
}
