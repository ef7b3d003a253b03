package velog_errors

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(nil))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("Series not found")))
	assert.Equal(t, KindConflict, KindOf(errors.Wrap(Conflict("Already added to series"), "append")))
}

func TestIsKind(t *testing.T) {
	assert.True(t, IsKind(ErrNotLoggedIn, KindUnauthenticated))
	assert.False(t, IsKind(nil, KindUnauthenticated))
	assert.False(t, IsKind(PermissionDenied("nope"), KindNotFound))
}

func TestError_MessageAndUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(KindInternal, cause, "load series")

	assert.Equal(t, "load series: connection reset", err.Error())
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "Series not found", NotFound("Series not found").Error())
}

func TestMultiErrors(t *testing.T) {
	multiErr := NewMultiErrors()
	assert.False(t, multiErr.HasErrors())

	multiErr.Add("filesize", "file is too big", nil)
	multiErr.Add("filename", "filename is required", nil)
	multiErr.Add("filename", "filename is too long", nil)

	assert.True(t, multiErr.HasErrors())
	assert.Equal(t, "filename: filename is required | filename: filename is too long | filesize: file is too big", multiErr.Error())
	assert.Equal(t, map[string][]string{
		"filename": {"filename is required", "filename is too long"},
		"filesize": {"file is too big"},
	}, multiErr.Fields())
}
