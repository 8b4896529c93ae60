package docsite_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/docsite"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := docsite.Errorf(docsite.ENOTFOUND, "document %q not found", "/docs/intro")

	assert.Equal(t, docsite.ENOTFOUND, docsite.ErrorCode(err))
	assert.Equal(t, "document \"/docs/intro\" not found", docsite.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, docsite.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, docsite.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("content/docs/a.mdx: %w", docsite.Errorf(docsite.EINVALID, "bad front-matter"))

	assert.Equal(t, docsite.EINVALID, docsite.ErrorCode(err))
	assert.Equal(t, "bad front-matter", docsite.ErrorMessage(err))
}

func TestErrorCode_PlainError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, docsite.EINTERNAL, docsite.ErrorCode(err))
	assert.Equal(t, "boom", docsite.ErrorMessage(err))
}
