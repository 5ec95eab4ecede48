package docsearch_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/docsearch"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := docsearch.Errorf(docsearch.ENOTFOUND, "page %q not found", "docs/guide")

	assert.Equal(t, docsearch.ENOTFOUND, docsearch.ErrorCode(err))
	assert.Equal(t, "page \"docs/guide\" not found", docsearch.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, docsearch.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, docsearch.EINTERNAL, docsearch.ErrorCode(errors.New("disk on fire")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, docsearch.ErrorMessage(nil))
}

func TestErrorMessage_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Internal error.", docsearch.ErrorMessage(errors.New("disk on fire")))
}
