package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimError_Error(t *testing.T) {
	err := NewConfigError("config", "weights must sum to 100%")
	assert.Equal(t, "[CONFIG:config] validate: weights must sum to 100%", err.Error())

	wrapped := WrapError(fmt.Errorf("file not found"), ErrorCategoryData, "loader", "read csv")
	assert.Equal(t, "[DATA:loader] read csv: operation failed: file not found", wrapped.Error())
}

func TestWrapError_NilPassthrough(t *testing.T) {
	assert.Nil(t, WrapError(nil, ErrorCategoryData, "loader", "read"))
}

func TestSimError_Unwrap(t *testing.T) {
	underlying := fmt.Errorf("bad row")
	wrapped := WrapError(underlying, ErrorCategoryData, "loader", "parse")

	assert.ErrorIs(t, wrapped, underlying)
}

func TestCategoryChecks(t *testing.T) {
	configErr := NewConfigError("config", "boom")
	dataErr := NewDataError("loader", "no bars")

	assert.True(t, IsConfigError(configErr))
	assert.False(t, IsDataError(configErr))
	assert.True(t, IsDataError(dataErr))
	assert.False(t, IsConfigError(dataErr))

	// Category checks unwrap through fmt-wrapped chains.
	chained := fmt.Errorf("run failed: %w", dataErr)
	assert.True(t, IsDataError(chained))

	assert.False(t, IsConfigError(stderrors.New("plain")))
	assert.False(t, IsConfigError(nil))
}

func TestWithContext(t *testing.T) {
	err := NewDataError("loader", "no bars").WithContext("symbol", "AAPL")
	require.NotNil(t, err.Context)
	assert.Equal(t, "AAPL", err.Context["symbol"])
}
