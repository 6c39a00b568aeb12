package common_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dbillionaer/polygonmcp/common"
)

func TestTypedErrorCarriesCodeAndDetails(t *testing.T) {
	err := common.NewInvalidAddressError("0xzz")
	assert.Equal(t, common.ErrCodeInvalidAddress, err.Code)
	assert.Equal(t, "0xzz", err.Details["address"])
	assert.Contains(t, err.Error(), "INVALID_ADDRESS")
}

func TestTypedErrorUnwrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := common.NewGasEstimationError(cause, map[string]any{"to": "0x0"})
	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")

	var typed *common.Error
	require.ErrorAs(t, error(err), &typed)
	assert.Equal(t, common.ErrCodeGasEstimation, typed.Code)
}
