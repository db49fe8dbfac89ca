package kafka

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeValue(t *testing.T) {
	b, err := encodeValue([]byte("raw"))
	require.NoError(t, err)
	require.Equal(t, []byte("raw"), b)

	b, err = encodeValue("text")
	require.NoError(t, err)
	require.Equal(t, []byte("text"), b)

	b, err = encodeValue(map[string]interface{}{"symbol": "SPY", "v": 1000})
	require.NoError(t, err)
	require.JSONEq(t, `{"symbol":"SPY","v":1000}`, string(b))

	_, err = encodeValue(func() {})
	require.Error(t, err)
}
