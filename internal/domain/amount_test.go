package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount_JSON(t *testing.T) {
	data, err := json.Marshal(struct {
		A Amount `json:"a"`
	}{NewAmount(10, 50)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":10.50}`, string(data))

	var a Amount
	require.NoError(t, json.Unmarshal([]byte(`0.29`), &a))
	assert.Equal(t, Amount(29), a)
	require.NoError(t, json.Unmarshal([]byte(`7`), &a))
	assert.Equal(t, NewAmount(7, 0), a)
	assert.Equal(t, "7.00", a.String())
}

func TestAmount_RejectsOutOfRange(t *testing.T) {
	for _, in := range []string{`1e300`, `-1e300`, `10000000000001`} {
		a := Amount(5)
		err := json.Unmarshal([]byte(in), &a)
		require.ErrorIs(t, err, ErrInvalid, in)
		assert.Equal(t, Amount(5), a, in)
	}

	var a Amount
	require.NoError(t, json.Unmarshal([]byte(`9999999999999.99`), &a))
	assert.Equal(t, Amount(999999999999999), a)
}
