package hw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockGPIOLine is a test double for gpioLine that records calls
// without requiring real GPIO hardware or the gpio-sim kernel module.
type mockGPIOLine struct {
	value  int
	closed bool
}

func (m *mockGPIOLine) SetValue(v int) error {
	m.value = v
	return nil
}

func (m *mockGPIOLine) Close() error {
	m.closed = true
	return nil
}

func TestGPIOKeyerAssertsHighByDefault(t *testing.T) {
	mock := &mockGPIOLine{}
	k := &GPIOKeyer{line: mock, invert: false}

	require.NoError(t, k.Key())
	assert.Equal(t, 1, mock.value)

	require.NoError(t, k.Unkey())
	assert.Equal(t, 0, mock.value)
}

func TestGPIOKeyerInvertedAssertsLow(t *testing.T) {
	mock := &mockGPIOLine{}
	k := &GPIOKeyer{line: mock, invert: true}

	require.NoError(t, k.Key())
	assert.Equal(t, 0, mock.value)

	require.NoError(t, k.Unkey())
	assert.Equal(t, 1, mock.value)
}

func TestGPIOKeyerCloseUnkeysFirst(t *testing.T) {
	mock := &mockGPIOLine{}
	k := &GPIOKeyer{line: mock, invert: false}

	require.NoError(t, k.Key())
	require.NoError(t, k.Close())

	assert.Equal(t, 0, mock.value)
	assert.True(t, mock.closed)
}
