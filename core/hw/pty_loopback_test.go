package hw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPtyLoopbackEncodeDecodeRoundTrips(t *testing.T) {
	p, err := OpenPtyLoopback(0)
	if err != nil {
		t.Skipf("pty unavailable in this environment: %v", err)
	}
	defer p.Close()

	samples, err := p.Encode("hello link", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "hello link\n", string(samples))

	text, ok, err := p.Decode(samples)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hello link", text)
}

func TestPtyLoopbackDefaultSampleRate(t *testing.T) {
	p := &PtyLoopback{}
	assert.Equal(t, 48000, p.SampleRate())

	p.Rate = 8000
	assert.Equal(t, 8000, p.SampleRate())
}
