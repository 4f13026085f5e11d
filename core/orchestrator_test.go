package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseOpts(variant Variant) RunOptions {
	return RunOptions{
		Variant:    variant,
		MaxPayload: 16,
		TimeoutMs:  50,
		MaxRetries: 30,
		Window:     4,
		Seed:       1,
		MsgID:      1,
	}
}

// S1: single small frame, no loss.
func TestRunOnceS1SingleFrameNoLoss(t *testing.T) {
	opts := baseOpts(VariantSnW)
	res, err := RunOnce([]byte("hello"), opts)
	require.NoError(t, err)

	assert.True(t, res.OK)
	assert.Equal(t, 1, res.FramesTotal)
	assert.Equal(t, 0, res.RetriesTotal)
	assert.Equal(t, 1, res.DataSent)
	assert.Equal(t, 1, res.AckSent)
}

// S2: multi-fragment SnW, no loss.
func TestRunOnceS2MultiFragmentNoLoss(t *testing.T) {
	payload := []byte(strings.Repeat("hello world! ", 10))
	opts := baseOpts(VariantSnW)
	res, err := RunOnce(payload, opts)
	require.NoError(t, err)

	assert.True(t, res.OK)
	assert.Equal(t, 9, res.FramesTotal)
	assert.Equal(t, 0, res.RetriesTotal)
	assert.Equal(t, payload, res.Reassembled)
}

// S3: SnW under loss, must still succeed given enough retries.
func TestRunOnceS3SnWUnderLossEventuallySucceeds(t *testing.T) {
	payload := []byte(strings.Repeat("hello world! ", 10))
	opts := baseOpts(VariantSnW)
	opts.DropData = 0.25
	opts.DropAck = 0.10
	opts.MaxRetries = 30
	opts.Seed = 2000

	res, err := RunOnce(payload, opts)
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Greater(t, res.RetriesTotal, 0)
	assert.GreaterOrEqual(t, res.DataSent, res.FramesTotal)
}

// S4: GBN under loss, windowed.
func TestRunOnceS4GBNUnderLoss(t *testing.T) {
	payload := []byte(strings.Repeat("hello world! ", 10))
	opts := baseOpts(VariantGBN)
	opts.MaxPayload = 32
	opts.Window = 4
	opts.DropData = 0.25
	opts.DropAck = 0.10
	opts.MaxRetries = 50
	opts.Seed = 4000

	res, err := RunOnce(payload, opts)
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Equal(t, 5, res.FramesTotal)
	assert.GreaterOrEqual(t, res.TimeoutsTotal, 0)
}

// S5: empty payload still produces one DATA frame.
func TestRunOnceS5EmptyPayload(t *testing.T) {
	opts := baseOpts(VariantSnW)
	opts.MaxPayload = 8
	res, err := RunOnce(nil, opts)
	require.NoError(t, err)

	assert.True(t, res.OK)
	assert.Equal(t, 1, res.FramesTotal)
	assert.Empty(t, res.Reassembled)
}

// S6: total data loss exhausts retries and fails the run.
func TestRunOnceS6TotalLossFails(t *testing.T) {
	opts := baseOpts(VariantSnW)
	opts.DropData = 1.0
	opts.MaxRetries = 5

	res, err := RunOnce([]byte("hello"), opts)
	require.NoError(t, err) // protocol failure, not an argument error
	assert.False(t, res.OK)
	assert.Equal(t, 5, res.RetriesTotal)
}

// Property 8: determinism. Two identical RunOnce calls produce
// identical results.
func TestRunOnceDeterministic(t *testing.T) {
	payload := []byte(strings.Repeat("hello world! ", 10))
	opts := baseOpts(VariantGBN)
	opts.DropData = 0.3
	opts.DropAck = 0.2
	opts.Seed = 99

	a, errA := RunOnce(payload, opts)
	b, errB := RunOnce(payload, opts)
	require.NoError(t, errA)
	require.NoError(t, errB)

	assert.Equal(t, a, b)
}

func TestRunOnceRejectsInvalidArgs(t *testing.T) {
	opts := baseOpts(VariantSnW)
	opts.MaxPayload = 0
	_, err := RunOnce([]byte("x"), opts)
	assert.ErrorIs(t, err, ErrInvalidArg)

	opts = baseOpts(VariantGBN)
	opts.Window = 0
	_, err = RunOnce([]byte("x"), opts)
	assert.ErrorIs(t, err, ErrInvalidArg)
}

func TestRunOnceIdentityTransducerRoundTrips(t *testing.T) {
	opts := baseOpts(VariantSnW)
	opts.Transducer = &IdentityTransducer{}
	opts.TrackPhyTime = true

	res, err := RunOnce([]byte("hello"), opts)
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Greater(t, res.PhySeconds, 0.0)
	assert.GreaterOrEqual(t, res.VirtualSeconds, res.PhySeconds)
}
