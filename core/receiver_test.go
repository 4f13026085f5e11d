package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiverSnWAcksEveryAcceptedFrame(t *testing.T) {
	r := NewReceiverSnW(1, nil)

	f0, _ := Encode(TypeData, 1, 0, 2, []byte("he"))
	f1, _ := Encode(TypeData, 1, 1, 2, []byte("ya"))

	ack0 := r.Accept(f0)
	require.NotNil(t, ack0)
	d, err := Decode(ack0)
	require.NoError(t, err)
	assert.Equal(t, TypeACK, d.Type)
	assert.Equal(t, uint16(0), d.Seq)

	_, ok := r.Assembled()
	assert.False(t, ok)

	ack1 := r.Accept(f1)
	require.NotNil(t, ack1)

	assembled, ok := r.Assembled()
	require.True(t, ok)
	assert.Equal(t, []byte("heya"), assembled)
}

func TestReceiverSnWDuplicateFramesStillAcked(t *testing.T) {
	r := NewReceiverSnW(1, nil)
	f0, _ := Encode(TypeData, 1, 0, 1, []byte("x"))

	ack1 := r.Accept(f0)
	ack2 := r.Accept(f0)
	require.NotNil(t, ack1)
	require.NotNil(t, ack2)
}

func TestReceiverSnWRejectedFrameBumpsCRCFail(t *testing.T) {
	r := NewReceiverSnW(1, nil)
	ack := r.Accept([]byte("garbage"))
	assert.Nil(t, ack)
	assert.Equal(t, 1, r.CRCFailTotal)
}

func TestReceiverSnWIgnoresOtherMessages(t *testing.T) {
	r := NewReceiverSnW(1, nil)
	other, _ := Encode(TypeData, 2, 0, 1, []byte("x"))
	ack := r.Accept(other)
	assert.Nil(t, ack)
}

func TestReceiverGBNNoAckBeforeFirstInOrderFrame(t *testing.T) {
	r := NewReceiverGBN(1, nil)

	// Out-of-order frame arrives first: must not be stored, must not
	// be acked (spec.md section 9, second open question).
	outOfOrder, _ := Encode(TypeData, 1, 2, 4, []byte("cc"))
	ack, emit := r.Accept(outOfOrder)
	assert.False(t, emit)
	assert.Nil(t, ack)
	assert.Equal(t, uint16(0), r.ExpectedSeq)
	assert.NotContains(t, r.parts, uint16(2))
}

func TestReceiverGBNCumulativeAckAdvancesOnInOrderFrames(t *testing.T) {
	r := NewReceiverGBN(1, nil)

	f0, _ := Encode(TypeData, 1, 0, 3, []byte("a"))
	f1, _ := Encode(TypeData, 1, 1, 3, []byte("b"))
	f2, _ := Encode(TypeData, 1, 2, 3, []byte("c"))

	ack, emit := r.Accept(f0)
	require.True(t, emit)
	d, _ := Decode(ack)
	assert.Equal(t, uint16(0), d.Seq)

	ack, emit = r.Accept(f2) // out of order, stored nowhere
	require.True(t, emit)    // still re-acks the last in-order seq
	d, _ = Decode(ack)
	assert.Equal(t, uint16(0), d.Seq)

	ack, emit = r.Accept(f1)
	require.True(t, emit)
	d, _ = Decode(ack)
	assert.Equal(t, uint16(1), d.Seq)

	// Now the previously out-of-order f2 lands again, in order.
	ack, emit = r.Accept(f2)
	require.True(t, emit)
	d, _ = Decode(ack)
	assert.Equal(t, uint16(2), d.Seq)

	assembled, ok := r.Assembled()
	require.True(t, ok)
	assert.Equal(t, []byte("abc"), assembled)
}

func TestReceiverGBNNeverStoresOutOfOrderKeys(t *testing.T) {
	r := NewReceiverGBN(1, nil)
	f2, _ := Encode(TypeData, 1, 2, 3, []byte("c"))
	r.Accept(f2)
	_, stored := r.parts[2]
	assert.False(t, stored)
}

func TestReceiverGBNRejectedFrameBumpsCRCFail(t *testing.T) {
	r := NewReceiverGBN(1, nil)
	_, emit := r.Accept([]byte("garbage"))
	assert.False(t, emit)
	assert.Equal(t, 1, r.CRCFailTotal)
}
