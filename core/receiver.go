package core

/*------------------------------------------------------------------
 *
 * Purpose:	C4 receiver state machines: Stop-and-Wait and
 *		Go-Back-N.  Both accept DATA frames from one logical
 *		message (one msg_id) and decide when and what to ACK.
 *
 * Description:	SnW ACKs every accepted DATA frame at its own seq, so
 *		a late retransmission can always be closed by a fresh
 *		ACK.  GBN ACKs cumulatively at the highest contiguous
 *		seq received so far, and -- critically -- emits no ACK
 *		at all until the first in-order frame (seq 0) has
 *		arrived; ACKing "expected_seq - 1 == -1" would let a
 *		sender advance base from 0 spuriously (spec.md section
 *		9, second open question).
 *
 *		Every rejected frame (bad magic/version/length/CRC)
 *		bumps CRCFailTotal and is silently dropped; this is
 *		never fatal (spec.md section 7).
 *
 *------------------------------------------------------------------*/

import (
	"io"

	"github.com/charmbracelet/log"
)

// ReceiverSnW is the Stop-and-Wait receiver state machine.
type ReceiverSnW struct {
	MsgID uint16
	Log   *log.Logger

	parts        map[uint16][]byte
	total        *uint16
	CRCFailTotal int
}

// NewReceiverSnW builds a receiver for one logical message.
func NewReceiverSnW(msgID uint16, logger *log.Logger) *ReceiverSnW {
	return &ReceiverSnW{
		MsgID: msgID,
		Log:   nopLogger(logger),
		parts: make(map[uint16][]byte),
	}
}

// Accept processes one raw wire frame. It returns the ACK frame bytes
// to send back, or nil if the frame was rejected or not addressed to
// this message.
func (r *ReceiverSnW) Accept(raw []byte) []byte {
	d, err := Decode(raw)
	if err != nil {
		r.CRCFailTotal++
		r.Log.Debug("receiver: dropped frame", "err", err)
		return nil
	}
	if d.Type != TypeData || d.MsgID != r.MsgID {
		return nil
	}

	if r.total == nil {
		total := d.Total
		r.total = &total
	}
	r.parts[d.Seq] = d.Payload

	ack, err := Encode(TypeACK, r.MsgID, d.Seq, d.Total, nil)
	if err != nil {
		// Can't happen: seq/total/msgID are already valid uint16s.
		return nil
	}
	return ack
}

// Assembled returns the reassembled payload once every fragment has
// arrived.
func (r *ReceiverSnW) Assembled() ([]byte, bool) {
	if r.total == nil {
		return nil, false
	}
	return Reassemble(r.parts, *r.total)
}

// ReceiverGBN is the Go-Back-N receiver state machine.
type ReceiverGBN struct {
	MsgID uint16
	Log   *log.Logger

	ExpectedSeq  uint16
	parts        map[uint16][]byte
	total        *uint16
	CRCFailTotal int
}

// NewReceiverGBN builds a Go-Back-N receiver for one logical message.
func NewReceiverGBN(msgID uint16, logger *log.Logger) *ReceiverGBN {
	return &ReceiverGBN{
		MsgID: msgID,
		Log:   nopLogger(logger),
		parts: make(map[uint16][]byte),
	}
}

// Accept processes one raw wire frame. It returns (ackFrame, true) if
// a cumulative ACK should be sent, or (nil, false) if the frame was
// rejected, not addressed to this message, or no in-order frame has
// been received yet (so no ACK can be emitted without letting the
// sender advance base spuriously).
func (r *ReceiverGBN) Accept(raw []byte) ([]byte, bool) {
	d, err := Decode(raw)
	if err != nil {
		r.CRCFailTotal++
		r.Log.Debug("receiver: dropped frame", "err", err)
		return nil, false
	}
	if d.Type != TypeData || d.MsgID != r.MsgID {
		return nil, false
	}

	if r.total == nil {
		total := d.Total
		r.total = &total
	}

	if d.Seq == r.ExpectedSeq {
		r.parts[d.Seq] = d.Payload
		r.ExpectedSeq++
	}
	// Out-of-order fragments are never stored (spec.md section 4.4):
	// the receiver's map holds no key >= ExpectedSeq at any step.

	if r.ExpectedSeq == 0 {
		return nil, false
	}

	ackSeq := r.ExpectedSeq - 1
	ack, err := Encode(TypeACK, r.MsgID, ackSeq, d.Total, nil)
	if err != nil {
		return nil, false
	}
	return ack, true
}

// Assembled returns the reassembled payload once every fragment has
// arrived.
func (r *ReceiverGBN) Assembled() ([]byte, bool) {
	if r.total == nil {
		return nil, false
	}
	return Reassemble(r.parts, *r.total)
}

// nopLogger returns logger unchanged, or a discard logger if nil, so
// callers never need a nil check.
func nopLogger(logger *log.Logger) *log.Logger {
	if logger != nil {
		return logger
	}
	return log.New(io.Discard)
}
