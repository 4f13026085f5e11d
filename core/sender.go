package core

/*------------------------------------------------------------------
 *
 * Purpose:	C5 sender state machines: Stop-and-Wait and Go-Back-N.
 *
 * Description:	Both senders share the same shape: push DATA frame(s)
 *		onto the data channel, then block -- pumping the
 *		receiver and draining the ACK channel -- until either
 *		progress is made or the bounded wait expires, at which
 *		point they retransmit.  Only the unit of retransmission
 *		differs: SnW resends one frame per timeout, GBN resends
 *		the whole window from base.
 *
 *		Rather than two near-duplicate implementations differing
 *		only in whether phy/corruption accounting is kept, both
 *		take that bookkeeping as plain struct fields that are
 *		zero (free) when unused, per the single-sender design
 *		note: there is exactly one SnW sender and one GBN sender,
 *		not a "plain" and an "instrumented" copy of each.
 *
 *		Pump is called once per wait-loop tick before the ACK
 *		channel is drained, so a receiver colocated with the
 *		sender (as in RunOnce's single-process simulation) gets a
 *		chance to consume newly delivered DATA frames and enqueue
 *		its ACK before the sender checks for progress.
 *
 *------------------------------------------------------------------*/

import (
	"github.com/charmbracelet/log"
)

// Pump gives the receiver side a chance to run at the current virtual
// or wall time, e.g. draining a data channel and enqueueing ACKs.
type Pump func(nowMs int64)

// SenderSnW is the Stop-and-Wait sender: one outstanding frame at a
// time, retransmitted on its own timeout.
type SenderSnW struct {
	MsgID      uint16
	TimeoutMs  int64
	MaxRetries int
	Log        *log.Logger

	// Transducer and Armor drive the opaque PHY hop (spec.md section
	// 6); nil Transducer sends frame bytes straight onto the channel.
	// PhySeconds, if non-nil, accumulates transducer on-air time.
	Transducer Transducer
	Armor      bool
	PhySeconds *float64

	DataSent    int
	DataDropped int
	RetriesUsed int
}

// NewSenderSnW builds a Stop-and-Wait sender.
func NewSenderSnW(msgID uint16, timeoutMs int64, maxRetries int, logger *log.Logger) *SenderSnW {
	return &SenderSnW{
		MsgID:      msgID,
		TimeoutMs:  timeoutMs,
		MaxRetries: maxRetries,
		Log:        nopLogger(logger),
	}
}

// Run drives frames one at a time to completion. now is advanced in
// place as time passes. It returns ErrTooManyRetries if any single
// frame exhausts its retry budget without being acked.
func (s *SenderSnW) Run(frames [][]byte, dataCh, ackCh *Channel, clock Clock, now *int64, pump Pump) error {
	for seq, frame := range frames {
		retries := 0
		for {
			if !dataCh.Send(*now, toWire(s.Transducer, s.Armor, frame, s.PhySeconds)) {
				s.DataDropped++
			}
			s.DataSent++

			deadline := *now + s.TimeoutMs
			acked := false
			for *now <= deadline {
				pump(*now)
				for _, wire := range ackCh.Drain(*now) {
					raw, ok := fromWire(s.Transducer, s.Armor, wire)
					if !ok {
						continue
					}
					d, err := Decode(raw)
					if err != nil {
						continue
					}
					if d.Type == TypeACK && d.MsgID == s.MsgID && int(d.Seq) == seq {
						acked = true
					}
				}
				if acked {
					break
				}
				*now = clock.Advance(*now, deadline, []*Channel{dataCh, ackCh})
			}
			if acked {
				break
			}

			retries++
			s.RetriesUsed++
			s.Log.Debug("sender: timeout, retransmitting", "seq", seq, "retry", retries)
			if retries >= s.MaxRetries {
				return ErrTooManyRetries
			}
		}
	}
	return nil
}

// SenderGBN is the Go-Back-N sender: up to Window frames outstanding
// at once, cumulative ACKs advance base, and a timeout rewinds
// next_to_send back to base for a full window resend.
type SenderGBN struct {
	MsgID      uint16
	Window     int
	TimeoutMs  int64
	MaxRetries int
	Log        *log.Logger

	Transducer Transducer
	Armor      bool
	PhySeconds *float64

	DataSent     int
	DataDropped  int
	TimeoutsUsed int
}

// NewSenderGBN builds a Go-Back-N sender.
func NewSenderGBN(msgID uint16, window int, timeoutMs int64, maxRetries int, logger *log.Logger) *SenderGBN {
	return &SenderGBN{
		MsgID:      msgID,
		Window:     window,
		TimeoutMs:  timeoutMs,
		MaxRetries: maxRetries,
		Log:        nopLogger(logger),
	}
}

// Run drives all frames to completion using a sliding window. now is
// advanced in place. It returns ErrTooManyTimeouts if base fails to
// advance within MaxRetries consecutive window timeouts.
func (s *SenderGBN) Run(frames [][]byte, dataCh, ackCh *Channel, clock Clock, now *int64, pump Pump) error {
	total := len(frames)
	base := 0
	next := 0
	timeoutsAtBase := 0

	send := func(seq int) {
		if !dataCh.Send(*now, toWire(s.Transducer, s.Armor, frames[seq], s.PhySeconds)) {
			s.DataDropped++
		}
		s.DataSent++
	}

	fillWindow := func() {
		for next < total && next-base < s.Window {
			send(next)
			next++
		}
	}

	fillWindow()

	for base < total {
		deadline := *now + s.TimeoutMs
		progressed := false

		for *now <= deadline && base < total {
			pump(*now)

			bestAck := -1
			for _, wire := range ackCh.Drain(*now) {
				raw, ok := fromWire(s.Transducer, s.Armor, wire)
				if !ok {
					continue
				}
				d, err := Decode(raw)
				if err != nil {
					continue
				}
				if d.Type != TypeACK || d.MsgID != s.MsgID {
					continue
				}
				// Cumulative ACK: take the max seq among everything
				// drained this tick, and ignore any ACK that would
				// move base backwards (spec.md section 4.4).
				if int(d.Seq) > bestAck {
					bestAck = int(d.Seq)
				}
			}

			if bestAck >= base {
				base = bestAck + 1
				timeoutsAtBase = 0
				progressed = true
				fillWindow()
				if base >= total {
					break
				}
				deadline = *now + s.TimeoutMs
				continue
			}

			*now = clock.Advance(*now, deadline, []*Channel{dataCh, ackCh})
		}

		if base >= total {
			break
		}
		if progressed {
			continue
		}

		timeoutsAtBase++
		s.TimeoutsUsed++
		s.Log.Debug("sender: window timeout, going back to base", "base", base, "timeout", timeoutsAtBase)
		if timeoutsAtBase >= s.MaxRetries {
			return ErrTooManyTimeouts
		}
		next = base
		fillWindow()
	}
	return nil
}
