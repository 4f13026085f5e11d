package core

/*------------------------------------------------------------------
 *
 * Purpose:	C6 run-once orchestrator: wires C2 (fragment) + C3
 *		(channels) + C4 (receiver) + C5 (sender) to an opaque PHY
 *		transducer and produces a RunResult.
 *
 * Description:	Single-threaded and cooperative, per spec.md section 5:
 *		the sender drives the loop and calls pump once per wait
 *		tick, which is the only place the receiver runs. There is
 *		no goroutine, lock, or channel (in the Go sense) anywhere
 *		in this file -- "channel" throughout this package means
 *		the ARQ data/ack carrier (core.Channel), not a Go chan.
 *
 *------------------------------------------------------------------*/

import (
	"bytes"
	"math/rand"
	"time"
)

// toWire renders a frame for transit across the opaque PHY: armor (if
// requested) then transducer encode. A nil transducer is a byte-
// transparent short-circuit (spec.md section 6).
func toWire(tr Transducer, armor bool, frame []byte, phySeconds *float64) []byte {
	if tr == nil {
		return frame
	}
	text := string(frame)
	if armor {
		text = Armor(frame)
	}
	samples, err := tr.Encode(text, 0, 0)
	if err != nil {
		return nil
	}
	if phySeconds != nil {
		if rate := tr.SampleRate(); rate > 0 {
			*phySeconds += float64(len(samples)) / float64(rate)
		}
	}
	return samples
}

// fromWire recovers a frame from wire bytes received off the PHY. A
// failed transducer decode or failed de-armor is reported as !ok, the
// same treatment as any other undecodable frame (spec.md section 7).
func fromWire(tr Transducer, armor bool, wire []byte) ([]byte, bool) {
	if tr == nil {
		return wire, true
	}
	text, ok, err := tr.Decode(wire)
	if err != nil || !ok {
		return nil, false
	}
	if armor {
		frame, err := Dearmor(text)
		if err != nil {
			return nil, false
		}
		return frame, true
	}
	return []byte(text), true
}

// RunOnce drives one complete message transfer under the given
// options and reports the outcome (spec.md section 4.6).
func RunOnce(payload []byte, opts RunOptions) (RunResult, error) {
	if opts.MaxPayload <= 0 {
		return RunResult{}, ErrInvalidArg
	}
	if opts.Variant == VariantGBN && opts.Window <= 0 {
		return RunResult{}, ErrInvalidArg
	}
	if opts.MaxRetries <= 0 {
		return RunResult{}, ErrInvalidArg
	}

	frames, err := Fragment(payload, opts.MsgID, opts.MaxPayload)
	if err != nil {
		return RunResult{}, err
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	dataCh := NewChannel(opts.DropData, opts.CorruptData, opts.DelayMs, rng)
	ackCh := NewChannel(opts.DropAck, opts.CorruptAck, opts.DelayMs, rng)

	armor := opts.Transducer != nil
	logger := nopLogger(opts.Log)

	var phySeconds float64
	var phySecondsOut *float64
	if opts.TrackPhyTime {
		phySecondsOut = &phySeconds
	}

	var ackSent, ackDropped int
	var now int64

	switch opts.Variant {
	case VariantGBN:
		recv := NewReceiverGBN(opts.MsgID, logger)
		pump := func(nowMs int64) {
			for _, wire := range dataCh.Drain(nowMs) {
				frame, ok := fromWire(opts.Transducer, armor, wire)
				if !ok {
					recv.CRCFailTotal++
					continue
				}
				ack, emit := recv.Accept(frame)
				if !emit {
					continue
				}
				ackWire := toWire(opts.Transducer, armor, ack, phySecondsOut)
				if ackCh.Send(nowMs, ackWire) {
					ackSent++
				} else {
					ackDropped++
				}
			}
		}

		sender := &SenderGBN{
			MsgID:      opts.MsgID,
			Window:     opts.Window,
			TimeoutMs:  opts.TimeoutMs,
			MaxRetries: opts.MaxRetries,
			Log:        logger,
			Transducer: opts.Transducer,
			Armor:      armor,
			PhySeconds: phySecondsOut,
		}
		clock := opts.Clock
		if clock == nil {
			clock = VirtualClock{}
		}

		runErr := sender.Run(frames, dataCh, ackCh, clock, &now, pump)
		// Drain whatever made it to the receiver even on failure, so a
		// partial GBN run still reports an accurate crc_fail_total.
		pump(now)

		assembled, ok := recv.Assembled()
		result := buildResult(opts, payload, assembled, ok && runErr == nil, now, len(frames),
			0, sender.TimeoutsUsed, recv.CRCFailTotal, sender.DataSent, sender.DataDropped, ackSent, ackDropped, phySeconds)
		if runErr != nil && runErr != ErrTooManyTimeouts {
			return result, runErr
		}
		return result, nil

	default:
		recv := NewReceiverSnW(opts.MsgID, logger)
		pump := func(nowMs int64) {
			for _, wire := range dataCh.Drain(nowMs) {
				frame, ok := fromWire(opts.Transducer, armor, wire)
				if !ok {
					recv.CRCFailTotal++
					continue
				}
				ack := recv.Accept(frame)
				if ack == nil {
					continue
				}
				ackWire := toWire(opts.Transducer, armor, ack, phySecondsOut)
				if ackCh.Send(nowMs, ackWire) {
					ackSent++
				} else {
					ackDropped++
				}
			}
		}

		sender := &SenderSnW{
			MsgID:      opts.MsgID,
			TimeoutMs:  opts.TimeoutMs,
			MaxRetries: opts.MaxRetries,
			Log:        logger,
			Transducer: opts.Transducer,
			Armor:      armor,
			PhySeconds: phySecondsOut,
		}
		clock := opts.Clock
		if clock == nil {
			clock = VirtualClock{}
		}

		runErr := sender.Run(frames, dataCh, ackCh, clock, &now, pump)
		pump(now)

		assembled, ok := recv.Assembled()
		result := buildResult(opts, payload, assembled, ok && runErr == nil, now, len(frames),
			sender.RetriesUsed, 0, recv.CRCFailTotal, sender.DataSent, sender.DataDropped, ackSent, ackDropped, phySeconds)
		if runErr != nil && runErr != ErrTooManyRetries {
			return result, runErr
		}
		return result, nil
	}
}

func buildResult(opts RunOptions, payload, assembled []byte, ok bool, nowMs int64, framesTotal,
	retriesTotal, timeoutsTotal, crcFailTotal, dataSent, dataDropped, ackSent, ackDropped int,
	phySeconds float64) RunResult {

	ok = ok && bytes.Equal(assembled, payload)

	wallSeconds := float64(nowMs) / 1000.0
	goodput := 0.0
	if ok && wallSeconds > 0 {
		goodput = float64(len(payload)) / wallSeconds
	}

	r := RunResult{
		OK:            ok,
		WallSeconds:   wallSeconds,
		GoodputBps:    goodput,
		FramesTotal:   framesTotal,
		RetriesTotal:  retriesTotal,
		TimeoutsTotal: timeoutsTotal,
		CRCFailTotal:  crcFailTotal,
		DataSent:      dataSent,
		DataDropped:   dataDropped,
		AckSent:       ackSent,
		AckDropped:    ackDropped,
		Variant:       opts.Variant,
		Seed:          opts.Seed,
		ScenarioLabel: opts.ScenarioLabel,
		Payload:       payload,
		Reassembled:   assembled,
	}

	if opts.TrackPhyTime {
		retries := retriesTotal
		if opts.Variant == VariantGBN {
			retries = timeoutsTotal
		}
		r.PhySeconds = phySeconds
		r.VirtualSeconds = phySeconds + float64(retries)*float64(opts.TimeoutMs)/1000.0
		if ok && r.VirtualSeconds > 0 {
			r.VirtualGoodputBps = float64(len(payload)) / r.VirtualSeconds
		}
	}

	return r
}

// wallClockNow returns the current Unix time in milliseconds. Nothing
// in this package calls it; RunOnce drives time only through the Clock
// interface.
func wallClockNow() int64 {
	return time.Now().UnixMilli()
}
