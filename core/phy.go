package core

/*------------------------------------------------------------------
 *
 * Purpose:	The opaque physical-layer transducer boundary.
 *
 * Description:	The core treats the acoustic modem (or any other PHY)
 *		purely as a text-in/bytes-out transducer (spec.md
 *		section 6): Encode turns ASCII-armored text into a
 *		sample buffer, Decode turns a received sample buffer
 *		back into text or reports failure.  The orchestrator
 *		reads only len(samples) for duration accounting -- it
 *		never inspects sample content -- and hands the sample
 *		buffer itself to the Channel untouched.
 *
 *		Invoked only from the orchestrator's main loop, never
 *		concurrently (spec.md section 5); implementations may be
 *		non-reentrant.
 *
 *		Concrete transducers (real soundcard, serial TNC, rig
 *		control, pty loopback) live in core/hw and implement
 *		this same interface; they are swapped in by the caller
 *		of RunOnce, never referenced from this package.
 *
 *------------------------------------------------------------------*/

// Transducer is the opaque PHY boundary.
type Transducer interface {
	// Encode renders text as a sample buffer. The orchestrator uses
	// only len(samples)/SampleRate() for duration accounting.
	Encode(text string, protocolID, volume int) (samples []byte, err error)

	// Decode attempts to recover text from a received sample
	// buffer. ok is false if nothing could be recovered (noise,
	// garbled transmission), mirroring the PHY's decode returning
	// null.
	Decode(samples []byte) (text string, ok bool, err error)

	// SampleRate converts a sample count into a duration in
	// seconds: seconds = len(samples) / SampleRate().
	SampleRate() int
}

// IdentityTransducer is a byte-transparent stand-in for the acoustic
// PHY: Encode/Decode pass bytes straight through. A test harness
// substitutes this for the real transducer (spec.md section 1). The
// orchestrator armors frames for any non-nil transducer, this one
// included; only a nil Transducer skips armoring.
type IdentityTransducer struct {
	// Rate is reported by SampleRate; 0 defaults to 48000.
	Rate int
}

// Encode returns text's bytes unchanged.
func (t *IdentityTransducer) Encode(text string, _ int, _ int) ([]byte, error) {
	return []byte(text), nil
}

// Decode returns samples reinterpreted as text; always succeeds, since
// corruption/loss is modeled upstream at the Channel, not at this PHY.
func (t *IdentityTransducer) Decode(samples []byte) (string, bool, error) {
	return string(samples), true, nil
}

// SampleRate reports the configured (or default) sample rate.
func (t *IdentityTransducer) SampleRate() int {
	if t.Rate <= 0 {
		return 48000
	}
	return t.Rate
}
