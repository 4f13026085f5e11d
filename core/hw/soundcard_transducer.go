package hw

/*------------------------------------------------------------------
 *
 * Purpose:	The real acoustic-modem transducer: plays armored frame
 *		text out a soundcard and records the far end's reply,
 *		the out-of-scope "opaque physical layer" spec.md section
 *		1 names explicitly. Grounded on the teacher's audio.go,
 *		which opens the same kind of portaudio duplex stream.
 *
 * Description:	The actual tone encoding (FSK, PSK, ggwave, ...) is a
 *		third-party modem concern and is intentionally NOT
 *		implemented here -- this struct only proves out the
 *		soundcard I/O boundary the real modem would plug into.
 *		TextToSamples/SamplesToText are the seams a real codec
 *		replaces.
 *
 *------------------------------------------------------------------*/

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// SoundcardTransducer drives a duplex portaudio stream. The codec
// fields are swappable function seams so a real modem encoder can be
// plugged in without touching the stream lifecycle.
type SoundcardTransducer struct {
	Rate int

	TextToSamples func(text string) []byte
	SamplesToText func(samples []byte) (string, bool)

	stream *portaudio.Stream
	in     []float32
	out    []float32
}

// OpenSoundcardTransducer initializes portaudio and opens the default
// duplex stream at the given sample rate.
func OpenSoundcardTransducer(rate int, framesPerBuffer int) (*SoundcardTransducer, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("hw: portaudio init: %w", err)
	}

	t := &SoundcardTransducer{
		Rate: rate,
		in:   make([]float32, framesPerBuffer),
		out:  make([]float32, framesPerBuffer),
	}

	stream, err := portaudio.OpenDefaultStream(1, 1, float64(rate), framesPerBuffer, t.in, t.out)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("hw: open default stream: %w", err)
	}
	t.stream = stream

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("hw: start stream: %w", err)
	}

	return t, nil
}

// Close stops the stream and releases portaudio.
func (t *SoundcardTransducer) Close() error {
	if err := t.stream.Stop(); err != nil {
		return err
	}
	if err := t.stream.Close(); err != nil {
		return err
	}
	return portaudio.Terminate()
}

// Encode renders text to PCM samples via TextToSamples (or a silent
// byte-passthrough default) and plays them.
func (t *SoundcardTransducer) Encode(text string, _ int, _ int) ([]byte, error) {
	codec := t.TextToSamples
	if codec == nil {
		codec = func(s string) []byte { return []byte(s) }
	}
	samples := codec(text)

	for i := range t.out {
		if i < len(samples) {
			t.out[i] = float32(samples[i]) / 255.0
		} else {
			t.out[i] = 0
		}
	}
	if err := t.stream.Write(); err != nil {
		return nil, fmt.Errorf("hw: stream write: %w", err)
	}
	return samples, nil
}

// Decode reads one buffer of recorded audio and attempts to recover
// text via SamplesToText (or a silent byte-passthrough default).
func (t *SoundcardTransducer) Decode(_ []byte) (string, bool, error) {
	if err := t.stream.Read(); err != nil {
		return "", false, fmt.Errorf("hw: stream read: %w", err)
	}

	samples := make([]byte, len(t.in))
	for i, v := range t.in {
		samples[i] = byte(v * 255.0)
	}

	codec := t.SamplesToText
	if codec == nil {
		codec = func(b []byte) (string, bool) { return string(b), true }
	}
	return codec(samples)
}

// SampleRate reports the stream's configured sample rate.
func (t *SoundcardTransducer) SampleRate() int {
	if t.Rate <= 0 {
		return 48000
	}
	return t.Rate
}
