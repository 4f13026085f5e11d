package hw

/*------------------------------------------------------------------
 *
 * Purpose:	A transducer driving a real serial-attached TNC (or any
 *		line-oriented modem) instead of an acoustic soundcard
 *		modem, grounded on the teacher's serial_port.go /
 *		kissserial.go (both open a tty and frame bytes over it).
 *
 * Description:	Armored frames are newline-delimited ASCII, matching
 *		spec.md section 6's base64 hop; the wire format the modem
 *		actually speaks (KISS, AX.25, ...) is out of scope here --
 *		this transducer is the opaque boundary the core is
 *		allowed to know nothing about.
 *
 *------------------------------------------------------------------*/

import (
	"bufio"
	"fmt"

	"github.com/pkg/term"
)

// SerialTransducer drives a line-oriented TNC over a real serial port.
type SerialTransducer struct {
	Rate int

	port *term.Term
	r    *bufio.Reader
}

// OpenSerialTransducer opens device at the given baud rate.
func OpenSerialTransducer(device string, baud int, rate int) (*SerialTransducer, error) {
	t, err := term.Open(device, term.Speed(baud), term.RawMode)
	if err != nil {
		return nil, fmt.Errorf("hw: open serial %s: %w", device, err)
	}
	return &SerialTransducer{
		Rate: rate,
		port: t,
		r:    bufio.NewReader(t),
	}, nil
}

// Close releases the serial port.
func (s *SerialTransducer) Close() error {
	return s.port.Close()
}

// Encode writes one newline-delimited ASCII frame to the serial port.
func (s *SerialTransducer) Encode(text string, _ int, _ int) ([]byte, error) {
	line := text + "\n"
	if _, err := s.port.Write([]byte(line)); err != nil {
		return nil, fmt.Errorf("hw: serial write: %w", err)
	}
	return []byte(line), nil
}

// Decode reads one newline-delimited ASCII frame from the serial port.
func (s *SerialTransducer) Decode(_ []byte) (string, bool, error) {
	line, err := s.r.ReadString('\n')
	if err != nil {
		return "", false, fmt.Errorf("hw: serial read: %w", err)
	}
	return line[:len(line)-1], true, nil
}

// SampleRate reports the configured (or default) virtual sample rate.
func (s *SerialTransducer) SampleRate() int {
	if s.Rate <= 0 {
		return 48000
	}
	return s.Rate
}
