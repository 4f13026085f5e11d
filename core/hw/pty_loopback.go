package hw

/*------------------------------------------------------------------
 *
 * Purpose:	A pty-backed transducer: exercises core.Transducer over a
 *		real pseudo-terminal pair instead of an identity
 *		in-process swap, for integration tests and local
 *		development without a soundcard or radio attached.
 *
 * Description:	Encode writes armored text to the controlling side of
 *		the pty and returns the bytes written as "samples" (the
 *		core only ever measures len(samples)); Decode reads back
 *		whatever the pty's far end echoes. Grounded on the
 *		teacher's serial_port.go, which opens a line discipline
 *		for KISS framing the same way this opens one for ARQ
 *		frames.
 *
 *------------------------------------------------------------------*/

import (
	"bufio"
	"fmt"
	"os"

	"github.com/creack/pty"
)

// PtyLoopback wires a pty pair so a byte written to the controlling
// end of the terminal can be read back from the subordinate end,
// standing in for a real over-the-air round trip.
type PtyLoopback struct {
	Rate int

	ptmx *os.File
	tty  *os.File
	r    *bufio.Reader
}

// OpenPtyLoopback allocates a fresh pty pair.
func OpenPtyLoopback(rate int) (*PtyLoopback, error) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		return nil, fmt.Errorf("hw: open pty: %w", err)
	}
	return &PtyLoopback{
		Rate: rate,
		ptmx: ptmx,
		tty:  tty,
		r:    bufio.NewReader(tty),
	}, nil
}

// Close releases both ends of the pty.
func (p *PtyLoopback) Close() error {
	ptyErr := p.ptmx.Close()
	ttyErr := p.tty.Close()
	if ptyErr != nil {
		return ptyErr
	}
	return ttyErr
}

// Encode writes text followed by a newline frame delimiter and reports
// the bytes written as the sample count.
func (p *PtyLoopback) Encode(text string, _ int, _ int) ([]byte, error) {
	line := text + "\n"
	if _, err := p.ptmx.Write([]byte(line)); err != nil {
		return nil, fmt.Errorf("hw: pty write: %w", err)
	}
	return []byte(line), nil
}

// Decode reads one newline-delimited frame back from the subordinate
// side. samples is unused; the pty is the actual transport here.
func (p *PtyLoopback) Decode(_ []byte) (string, bool, error) {
	line, err := p.r.ReadString('\n')
	if err != nil {
		return "", false, fmt.Errorf("hw: pty read: %w", err)
	}
	return line[:len(line)-1], true, nil
}

// SampleRate reports the configured (or default) virtual sample rate
// used for duration accounting.
func (p *PtyLoopback) SampleRate() int {
	if p.Rate <= 0 {
		return 48000
	}
	return p.Rate
}
