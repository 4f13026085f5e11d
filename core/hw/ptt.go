package hw

/*------------------------------------------------------------------
 *
 * Purpose:	Push-to-talk keying, generalized from the teacher's
 *		ptt.go: a radio needs PTT asserted before the transducer
 *		transmits and released immediately after, regardless of
 *		whether the signal is wired through a GPIO line, a serial
 *		control line, or CAT commands to a rig.
 *
 * Description:	Keyer is the common interface; GPIOKeyer is the only
 *		concrete implementation here (teacher's ptt.go covers
 *		RTS/DTR/parallel-port/GPIO/CM108 variants -- GPIO is the
 *		one with a real Go module in this pack,
 *		github.com/warthog618/go-gpiocdev).
 *
 *------------------------------------------------------------------*/

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// Keyer asserts or releases PTT around a transmission.
type Keyer interface {
	Key() error
	Unkey() error
	Close() error
}

// gpioLine is the subset of *gpiocdev.Line a GPIOKeyer needs, broken
// out so tests can substitute a mock without the gpio-sim kernel
// module (same approach as the teacher's ptt_test.go mockGPIODLine).
type gpioLine interface {
	SetValue(int) error
	Close() error
}

// GPIOKeyer drives PTT from a Linux GPIO character device line.
type GPIOKeyer struct {
	line   gpioLine
	invert bool
}

// OpenGPIOKeyer requests offset as an output line on chip (e.g.
// "gpiochip0"), initially de-asserted.
func OpenGPIOKeyer(chip string, offset int, invert bool) (*GPIOKeyer, error) {
	initial := 0
	if invert {
		initial = 1
	}
	line, err := gpiocdev.RequestLine(chip, offset, gpiocdev.AsOutput(initial))
	if err != nil {
		return nil, fmt.Errorf("hw: request gpio line: %w", err)
	}
	return &GPIOKeyer{line: line, invert: invert}, nil
}

func (k *GPIOKeyer) setValue(asserted bool) error {
	v := 0
	if asserted != k.invert {
		v = 1
	}
	return k.line.SetValue(v)
}

// Key asserts PTT.
func (k *GPIOKeyer) Key() error { return k.setValue(true) }

// Unkey releases PTT.
func (k *GPIOKeyer) Unkey() error { return k.setValue(false) }

// Close releases the GPIO line, unkeying first.
func (k *GPIOKeyer) Close() error {
	_ = k.Unkey()
	return k.line.Close()
}
