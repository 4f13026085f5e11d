package hw

/*------------------------------------------------------------------
 *
 * Purpose:	CAT-controlled PTT via Hamlib, an alternative Keyer
 *		(hw/ptt.go) for rigs that key over a CAT port rather than
 *		a GPIO or serial control line. Grounded on the teacher's
 *		HAMLIB support note in ptt.go (version 1.3) and its
 *		rigcontrol wrapper concept.
 *
 *------------------------------------------------------------------*/

import (
	"fmt"

	hamlib "github.com/xylo04/goHamlib"
)

// RigKeyer keys PTT through an open Hamlib rig handle.
type RigKeyer struct {
	rig *hamlib.Rig
}

// OpenRigKeyer opens a rig of the given Hamlib model number on port
// (e.g. "/dev/ttyUSB0").
func OpenRigKeyer(model int, port string) (*RigKeyer, error) {
	rig := hamlib.NewRig(model)
	rig.SetConf("rig_pathname", port)
	if err := rig.Open(); err != nil {
		return nil, fmt.Errorf("hw: hamlib open: %w", err)
	}
	return &RigKeyer{rig: rig}, nil
}

// Key asserts PTT on VFO current.
func (k *RigKeyer) Key() error {
	if err := k.rig.SetPTT(hamlib.VFOCurr, hamlib.PTTOn); err != nil {
		return fmt.Errorf("hw: hamlib set ptt on: %w", err)
	}
	return nil
}

// Unkey releases PTT on VFO current.
func (k *RigKeyer) Unkey() error {
	if err := k.rig.SetPTT(hamlib.VFOCurr, hamlib.PTTOff); err != nil {
		return fmt.Errorf("hw: hamlib set ptt off: %w", err)
	}
	return nil
}

// Close releases PTT and closes the rig handle.
func (k *RigKeyer) Close() error {
	_ = k.Unkey()
	k.rig.Close()
	return nil
}
