package hw

/*------------------------------------------------------------------
 *
 * Purpose:	Enumerate candidate serial (tty) devices for
 *		cmd/arqdevices, grounded on the teacher's device
 *		discovery needs (picking a TNC/soundcard out of several
 *		attached devices) using github.com/jochenvg/go-udev
 *		instead of the teacher's platform-specific probing.
 *
 *------------------------------------------------------------------*/

import (
	"fmt"

	"github.com/jochenvg/go-udev"
)

// SerialDevice describes one tty device node discovered via udev.
type SerialDevice struct {
	DevPath string
	VendorID string
	Serial   string
}

// ListSerialDevices enumerates tty subsystem devices.
func ListSerialDevices() ([]SerialDevice, error) {
	u := udev.Udev{}
	e := u.NewEnumerate()
	if err := e.AddMatchSubsystem("tty"); err != nil {
		return nil, fmt.Errorf("hw: udev match subsystem: %w", err)
	}

	devices, err := e.Devices()
	if err != nil {
		return nil, fmt.Errorf("hw: udev enumerate: %w", err)
	}

	var out []SerialDevice
	for _, d := range devices {
		devNode := d.Devnode()
		if devNode == "" {
			continue
		}
		out = append(out, SerialDevice{
			DevPath:  devNode,
			VendorID: d.PropertyValue("ID_VENDOR_ID"),
			Serial:   d.PropertyValue("ID_SERIAL_SHORT"),
		})
	}
	return out, nil
}
