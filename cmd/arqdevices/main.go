package main

/*------------------------------------------------------------------
 *
 * Purpose:	Lists candidate serial devices and browses for peer
 *		stations already advertising themselves, so an operator
 *		can pick a device/peer before starting a real (non-
 *		simulated) run. Analogous to the teacher's own device
 *		enumeration needs before a direwolf.conf is written by
 *		hand.
 *
 *------------------------------------------------------------------*/

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/kb9jwq/aclink/core/hw"
)

func main() {
	var browseSeconds = pflag.IntP("browse-seconds", "b", 3, "Seconds to browse for _arqlink._tcp peers.")
	var help = pflag.BoolP("help", "h", false, "Display help text.")
	pflag.Parse()

	if *help {
		pflag.PrintDefaults()
		return
	}

	devices, err := hw.ListSerialDevices()
	if err != nil {
		fmt.Fprintln(os.Stderr, "arqdevices: list serial devices:", err)
	} else {
		fmt.Println("serial devices:")
		for _, d := range devices {
			fmt.Printf("  %s  vendor=%s serial=%s\n", d.DevPath, d.VendorID, d.Serial)
		}
	}

	fmt.Printf("browsing for peers (%ds)...\n", *browseSeconds)
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(*browseSeconds)*time.Second)
	defer cancel()

	err = hw.Browse(ctx, func(p hw.Peer) {
		fmt.Printf("  peer %s at %s:%d\n", p.Name, p.Host, p.Port)
	})
	if err != nil && ctx.Err() == nil {
		fmt.Fprintln(os.Stderr, "arqdevices: browse:", err)
	}
}
