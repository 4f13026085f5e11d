package hw

/*------------------------------------------------------------------
 *
 * Purpose:	Peer discovery for a pair of stations on the same LAN
 *		segment, grounded on the teacher's dns_sd.go /
 *		dns_sd_avahi.go (Direwolf advertises its AGW/KISS network
 *		ports over DNS-SD so client apps can find it without a
 *		hardcoded address).
 *
 * Description:	Advertises one station's control endpoint as a
 *		"_arqlink._tcp" service and browses for peers. This is
 *		strictly a convenience layer above core: nothing in core
 *		depends on it, and it has no bearing on frame/ARQ
 *		semantics.
 *
 *------------------------------------------------------------------*/

import (
	"context"
	"fmt"

	"github.com/brutella/dnssd"
)

const serviceType = "_arqlink._tcp"

// Advertiser publishes this station's presence over mDNS/DNS-SD.
type Advertiser struct {
	responder dnssd.Responder
}

// NewAdvertiser registers a service named name on port, advertising
// under _arqlink._tcp.local.
func NewAdvertiser(ctx context.Context, name string, port int) (*Advertiser, error) {
	cfg := dnssd.Config{
		Name: name,
		Type: serviceType,
		Port: port,
	}
	service, err := dnssd.NewService(cfg)
	if err != nil {
		return nil, fmt.Errorf("hw: build dnssd service: %w", err)
	}

	responder, err := dnssd.NewResponder()
	if err != nil {
		return nil, fmt.Errorf("hw: new dnssd responder: %w", err)
	}
	if _, err := responder.Add(service); err != nil {
		return nil, fmt.Errorf("hw: add dnssd service: %w", err)
	}

	go func() {
		_ = responder.Respond(ctx)
	}()

	return &Advertiser{responder: responder}, nil
}

// Peer describes one discovered station.
type Peer struct {
	Name string
	Host string
	Port int
}

// Browse collects peers advertising _arqlink._tcp until ctx is
// cancelled, invoking onPeer for each one found.
func Browse(ctx context.Context, onPeer func(Peer)) error {
	addFn := func(e dnssd.BrowseEntry) {
		onPeer(Peer{Name: e.Name, Host: e.IPs[0].String(), Port: int(e.Port)})
	}
	rmvFn := func(dnssd.BrowseEntry) {}

	if err := dnssd.LookupType(ctx, serviceType, addFn, rmvFn); err != nil {
		return fmt.Errorf("hw: dnssd lookup: %w", err)
	}
	return nil
}
