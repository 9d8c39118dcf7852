package ucware

import (
	"context"
	"fmt"

	"braces.dev/errtrace"
	"github.com/samber/lo"

	"github.com/telvora/ucc/dns"
	"github.com/telvora/ucc/sipsock"
)

// defSIPPort is used when neither the slot nor DNS name a signaling port.
const defSIPPort uint16 = 443

// Socket picks the user's WebRTC slot, connects its SIP signaling socket
// and registers it. The connection and the inbound request channel are
// returned ready for use.
func (c *Client) Socket(ctx context.Context) (*sipsock.Connection, <-chan *sipsock.ServerTransaction, error) {
	slots, err := c.User().Slots().GetAll(ctx)
	if err != nil {
		return nil, nil, errtrace.Wrap(err)
	}

	slot, ok := lo.Find(slots, func(slot Slot) bool { return slot.DeviceType == "webrtc" })
	if !ok {
		return nil, nil, errtrace.Wrap(ErrNoMatchingSlot)
	}
	c.log.Debug("slot selected", "id", slot.ID, "name", slot.Name)

	host := c.baseURL.Hostname()
	port := slot.SIPPort
	if port == 0 {
		port = c.discoverPort(ctx, host)
	}

	conn, inbound, err := sipsock.Connect(ctx,
		fmt.Sprintf("wss://%s:%d/sipsockets/", host, port),
		slot.SIPUser,
		&sipsock.Options{Log: c.log})
	if err != nil {
		return nil, nil, errtrace.Wrap(err)
	}

	if err := conn.Register(ctx, slot.SIPUser, slot.SIPPassword); err != nil {
		conn.Close() //nolint:errcheck
		return nil, nil, errtrace.Wrap(err)
	}

	return conn, inbound, nil
}

// discoverPort falls back to a "_sips._tcp" SRV lookup when the slot does
// not carry a signaling port.
func (c *Client) discoverPort(ctx context.Context, host string) uint16 {
	srvs, err := dns.LookupSRV(ctx, "sips", "tcp", host)
	if err != nil || len(srvs) == 0 {
		c.log.Debug("SRV discovery failed, using default port", "host", host, "error", err)
		return defSIPPort
	}
	return srvs[0].Port
}
