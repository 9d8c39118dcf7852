// Command ucc-call-notify registers the user's WebRTC slot and raises a
// desktop notification for every incoming call. Notifications stay up
// until the call is cancelled or answered elsewhere.
package main

import (
	"context"
	"log/slog"
	"os"

	"braces.dev/errtrace"
	"github.com/esiqveland/notify"
	"github.com/godbus/dbus/v5"
	"github.com/urfave/cli/v3"

	"github.com/telvora/ucc/internal/cliutil"
	"github.com/telvora/ucc/internal/log"
	"github.com/telvora/ucc/sip"
	"github.com/telvora/ucc/sipsock"
)

func main() {
	cmd := &cli.Command{
		Name:    sipsock.Name + "-call-notify",
		Usage:   "desktop notifications for incoming calls",
		Version: sipsock.Version,
		Flags:   cliutil.Flags(),
		Action:  run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Def.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	logger := cliutil.Logger(cmd)

	client, err := cliutil.Client(ctx, cmd)
	if err != nil {
		return errtrace.Wrap(err)
	}

	conn, inbound, err := client.Socket(ctx)
	if err != nil {
		return errtrace.Wrap(err)
	}
	defer conn.Close() //nolint:errcheck

	notif := newNotifier(logger)
	defer notif.close()

	for tx := range inbound {
		switch tx.Request().Method {
		case sip.RequestMethodOptions:
			if err := tx.Respond(sip.ResponseStatusAccepted).Send(ctx, nil); err != nil {
				return errtrace.Wrap(err)
			}

		case sip.RequestMethodInvite:
			if err := handleInvite(ctx, tx, notif); err != nil {
				return errtrace.Wrap(err)
			}

		case sip.RequestMethodCancel:
			if err := handleCancel(ctx, tx, notif); err != nil {
				return errtrace.Wrap(err)
			}

		default:
			logger.Debug("ignoring request", "method", tx.Request().Method)
		}
	}

	return errtrace.Wrap(sipsock.ErrConnectionClosed)
}

func handleInvite(ctx context.Context, tx *sipsock.ServerTransaction, notif *notifier) error {
	if err := tx.Respond(sip.ResponseStatusTrying).Send(ctx, nil); err != nil {
		return errtrace.Wrap(err)
	}
	if err := tx.Respond(sip.ResponseStatusRinging).Send(ctx, nil); err != nil {
		return errtrace.Wrap(err)
	}

	cseq, err := tx.Request().Headers().CSeq()
	if err != nil {
		return errtrace.Wrap(err)
	}
	notif.show(cseq.SeqNum, callerName(tx.Request()))
	return nil
}

func handleCancel(ctx context.Context, tx *sipsock.ServerTransaction, notif *notifier) error {
	if err := tx.Respond(sip.ResponseStatusAccepted).Send(ctx, nil); err != nil {
		return errtrace.Wrap(err)
	}

	cseq, err := tx.Request().Headers().CSeq()
	if err != nil {
		return errtrace.Wrap(err)
	}
	notif.dismiss(cseq.SeqNum)
	return nil
}

func callerName(req *sip.Request) string {
	from, err := req.Headers().From()
	if err != nil {
		return "Unknown"
	}
	if from.DisplayName != "" {
		return from.DisplayName
	}
	if from.URI.User != "" {
		return from.URI.User
	}
	return "Unknown"
}

// notifier tracks one desktop notification per pending call, keyed by the
// CSeq number the INVITE and its CANCEL share. When no session bus is
// available the notifier degrades to logging only.
type notifier struct {
	conn *dbus.Conn
	ids  map[uint32]uint32
	log  *slog.Logger
}

func newNotifier(logger *slog.Logger) *notifier {
	nf := &notifier{
		ids: make(map[uint32]uint32),
		log: logger,
	}

	conn, err := dbus.SessionBusPrivate()
	if err != nil {
		logger.Warn("no session bus, notifications disabled", "error", err)
		return nf
	}
	if err := conn.Auth(nil); err == nil {
		err = conn.Hello()
	}
	if err != nil {
		logger.Warn("session bus handshake failed, notifications disabled", "error", err)
		conn.Close() //nolint:errcheck
		return nf
	}

	nf.conn = conn
	return nf
}

func (nf *notifier) show(seq uint32, caller string) {
	nf.log.Info("incoming call", "from", caller, "seq", seq)
	if nf.conn == nil {
		return
	}

	id, err := notify.SendNotification(nf.conn, notify.Notification{
		AppName: sipsock.Name,
		Summary: "Incoming Call",
		Body:    caller,
		AppIcon: "phone",
		Hints: map[string]dbus.Variant{
			"resident": dbus.MakeVariant(true),
		},
		ExpireTimeout: notify.ExpireTimeoutNever,
	})
	if err != nil {
		nf.log.Warn("notification failed", "error", err)
		return
	}
	nf.ids[seq] = id
}

func (nf *notifier) dismiss(seq uint32) {
	nf.log.Info("call cancelled", "seq", seq)
	id, ok := nf.ids[seq]
	if !ok {
		return
	}
	delete(nf.ids, seq)

	if nf.conn != nil {
		obj := nf.conn.Object("org.freedesktop.Notifications", "/org/freedesktop/Notifications")
		if call := obj.Call("org.freedesktop.Notifications.CloseNotification", 0, id); call.Err != nil {
			nf.log.Warn("notification close failed", "error", call.Err)
		}
	}
}

func (nf *notifier) close() {
	if nf.conn != nil {
		nf.conn.Close() //nolint:errcheck
	}
}
