// Command ucc lists the provisioned device slots of a UCware user.
package main

import (
	"context"
	"fmt"
	"os"

	"braces.dev/errtrace"
	"github.com/samber/lo"
	"github.com/urfave/cli/v3"

	"github.com/telvora/ucc/internal/cliutil"
	"github.com/telvora/ucc/internal/log"
	"github.com/telvora/ucc/sipsock"
	"github.com/telvora/ucc/ucware"
)

func main() {
	cmd := &cli.Command{
		Name:    sipsock.Name,
		Usage:   "inspect UCware device slots",
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
	client, err := cliutil.Client(ctx, cmd)
	if err != nil {
		return errtrace.Wrap(err)
	}

	slots, err := client.User().Slots().GetAll(ctx)
	if err != nil {
		return errtrace.Wrap(err)
	}
	for _, slot := range slots {
		fmt.Printf("Slot %d %q: device=%s sip=%s@%s:%d\n",
			slot.ID, slot.Name, slot.DeviceType, slot.SIPUser, slot.SIPHost, slot.SIPPort)
	}

	if _, ok := lo.Find(slots, func(slot ucware.Slot) bool { return slot.Name == "UCC-Client" }); !ok {
		return errtrace.Wrap(ucware.ErrNoMatchingSlot)
	}
	return nil
}
