// Package cliutil wires the command-line surface shared by the ucc binaries:
// flags, logger selection and the bootstrapped API client.
package cliutil

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"

	"braces.dev/errtrace"
	"github.com/urfave/cli/v3"

	"github.com/telvora/ucc/internal/errorutil"
	"github.com/telvora/ucc/internal/log"
	"github.com/telvora/ucc/ucware"
)

// tokenFile is the bearer token store in the working directory.
const tokenFile = ".token"

// ErrNoToken is returned when neither --token nor a stored token is available.
const ErrNoToken errorutil.Error = "no token specified and no store available"

// Flags returns the flags shared by all ucc commands.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "url",
			Aliases:  []string{"u"},
			Usage:    "base URL of the UCware server",
			Required: true,
		},
		&cli.StringFlag{
			Name:    "token",
			Aliases: []string{"t"},
			Usage:   "API bearer token, stored for later runs",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "enable debug logging",
		},
		&cli.BoolFlag{
			Name:  "dev",
			Usage: "enable verbose developer logging",
		},
	}
}

// Logger selects the logger matching the verbosity flags.
func Logger(cmd *cli.Command) *slog.Logger {
	switch {
	case cmd.Bool("dev"):
		return log.Dev
	case cmd.Bool("verbose"):
		return log.New(slog.LevelDebug)
	default:
		return log.Def
	}
}

// Client bootstraps the API client from the command flags: it opens or
// seeds the token store, builds the client and refreshes the token.
func Client(ctx context.Context, cmd *cli.Command) (*ucware.Client, error) {
	var (
		store *ucware.TokenStore
		err   error
	)
	if token := cmd.String("token"); token != "" {
		store, err = ucware.NewTokenStore(tokenFile, token)
	} else {
		store, err = ucware.OpenTokenStore(tokenFile)
		if errors.Is(err, fs.ErrNotExist) {
			err = ErrNoToken
		}
	}
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	client, err := ucware.NewClient(cmd.String("url"), store, &ucware.ClientOptions{
		Log: Logger(cmd),
	})
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	if err := client.RefreshToken(ctx); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return client, nil
}
