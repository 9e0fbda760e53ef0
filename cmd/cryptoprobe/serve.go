package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"cryptoprobe/internal/oracle"
	"cryptoprobe/internal/probes/ecbsuffix"
	"cryptoprobe/internal/serve"
	"cryptoprobe/internal/textio"
)

func cmdServe() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run long-lived helpers",
	}
	cmd.AddCommand(cmdServeOracle())
	return cmd
}

func cmdServeOracle() *cobra.Command {
	var addr, kind, secretB64, keySeed, requestLog string
	cmd := &cobra.Command{
		Use:   "oracle",
		Short: "Serve a secret-suffix oracle over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := oracle.ParseKind(kind)
			if err != nil {
				return exitCodeErr(3, err)
			}
			if secretB64 == "" {
				secretB64 = ecbsuffix.DefaultSecret
			}
			secret, err := textio.DecodeBase64(secretB64)
			if err != nil {
				return exitCodeErr(3, fmt.Errorf("--secret: %w", err))
			}
			o, err := oracle.Local(k, secret, keySeed)
			if err != nil {
				return exitCodeErr(3, err)
			}

			var logw io.Writer
			switch requestLog {
			case "":
			case "-":
				logw = os.Stdout
			default:
				f, err := os.OpenFile(requestLog, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
				if err != nil {
					return exitCodeErr(3, err)
				}
				defer f.Close()
				logw = f
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := serve.Serve(ctx, addr, o, logw); err != nil && ctx.Err() == nil {
				return exitCodeErr(4, err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", env("CPROBE_ADDR", ":8080"), "listen address")
	cmd.Flags().StringVar(&kind, "kind", env("CPROBE_ORACLE", "ecb"), "oracle kind: ecb or aead")
	cmd.Flags().StringVar(&secretB64, "secret", env("CPROBE_SECRET", ""), "base64 secret appended to every prefix (default: built-in text)")
	cmd.Flags().StringVar(&keySeed, "key-seed", env("CPROBE_KEY_SEED", ""), "derive the key from this seed instead of at random")
	cmd.Flags().StringVar(&requestLog, "request-log", "-", "JSON-lines request log path, - for stdout, empty to disable")
	return cmd
}

