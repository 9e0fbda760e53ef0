package main

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	ecbattack "cryptoprobe/internal/attack/ecbsuffix"
	"cryptoprobe/internal/attack/xorcrack"
	"cryptoprobe/internal/probes/caesar"
	"cryptoprobe/internal/probes/ecbmode"
	"cryptoprobe/internal/probes/ecbsuffix"
	"cryptoprobe/internal/probes/xor"
	"cryptoprobe/internal/report"
	"cryptoprobe/internal/textio"
	"cryptoprobe/pkg/logx"
)

func cmdProbe() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Run an attack and write a report",
	}
	cmd.AddCommand(cmdProbeECBSuffix())
	cmd.AddCommand(cmdProbeXORSingle())
	cmd.AddCommand(cmdProbeXORRepeating())
	cmd.AddCommand(cmdProbeCaesar())
	cmd.AddCommand(cmdProbeECBMode())
	return cmd
}

// runProbe applies the global timeout and maps probe failures to exit code 4.
// Partial results returned alongside an error are still written.
func runProbe(cmd *cobra.Command, run func(ctx context.Context) (*report.Results, error)) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), flagTimeout)
	defer cancel()
	res, err := run(ctx)
	if err != nil {
		if res != nil {
			if werr := writeReports(res); werr != nil && exitCode(werr) != 2 {
				logx.Warnf("writing partial report: %v", werr)
			}
		}
		return exitCodeErr(4, err)
	}
	return writeReports(res)
}

func cmdProbeECBSuffix() *cobra.Command {
	var secretB64, keySeed string
	var maxBlock int
	cmd := &cobra.Command{
		Use:   "ecb-suffix",
		Short: "Recover the secret an ECB oracle appends to chosen input",
		RunE: func(cmd *cobra.Command, args []string) error {
			var secret []byte
			if secretB64 != "" {
				s, err := textio.DecodeBase64(secretB64)
				if err != nil {
					return exitCodeErr(3, fmt.Errorf("--secret: %w", err))
				}
				secret = s
			}
			return runProbe(cmd, func(ctx context.Context) (*report.Results, error) {
				return ecbsuffix.Run(ctx, ecbsuffix.Options{
					Targets:      splitCSV(flagTargets),
					Secret:       secret,
					KeySeed:      keySeed,
					MaxBlockSize: maxBlock,
					DryRun:       flagDryRun,
					Logger:       logx.Named("ecbsuffix"),
				})
			})
		},
	}
	cmd.Flags().StringVar(&secretB64, "secret", env("CPROBE_SECRET", ""), "base64 secret for local oracles (default: built-in text)")
	cmd.Flags().StringVar(&keySeed, "key-seed", env("CPROBE_KEY_SEED", ""), "derive local oracle keys from this seed instead of at random")
	cmd.Flags().IntVar(&maxBlock, "max-block-size", envInt("CPROBE_MAX_BLOCK_SIZE", ecbattack.MaxBlockSize), "largest block size to try")
	return cmd
}

func cmdProbeXORSingle() *cobra.Command {
	var hexCT, file string
	cmd := &cobra.Command{
		Use:   "xor-single",
		Short: "Crack single-byte XOR in one hex ciphertext or find it among hex lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			var lines [][]byte
			target := file
			switch {
			case hexCT != "":
				b, err := hex.DecodeString(hexCT)
				if err != nil {
					return exitCodeErr(3, fmt.Errorf("--hex: %w", err))
				}
				lines, target = [][]byte{b}, "hex"
			case file != "":
				ls, err := textio.ReadHexLines(file)
				if err != nil {
					return exitCodeErr(3, err)
				}
				lines = ls
			default:
				return exitCodeErr(3, fmt.Errorf("--hex or --file required"))
			}
			return runProbe(cmd, func(ctx context.Context) (*report.Results, error) {
				return xor.Run(ctx, xor.Options{Lines: lines, Target: target})
			})
		},
	}
	cmd.Flags().StringVar(&hexCT, "hex", "", "hex ciphertext")
	cmd.Flags().StringVar(&file, "file", "", "file of hex ciphertexts, one per line")
	return cmd
}

func cmdProbeXORRepeating() *cobra.Command {
	var file string
	var opts xorcrack.RepeatingOptions
	cmd := &cobra.Command{
		Use:   "xor-repeating",
		Short: "Recover a repeating XOR key from a base64 file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return exitCodeErr(3, fmt.Errorf("--file required"))
			}
			ct, err := textio.ReadBase64File(file)
			if err != nil {
				return exitCodeErr(3, err)
			}
			return runProbe(cmd, func(ctx context.Context) (*report.Results, error) {
				return xor.Run(ctx, xor.Options{Repeating: ct, KeySizes: opts, Target: file})
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "base64 ciphertext file")
	cmd.Flags().IntVar(&opts.MinKeySize, "min-key", 2, "smallest key size to try")
	cmd.Flags().IntVar(&opts.MaxKeySize, "max-key", 40, "largest key size to try")
	cmd.Flags().IntVar(&opts.Samples, "samples", 5, "chunk pairs compared per key size")
	cmd.Flags().IntVar(&opts.Top, "top", 3, "key sizes to attempt")
	return cmd
}

func cmdProbeCaesar() *cobra.Command {
	return &cobra.Command{
		Use:   "caesar TEXT...",
		Short: "Crack Caesar-shifted text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProbe(cmd, func(ctx context.Context) (*report.Results, error) {
				return caesar.Run(ctx, caesar.Options{Texts: args})
			})
		},
	}
}

func cmdProbeECBMode() *cobra.Command {
	var file string
	var samples, blockSize int
	cmd := &cobra.Command{
		Use:   "ecb-mode",
		Short: "Find ECB ciphertexts by repeated blocks",
		RunE: func(cmd *cobra.Command, args []string) error {
			var lines [][]byte
			if file != "" {
				ls, err := textio.ReadHexLines(file)
				if err != nil {
					return exitCodeErr(3, err)
				}
				lines = ls
			}
			if len(lines) == 0 && samples <= 0 {
				return exitCodeErr(3, fmt.Errorf("--file or --samples required"))
			}
			return runProbe(cmd, func(ctx context.Context) (*report.Results, error) {
				return ecbmode.Run(ctx, ecbmode.Options{Lines: lines, Samples: samples, BlockSize: blockSize, Target: file})
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "file of hex ciphertexts, one per line")
	cmd.Flags().IntVar(&samples, "samples", 0, "random-mode oracle queries to classify")
	cmd.Flags().IntVar(&blockSize, "block-size", ecbmode.DefaultBlockSize, "cipher block size")
	return cmd
}

