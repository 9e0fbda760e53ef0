package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"cryptoprobe/internal/crypto"
	"cryptoprobe/internal/textio"
)

func cmdDecrypt() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt a base64 file with a known AES key",
	}
	cmd.AddCommand(cmdDecryptMode("ecb"))
	cmd.AddCommand(cmdDecryptMode("cbc"))
	return cmd
}

func cmdDecryptMode(mode string) *cobra.Command {
	var file, key, ivHex string
	cmd := &cobra.Command{
		Use:   mode,
		Short: fmt.Sprintf("AES-%s decrypt and strip PKCS#7 padding", mode),
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" || key == "" {
				return exitCodeErr(3, fmt.Errorf("--file and --key required"))
			}
			ct, err := textio.ReadBase64File(file)
			if err != nil {
				return exitCodeErr(3, err)
			}
			var pt []byte
			if mode == "cbc" {
				iv := make([]byte, 16)
				if ivHex != "" {
					if iv, err = hex.DecodeString(ivHex); err != nil {
						return exitCodeErr(3, fmt.Errorf("--iv: %w", err))
					}
				}
				pt, err = crypto.DecryptCBC([]byte(key), iv, ct)
			} else {
				pt, err = crypto.DecryptECB([]byte(key), ct)
			}
			if err != nil {
				return exitCodeErr(4, err)
			}
			_, err = cmd.OutOrStdout().Write(pt)
			return err
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "base64 ciphertext file")
	cmd.Flags().StringVar(&key, "key", env("CPROBE_KEY", ""), "AES key as text, e.g. YELLOW SUBMARINE")
	if mode == "cbc" {
		cmd.Flags().StringVar(&ivHex, "iv", "", "hex IV (default all zeros)")
	}
	return cmd
}
