package commands

import (
	"errors"
	"fmt"

	"github.com/kitodo/dlfcheck/internal/secret"
	"github.com/spf13/cobra"
)

var encryptCmd = &cobra.Command{
	Use:           "encrypt <text>",
	Short:         "Encrypt text with the configured key",
	GroupID:       "util",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `Encrypt text with the key from DLFCHECK_ENCRYPTION_KEY or the [secret]
section of the configuration file. Prints the encrypted text and its control
hash on separate lines; both are needed to decrypt.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sealed, err := secret.Encrypt(cfg.Secret.EncryptionKey, args[0])
		if err != nil {
			return secretError(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), sealed.Encrypted)
		fmt.Fprintln(cmd.OutOrStdout(), sealed.Hash)
		return nil
	},
}

var decryptCmd = &cobra.Command{
	Use:           "decrypt <encrypted> <hash>",
	Short:         "Decrypt text produced by encrypt",
	GroupID:       "util",
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		plaintext, err := secret.Decrypt(cfg.Secret.EncryptionKey, args[0], args[1])
		if err != nil {
			return secretError(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), plaintext)
		return nil
	},
}

func secretError(err error) error {
	switch {
	case errors.Is(err, secret.ErrNoKey):
		return ExitWithCode(2, fmt.Errorf("%w: set DLFCHECK_ENCRYPTION_KEY or secret.encryption_key", err))
	case errors.Is(err, secret.ErrInvalidInput), errors.Is(err, secret.ErrHashMismatch):
		return ExitWithCode(1, err)
	default:
		return err
	}
}
