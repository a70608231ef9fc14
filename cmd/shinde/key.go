package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/Siasom1/shinde-chain/account"
	"github.com/Siasom1/shinde-chain/params"
	"github.com/spf13/cobra"
)

func (c *cli) keyCmd() *cobra.Command {
	keyCmd := &cobra.Command{
		Use:   "key",
		Short: "Key and address utilities",
	}

	var (
		scheme string
		format uint16
	)
	inspect := &cobra.Command{
		Use:   "inspect <secret-uri|address>",
		Short: "Show the public key and address of a secret URI or SS58 address",
		Long: `Secret URIs look like "//Alice", "<phrase>//hard//path///password" or a
0x-prefixed 32 byte seed with a derivation path. Only hard junctions are supported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := account.ParseScheme(scheme)
			if err != nil {
				return err
			}
			return inspectKey(cmd.OutOrStdout(), args[0], s, account.Format(format))
		},
	}
	inspect.Flags().StringVar(&scheme, "scheme", "sr25519", "Key scheme: sr25519 or ed25519")
	inspect.Flags().Uint16Var(&format, "network", params.SS58Format, "SS58 address format to display")

	keyCmd.AddCommand(inspect)
	return keyCmd
}

func inspectKey(w io.Writer, input string, scheme account.Scheme, format account.Format) error {
	if format.Reserved() {
		return fmt.Errorf("%w: format %d is reserved", account.ErrInvalidAddress, format)
	}

	if id, from, err := account.Decode(input); err == nil {
		fmt.Fprintf(w, "Public key (hex):  %s\n", id.Hex())
		fmt.Fprintf(w, "Address format:    %d\n", from)
		fmt.Fprintf(w, "SS58 address:      %s\n", id.SS58(format))
		return nil
	}

	id, err := account.FromURI(scheme, input)
	if err != nil {
		if errors.Is(err, account.ErrKeyDerivation) {
			return fmt.Errorf("%q is neither an address nor a valid secret URI: %w", input, err)
		}
		return err
	}

	fmt.Fprintf(w, "Secret URI:        %s\n", input)
	fmt.Fprintf(w, "Scheme:            %s\n", scheme)
	fmt.Fprintf(w, "Public key (hex):  %s\n", id.Hex())
	fmt.Fprintf(w, "SS58 address:      %s\n", id.SS58(format))
	return nil
}
