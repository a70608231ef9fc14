package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/spf13/cobra"
)

func (c *cli) queryCmd() *cobra.Command {
	var endpoint string

	cmd := &cobra.Command{
		Use:   "query <method> [params...]",
		Short: "Call a JSON-RPC method on a running node",
		Example: `  shinde query system_chain
  shinde query shinde_getBalance 5E2dY5eu1fz1AyyBnG9NSwpWtAxRhve8Q88aDrfu6DwHQQii
  shinde query chain_getBlockHash 0`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := rpc.DialContext(cmd.Context(), endpoint)
			if err != nil {
				return err
			}
			defer client.Close()

			var result json.RawMessage
			if err := client.CallContext(cmd.Context(), &result, args[0], queryParams(args[1:])...); err != nil {
				return err
			}

			pretty, err := decodeNumbers(result)
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(pretty, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&endpoint, "rpc", "http://127.0.0.1:9933", "Node RPC endpoint")
	return cmd
}

// queryParams passes JSON literals through and everything else as a string.
func queryParams(args []string) []interface{} {
	params := make([]interface{}, 0, len(args))
	for _, a := range args {
		if v, err := decodeNumbers([]byte(a)); err == nil {
			params = append(params, v)
			continue
		}
		params = append(params, a)
	}
	return params
}

// decodeNumbers keeps balances exact instead of rounding them through float64.
func decodeNumbers(data []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("trailing data after JSON value")
	}
	return v, nil
}
