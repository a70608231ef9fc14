package main

import (
	"github.com/Siasom1/shinde-chain/node"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cli carries the viper instance shared by all subcommands.
type cli struct {
	v          *viper.Viper
	configFile string
}

func newRootCmd() *cobra.Command {
	c := &cli{v: node.NewViper()}

	rootCmd := &cobra.Command{
		Use:           "shinde",
		Short:         "Shinde node and chain spec tooling",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.configFile == "" {
				return nil
			}
			c.v.SetConfigFile(c.configFile)
			return c.v.ReadInConfig()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.configFile, "config", "", "Config file (yaml, toml or json)")
	flags.String("datadir", "", "Data directory. Default ~/.shinde")
	flags.String("chain", "dev", "Chain to use: dev, local or a chain spec file")
	flags.String("runtime", "", "Runtime code blob for the built-in chains")
	flags.StringP("log-level", "v", "info", "Logging verbosity: debug, info, warn, error")

	_ = c.v.BindPFlag(node.KeyDataDir, flags.Lookup("datadir"))
	_ = c.v.BindPFlag(node.KeyChain, flags.Lookup("chain"))
	_ = c.v.BindPFlag(node.KeyRuntime, flags.Lookup("runtime"))
	_ = c.v.BindPFlag(node.KeyLogLevel, flags.Lookup("log-level"))

	rootCmd.AddCommand(
		c.buildSpecCmd(),
		c.checkSpecCmd(),
		c.keyCmd(),
		c.runCmd(),
		c.queryCmd(),
	)
	return rootCmd
}

func (c *cli) config() (*node.Config, error) {
	return node.ConfigFromViper(c.v)
}
