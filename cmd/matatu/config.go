package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/matatu/internal/config"
)

var flagConfigDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration a run would use, as YAML.

The search order is --config, ~/.matatu/configs/matatu.yaml,
./configs/matatu.yaml, then the built-in defaults. The output is a
complete file that can be edited and passed back with --config.

Examples:
  matatu config
  matatu config --defaults > ~/.matatu/configs/matatu.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the built-in defaults")
}

func runConfig(cmd *cobra.Command, args []string) error {
	if flagConfigDefaults {
		fmt.Print(string(config.DefaultYAML()))
		return nil
	}

	cfg, source, err := config.LoadMatatuWithSource(flagConfig)
	if err != nil {
		return err
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Printf("# source: %s\n", source)
	fmt.Print(string(data))
	return nil
}
