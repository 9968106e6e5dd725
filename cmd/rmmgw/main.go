package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "rmmgw",
	Short:   "rmmgw - metadata query gateway",
	Version: version,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
