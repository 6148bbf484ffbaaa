package cmd

import (
	"fmt"
	"os"

	nutrigap "github.com/gnames/nutrigap/pkg"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func versionFlag(cmd *cobra.Command) {
	hasVersionFlag, _ := cmd.Flags().GetBool("version")
	if hasVersionFlag {
		fmt.Printf("\nversion: %s\nbuild: %s\n\n", nutrigap.Version, nutrigap.Build)
		os.Exit(0)
	}
}

// isTerminal is true when f is an interactive terminal.
func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
