package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/marcus/otpbox/internal/output"
	"github.com/spf13/cobra"
)

var (
	version string
	baseDir string
)

// errAborted is returned when the user leaves the prompt without a code.
var errAborted = errors.New("aborted")

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "otpbox",
	Short: "Prompt for a one-time passcode in the terminal",
	Long: `otpbox - Read a one-time passcode through a row of single-character boxes.

Focus moves to the next box as each character is typed and back to the
previous one on backspace. The code is printed to stdout once every box is
filled, so it can be captured with $(otpbox).`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPrompt,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errAborted) {
			output.Error("%v", err)
		}
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initBaseDir)
	addPromptFlags(rootCmd.Flags())
}

func initBaseDir() {
	var err error
	baseDir, err = os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot determine working directory: %v\n", err)
		os.Exit(1)
	}
}

// getBaseDir returns the directory the project config is read from
func getBaseDir() string {
	return baseDir
}
