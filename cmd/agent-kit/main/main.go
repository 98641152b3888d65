package main

import (
	"os"

	agentkit "github.com/arthur-debert/agentkit/cmd/agent-kit"
)

func main() {
	rootCmd := agentkit.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		agentkit.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}
