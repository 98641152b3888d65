package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	agentkit "github.com/arthur-debert/agentkit/cmd/agent-kit"
	"github.com/arthur-debert/agentkit/internal/version"
)

func main() {
	rootCmd := agentkit.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "AGENT-KIT",
		Section: "1",
		Source:  "agent-kit " + version.Version,
		Manual:  "agent-kit manual",
	}

	err := doc.GenMan(rootCmd, header, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
