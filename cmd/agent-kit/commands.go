package agentkit

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/arthur-debert/agentkit/internal/version"
	"github.com/arthur-debert/agentkit/pkg/cobrax/topics"
	"github.com/arthur-debert/agentkit/pkg/commands"
	"github.com/arthur-debert/agentkit/pkg/display"
	"github.com/arthur-debert/agentkit/pkg/errors"
	"github.com/arthur-debert/agentkit/pkg/logging"
	"github.com/arthur-debert/agentkit/pkg/settings"
	"github.com/arthur-debert/agentkit/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicFiles embed.FS

// globalFlags holds the values of the persistent flags shared by link and check
type globalFlags struct {
	verbosity int
	repo      string
	force     bool
	source    string
	targets   string
	skills    string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "agent-kit",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(flags.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		// Bare invocation links
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(cmd, commands.CommandLink, flags)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&flags.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&flags.repo, "repo", "", MsgFlagRepo)
	rootCmd.PersistentFlags().BoolVar(&flags.force, "force", false, MsgFlagForce)
	rootCmd.PersistentFlags().StringVar(&flags.source, "source", "", MsgFlagSource)
	rootCmd.PersistentFlags().StringVar(&flags.targets, "targets", "", MsgFlagTargets)
	rootCmd.PersistentFlags().StringVar(&flags.skills, "skills", "", MsgFlagSkills)

	_ = rootCmd.RegisterFlagCompletionFunc("source", toolCompletion)
	_ = rootCmd.RegisterFlagCompletionFunc("targets", toolCompletion)
	_ = rootCmd.MarkPersistentFlagDirname("repo")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newLinkCmd(flags))
	rootCmd.AddCommand(newCheckCmd(flags))
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	// Help topics ship inside the binary
	if sub, err := fs.Sub(topicFiles, "topics"); err == nil {
		opts := topics.Options{
			Extensions: []string{".md"},
			Renderer:   topics.RendererFor(ui.IsTerminal(os.Stdout)),
		}
		if _, err := topics.InitializeWithOptions(rootCmd, sub, opts); err != nil {
			log.Warn().Err(err).Msg("Help topics unavailable")
		}
	}
	rootCmd.SetHelpCommandGroupID("misc")

	return rootCmd
}

func newLinkCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "link",
		Aliases: []string{"sync"},
		Short:   MsgLinkShort,
		Long:    MsgLinkLong,
		Example: MsgLinkExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(cmd, commands.CommandLink, flags)
		},
	}
}

func newCheckCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "check",
		Short:   MsgCheckShort,
		Long:    MsgCheckLong,
		Example: MsgCheckExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(cmd, commands.CommandCheck, flags)
		},
	}
}

// runCommand dispatches cmdType and prints its result to the command's output
func runCommand(cmd *cobra.Command, cmdType commands.CommandType, flags *globalFlags) error {
	input := settingsInput(cmd, flags)

	log.Info().
		Str("command", string(cmdType)).
		Str("repo", flags.repo).
		Bool("force", flags.force).
		Msg("Running command")

	result, err := commands.Dispatch(cmdType, commands.DispatchOptions{
		RepoRoot: flags.repo,
		Input:    input,
		Force:    flags.force,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	renderer := display.NewRenderer(formatFor(out))
	fmt.Fprint(out, renderer.RenderCommandResult(result))
	return nil
}

// settingsInput maps flags to resolver input. List flags that were not given
// stay nil so persisted values and defaults apply.
func settingsInput(cmd *cobra.Command, flags *globalFlags) settings.Input {
	in := settings.Input{Source: flags.source}
	if cmd.Flags().Changed("targets") {
		in.Targets = settings.ParseList(flags.targets)
	}
	if cmd.Flags().Changed("skills") {
		in.Skills = settings.ParseList(flags.skills)
	}
	return in
}

// formatFor picks rich output only for terminals
func formatFor(w io.Writer) ui.Format {
	if f, ok := w.(*os.File); ok {
		return ui.DetectFormat(f)
	}
	return ui.FormatText
}

// PrintError writes the one-line user message for err to w
func PrintError(w io.Writer, err error) {
	renderer := display.NewRenderer(formatFor(w))
	fmt.Fprintln(w, renderer.RenderError(errors.UserMessage(err)))
}

func toolCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{"codex", "claude", "cursor", "opencode"}, cobra.ShellCompDirectiveNoFileComp
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Find the help command and execute it with "topics" argument
			if helpCmd, _, err := cmd.Root().Find([]string{"help"}); err == nil && helpCmd.Run != nil {
				helpCmd.SetOut(cmd.OutOrStdout())
				helpCmd.Run(helpCmd, []string{"topics"})
				return nil
			}
			return fmt.Errorf("help command not found")
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			return GenCompletion(cmd.Root(), args[0], cmd.OutOrStdout())
		},
	}
}

// GenCompletion writes the completion script for shell
func GenCompletion(root *cobra.Command, shell string, w io.Writer) error {
	switch shell {
	case "bash":
		return root.GenBashCompletionV2(w, true)
	case "zsh":
		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(w)
	}
	return errors.Newf(errors.ErrInvalidInput, "unknown shell: %s", shell)
}
