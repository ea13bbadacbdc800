package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Akashdeep-Patra/gitpane/internal/app"
	"github.com/Akashdeep-Patra/gitpane/internal/common"
	"github.com/Akashdeep-Patra/gitpane/internal/config"
	"github.com/Akashdeep-Patra/gitpane/internal/git"
	"github.com/Akashdeep-Patra/gitpane/internal/keys"
	"github.com/Akashdeep-Patra/gitpane/internal/logger"
	"github.com/Akashdeep-Patra/gitpane/internal/watcher"
)

// headCacheTTL bounds how long the branch name is reused between polls.
const headCacheTTL = 2 * time.Second

// Build-time variables injected via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	tuneRuntime()

	if err := buildRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "gitpane:", err)
		os.Exit(1)
	}
}

// tuneRuntime caps GOMAXPROCS for a process that mostly waits on git
// subprocesses and the terminal. An explicit GOMAXPROCS wins.
func tuneRuntime() {
	if os.Getenv("GOMAXPROCS") == "" {
		runtime.GOMAXPROCS(min(2, runtime.NumCPU()))
	}
}

type rootOptions struct {
	path       string
	configPath string
	debug      bool
}

func buildRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "gitpane",
		Short: "A keyboard-driven terminal git client",
		Long: `gitpane shows the working directory and staged changes of a repository
side by side with the diff of the selected file. Stage, reset, commit,
branch and push without leaving the terminal.`,
		RunE: func(*cobra.Command, []string) error {
			return runApp(opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}
	rootCmd.SetVersionTemplate(versionText())

	rootCmd.Flags().StringVarP(&opts.path, "path", "p", ".", "Path to the git repository")
	rootCmd.Flags().StringVar(&opts.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/gitpane/config.yaml)")
	rootCmd.Flags().BoolVar(&opts.debug, "debug", false, "Log at debug level")

	rootCmd.AddCommand(buildVersionCmd())
	rootCmd.AddCommand(buildCompletionCmd())
	return rootCmd
}

func versionInfo() map[string]string {
	return map[string]string{
		"version": version,
		"commit":  commit,
		"date":    date,
		"go":      runtime.Version(),
		"os":      runtime.GOOS,
		"arch":    runtime.GOARCH,
	}
}

func versionText() string {
	return fmt.Sprintf("gitpane %s\n  commit:  %s\n  built:   %s\n  go:      %s\n  os/arch: %s/%s\n",
		version, commit, date, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// buildVersionCmd creates the `gitpane version` subcommand supporting --json.
func buildVersionCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeVersion(cmd.OutOrStdout(), jsonOutput)
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version info as JSON")
	return cmd
}

func writeVersion(w io.Writer, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(versionInfo())
	}
	_, err := io.WriteString(w, versionText())
	return err
}

// buildCompletionCmd creates the `gitpane completion` subcommand.
func buildCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for gitpane.

Examples:
  gitpane completion bash > /etc/bash_completion.d/gitpane
  gitpane completion zsh > "${fpath[1]}/_gitpane"
  gitpane completion fish > ~/.config/fish/completions/gitpane.fish`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	}
}

func runApp(opts *rootOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level := logger.ParseLevel(cfg.LogLevel)
	if opts.debug {
		level = slog.LevelDebug
	}
	logPath := cfg.LogFile
	if logPath == "" {
		logPath = logger.DefaultPath()
	}
	if err := logger.Init(logPath, level); err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer logger.Close()
	log := logger.Component("main")

	cli, err := git.NewCLIService(opts.path)
	if err != nil {
		return fmt.Errorf("opening repository: %w", err)
	}
	log.Info("starting", "version", version, "repo", cli.RepoRoot())
	repo := git.NewCachedRepository(cli, headCacheTTL)

	model := app.New(repo, cfg, keys.New(cfg.Keys))
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())

	// changes from other processes: commits, checkouts, fetches
	w, err := watcher.New(repo.GitDir(), cfg.WatchDebounce)
	if err != nil {
		log.Warn("watcher disabled", "error", err)
	} else {
		defer w.Close()
		go func() {
			for range w.Changes() {
				repo.Invalidate()
				p.Send(common.RefreshMsg{})
			}
		}()
	}

	_, err = p.Run()
	return err
}
