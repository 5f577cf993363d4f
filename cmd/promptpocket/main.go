package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/stefankummer/promptpocket/internal/auth"
	"github.com/stefankummer/promptpocket/internal/bus"
	"github.com/stefankummer/promptpocket/internal/config"
	"github.com/stefankummer/promptpocket/internal/coordinator"
	"github.com/stefankummer/promptpocket/internal/locale"
	"github.com/stefankummer/promptpocket/internal/mcp"
	"github.com/stefankummer/promptpocket/internal/settings"
	"github.com/stefankummer/promptpocket/internal/store"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"login": true, "logout": true, "save": true, "capture": true,
	"popup": true, "settings": true, "status": true, "clear": true,
	"help": true,
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode() bool {
	if len(os.Args) < 2 {
		return false // No args → MCP server
	}
	arg := os.Args[1]
	// Known subcommand → CLI
	if cliCommands[arg] {
		return true
	}
	// --help or --version → CLI
	if arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" {
		return true
	}
	return false // Default → MCP server
}

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion() bool {
	if len(os.Args) < 2 {
		return false
	}
	arg := os.Args[1]
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, _ := os.Stdin.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner() {
	fmt.Println(`
   ___                     _   ___         _       _
  | _ \_ _ ___ _ __  _ __| |_| _ \___  __| |_____| |_
  |  _/ '_/ _ \ '  \| '_ \  _|  _/ _ \/ _| / / -_)  _|
  |_| |_| \___/_|_|_| .__/\__|_| \___/\__|_\_\___|\__|
                    |_|

  Save prompts wherever you are

  Usage: promptpocket <command> [options]
         promptpocket --help

  MCP server mode requires piped input.`)
}

func main() {
	// No args + interactive terminal → show banner and exit
	if len(os.Args) < 2 && isTerminal() {
		printBanner()
		return
	}

	// Handle --help/--version before store init (no store needed)
	if isHelpOrVersion() {
		app := newCLIApp(nil, nil, nil, nil)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not determine home directory: %v\n", err)
		os.Exit(1)
	}

	baseDir := filepath.Join(homeDir, ".promptpocket")

	st, err := store.Open(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to open store: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	cfg, err := config.Load(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}

	am := auth.NewManager(st)
	router := bus.NewRouter()

	prefs, err := settings.Load(st)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load settings: %v\n", err)
		os.Exit(1)
	}
	tr := locale.New(prefs.Language)

	coordCfg := coordinator.Config{
		Store:     st,
		Auth:      am,
		Router:    router,
		Translate: tr.Func(),
	}
	if cfg.Quiet {
		coordCfg.Notifier = coordinator.NopNotifier{}
	}
	coord := coordinator.New(coordCfg)
	defer coord.Close()

	// CLI mode: known subcommand
	if isCLIMode() {
		app := newCLIApp(st, am, coord, tr)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	if len(os.Args) >= 2 && isTerminal() {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "Run 'promptpocket --help' for usage.\n")
		os.Exit(1)
	}

	// MCP server mode (default)
	if err := mcp.Run(coord, cfg, Version); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
