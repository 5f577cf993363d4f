package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/stefankummer/promptpocket/internal/api"
	"github.com/stefankummer/promptpocket/internal/auth"
	"github.com/stefankummer/promptpocket/internal/bus"
	"github.com/stefankummer/promptpocket/internal/coordinator"
	"github.com/stefankummer/promptpocket/internal/errors"
	"github.com/stefankummer/promptpocket/internal/locale"
	"github.com/stefankummer/promptpocket/internal/popup"
	"github.com/stefankummer/promptpocket/internal/settings"
	"github.com/stefankummer/promptpocket/internal/store"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(st *store.Store, am *auth.Manager, coord *coordinator.Coordinator, tr *locale.Translator) *cli.App {
	app := &cli.App{
		Name:    "promptpocket",
		Usage:   "Save prompts to your PromptPocket library",
		Version: Version,
		Commands: []*cli.Command{
			loginCmd(st, am),
			logoutCmd(am),
			saveCmd(coord),
			captureCmd(coord),
			popupCmd(st, am, coord),
			settingsCmd(st),
			statusCmd(st, am, coord),
			clearCmd(st, am, tr),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// loginCmd creates the login command.
func loginCmd(st *store.Store, am *auth.Manager) *cli.Command {
	return &cli.Command{
		Name:      "login",
		Usage:     "Connect with a PromptPocket API key",
		ArgsUsage: "[api-key]",
		Action: func(c *cli.Context) error {
			key := c.Args().First()
			if key == "" && stdinHasData() {
				piped, err := readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				key = piped
			}
			if key == "" {
				return outputError(errors.NewInvalidRequest("api key is required (argument or stdin)"))
			}

			prefs, err := settings.Load(st)
			if err != nil {
				return outputError(err)
			}

			client := api.New(prefs.APIEndpoint, key)
			user, err := client.GetUser(c.Context)
			if err != nil {
				return outputError(err)
			}

			if err := am.SetToken(key); err != nil {
				return outputError(err)
			}

			pterm.Success.Printfln("Connected as %s", user.DisplayName())
			return nil
		},
	}
}

// logoutCmd creates the logout command.
func logoutCmd(am *auth.Manager) *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "Disconnect and forget the stored API key",
		Action: func(c *cli.Context) error {
			if err := am.ClearToken(); err != nil {
				return outputError(err)
			}
			pterm.Success.Println("Disconnected")
			return nil
		},
	}
}

// saveCmd creates the save command.
func saveCmd(coord *coordinator.Coordinator) *cli.Command {
	return &cli.Command{
		Name:      "save",
		Usage:     "Quick-save prompt content (argument, stdin, or the current selection)",
		ArgsUsage: "[content]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Aliases: []string{"u"}, Usage: "Source page URL"},
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Source page title"},
		},
		Action: func(c *cli.Context) error {
			content, err := contentArg(c)
			if err != nil {
				return outputError(err)
			}

			tab := bus.Tab{URL: c.String("url"), Title: c.String("title")}
			if content == "" {
				// Nothing given and nothing piped: save whatever is
				// currently selected, shortcut style.
				tab.Page = "terminal"
				coord.HandleShortcut(c.Context, tab)
				return nil
			}
			if err := coord.QuickSave(c.Context, content, tab); err != nil {
				return outputError(err)
			}
			return nil
		},
	}
}

// captureCmd creates the capture command.
func captureCmd(coord *coordinator.Coordinator) *cli.Command {
	return &cli.Command{
		Name:      "capture",
		Usage:     "Stash a selection for the next popup session",
		ArgsUsage: "[content]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Aliases: []string{"u"}, Usage: "Source page URL"},
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Source page title"},
		},
		Action: func(c *cli.Context) error {
			content, err := contentArg(c)
			if err != nil {
				return outputError(err)
			}
			if content == "" {
				return outputError(errors.NewInvalidRequest("content is required (argument or stdin)"))
			}

			tab := bus.Tab{URL: c.String("url"), Title: c.String("title")}
			if err := coord.CaptureSelection(content, tab); err != nil {
				return outputError(err)
			}
			pterm.Success.Println("Selection captured; it will pre-fill the next popup")
			return nil
		},
	}
}

// popupCmd creates the popup command.
func popupCmd(st *store.Store, am *auth.Manager, coord *coordinator.Coordinator) *cli.Command {
	return &cli.Command{
		Name:  "popup",
		Usage: "Open the interactive save form",
		Action: func(c *cli.Context) error {
			model := popup.New(popup.Session{
				Store:  st,
				Auth:   am,
				Router: coord.Router(),
			})
			_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			return nil
		},
	}
}

// settingsCmd creates the settings command with show/set subcommands.
func settingsCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "settings",
		Usage: "Show or change preferences",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Print current settings as JSON",
				Action: func(c *cli.Context) error {
					prefs, err := settings.Load(st)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(prefs)
				},
			},
			{
				Name:  "set",
				Usage: "Update one or more settings",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "endpoint", Usage: "API endpoint URL"},
					&cli.StringFlag{Name: "status", Usage: "Default save status: published|draft"},
					&cli.StringFlag{Name: "language", Usage: "Interface language: en|fr|de"},
					&cli.StringFlag{Name: "theme", Usage: "Theme: system|light|dark"},
					&cli.BoolFlag{Name: "auto-selection", Usage: "Auto-fill the popup from the current selection"},
				},
				Action: func(c *cli.Context) error {
					prefs, err := settings.Load(st)
					if err != nil {
						return outputError(err)
					}

					if v := c.String("endpoint"); v != "" {
						prefs.APIEndpoint = v
					}
					if v := c.String("status"); v != "" {
						prefs.DefaultStatus = settings.Status(v)
					}
					if v := c.String("language"); v != "" {
						prefs.Language = v
					}
					if v := c.String("theme"); v != "" {
						prefs.Theme = settings.Theme(v)
					}
					if c.IsSet("auto-selection") {
						prefs.AutoGetSelection = c.Bool("auto-selection")
					}

					saved, err := settings.Save(st, prefs)
					if err != nil {
						return outputError(err)
					}
					pterm.Success.Println("Settings saved")
					return outputJSON(saved)
				},
			},
		},
	}
}

// statusReport is the JSON shape printed by the status command.
type statusReport struct {
	Connected        bool   `json:"connected"`
	User             string `json:"user,omitempty"`
	APIEndpoint      string `json:"apiEndpoint"`
	QuickSaveEnabled bool   `json:"quickSaveEnabled"`
}

// statusCmd creates the status command.
func statusCmd(st *store.Store, am *auth.Manager, coord *coordinator.Coordinator) *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show connection state",
		Action: func(c *cli.Context) error {
			prefs, err := settings.Load(st)
			if err != nil {
				return outputError(err)
			}

			report := statusReport{
				APIEndpoint:      prefs.APIEndpoint,
				QuickSaveEnabled: coord.MenuEnabled(),
			}

			if token, ok, err := am.Token(); err == nil && ok {
				report.Connected = true
				// Best effort: an unreachable service still reports connected.
				if user, err := api.New(prefs.APIEndpoint, token).GetUser(c.Context); err == nil {
					report.User = user.DisplayName()
				}
			}

			return outputJSON(report)
		},
	}
}

// clearCmd creates the clear command.
func clearCmd(st *store.Store, am *auth.Manager, tr *locale.Translator) *cli.Command {
	return &cli.Command{
		Name:  "clear",
		Usage: "Delete the API key and all saved preferences",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Skip the confirmation prompt"},
		},
		Action: func(c *cli.Context) error {
			if !c.Bool("yes") {
				ok, _ := pterm.DefaultInteractiveConfirm.
					WithDefaultText("Delete the API key and all saved data?").
					Show()
				if !ok {
					pterm.Info.Println("Aborted")
					return nil
				}
			}

			if err := am.ClearToken(); err != nil {
				return outputError(err)
			}
			if err := st.Clear(store.PartitionLocal); err != nil {
				return outputError(err)
			}
			if err := st.Clear(store.PartitionSynced); err != nil {
				return outputError(err)
			}

			pterm.Success.Println(tr.T("dataCleaned"))
			return nil
		},
	}
}

// Helper functions

// contentArg resolves content from the first argument or piped stdin.
// Empty means neither was given.
func contentArg(c *cli.Context) (string, error) {
	if content := strings.TrimSpace(c.Args().First()); content != "" {
		return content, nil
	}
	if stdinHasData() {
		content, err := readStdin()
		if err != nil {
			return "", errors.NewInternal(err)
		}
		return content, nil
	}
	return "", nil
}

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if perr, ok := err.(*errors.PocketError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", perr.Code, perr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
