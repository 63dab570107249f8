package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chuckie/modelpick/internal/app"
	"github.com/chuckie/modelpick/internal/config"
	"github.com/chuckie/modelpick/internal/domain"
	"github.com/chuckie/modelpick/internal/observability"
	"github.com/chuckie/modelpick/internal/ui"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	// Best-effort error logging to a local file.
	if _, cleanup, err := observability.Init(); err == nil {
		defer cleanup()
	}

	if len(args) >= 2 {
		switch args[1] {
		case "-h", "--help", "help":
			printHelp(os.Stdout)
			return 0
		case "pick":
			return runPick(args[2:])
		case "list":
			return runList(args[2:])
		case "select":
			return runSelect(args[2:])
		case "setup":
			return runSetup(args[2:])
		case "config":
			return runConfig(args[2:])
		default:
			if strings.HasPrefix(args[1], "-") {
				fmt.Fprintf(os.Stderr, "Unknown flag: %s\n\n", args[1])
			} else {
				fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", args[1])
			}
			printHelp(os.Stderr)
			return 2
		}
	}

	return runPick(nil)
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "modelpick — search and select a model/provider pair")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  modelpick               # Launch the picker")
	fmt.Fprintln(w, "  modelpick pick          # Same, with flags")
	fmt.Fprintln(w, "  modelpick list          # Print models grouped by provider")
	fmt.Fprintln(w, "  modelpick select        # Save a selection without the TUI")
	fmt.Fprintln(w, "  modelpick setup         # Add a models provider (Ollama or OpenAI-like)")
	fmt.Fprintln(w, "  modelpick config        # Show config path + active config")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  pick [--once] [--open]")
	fmt.Fprintln(w, "  list [--query Q] [--json] [--refresh]")
	fmt.Fprintln(w, "  select --provider P --model M")
	fmt.Fprintln(w, "  config [path]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Common flags:")
	fmt.Fprintln(w, "  -h, --help              Show help")
}

// loadApp loads config and the static catalog and wires the application.
func loadApp() (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	static, err := config.StaticCatalog(cfg.CatalogPath)
	if err != nil {
		observability.Errorf("catalog: %v", err)
		return nil, err
	}
	path, err := config.DefaultConfigPath()
	if err != nil {
		// Selections simply won't persist.
		observability.Errorf("config path: %v", err)
		path = ""
	}
	return app.New(cfg, path, static, nil), nil
}

func runPick(args []string) int {
	var opts []ui.Option
	once := false
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-h", "--help":
			fmt.Fprintln(os.Stdout, "Usage: modelpick pick [--once] [--open]")
			return 0
		case "--once":
			once = true
			opts = append(opts, ui.WithQuitOnSelect(), ui.WithStartOpen())
		case "--open":
			opts = append(opts, ui.WithStartOpen())
		default:
			fmt.Fprintf(os.Stderr, "Unknown pick flag/arg: %s\n", args[i])
			return 2
		}
	}

	application, err := loadApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return 1
	}

	model := ui.New(application, application.Config.SearchDelay(), nil, opts...)

	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		observability.Errorf("tui: %v", err)
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		return 1
	}

	if once {
		return printChoice(os.Stdout, model)
	}
	return 0
}

// printChoice writes "provider<TAB>model" for scripts. Quitting without a
// selection prints nothing and returns 1.
func printChoice(w io.Writer, model *ui.Model) int {
	if !model.Chosen() {
		return 1
	}
	sel := model.Selected()
	fmt.Fprintf(w, "%s\t%s\n", sel.Provider, sel.Model)
	return 0
}

func runList(args []string) int {
	var query string
	jsonOut := false
	refresh := false
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-h", "--help":
			fmt.Fprintln(os.Stdout, "Usage: modelpick list [--query Q] [--json] [--refresh]")
			return 0
		case "--query", "-q":
			i++
			if i >= len(args) {
				fmt.Fprintln(os.Stderr, "--query requires a value")
				return 2
			}
			query = args[i]
		case "--json":
			jsonOut = true
		case "--refresh":
			refresh = true
		default:
			fmt.Fprintf(os.Stderr, "Unknown list flag/arg: %s\n", args[i])
			return 2
		}
	}

	application, err := loadApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return 1
	}

	models, err := application.Catalog.Load(context.Background(), refresh)
	if err != nil {
		// The static list is still usable.
		fmt.Fprintf(os.Stderr, "Warning: %v (showing static models)\n", err)
	}
	models = domain.Filter(models, query)

	if jsonOut {
		b, err := json.MarshalIndent(models, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode JSON: %v\n", err)
			return 1
		}
		fmt.Fprintln(os.Stdout, string(b))
		return 0
	}

	printGroups(os.Stdout, domain.GroupByProvider(models), application.Selection.Current())
	return 0
}

func printGroups(w io.Writer, groups []domain.Group, current domain.Selection) {
	for i, g := range groups {
		if i > 0 {
			fmt.Fprintln(w, "")
		}
		fmt.Fprintln(w, g.Provider)
		for _, m := range g.Models {
			marker := "  "
			if current.Matches(m) {
				marker = "* "
			}
			if m.Label != "" && m.Label != m.Name {
				fmt.Fprintf(w, "%s%s  (%s)\n", marker, m.Label, m.Name)
			} else {
				fmt.Fprintf(w, "%s%s\n", marker, m.Name)
			}
		}
	}
}

func runSelect(args []string) int {
	var provider, model string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-h", "--help":
			fmt.Fprintln(os.Stdout, "Usage: modelpick select --provider P --model M")
			return 0
		case "--provider":
			i++
			if i >= len(args) {
				fmt.Fprintln(os.Stderr, "--provider requires a value")
				return 2
			}
			provider = args[i]
		case "--model":
			i++
			if i >= len(args) {
				fmt.Fprintln(os.Stderr, "--model requires a value")
				return 2
			}
			model = args[i]
		default:
			fmt.Fprintf(os.Stderr, "Unknown select flag/arg: %s\n", args[i])
			return 2
		}
	}
	if strings.TrimSpace(provider) == "" || strings.TrimSpace(model) == "" {
		fmt.Fprintln(os.Stderr, "Both --provider and --model are required")
		return 2
	}

	application, err := loadApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return 1
	}

	if _, ok := domain.Find(application.Catalog.Static(), model, provider); !ok {
		fmt.Fprintf(os.Stderr, "Note: %s (%s) is not in the static catalog\n", model, provider)
	}

	sel := application.Selection
	sel.SetModel(model)
	sel.SetProvider(provider)
	if err := sel.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to save selection: %v\n", err)
		return 1
	}
	fmt.Fprintf(os.Stdout, "Selected %s (%s), saved to %s\n", model, provider, application.ConfigPath)
	return 0
}

func runSetup(args []string) int {
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-h", "--help":
			fmt.Fprintln(os.Stdout, "Usage: modelpick setup")
			return 0
		default:
			fmt.Fprintf(os.Stderr, "Unknown setup flag/arg: %s\n", args[i])
			return 2
		}
	}

	application, err := loadApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return 1
	}

	setup := ui.NewSetup(application.Config)
	p := tea.NewProgram(setup)
	finalModel, runErr := p.Run()
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Setup error: %v\n", runErr)
		return 1
	}

	sm, ok := finalModel.(*ui.SetupModel)
	if !ok {
		fmt.Fprintf(os.Stderr, "Setup error: unexpected model type\n")
		return 1
	}

	res, confirmed := sm.Result()
	if !confirmed {
		fmt.Fprintf(os.Stderr, "Setup cancelled.\n")
		return 1
	}

	res.Apply(application.Config)
	if err := application.SaveConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to save config: %v\n", err)
		return 1
	}
	fmt.Fprintf(os.Stdout, "Saved %s provider to %s\n", res.Kind, application.ConfigPath)
	return 0
}

func runConfig(args []string) int {
	path, err := config.DefaultConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to determine config path: %v\n", err)
		return 1
	}

	if len(args) >= 1 {
		switch args[0] {
		case "-h", "--help":
			fmt.Fprintln(os.Stdout, "Usage:")
			fmt.Fprintln(os.Stdout, "  modelpick config")
			fmt.Fprintln(os.Stdout, "  modelpick config path")
			return 0
		case "path":
			fmt.Fprintln(os.Stdout, path)
			return 0
		default:
			fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args[0])
			return 2
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return 1
	}

	keyStatus := "(none)"
	if cfg.OpenAILikeAPIKey != "" {
		keyStatus = "(set)"
	}
	openAILike := cfg.OpenAILikeBaseURL
	if openAILike == "" {
		openAILike = "(disabled)"
	}

	fmt.Fprintf(os.Stdout, "Config path:     %s\n", path)
	fmt.Fprintf(os.Stdout, "Catalog path:    %s\n", cfg.CatalogPath)
	fmt.Fprintf(os.Stdout, "Error log:       %s\n", observability.Path())
	fmt.Fprintf(os.Stdout, "Provider:        %s\n", cfg.Provider)
	fmt.Fprintf(os.Stdout, "Model:           %s\n", cfg.Model)
	fmt.Fprintf(os.Stdout, "Ollama URL:      %s\n", cfg.OllamaURL)
	fmt.Fprintf(os.Stdout, "OpenAI-like URL: %s\n", openAILike)
	fmt.Fprintf(os.Stdout, "OpenAI-like key: %s\n", keyStatus)
	fmt.Fprintf(os.Stdout, "Search delay:    %s\n", cfg.SearchDelay())
	fmt.Fprintf(os.Stdout, "Cache:           %t (ttl %s)\n", cfg.UseCache, cfg.CacheTTL())
	return 0
}
