package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"courtside/agent"
	"courtside/cache"
	"courtside/config"
	"courtside/provider"
	"courtside/session"
	"courtside/sportsdata"
	"courtside/tools"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath(), "path to config.toml")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := run(*configPath, logger); err != nil {
		logger.Error("fatal", "error", err.Error())
		os.Exit(1)
	}
}

func run(configPath string, logger *slog.Logger) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	store, err := cache.Open(cfg.CachePath())
	if err != nil {
		return err
	}
	defer store.Close()

	policy, err := buildPolicy(cfg)
	if err != nil {
		return err
	}

	registry := tools.NewRegistry()
	stats := sportsdata.NewStatsClient(os.Getenv("RSC_BASE_URL"), os.Getenv("RSC_TOKEN"))
	if os.Getenv("RSC_TOKEN") == "" {
		logger.Warn("RSC_TOKEN not set, stats tools will fail")
	}
	if err := registry.RegisterAll(tools.NewNBATools(stats, store, policy).All()...); err != nil {
		return err
	}

	if oddsKey := os.Getenv("ODDS_API_KEY"); oddsKey != "" {
		odds := sportsdata.NewOddsClient(os.Getenv("ODDS_API_BASE_URL"), oddsKey)
		if err := registry.Register(tools.NewOddsTool(odds, store, policy)); err != nil {
			return err
		}
	} else {
		logger.Warn("ODDS_API_KEY not set, odds tool disabled")
	}

	if searchKey := os.Getenv("PERPLEXITY_API_KEY"); searchKey != "" {
		search, err := sportsdata.NewSearchClient(searchKey)
		if err != nil {
			return err
		}
		if err := registry.Register(tools.NewNewsTool(search)); err != nil {
			return err
		}
	} else {
		logger.Warn("PERPLEXITY_API_KEY not set, news tool disabled")
	}

	dispatcher := tools.NewDispatcher(registry,
		tools.WithWorkers(cfg.Tools.Workers),
		tools.WithToolTimeout(time.Duration(cfg.Tools.ToolTimeoutSeconds)*time.Second),
		tools.WithLogger(logger),
	)

	sharp, err := buildAgent("The Sharp", cfg.Agents.Sharp, config.SharpPrompt, cfg, dispatcher, logger)
	if err != nil {
		return err
	}
	contrarian, err := buildAgent("The Contrarian", cfg.Agents.Contrarian, config.ContrarianPrompt, cfg, dispatcher, logger)
	if err != nil {
		return err
	}

	sessions, err := session.NewFileStore(cfg.DataDirectory)
	if err != nil {
		return err
	}

	duet := agent.NewDuet(sharp, contrarian, sessions,
		agent.WithHistoryWindow(cfg.HistoryWindow),
		agent.WithDuetLogger(logger),
	)

	return repl(duet)
}

func buildAgent(name string, ac config.AgentConfig, defaultPrompt string, cfg *config.Config, dispatcher *tools.Dispatcher, logger *slog.Logger) (*agent.Agent, error) {
	p, err := provider.NewProvider(provider.Config{
		Type:        provider.ProviderType(ac.Provider),
		BaseURL:     ac.BaseURL,
		APIKey:      ac.APIKey(),
		Model:       ac.Model,
		Temperature: ac.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build %s: %w", name, err)
	}

	prompt := ac.SystemPrompt
	if prompt == "" {
		prompt = defaultPrompt
	}

	return agent.New(name, prompt, p, dispatcher,
		agent.WithMaxRounds(cfg.Tools.MaxRounds),
		agent.WithModelTimeout(time.Duration(cfg.Tools.ModelTimeoutSeconds)*time.Second),
		agent.WithLogger(logger),
	), nil
}

func buildPolicy(cfg *config.Config) (cache.Policy, error) {
	policy := cache.Policy{}
	if cfg.Cache.Timezone != "" {
		loc, err := time.LoadLocation(cfg.Cache.Timezone)
		if err != nil {
			return policy, fmt.Errorf("invalid cache timezone: %w", err)
		}
		policy.Location = loc
	}
	if len(cfg.Cache.TTLMinutes) > 0 {
		policy.Overrides = make(map[cache.Category]time.Duration, len(cfg.Cache.TTLMinutes))
		for category, minutes := range cfg.Cache.TTLMinutes {
			policy.Overrides[cache.Category(category)] = time.Duration(minutes) * time.Minute
		}
	}
	return policy, nil
}

func repl(duet *agent.Duet) error {
	const sessionID = "local"
	names := duet.Agents()

	fmt.Println("courtside — ask about tonight's slate. /reset clears history, /quit exits.")
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case "/quit", "/exit":
			return nil
		case "/reset":
			if err := duet.Reset(sessionID); err != nil {
				fmt.Fprintln(os.Stderr, "reset failed:", err)
			} else {
				fmt.Println("history cleared")
			}
			continue
		}

		// Stream the first agent live; the second would interleave on the
		// same terminal, so its reply prints after the turn completes.
		var live strings.Builder
		onDelta := func(agentName, chunk string) error {
			if agentName != names[0] {
				return nil
			}
			if live.Len() == 0 {
				fmt.Printf("\n--- %s ---\n", agentName)
			}
			fmt.Print(chunk)
			live.WriteString(chunk)
			return nil
		}

		result, err := duet.HandleMessage(context.Background(), sessionID, line, onDelta)
		if err != nil {
			fmt.Fprintln(os.Stderr, "turn failed:", err)
			continue
		}

		for _, r := range result.Replies {
			if r.Agent == names[0] && live.Len() > 0 {
				fmt.Println()
				if rest, ok := strings.CutPrefix(r.Text, live.String()); ok {
					// Anything past the streamed prefix is a repaired card.
					if rest != "" {
						fmt.Println(rest)
					}
				} else if r.Text != "" {
					// Commentary streamed before a tool round is not part
					// of the final answer; print the answer in full.
					fmt.Println(r.Text)
				}
				if r.Err != nil {
					fmt.Printf("[error: %v]\n", r.Err)
				}
				continue
			}
			fmt.Printf("\n--- %s ---\n", r.Agent)
			if r.Err != nil {
				fmt.Printf("[error: %v]\n", r.Err)
			}
			if r.Text != "" {
				fmt.Println(r.Text)
			}
		}
		fmt.Printf("\n%s\n\n", duet.RenderVerdict(result.Verdict))
	}
}
