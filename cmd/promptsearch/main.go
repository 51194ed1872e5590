// Package main is the promptsearch CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/promptdeck/promptsearch/internal/config"
	"github.com/promptdeck/promptsearch/internal/models"
	"github.com/promptdeck/promptsearch/internal/search"
	"github.com/promptdeck/promptsearch/internal/server"
	"github.com/promptdeck/promptsearch/internal/store"
	"github.com/promptdeck/promptsearch/internal/synonym"
	"github.com/promptdeck/promptsearch/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/promptsearch/config.yaml"

// loadConfig loads config from path. When path is the default, it first
// looks for config.yaml in the current directory (for development); if that
// exists it is used. Returns the config and the path actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "search":
		runSearch()
	case "seed":
		runSeed()
	case "version", "--version", "-v":
		fmt.Printf("promptsearch version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	st, err := store.NewSQLiteStore(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Fatal("failed to open prompt store", zap.Error(err))
	}
	defer st.Close()

	dict := synonym.Default()
	if cfg.Synonyms.Path != "" {
		dict, err = synonym.FromFile(cfg.Synonyms.Path)
		if err != nil {
			logger.Fatal("failed to load synonym dictionary", zap.Error(err))
		}
		logger.Info("synonym dictionary loaded", zap.String("path", cfg.Synonyms.Path))
	}

	engine := search.NewEngine(st, dict, &cfg.Ranking, &cfg.Search, logger)
	srv := server.NewServer(engine, st, cfg, logger)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Stop(ctx); err != nil {
			logger.Error("shutdown failed", zap.Error(err))
		}
	}
}

func runSearch() {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	query := fs.String("q", "", "search query")
	limit := fs.Int("limit", 0, "maximum results (0 = server default)")
	serverURL := fs.String("server", "http://localhost:8080", "server base URL")
	_ = fs.Parse(os.Args[2:])

	if *query == "" {
		fmt.Println("search requires -q")
		fs.Usage()
		os.Exit(1)
	}

	resp, err := http.Get(buildSearchURL(*serverURL, *query, *limit))
	if err != nil {
		fmt.Printf("Search request failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fmt.Printf("Failed to read response: %v\n", err)
		os.Exit(1)
	}
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Search failed (%d): %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result models.SearchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	if len(result.Prompts) == 0 {
		fmt.Println("No results.")
		return
	}
	for i, p := range result.Prompts {
		fmt.Printf("%2d. %s", i+1, p.Title)
		if p.Category != "" {
			fmt.Printf("  [%s]", p.Category)
		}
		fmt.Println()
		if p.Description != "" {
			fmt.Printf("    %s\n", utils.Truncate(p.Description, 120))
		}
	}
}

// buildSearchURL assembles the /search request URL with a query-escaped q
// and an optional limit.
func buildSearchURL(base, query string, limit int) string {
	u := base + "/search?q=" + url.QueryEscape(query)
	if limit > 0 {
		u += "&limit=" + strconv.Itoa(limit)
	}
	return u
}

func runSeed() {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	file := fs.String("file", "", "YAML file with prompt fixtures")
	_ = fs.Parse(os.Args[2:])

	if *file == "" {
		fmt.Println("seed requires -file")
		fs.Usage()
		os.Exit(1)
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		fmt.Printf("Failed to read fixtures: %v\n", err)
		os.Exit(1)
	}

	var prompts []models.PromptDocument
	if err := yaml.Unmarshal(data, &prompts); err != nil {
		fmt.Printf("Failed to parse fixtures: %v\n", err)
		os.Exit(1)
	}

	st, err := store.NewSQLiteStore(cfg.Storage.DatabasePath)
	if err != nil {
		fmt.Printf("Failed to open prompt store: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	ctx := context.Background()
	for i := range prompts {
		if err := st.CreatePrompt(ctx, &prompts[i]); err != nil {
			fmt.Printf("Failed to insert prompt %q: %v\n", prompts[i].Title, err)
			os.Exit(1)
		}
	}
	fmt.Printf("Seeded %d prompts into %s\n", len(prompts), cfg.Storage.DatabasePath)
}

func printUsage() {
	fmt.Println(`promptsearch - prompt library search service

Usage:
  promptsearch server [-config path] [-debug]   start the HTTP server
  promptsearch search -q query [-limit n] [-server url]
                                                query a running server
  promptsearch seed -file prompts.yaml [-config path]
                                                load prompt fixtures
  promptsearch version                          print version
  promptsearch help                             show this help`)
}
