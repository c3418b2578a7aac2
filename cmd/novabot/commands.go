package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v2"

	"novabot/internal/config"
	"novabot/internal/corpus"
	"novabot/internal/matcher"
	"novabot/internal/server"
	"novabot/internal/service"
	"novabot/internal/session"
	"novabot/internal/suggest"
	"novabot/internal/textnorm"
	"novabot/internal/tui"
)

type app struct {
	cfg       *config.AppConfig
	matcher   *matcher.Matcher
	assistant *service.Assistant
	summary   string
}

func loadConfig(c *cli.Context) (*config.AppConfig, error) {
	var (
		cfg *config.AppConfig
		err error
	)
	if path := c.String("config"); path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, _, err = config.LoadDefault()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if c.IsSet("corpus") {
		cfg.Corpus.Path = c.String("corpus")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// bootstrap assembles the matcher and assistant and loads the corpus.
func bootstrap(c *cli.Context, logger *slog.Logger) (*app, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	// Validate already accepted both names
	policy, _ := matcher.ParseIDFPolicy(cfg.Matcher.IDF)
	stop, _ := textnorm.StopWordsByName(cfg.Matcher.StopWords)

	m, err := matcher.New(
		matcher.WithIDFPolicy(policy),
		matcher.WithStopWords(stop),
		matcher.WithFallbackAnswer(cfg.Matcher.FallbackAnswer),
		matcher.WithWorkers(cfg.Matcher.Workers),
		matcher.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create matcher: %w", err)
	}
	loader := corpus.NewLoader(corpus.WithMaxEntries(cfg.Corpus.MaxEntries), corpus.WithLogger(logger))
	assistant := service.NewAssistant(loader, m, suggest.NewFrequencySuggester(stop), logger)

	summary, err := assistant.LoadCorpus(cfg.Corpus.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}
	return &app{cfg: cfg, matcher: m, assistant: assistant, summary: summary}, nil
}

func chatCommand(c *cli.Context) error {
	logger, closeLog, err := chatLogger(c)
	if err != nil {
		return err
	}
	defer closeLog()

	a, err := bootstrap(c, logger)
	if err != nil {
		return err
	}
	m := tui.New(a.assistant, a.summary, a.cfg.TUI.Suggestions)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}
	return nil
}

func askCommand(c *cli.Context) error {
	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return errors.New("a question is required")
	}
	a, err := bootstrap(c, slog.Default())
	if err != nil {
		return err
	}
	match, err := a.assistant.Ask(question)
	if err != nil {
		return err
	}
	w := c.App.Writer
	if c.Bool("verbose") {
		fmt.Fprintf(w, "Q: %s\nscore: %.4f\n", match.Entry.Question, match.Score)
	}
	fmt.Fprintln(w, match.Entry.Answer)
	return nil
}

type batchLine struct {
	Query    string  `json:"query"`
	Answer   string  `json:"answer,omitempty"`
	Question string  `json:"question,omitempty"`
	Index    int     `json:"index"`
	Score    float64 `json:"score"`
	Error    string  `json:"error,omitempty"`
}

func batchCommand(c *cli.Context) error {
	var r io.Reader = c.App.Reader
	if path := c.Args().First(); path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open queries: %w", err)
		}
		defer f.Close()
		r = f
	}
	var queries []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if q := strings.TrimSpace(scanner.Text()); q != "" {
			queries = append(queries, q)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read queries: %w", err)
	}

	a, err := bootstrap(c, slog.Default())
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	results, err := a.matcher.MatchAll(ctx, queries, a.assistant.Corpus())
	if err != nil {
		return err
	}

	w := c.App.Writer
	enc := json.NewEncoder(w)
	for _, res := range results {
		line := batchLine{Query: res.Query, Answer: res.Match.Entry.Answer, Question: res.Match.Entry.Question, Index: res.Match.Index, Score: res.Match.Score}
		if res.Err != nil {
			line = batchLine{Query: res.Query, Index: matcher.NoMatch, Error: res.Err.Error()}
		}
		if c.Bool("json") {
			if err := enc.Encode(line); err != nil {
				return err
			}
			continue
		}
		if line.Error != "" {
			fmt.Fprintf(w, "%s\tERROR: %s\n", line.Query, line.Error)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\n", line.Query, line.Answer)
	}
	return nil
}

func serveCommand(c *cli.Context) error {
	logger := slog.Default()
	a, err := bootstrap(c, logger)
	if err != nil {
		return err
	}
	addr := a.cfg.Server.Addr
	if c.IsSet("addr") {
		addr = c.String("addr")
	}

	store, err := session.OpenStore(time.Duration(a.cfg.Server.SessionTTLSecs)*time.Second, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info("novabot ready", "summary", a.summary)
	return server.New(a.assistant, store, server.WithAddr(addr), server.WithLogger(logger)).Run(ctx)
}

func corpusCommand(c *cli.Context) error {
	a, err := bootstrap(c, slog.Default())
	if err != nil {
		return err
	}
	w := c.App.Writer
	for i, e := range a.assistant.Corpus().Entries() {
		fmt.Fprintf(w, "%3d  %s\n", i, e.Question)
		if c.Bool("answers") {
			fmt.Fprintf(w, "     %s\n", e.Answer)
		}
	}
	fmt.Fprintln(w, a.summary)
	return nil
}
