// walkctl is a command line front end for the walkcore client library. Each
// subcommand drives the same controllers and repository the app screens use,
// which makes it a convenient smoke test against a real or stub backend.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/walkcore/walkcore-client/internal/config"
	"github.com/walkcore/walkcore-client/internal/controller"
	"github.com/walkcore/walkcore-client/internal/repository"
	"github.com/walkcore/walkcore-client/internal/transport"
	"github.com/walkcore/walkcore-client/pkg/logger"
	"github.com/walkcore/walkcore-client/pkg/metrics"
)

const usage = `Usage: walkctl <command> [flags]

Commands:
  login         -email -password
  register      -username -email -password
  overview
  active
  sessions
  session       -id
  participants  -id
  leaderboard   -id
  create        -title [-description] [-mode] [-steps] [-max] [-start] [-end]
  friends

The backend URL comes from WALKCORE_BASE_URL; commands other than login and
register need AUTH_TOKEN set to a token obtained via login.`

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration validation failed: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.LogLevel)
	m := metrics.New(nil)

	tokens := transport.NewTokenStore()
	if cfg.AuthToken != "" {
		tokens.Set(cfg.AuthToken)
	}

	client := transport.NewClient(cfg.BaseURL, time.Duration(cfg.HTTPTimeoutSec)*time.Second, tokens, log, m)
	repo := repository.NewRepository(client)

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	ctx := context.Background()
	command := os.Args[1]
	args := os.Args[2:]

	var runErr error
	switch command {
	case "login":
		runErr = runLogin(ctx, args, repo, tokens, m, log)
	case "register":
		runErr = runRegister(ctx, args, repo, tokens, m, log)
	case "overview":
		runErr = runOverview(ctx, repo, m, log)
	case "active":
		runErr = printJSON(func() (interface{}, error) { return repo.GetActiveSession(ctx) })
	case "sessions":
		runErr = printJSON(func() (interface{}, error) { return repo.GetAllSessions(ctx) })
	case "session":
		runErr = runSessionDetail(ctx, args, repo, m, log)
	case "participants":
		runErr = runWithSessionID(args, func(id string) (interface{}, error) {
			return repo.GetParticipants(ctx, id)
		})
	case "leaderboard":
		runErr = runWithSessionID(args, func(id string) (interface{}, error) {
			return repo.GetLeaderboard(ctx, id)
		})
	case "create":
		runErr = runCreate(ctx, args, repo, m, log)
	case "friends":
		runErr = printJSON(func() (interface{}, error) { return repo.GetFriends(ctx) })
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}

func runLogin(ctx context.Context, args []string, repo repository.Repository, tokens *transport.TokenStore, m *metrics.Metrics, log *slog.Logger) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	_ = fs.Parse(args)

	c := controller.NewLoginController(repo, tokens, m, log)
	c.SetEmail(*email)
	c.SetPassword(*password)
	c.Submit(ctx)

	state := c.State()
	if state.Phase != controller.PhaseSuccess {
		return fmt.Errorf("%s", state.Error)
	}
	fmt.Printf("Logged in as %s\nAUTH_TOKEN=%s\n", state.User.Username, state.Token)
	return nil
}

func runRegister(ctx context.Context, args []string, repo repository.Repository, tokens *transport.TokenStore, m *metrics.Metrics, log *slog.Logger) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	username := fs.String("username", "", "account username")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	_ = fs.Parse(args)

	c := controller.NewRegisterController(repo, tokens, m, log)
	c.SetUsername(*username)
	c.SetEmail(*email)
	c.SetPassword(*password)
	c.Submit(ctx)

	state := c.State()
	if state.Phase != controller.PhaseSuccess {
		return fmt.Errorf("%s", state.Error)
	}
	fmt.Printf("Registered %s\nAUTH_TOKEN=%s\n", state.User.Username, state.Token)
	return nil
}

func runOverview(ctx context.Context, repo repository.Repository, m *metrics.Metrics, log *slog.Logger) error {
	c := controller.NewHomeController(repo, m, log)
	c.Refresh(ctx)

	state := c.State()
	if state.Phase != controller.PhaseSuccess {
		return fmt.Errorf("%s", state.Error)
	}
	return dumpJSON(map[string]interface{}{
		"overview":      state.Overview,
		"activeSession": state.ActiveSession,
	})
}

func runSessionDetail(ctx context.Context, args []string, repo repository.Repository, m *metrics.Metrics, log *slog.Logger) error {
	fs := flag.NewFlagSet("session", flag.ExitOnError)
	id := fs.String("id", "", "session id")
	_ = fs.Parse(args)
	if *id == "" {
		return fmt.Errorf("-id is required")
	}

	c := controller.NewSessionDetailController(repo, m, log)
	c.Load(ctx, *id)

	state := c.State()
	if state.Phase != controller.PhaseSuccess {
		return fmt.Errorf("%s", state.Error)
	}
	return dumpJSON(state.Session)
}

func runCreate(ctx context.Context, args []string, repo repository.Repository, m *metrics.Metrics, log *slog.Logger) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	title := fs.String("title", "", "session title")
	description := fs.String("description", "", "session description")
	mode := fs.String("mode", "", "session mode (REMOTE or ON_SITE)")
	steps := fs.String("steps", "", "step target")
	maxParticipants := fs.String("max", "", "participant limit")
	start := fs.String("start", "", "start time (RFC3339)")
	end := fs.String("end", "", "end time (RFC3339)")
	_ = fs.Parse(args)

	c := controller.NewSessionAddController(repo, m, log)
	c.SetTitle(*title)
	if *description != "" {
		c.SetDescription(*description)
	}
	if *mode != "" {
		c.SetMode(*mode)
	}
	if *steps != "" {
		c.SetStepTarget(*steps)
	}
	if *maxParticipants != "" {
		c.SetMaxParticipants(*maxParticipants)
	}
	if *start != "" {
		c.SetStartTime(*start)
	}
	if *end != "" {
		c.SetEndTime(*end)
	}
	c.Submit(ctx)

	state := c.State()
	if state.Phase != controller.PhaseSuccess {
		return fmt.Errorf("%s", state.Error)
	}
	return dumpJSON(state.Created)
}

func runWithSessionID(args []string, fetch func(id string) (interface{}, error)) error {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	id := fs.String("id", "", "session id")
	_ = fs.Parse(args)
	if *id == "" {
		return fmt.Errorf("-id is required")
	}
	return printJSON(func() (interface{}, error) { return fetch(*id) })
}

func printJSON(fetch func() (interface{}, error)) error {
	value, err := fetch()
	if err != nil {
		return err
	}
	return dumpJSON(value)
}

func dumpJSON(value interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
