package main

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/hpungsan/blogdex/internal/auth"
	"github.com/hpungsan/blogdex/internal/config"
	"github.com/hpungsan/blogdex/internal/errors"
	"github.com/hpungsan/blogdex/internal/index"
	"github.com/hpungsan/blogdex/internal/web"
)

// dotEnvFile is loaded before serve parses its flags, so PORT and JWT_SECRET can live there.
const dotEnvFile = ".env"

// newCLIApp creates the CLI application with all commands.
func newCLIApp(cfg *config.Config, log *zap.Logger) *cli.App {
	app := &cli.App{
		Name:    "blogdex",
		Usage:   "Blog index generator and server",
		Version: Version,
		// Runs before subcommand flags (and their EnvVars) are parsed.
		Before: func(c *cli.Context) error {
			if c.Args().First() == "serve" {
				return loadDotEnv(dotEnvFile)
			}
			return nil
		},
		Commands: []*cli.Command{
			generateCmd(cfg, log),
			serveCmd(cfg, log),
			hashPasswordCmd(),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// generateCmd creates the generate command.
func generateCmd(cfg *config.Config, log *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Scan the content root and write blog-index.json",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "root", Aliases: []string{"r"}, Usage: "Content root containing YYYY/ directories"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Manifest path (default <root>/blog-index.json)"},
			&cli.StringFlag{Name: "source", Aliases: []string{"s"}, Usage: "Posts tree copied into the root before scanning"},
			&cli.BoolFlag{Name: "no-sync", Usage: "Skip copying posts from the source tree"},
			&cli.IntFlag{Name: "summary-length", Usage: "Maximum summary length in characters"},
		},
		Action: func(c *cli.Context) error {
			run := applyGenerateFlags(c, cfg)
			if run.SummaryMaxLength < 0 {
				return outputError(errors.NewInvalidRequest("summary-length must be >= 0"))
			}

			output, err := index.Generate(index.FromConfig(run), log)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// applyGenerateFlags returns a copy of cfg with generate's flags applied.
func applyGenerateFlags(c *cli.Context, cfg *config.Config) *config.Config {
	run := *cfg
	if c.IsSet("root") {
		run.ContentRoot = c.String("root")
	}
	if c.IsSet("output") {
		run.OutputPath = c.String("output")
	}
	if c.IsSet("source") {
		run.SourceDir = c.String("source")
	}
	if c.Bool("no-sync") {
		run.SourceDir = ""
	}
	if c.IsSet("summary-length") {
		run.SummaryMaxLength = c.Int("summary-length")
	}
	return &run
}

// serveCmd creates the serve command.
func serveCmd(cfg *config.Config, log *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the blog and its API over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Aliases: []string{"b"}, Usage: "Address to bind to"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, EnvVars: []string{"PORT"}, Usage: "Port to listen on"},
			&cli.StringFlag{Name: "root", Aliases: []string{"r"}, Usage: "Content root to serve"},
			&cli.StringFlag{Name: "jwt-secret", EnvVars: []string{"JWT_SECRET"}, Usage: "Secret used to sign API tokens"},
			&cli.StringFlag{Name: "auth-username", EnvVars: []string{"BLOGDEX_AUTH_USERNAME"}, Usage: "API account username"},
			&cli.StringFlag{Name: "auth-password-hash", EnvVars: []string{"BLOGDEX_AUTH_PASSWORD_HASH"}, Usage: "API account bcrypt hash"},
			&cli.BoolFlag{Name: "generate", Aliases: []string{"g"}, Usage: "Regenerate the index before serving"},
		},
		Action: func(c *cli.Context) error {
			run := applyServeFlags(c, cfg)

			if c.Bool("generate") {
				if _, err := index.Generate(index.FromConfig(run), log); err != nil {
					return outputError(err)
				}
			}

			srv, err := buildServer(run, log)
			if err != nil {
				return outputError(err)
			}

			if err := web.Run(srv, log); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
				return outputError(errors.NewInternal(err))
			}
			return nil
		},
	}
}

// applyServeFlags returns a copy of cfg with serve's flags applied.
func applyServeFlags(c *cli.Context, cfg *config.Config) *config.Config {
	run := *cfg
	if c.IsSet("bind") {
		run.Bind = c.String("bind")
	}
	if c.IsSet("port") {
		run.Port = c.Int("port")
	}
	if c.IsSet("root") {
		run.ContentRoot = c.String("root")
	}
	if c.IsSet("jwt-secret") {
		run.JWTSecret = c.String("jwt-secret")
	}
	if c.IsSet("auth-username") {
		run.AuthUsername = c.String("auth-username")
	}
	if c.IsSet("auth-password-hash") {
		run.AuthPasswordHash = c.String("auth-password-hash")
	}
	return &run
}

// buildServer wires the authenticator and HTTP server for cfg.
func buildServer(cfg *config.Config, log *zap.Logger) (*http.Server, error) {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("invalid port: %d", cfg.Port))
	}

	issuer, err := auth.NewIssuer(cfg.JWTSecret, cfg.TokenLifetime())
	if err != nil {
		return nil, errors.NewInvalidRequest("jwt secret is required (set JWT_SECRET)")
	}

	var account *auth.Account
	if cfg.AuthUsername != "" && cfg.AuthPasswordHash != "" {
		account = &auth.Account{ID: 1, Username: cfg.AuthUsername, PasswordHash: cfg.AuthPasswordHash}
	} else {
		log.Warn("no API account configured; logins will be rejected")
	}

	return web.NewServer(cfg, auth.NewAuthenticator(account, issuer), log, Version), nil
}

// hashPasswordCmd creates the hash-password command.
func hashPasswordCmd() *cli.Command {
	return &cli.Command{
		Name:  "hash-password",
		Usage: "Hash a password for auth_password_hash (reads the password from stdin)",
		Action: func(c *cli.Context) error {
			if !stdinHasData() {
				return outputError(errors.NewInvalidRequest("password must be piped via stdin"))
			}

			password, err := readStdin()
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			if password == "" {
				return outputError(errors.NewInvalidRequest("password is required"))
			}

			hash, err := auth.HashPassword(password)
			if err != nil {
				return outputError(errors.NewInvalidRequest(err.Error()))
			}

			return outputJSON(map[string]string{"auth_password_hash": hash})
		},
	}
}

// loadDotEnv loads path into the environment without overriding existing variables.
// A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return cli.Exit(fmt.Sprintf("failed to load %s: %v", path, err), 1)
	}
	return nil
}

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	var bErr *errors.BlogError
	if stderrors.As(err, &bErr) {
		return cli.Exit(fmt.Sprintf("[%s] %s", bErr.Code, bErr.Message), 1)
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
