// Package cmd implements the CLI application to manage a personal ledger.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/finctrl"
	"github.com/etnz/finctrl/date"
	"github.com/etnz/finctrl/renderer"
	"github.com/etnz/finctrl/sqlstore"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&createCurrencyCmd{}, "currencies")
	c.Register(&listCurrenciesCmd{}, "currencies")
	c.Register(&editCurrencySignCmd{}, "currencies")

	c.Register(&createAccountCmd{}, "accounts")
	c.Register(&listAccountsCmd{}, "accounts")
	c.Register(&renameAccountCmd{}, "accounts")
	c.Register(&removeAccountCmd{}, "accounts")

	c.Register(&addBalanceCmd{}, "balances")
	c.Register(&listBalancesCmd{}, "balances")
	c.Register(&removeBalanceCmd{}, "balances")
	c.Register(&updateBalancesCmd{}, "balances")
	c.Register(&updateBalanceSeriesCmd{}, "balances")
	c.Register(&removeBalanceSeriesCmd{}, "balances")

	c.Register(&addTxCmd{}, "transactions")
	c.Register(&listTxCmd{}, "transactions")
	c.Register(&removeTxCmd{}, "transactions")

	c.Register(&monthlyReportCmd{}, "reports")
	c.Register(&balanceReportCmd{}, "reports")
	c.Register(&averageOverviewCmd{}, "reports")
	c.Register(&accountReportCmd{}, "reports")

	c.Register(&exportCmd{}, "data")
	c.Register(&importCmd{}, "data")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dbPath = flag.String("db", "", "Path to the SQLite database (default $"+EnvDB+" or "+DefaultDB+")")
var Verbose = flag.Bool("v", false, "Log debug messages")

// Environment variables read as default values for the global flags.
const (
	EnvDB       = "FINCTRL_DB"
	EnvLogLevel = "FINCTRL_LOG_LEVEL"
)

// DefaultDB is the database used when neither -db nor $FINCTRL_DB are set.
const DefaultDB = "finance.db"

// Config is the resolved configuration of the application.
type Config struct {
	DB       string
	LogLevel zerolog.Level
}

// LoadConfig resolves the configuration from the global flags, the
// environment, and a .env file in the working directory if there is one.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("could not load .env file: %w", err)
	}
	cfg := Config{DB: *dbPath, LogLevel: zerolog.InfoLevel}
	if cfg.DB == "" {
		cfg.DB = os.Getenv(EnvDB)
	}
	if cfg.DB == "" {
		cfg.DB = DefaultDB
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		level, err := zerolog.ParseLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid $%s: %w", EnvLogLevel, err)
		}
		cfg.LogLevel = level
	}
	if *Verbose {
		cfg.LogLevel = zerolog.DebugLevel
	}
	return cfg, nil
}

// NewLogger returns the logger of the application, writing on stderr.
func (c Config) NewLogger() zerolog.Logger {
	w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	return zerolog.New(w).Level(c.LogLevel).With().Timestamp().Logger()
}

// app is what every command works with.
type app struct {
	*sqlstore.Store
	log zerolog.Logger
}

// openApp opens the ledger database. The caller must close it.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	log := cfg.NewLogger()
	s, err := sqlstore.Open(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}
	return &app{Store: s, log: log}, nil
}

// engine returns a balance engine on the ledger.
func (a *app) engine() *finctrl.Engine {
	return finctrl.NewEngine(a.Store, finctrl.WithLogger(a.log))
}

// catalog returns the lookup of accounts and currencies used by renderers.
func (a *app) catalog(ctx context.Context) (*renderer.Catalog, error) {
	accounts, err := a.Accounts(ctx)
	if err != nil {
		return nil, err
	}
	currencies, err := a.Currencies(ctx)
	if err != nil {
		return nil, err
	}
	return renderer.NewCatalog(accounts, currencies), nil
}

// account finds an account by id or by name.
func (a *app) account(ctx context.Context, ref string) (finctrl.Account, error) {
	if ref == "" {
		return finctrl.Account{}, errors.New("missing account")
	}
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return a.Account(ctx, id)
	}
	accounts, err := a.Accounts(ctx)
	if err != nil {
		return finctrl.Account{}, err
	}
	for _, acc := range accounts {
		if acc.Name == ref {
			return acc, nil
		}
	}
	return finctrl.Account{}, &finctrl.NotFoundError{Kind: "account", Key: ref}
}

// currency finds a currency by id or by code.
func (a *app) currency(ctx context.Context, ref string) (finctrl.Currency, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return a.Currency(ctx, id)
	}
	return a.CurrencyByCode(ctx, strings.ToUpper(ref))
}

// stdout is where commands print their output.
var stdout io.Writer = os.Stdout

// printMarkdown prints markdown, rendered for the terminal when stdout is one.
func printMarkdown(md string) {
	f, ok := stdout.(*os.File)
	if !ok || !(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		fmt.Fprint(stdout, md)
		return
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}

// parseDate parses a date, defaulting to today when empty.
func parseDate(s string) (date.Date, error) {
	if s == "" {
		return date.Today(), nil
	}
	return date.Parse(s)
}

// parseMonth parses a "2006-01" month, defaulting to the current month when empty.
func parseMonth(s string) (int, time.Month, error) {
	if s == "" {
		today := date.Today()
		return today.Year(), today.Month(), nil
	}
	t, err := time.Parse("2006-1", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q want format YYYY-MM", s)
	}
	return t.Year(), t.Month(), nil
}

// parseID parses a record id.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// idList is a flag of comma separated ids.
type idList []int64

func (l *idList) String() string {
	if l == nil {
		return ""
	}
	s := make([]string, len(*l))
	for i, id := range *l {
		s[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(s, ",")
}

func (l *idList) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part == "" {
			continue
		}
		id, err := parseID(part)
		if err != nil {
			return err
		}
		*l = append(*l, id)
	}
	return nil
}

// refList is a repeatable flag of account references.
type refList []string

func (l *refList) String() string {
	if l == nil {
		return ""
	}
	return strings.Join(*l, ",")
}

func (l *refList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

// accountIDs resolves account references.
func (a *app) accountIDs(ctx context.Context, refs []string) ([]int64, error) {
	ids := make([]int64, 0, len(refs))
	for _, ref := range refs {
		acc, err := a.account(ctx, ref)
		if err != nil {
			return nil, err
		}
		ids = append(ids, acc.ID)
	}
	return ids, nil
}
