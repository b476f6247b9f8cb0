// Command ledger is the command-line front end for the expense ledger.
// Every command runs against the stores selected by the environment
// (see internal/config); commands that touch expense records require a
// successful login first.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"expense-ledger/internal/config"
	"expense-ledger/internal/models"
	"expense-ledger/internal/service"
	"expense-ledger/internal/stats"
	"expense-ledger/internal/storage"

	"golang.org/x/term"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: ledger <command> [flags]")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  signup   create a new account")
	fmt.Fprintln(w, "  add      add an expense")
	fmt.Fprintln(w, "  list     list your expenses")
	fmt.Fprintln(w, "  delete   delete an expense by id")
	fmt.Fprintln(w, "  summary  totals by category, currency and month")
}

type app struct {
	accounts *service.AccountService
	expenses *service.ExpenseService

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		usage(stdout)
		return fmt.Errorf("missing command")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	stores, err := storage.Open(cfg.Backend, cfg.UsersFile, cfg.ExpensesFile, cfg.SQLitePath)
	if err != nil {
		return err
	}
	defer stores.Close()

	a := &app{
		accounts: service.NewAccountService(stores.Users, cfg.BcryptCost),
		expenses: service.NewExpenseService(stores.Expenses),
		stdin:    stdin,
		stdout:   stdout,
		stderr:   stderr,
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "signup":
		return a.signup(rest)
	case "add":
		return a.add(rest)
	case "list":
		return a.list(rest)
	case "delete":
		return a.delete(rest)
	case "summary":
		return a.summary(rest)
	default:
		usage(stdout)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) flagSet(name string) (*flag.FlagSet, *string, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	user := fs.String("user", "", "Username")
	password := fs.String("password", "", "Password (optional, will prompt if omitted)")
	return fs, user, password
}

func (a *app) signup(args []string) error {
	fs, user, password := a.flagSet("signup")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *user == "" {
		return fmt.Errorf("missing required flags: user")
	}

	pw, confirm := *password, *password
	if pw == "" {
		var err error
		if pw, err = a.prompt("Password: "); err != nil {
			return err
		}
		if confirm, err = a.prompt("Confirm password: "); err != nil {
			return err
		}
	}

	if err := a.accounts.Signup(*user, pw, confirm); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Account %s created. You can now log in.\n", *user)
	return nil
}

// authenticate logs the user in and returns the resulting session state.
// The expense commands operate on state.CurrentUser, never on the raw
// flag value.
func (a *app) authenticate(user, password string) (service.AuthState, error) {
	var state service.AuthState
	if user == "" {
		return state, fmt.Errorf("missing required flags: user")
	}
	if password == "" {
		var err error
		if password, err = a.prompt("Password: "); err != nil {
			return state, err
		}
	}
	if err := a.accounts.Login(&state, user, password); err != nil {
		return state, err
	}
	return state, nil
}

func (a *app) add(args []string) error {
	fs, user, password := a.flagSet("add")
	amount := fs.Float64("amount", 0, "Amount (must be greater than zero)")
	category := fs.String("category", "", "Category")
	dateStr := fs.String("date", "", "Date as YYYY-MM-DD (defaults to today)")
	currency := fs.String("currency", "USD", "Currency code")
	if err := fs.Parse(args); err != nil {
		return err
	}

	state, err := a.authenticate(*user, *password)
	if err != nil {
		return err
	}

	var date models.Date
	if *dateStr != "" {
		if date, err = models.ParseDate(*dateStr); err != nil {
			return err
		}
	}

	e, err := a.expenses.Add(state.CurrentUser, *amount, models.Category(*category), date, models.Currency(*currency))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Added %s: %.2f %s (%s) on %s\n", e.ID, e.Amount, e.Currency, e.Category, e.Date)
	return nil
}

func (a *app) list(args []string) error {
	fs, user, password := a.flagSet("list")
	if err := fs.Parse(args); err != nil {
		return err
	}

	state, err := a.authenticate(*user, *password)
	if err != nil {
		return err
	}

	records, err := a.expenses.List(state.CurrentUser)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(a.stdout, "No expenses recorded yet.")
		return nil
	}
	for _, e := range records {
		fmt.Fprintf(a.stdout, "%s  %s  %-13s %10.2f %s\n", e.ID, e.Date, e.Category, e.Amount, e.Currency)
	}
	return nil
}

func (a *app) delete(args []string) error {
	fs, user, password := a.flagSet("delete")
	id := fs.String("id", "", "Expense id to delete")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("missing required flags: id")
	}

	state, err := a.authenticate(*user, *password)
	if err != nil {
		return err
	}

	if err := a.expenses.Delete(state.CurrentUser, *id); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Deleted %s\n", *id)
	return nil
}

func (a *app) summary(args []string) error {
	fs, user, password := a.flagSet("summary")
	if err := fs.Parse(args); err != nil {
		return err
	}

	state, err := a.authenticate(*user, *password)
	if err != nil {
		return err
	}

	records, err := a.expenses.List(state.CurrentUser)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(a.stdout, "No expenses recorded yet.")
		return nil
	}

	byCategory := stats.SumByCategory(records)
	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, string(c))
	}
	sort.Strings(categories)
	fmt.Fprintln(a.stdout, "By category:")
	for _, c := range categories {
		fmt.Fprintf(a.stdout, "  %-13s %10.2f\n", c, byCategory[models.Category(c)])
	}

	byCurrency := stats.SumByCurrency(records)
	currencies := make([]string, 0, len(byCurrency))
	for c := range byCurrency {
		currencies = append(currencies, string(c))
	}
	sort.Strings(currencies)
	fmt.Fprintln(a.stdout, "By currency:")
	for _, c := range currencies {
		fmt.Fprintf(a.stdout, "  %-13s %10.2f\n", c, byCurrency[models.Currency(c)])
	}

	byMonth := stats.SumByMonth(records)
	fmt.Fprintln(a.stdout, "By month:")
	for _, p := range stats.SortedMonths(byMonth) {
		fmt.Fprintf(a.stdout, "  %-13s %10.2f\n", p, byMonth[p])
	}
	return nil
}

func (a *app) prompt(label string) (string, error) {
	fmt.Fprint(a.stdout, label)
	pw, err := readPassword(a.stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Fprintln(a.stdout)
	if strings.TrimSpace(pw) == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	return pw, nil
}

func readPassword(stdin io.Reader) (string, error) {
	// Check if stdin is a terminal
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytePassword, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}

	// Fallback for non-terminal (e.g. tests, pipes)
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
