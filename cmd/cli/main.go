package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/iho/pocketledger/internal/adapter/http/dto"
	"github.com/iho/pocketledger/internal/adapter/repository"
	"github.com/iho/pocketledger/internal/adapter/text"
	"github.com/iho/pocketledger/internal/domain"
	"github.com/iho/pocketledger/internal/infrastructure/backend"
	"github.com/iho/pocketledger/internal/infrastructure/config"
	"github.com/iho/pocketledger/internal/infrastructure/logger"
	"github.com/iho/pocketledger/internal/usecase"
)

// app carries what every command needs. open is called once before a command
// runs so tests can substitute an in-memory ledger.
type app struct {
	open func(ctx context.Context, envFile string) (*usecase.LedgerUseCase, domain.MoneyFormatter, func() error, error)

	in     io.Reader
	out    io.Writer
	errOut io.Writer

	envFile   string
	ledger    *usecase.LedgerUseCase
	formatter domain.MoneyFormatter
	close     func() error
}

// shutdown releases the storage handle once. It runs after every command,
// including ones that failed.
func (a *app) shutdown() error {
	if a.close == nil {
		return nil
	}
	closer := a.close
	a.close = nil
	return closer()
}

// run executes the command line in args and always releases storage.
func run(a *app, args []string) (err error) {
	defer func() {
		if cerr := a.shutdown(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func main() {
	a := &app{
		open:   openLedger,
		in:     os.Stdin,
		out:    os.Stdout,
		errOut: os.Stderr,
	}

	if err := run(a, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, userMessage(err))
		os.Exit(1)
	}
}

func openLedger(ctx context.Context, envFile string) (*usecase.LedgerUseCase, domain.MoneyFormatter, func() error, error) {
	cfg, err := config.Load(config.DotenvFiles(envFile)...)
	if err != nil {
		return nil, domain.MoneyFormatter{}, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Logs go to stderr so they never mix with command output.
	log.Logger = logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: os.Stderr})

	b, err := backend.Open(ctx, cfg)
	if err != nil {
		return nil, domain.MoneyFormatter{}, nil, err
	}

	idGen := repository.NewIDGenerator(cfg.IDScheme)
	store := repository.NewSlotStore(b.Slot, cfg.StorageKey, idGen, log.Logger)
	ledger := usecase.NewLedgerUseCase(ctx, store, idGen)
	formatter := domain.NewMoneyFormatter(cfg.CurrencySymbol, domain.Grouping(cfg.DigitGrouping))

	return ledger, formatter, b.Close, nil
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pocketledger",
		Short:         "Personal income and expense ledger",
		Long:          `Record income and expenses and see running totals. Storage is selected with STORAGE_BACKEND, read from the environment or a dotenv file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ledger, formatter, closer, err := a.open(cmd.Context(), a.envFile)
			if err != nil {
				return err
			}
			a.ledger, a.formatter, a.close = ledger, formatter, closer
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.shutdown()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.envFile, "env-file", "", "dotenv file to load (default $ENV_FILE, then ./.env if present)")

	rootCmd.SetIn(a.in)
	rootCmd.SetOut(a.out)
	rootCmd.SetErr(a.errOut)

	rootCmd.AddCommand(
		addCmd(a),
		editCmd(a),
		deleteCmd(a),
		listCmd(a),
		totalsCmd(a),
	)

	return rootCmd
}

func addCmd(a *app) *cobra.Command {
	var typ, description, amount string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := a.ledger.Add(cmd.Context(), domain.EntryInput{
				Type:        typ,
				Description: domain.ClampDescription(description),
				Amount:      amount,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Added %s\n", entry.ID)
			return text.NewRenderer(a.formatter).Entries(a.out, []domain.Entry{entry})
		},
	}

	cmd.Flags().StringVarP(&typ, "type", "t", string(domain.EntryTypeIncome), "income or expense")
	cmd.Flags().StringVarP(&description, "description", "d", "", "what the entry is for")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "positive amount, two decimals kept")

	return cmd
}

func editCmd(a *app) *cobra.Command {
	var typ, description, amount string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change an entry; omitted flags keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			draft, ok := a.ledger.BeginEdit(id)
			if !ok {
				return fmt.Errorf("entry %s not found", id)
			}

			if cmd.Flags().Changed("type") {
				draft.Type = typ
			}
			if cmd.Flags().Changed("description") {
				draft.Description = domain.ClampDescription(description)
			}
			if cmd.Flags().Changed("amount") {
				draft.Amount = amount
			}

			saved, err := a.ledger.SaveEdit(cmd.Context(), id, draft)
			if err != nil {
				return err
			}
			if !saved {
				return fmt.Errorf("entry %s not found", id)
			}

			return a.printEntry("Updated", id)
		},
	}

	cmd.Flags().StringVarP(&typ, "type", "t", "", "income or expense")
	cmd.Flags().StringVarP(&description, "description", "d", "", "what the entry is for")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "positive amount")

	return cmd
}

// printEntry reports verb for id and shows the stored row. The entry may have
// been removed by another writer since it was saved.
func (a *app) printEntry(verb, id string) error {
	entry, ok := a.ledger.Get(id)
	if !ok {
		return fmt.Errorf("entry %s not found", id)
	}

	fmt.Fprintf(a.out, "%s %s\n", verb, id)
	return text.NewRenderer(a.formatter).Entries(a.out, []domain.Entry{entry})
}

func deleteCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an entry after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if _, ok := a.ledger.Get(id); !ok {
				return fmt.Errorf("entry %s not found", id)
			}

			var confirmer usecase.Confirmer = promptConfirmer{in: bufio.NewReader(a.in), out: a.out}
			if yes {
				confirmer = usecase.ConfirmFunc(func(string) bool { return true })
			}

			_, err := a.ledger.Delete(cmd.Context(), id, confirmer)
			if errors.Is(err, domain.ErrConfirmationRequired) {
				fmt.Fprintln(a.out, "Cancelled.")
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Deleted %s\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

func listCmd(a *app) *cobra.Command {
	var filter string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show totals and entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := domain.ParseFilter(filter)
			if err != nil {
				return err
			}
			a.ledger.SetFilter(f)

			view := a.ledger.Render()
			if asJSON {
				return printJSON(a.out, dto.WidgetFromView(view, a.formatter))
			}
			return text.NewRenderer(a.formatter).View(a.out, view)
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", string(domain.FilterAll), "all, income or expense")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")

	return cmd
}

func totalsCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "totals",
		Short: "Show income, expense and net",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			totals := a.ledger.Totals()
			if asJSON {
				return printJSON(a.out, dto.TotalsFromDomain(totals, a.formatter))
			}
			return text.NewRenderer(a.formatter).Totals(a.out, totals)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of text")

	return cmd
}

// promptConfirmer asks on out and reads a y/N answer from in.
type promptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func (p promptConfirmer) Confirm(prompt string) bool {
	fmt.Fprintf(p.out, "%s [y/N]: ", prompt)

	answer, err := p.in.ReadString('\n')
	if err != nil && answer == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// userMessage prefers the friendly text of validation failures.
func userMessage(err error) string {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return verr.UserMessage()
	}
	return "Error: " + err.Error()
}
