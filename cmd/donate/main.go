package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/joho/godotenv"

	"pixdoacao/internal/checkout"
	"pixdoacao/internal/domain"
	"pixdoacao/internal/infra"
	"pixdoacao/internal/money"
	"pixdoacao/internal/transaction"
)

const (
	modeTransaction = "transaction"
	modeMock        = "mock"

	defaultMockURL = "http://localhost:8080"
)

func main() {
	var (
		apiFlag     string
		modeFlag    string
		localeFlag  string
		verboseFlag bool
	)
	flag.StringVar(&apiFlag, "api", "", "service base URL (defaults to TRANSACTION_API_URL, or the local API in mock mode)")
	flag.StringVar(&modeFlag, "mode", modeTransaction, "payment code source: transaction or mock")
	flag.StringVar(&localeFlag, "locale", "pt", "label locale: pt or en")
	flag.BoolVar(&verboseFlag, "v", false, "verbose logging to stderr")
	flag.Parse()

	_ = godotenv.Load()

	logger := infra.NewCLILogger(verboseFlag).With().Str("cmd", "donate").Logger()

	gateway, err := newGateway(strings.ToLower(strings.TrimSpace(modeFlag)), strings.TrimSpace(apiFlag), &logger)
	if err != nil {
		exitWithError(err)
	}

	tag := money.Tag(strings.ToLower(strings.TrimSpace(localeFlag)))
	var outMu sync.Mutex
	draw := func(s checkout.State) {
		outMu.Lock()
		defer outMu.Unlock()
		fmt.Fprint(os.Stdout, "\033[H\033[2J")
		if err := checkout.Render(os.Stdout, s, tag); err != nil {
			logger.Error().Err(err).Msg("render failed")
		}
		fmt.Fprint(os.Stdout, "\n> ")
	}

	requester, err := checkout.NewRequester(checkout.Options{
		Gateway:   gateway,
		Clipboard: checkout.SystemClipboard{},
		Logger:    &logger,
		OnChange:  draw,
	})
	if err != nil {
		exitWithError(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loopDone := make(chan error, 1)
	go func() { loopDone <- requester.Run(ctx) }()

	draw(checkout.State{})
	if err := readCommands(ctx, os.Stdin, requester); err != nil && !errors.Is(err, io.EOF) {
		logger.Warn().Err(err).Msg("input stopped")
	}
	stop()
	<-loopDone
	fmt.Fprintln(os.Stdout)
}

func newGateway(mode, api string, logger *infra.Logger) (checkout.Gateway, error) {
	switch mode {
	case modeTransaction:
		if api == "" {
			api = strings.TrimSpace(os.Getenv("TRANSACTION_API_URL"))
		}
		return transaction.NewClient(transaction.Options{BaseURL: api, Logger: logger}), nil
	case modeMock:
		if api == "" {
			api = defaultMockURL
		}
		return transaction.NewMockGateway(transaction.Options{BaseURL: api, Logger: logger}), nil
	default:
		return nil, fmt.Errorf("unsupported mode %q (want %s or %s)", mode, modeTransaction, modeMock)
	}
}

type commandKind int

const (
	cmdSelect commandKind = iota
	cmdCopy
	cmdClose
	cmdQuit
)

type command struct {
	kind   commandKind
	amount int64
}

// panel is the part of checkout.Requester driven by user input.
type panel interface {
	Select(amount int64) error
	Copy() error
	Close() error
}

var errUnknownCommand = errors.New("unknown command")

// parseCommand accepts c, x, q, a button number (1-9) or an amount in reais.
func parseCommand(line string) (command, error) {
	switch in := strings.ToLower(strings.TrimSpace(line)); in {
	case "c", "copy", "copiar":
		return command{kind: cmdCopy}, nil
	case "x", "close", "fechar":
		return command{kind: cmdClose}, nil
	case "q", "quit", "sair":
		return command{kind: cmdQuit}, nil
	default:
		in = strings.TrimPrefix(in, "r$")
		n, err := strconv.ParseInt(strings.TrimSpace(in), 10, 64)
		if err != nil {
			return command{}, fmt.Errorf("%w: %q", errUnknownCommand, line)
		}
		amounts := domain.DonationAmounts()
		if n >= 1 && int(n) <= len(amounts) {
			return command{kind: cmdSelect, amount: amounts[n-1]}, nil
		}
		if !domain.IsDonationAmount(n) {
			return command{}, fmt.Errorf("%w: %d", domain.ErrInvalidAmount, n)
		}
		return command{kind: cmdSelect, amount: n}, nil
	}
}

// readCommands feeds input lines to p until quit, EOF or ctx is done.
func readCommands(ctx context.Context, in io.Reader, p panel) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := sc.Err(); err != nil {
			scanErr <- err
			return
		}
		scanErr <- io.EOF
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-scanErr:
			return err
		case line := <-lines:
			if strings.TrimSpace(line) == "" {
				continue
			}
			cmd, err := parseCommand(line)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%v\n", err)
				continue
			}
			switch cmd.kind {
			case cmdQuit:
				return nil
			case cmdSelect:
				err = p.Select(cmd.amount)
			case cmdCopy:
				err = p.Copy()
			case cmdClose:
				err = p.Close()
			}
			if err != nil {
				return err
			}
		}
	}
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
