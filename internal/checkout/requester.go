package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pixdoacao/internal/domain"
	"pixdoacao/internal/infra"
)

// Gateway fetches a payment code for an amount in whole reais.
type Gateway interface {
	RequestPaymentCode(ctx context.Context, amount int64) (domain.PaymentCode, error)
}

// Clipboard is the system clipboard write capability.
type Clipboard interface {
	WriteAll(text string) error
}

// ErrStopped is returned when posting to a Requester whose loop has exited.
var ErrStopped = errors.New("checkout: requester stopped")

// RequestPaymentCode validates amount and asks gw for a code.
func RequestPaymentCode(ctx context.Context, gw Gateway, amount int64) (domain.PaymentCode, error) {
	if amount <= 0 {
		return domain.PaymentCode{}, fmt.Errorf("%w: %d", domain.ErrInvalidAmount, amount)
	}
	code, err := gw.RequestPaymentCode(ctx, amount)
	if err != nil {
		return domain.PaymentCode{}, err
	}
	if code.Code == "" {
		return domain.PaymentCode{}, fmt.Errorf("%w: empty payment code", domain.ErrNetwork)
	}
	return code, nil
}

// Options configures a Requester.
type Options struct {
	Gateway   Gateway
	Clipboard Clipboard
	Logger    *infra.Logger
	// TickInterval is the countdown granularity. Zero means one second.
	TickInterval time.Duration
	// OnChange receives every new state, on the loop goroutine.
	OnChange func(State)
}

type eventKind int

const (
	eventSelect eventKind = iota
	eventCopy
	eventClose
)

type event struct {
	kind   eventKind
	amount int64
}

type result struct {
	ticket Ticket
	record domain.PaymentCode
	err    error
}

// Requester owns the payment panel state. Run executes its event loop;
// Select, Copy and Close post events to it from any goroutine.
type Requester struct {
	gateway   Gateway
	clipboard Clipboard
	logger    *infra.Logger
	interval  time.Duration
	onChange  func(State)

	events  chan event
	results chan result
	done    chan struct{}
}

// NewRequester validates opts and builds a Requester.
func NewRequester(opts Options) (*Requester, error) {
	if opts.Gateway == nil {
		return nil, errors.New("checkout: gateway is required")
	}
	interval := opts.TickInterval
	if interval <= 0 {
		interval = time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = infra.DiscardLogger()
	}
	onChange := opts.OnChange
	if onChange == nil {
		onChange = func(State) {}
	}
	return &Requester{
		gateway:   opts.Gateway,
		clipboard: opts.Clipboard,
		logger:    logger,
		interval:  interval,
		onChange:  onChange,
		events:    make(chan event),
		results:   make(chan result),
		done:      make(chan struct{}),
	}, nil
}

// Select requests a code for amount, superseding any code on screen.
func (r *Requester) Select(amount int64) error {
	if !domain.IsDonationAmount(amount) {
		return fmt.Errorf("%w: %d", domain.ErrInvalidAmount, amount)
	}
	return r.post(event{kind: eventSelect, amount: amount})
}

// Copy copies the displayed code to the clipboard.
func (r *Requester) Copy() error { return r.post(event{kind: eventCopy}) }

// Close dismisses the payment panel.
func (r *Requester) Close() error { return r.post(event{kind: eventClose}) }

func (r *Requester) post(ev event) error {
	select {
	case r.events <- ev:
		return nil
	case <-r.done:
		return ErrStopped
	}
}

// Run processes events until ctx is done. It returns ctx.Err().
func (r *Requester) Run(ctx context.Context) error {
	defer close(r.done)

	var (
		state    State
		ticker   *time.Ticker
		tickC    <-chan time.Time
		inflight inflightRequest
	)
	stopTicker := func() {
		if ticker != nil {
			ticker.Stop()
			ticker, tickC = nil, nil
		}
	}
	syncTicker := func() {
		if state.Ticking() && ticker == nil {
			ticker = time.NewTicker(r.interval)
			tickC = ticker.C
		} else if !state.Ticking() {
			stopTicker()
		}
	}
	defer func() {
		stopTicker()
		inflight.cancel()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-r.events:
			switch ev.kind {
			case eventSelect:
				next, ticket, err := state.Select(ev.amount)
				if err != nil {
					r.logger.Warn().Err(err).Msg("select rejected")
					continue
				}
				reqCtx := inflight.restart(ctx)
				state = next
				stopTicker()
				go r.fetch(reqCtx, ticket, ev.amount)
			case eventCopy:
				next, err := state.Copy(r.clipboardOrNoop())
				if err != nil {
					r.logger.Warn().Err(err).Msg("copy failed")
					continue
				}
				state = next
				syncTicker()
			case eventClose:
				inflight.cancel()
				state = state.Close()
				stopTicker()
			}
			r.onChange(state)

		case res := <-r.results:
			next := state.Resolve(res.ticket, res.record, res.err)
			if next == state {
				r.logger.Debug().Uint64("ticket", uint64(res.ticket)).Msg("discarded stale result")
				continue
			}
			if res.err != nil {
				r.logger.Error().Err(res.err).Int64("amount", state.Amount).Msg("payment code request failed")
			}
			state = next
			syncTicker()
			r.onChange(state)

		case <-tickC:
			state = state.Tick()
			syncTicker()
			r.onChange(state)
		}
	}
}

// inflightRequest holds the cancel func of the outstanding request, if any.
type inflightRequest struct {
	stop context.CancelFunc
}

// restart cancels the outstanding request and derives a context for the next one.
func (f *inflightRequest) restart(parent context.Context) context.Context {
	f.cancel()
	ctx, stop := context.WithCancel(parent)
	f.stop = stop
	return ctx
}

func (f *inflightRequest) cancel() {
	if f.stop != nil {
		f.stop()
		f.stop = nil
	}
}

func (r *Requester) fetch(ctx context.Context, ticket Ticket, amount int64) {
	record, err := RequestPaymentCode(ctx, r.gateway, amount)
	select {
	case r.results <- result{ticket: ticket, record: record, err: err}:
	case <-ctx.Done():
	case <-r.done:
	}
}

func (r *Requester) clipboardOrNoop() Clipboard {
	if r.clipboard == nil {
		return unavailableClipboard{}
	}
	return r.clipboard
}
