// Package checkout drives the donor-side payment flow: pick an amount, fetch
// a payment code, count down to its expiry, copy it, close the panel.
//
// State is a value. Every transition takes the current State and returns
// the next one, so the event loop in Requester is the only writer.
package checkout

import (
	"errors"
	"fmt"

	"pixdoacao/internal/domain"
)

// Phase tags which variant a State holds.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Ticket identifies one request. Only the latest ticket may update the state.
type Ticket uint64

// CopiedResetTicks is how many countdown ticks the "copied" marker survives.
const CopiedResetTicks = 2

// ErrNothingToCopy is returned by Copy when no payment code is displayed.
var ErrNothingToCopy = errors.New("checkout: no payment code to copy")

// State is the whole UI state of the payment panel.
//
//	Idle                      Amount == 0, no record
//	Loading(Amount, Ticket)   request outstanding
//	Success(Record)           code displayed, Remaining counts down
//	Failed(Amount, Reason)    last request failed
type State struct {
	Phase     Phase
	Amount    int64
	Ticket    Ticket
	Record    domain.PaymentCode
	Remaining int
	Copied    bool
	Reason    string

	copiedTTL int
}

// Select starts a request for amount and supersedes whatever was shown.
// The returned ticket must accompany the request's result.
func (s State) Select(amount int64) (State, Ticket, error) {
	if !domain.IsDonationAmount(amount) {
		return s, 0, fmt.Errorf("%w: %d", domain.ErrInvalidAmount, amount)
	}
	next := State{Phase: PhaseLoading, Amount: amount, Ticket: s.Ticket + 1}
	return next, next.Ticket, nil
}

// Resolve applies the result of the request identified by ticket. Results of
// superseded or closed requests leave the state untouched.
func (s State) Resolve(ticket Ticket, record domain.PaymentCode, err error) State {
	if s.Phase != PhaseLoading || ticket != s.Ticket {
		return s
	}
	if err != nil {
		return State{Phase: PhaseFailed, Amount: s.Amount, Ticket: s.Ticket, Reason: failureReason(err)}
	}
	remaining := record.ExpiresIn
	if remaining < 0 {
		remaining = 0
	}
	return State{Phase: PhaseSuccess, Amount: s.Amount, Ticket: s.Ticket, Record: record, Remaining: remaining}
}

// Tick advances the countdown by one second, floored at zero, and ages the copied marker.
// Reaching zero is informational only; the code stays displayed.
func (s State) Tick() State {
	if s.Phase != PhaseSuccess {
		return s
	}
	if s.Remaining > 0 {
		s.Remaining--
	}
	if s.copiedTTL > 0 {
		s.copiedTTL--
		if s.copiedTTL == 0 {
			s.Copied = false
		}
	}
	return s
}

// Ticking reports whether further ticks can still change the state.
func (s State) Ticking() bool {
	return s.Phase == PhaseSuccess && (s.Remaining > 0 || s.copiedTTL > 0)
}

// Copy writes the displayed code to cb and raises the copied marker.
func (s State) Copy(cb Clipboard) (State, error) {
	if s.Phase != PhaseSuccess {
		return s, ErrNothingToCopy
	}
	if err := cb.WriteAll(s.Record.Code); err != nil {
		return s, fmt.Errorf("checkout: write clipboard: %w", err)
	}
	s.Copied = true
	s.copiedTTL = CopiedResetTicks
	return s, nil
}

// Close returns to Idle. The ticket counter survives so in-flight results stay stale.
func (s State) Close() State {
	return State{Ticket: s.Ticket}
}

// LoadingAmount reports whether the button for amount should show a spinner.
func (s State) LoadingAmount(amount int64) bool {
	return s.Phase == PhaseLoading && s.Amount == amount
}

// Expired reports whether the countdown of a displayed code reached zero.
func (s State) Expired() bool {
	return s.Phase == PhaseSuccess && s.Remaining == 0
}

// Countdown renders the remaining time as MM:SS.
func (s State) Countdown() string {
	return FormatRemaining(s.Remaining)
}

// FormatRemaining renders seconds as zero-padded MM:SS. Negative input reads 00:00.
func FormatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return "Valor inválido. Escolha outro valor."
	case errors.Is(err, domain.ErrNetwork):
		return "Não foi possível gerar o código PIX. Tente novamente."
	default:
		return "Erro inesperado ao gerar o código PIX."
	}
}
