package main

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"testing"

	"pixdoacao/internal/domain"
	"pixdoacao/internal/transaction"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		in      string
		want    command
		wantErr error
	}{
		{in: "c", want: command{kind: cmdCopy}},
		{in: " COPIAR ", want: command{kind: cmdCopy}},
		{in: "x", want: command{kind: cmdClose}},
		{in: "q", want: command{kind: cmdQuit}},
		{in: "1", want: command{kind: cmdSelect, amount: 20}},
		{in: "9", want: command{kind: cmdSelect, amount: 1000}},
		{in: "50", want: command{kind: cmdSelect, amount: 50}},
		{in: "R$ 200", want: command{kind: cmdSelect, amount: 200}},
		{in: "25", wantErr: domain.ErrInvalidAmount},
		{in: "-20", wantErr: domain.ErrInvalidAmount},
		{in: "pay", wantErr: errUnknownCommand},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := parseCommand(tc.in)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("parseCommand(%q) error = %v, want %v", tc.in, err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseCommand(%q) unexpected error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("parseCommand(%q) = %+v, want %+v", tc.in, got, tc.want)
			}
		})
	}
}

type recordingPanel struct {
	calls []string
}

func (p *recordingPanel) Select(amount int64) error {
	p.calls = append(p.calls, "select:"+strconv.FormatInt(amount, 10))
	return nil
}
func (p *recordingPanel) Copy() error  { p.calls = append(p.calls, "copy"); return nil }
func (p *recordingPanel) Close() error { p.calls = append(p.calls, "close"); return nil }

func TestReadCommands(t *testing.T) {
	p := &recordingPanel{}
	input := "20\n\nbogus\n50\nc\nx\nq\n100\n"

	if err := readCommands(context.Background(), strings.NewReader(input), p); err != nil {
		t.Fatalf("readCommands() error = %v", err)
	}
	want := []string{"select:20", "select:50", "copy", "close"}
	if strings.Join(p.calls, ",") != strings.Join(want, ",") {
		t.Fatalf("calls = %v, want %v", p.calls, want)
	}
}

func TestReadCommandsEOF(t *testing.T) {
	p := &recordingPanel{}
	if err := readCommands(context.Background(), strings.NewReader("30\n"), p); !errors.Is(err, io.EOF) {
		t.Fatalf("readCommands() error = %v, want EOF", err)
	}
	if len(p.calls) != 1 || p.calls[0] != "select:30" {
		t.Fatalf("calls = %v", p.calls)
	}
}

func TestNewGateway(t *testing.T) {
	t.Setenv("TRANSACTION_API_URL", "")
	if gw, err := newGateway(modeTransaction, "", nil); err != nil {
		t.Fatalf("transaction mode error: %v", err)
	} else if _, ok := gw.(*transaction.Client); !ok {
		t.Fatalf("transaction mode gateway = %T", gw)
	}
	if gw, err := newGateway(modeMock, "", nil); err != nil {
		t.Fatalf("mock mode error: %v", err)
	} else if _, ok := gw.(*transaction.MockGateway); !ok {
		t.Fatalf("mock mode gateway = %T", gw)
	}
	if _, err := newGateway("carrier-pigeon", "", nil); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}
