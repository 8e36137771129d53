package finctrl

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestEncodeLedger(t *testing.T) {
	l := newLedger(t)
	// recorded in reverse order, they must be written by timestamp.
	l.tx(t, l.main, "2025-03-02 10:00:00", Debit, "20.00")
	l.tx(t, l.main, "2025-03-01 10:00:00", Credit, "50.125")
	l.balance(t, l.main, "2025-03-01", "100")

	var buffer bytes.Buffer
	if err := EncodeLedger(context.Background(), &buffer, l); err != nil {
		t.Fatalf("EncodeLedger() returned an unexpected error: %v", err)
	}

	want := `{"record":"currency","id":1,"name":"Euro","code":"EUR","sign":"€"}
{"record":"currency","id":2,"name":"US Dollar","code":"USD","sign":"$"}
{"record":"account","id":1,"name":"main","currency":1}
{"record":"account","id":2,"name":"savings","currency":1}
{"record":"account","id":3,"name":"trips","currency":2}
{"record":"balance","id":1,"account":1,"date":"2025-03-01","balance":100.00}
{"record":"transaction","id":2,"account":1,"timestamp":"2025-03-01 10:00:00","kind":"CREDIT","amount":50.125}
{"record":"transaction","id":1,"account":1,"timestamp":"2025-03-02 10:00:00","kind":"DEBIT","amount":20}
`
	if got := buffer.String(); got != want {
		t.Errorf("EncodeLedger() produced incorrect output.\nGot:\n%s\nWant:\n%s", got, want)
	}
}

func TestDecodeLedger(t *testing.T) {
	jsonlStream := `
{"record":"currency","id":3,"name":"Euro","code":"EUR","sign":"€"}
{"record":"account","id":7,"name":"main","currency":3}

{"record":"balance","id":1,"account":7,"date":"2025-03-01","balance":100.005}
{"record":"transaction","id":4,"account":7,"timestamp":"2025-03-01 10:00:00","kind":"credit","amount":50,"note":"salary"}
`
	s := NewMemStore()
	ctx := context.Background()
	n, err := DecodeLedger(ctx, strings.NewReader(jsonlStream), s)
	if err != nil {
		t.Fatalf("DecodeLedger() returned an unexpected error: %v", err)
	}
	if n != 4 {
		t.Errorf("DecodeLedger() = %d records, want 4", n)
	}

	a, err := s.Account(ctx, 7)
	if err != nil || a.Name != "main" || a.CurrencyID != 3 {
		t.Errorf("Account(7) = %+v, %v", a, err)
	}
	snap, found, _ := s.FindSnapshot(ctx, 7, day("2025-03-01"))
	if !found || !snap.Balance.Equal(D("100.00")) {
		t.Errorf("balance = %v (found %v), want 100.00", snap.Balance, found)
	}
	tx, err := s.Transaction(ctx, 4)
	if err != nil {
		t.Fatalf("Transaction(4): %v", err)
	}
	if tx.Kind != Credit || !tx.Amount.Equal(D("50")) || tx.Note != "salary" || !tx.Timestamp.Equal(at("2025-03-01 10:00:00")) {
		t.Errorf("Transaction(4) = %+v", tx)
	}

	// new records continue after the imported ids.
	next := Account{Name: "other", CurrencyID: 3}
	if err := s.CreateAccount(ctx, &next); err != nil || next.ID != 8 {
		t.Errorf("CreateAccount() id = %d, %v, want 8", next.ID, err)
	}
}

func TestDecodeLedger_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:  "unknown record",
			input: `{"record":"budget","id":1}`,
		},
		{
			name:  "invalid json",
			input: `{"record":`,
		},
		{
			name:    "account of an unknown currency",
			input:   `{"record":"account","id":1,"name":"main","currency":2}`,
			wantErr: ErrNotFound,
		},
		{
			name:  "unknown kind",
			input: `{"record":"transaction","id":1,"account":1,"timestamp":"2025-03-01","kind":"REFUND","amount":1}`,
		},
		{
			name:  "negative amount",
			input: `{"record":"currency","id":1,"name":"Euro","code":"EUR"}` + "\n" + `{"record":"account","id":1,"name":"main","currency":1}` + "\n" + `{"record":"transaction","id":1,"account":1,"timestamp":"2025-03-01","kind":"DEBIT","amount":-1}`,
		},
		{
			name:    "duplicate balance",
			input:   `{"record":"currency","id":1,"name":"Euro","code":"EUR"}` + "\n" + `{"record":"account","id":1,"name":"main","currency":1}` + "\n" + `{"record":"balance","account":1,"date":"2025-03-01","balance":1}` + "\n" + `{"record":"balance","account":1,"date":"2025-03-01","balance":2}`,
			wantErr: ErrDuplicateSnapshot,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeLedger(context.Background(), strings.NewReader(tc.input), NewMemStore())
			if err == nil {
				t.Fatalf("DecodeLedger() should fail")
			}
			if !strings.HasPrefix(err.Error(), "line ") {
				t.Errorf("DecodeLedger() error %q does not locate the line", err)
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Errorf("DecodeLedger() error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

// Encoding a ledger and decoding it in an empty store must give back the same ledger.
func TestEncodeDecodeLedger(t *testing.T) {
	l := newLedger(t)
	l.balance(t, l.main, "2025-03-01", "100.00")
	l.balance(t, l.trips, "2025-03-01", "-12.30")
	l.tx(t, l.main, "2025-03-01 10:00:00", TransferOut, "40.00")
	l.tx(t, l.trips, "2025-03-01 10:00:00", TransferIn, "45.10")
	ctx := context.Background()

	var first bytes.Buffer
	if err := EncodeLedger(ctx, &first, l); err != nil {
		t.Fatal(err)
	}
	copied := NewMemStore()
	if _, err := DecodeLedger(ctx, bytes.NewReader(first.Bytes()), copied); err != nil {
		t.Fatalf("DecodeLedger(): %v", err)
	}
	var second bytes.Buffer
	if err := EncodeLedger(ctx, &second, copied); err != nil {
		t.Fatal(err)
	}
	if first.String() != second.String() {
		t.Errorf("round trip changed the ledger.\nGot:\n%s\nWant:\n%s", second.String(), first.String())
	}
}
