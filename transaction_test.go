package finctrl

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseKind(t *testing.T) {
	testCases := []struct {
		input   string
		want    Kind
		wantErr bool
	}{
		{input: "DEBIT", want: Debit},
		{input: "credit", want: Credit},
		{input: "Transfer_Out", want: TransferOut},
		{input: "TRANSFER_IN", want: TransferIn},
		{input: "transfer", wantErr: true},
		{input: "", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseKind(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseKind(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("ParseKind(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestKind_JSON(t *testing.T) {
	b, err := json.Marshal(TransferOut)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"TRANSFER_OUT"` {
		t.Errorf("json.Marshal(TransferOut) = %s", b)
	}
	if _, err := json.Marshal(Kind(0)); err == nil {
		t.Errorf("json.Marshal(Kind(0)) should fail")
	}
	var k Kind
	if err := json.Unmarshal([]byte(`"transfer_in"`), &k); err != nil || k != TransferIn {
		t.Errorf("json.Unmarshal() = %v, %v", k, err)
	}
}

func TestTransaction_Apply(t *testing.T) {
	testCases := []struct {
		kind    Kind
		amount  string
		want    string
		wantErr bool
	}{
		{kind: Debit, amount: "3.335", want: "6.66"},
		{kind: TransferOut, amount: "12.5", want: "-2.50"},
		{kind: Credit, amount: "0.005", want: "10.00"},
		{kind: TransferIn, amount: "0.015", want: "10.02"},
		{kind: Kind(0), amount: "1", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			tx := Transaction{Kind: tc.kind, Amount: D(tc.amount)}
			got, err := tx.Apply(D("10.00"))
			if (err != nil) != tc.wantErr {
				t.Fatalf("Apply() error = %v, wantErr %v", err, tc.wantErr)
			}
			if !tc.wantErr && !got.Equal(D(tc.want)) {
				t.Errorf("Apply() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2025, time.March, 1, 10, 30, 0, 0, time.Local)
	for _, s := range []string{"2025-03-01 10:30:00", "2025-3-1 10:30", "2025-03-01T10:30:00"} {
		got, err := ParseTimestamp(s)
		if err != nil || !got.Equal(want) {
			t.Errorf("ParseTimestamp(%q) = %v, %v, want %v", s, got, err, want)
		}
	}
	got, err := ParseTimestamp("2025-03-01")
	if err != nil || !got.Equal(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.Local)) {
		t.Errorf("ParseTimestamp(date only) = %v, %v", got, err)
	}
	if _, err := ParseTimestamp("01/03/2025"); err == nil {
		t.Errorf("ParseTimestamp() should reject unknown layouts")
	}
}

func TestTransaction_Date(t *testing.T) {
	tx := Transaction{Timestamp: at("2025-03-01 23:59:59")}
	if got := tx.Date(); got != day("2025-03-01") {
		t.Errorf("Date() = %v, want 2025-03-01", got)
	}
}

func TestSortTransactions(t *testing.T) {
	txs := []Transaction{
		{ID: 3, Timestamp: at("2025-03-01 10:00:00")},
		{ID: 1, Timestamp: at("2025-03-02 08:00:00")},
		{ID: 2, Timestamp: at("2025-03-01 10:00:00")},
		{ID: 4, Timestamp: at("2025-03-01 09:00:00")},
	}
	SortTransactions(txs)
	want := []int64{4, 2, 3, 1}
	for i, id := range want {
		if txs[i].ID != id {
			t.Errorf("SortTransactions()[%d] = #%d, want #%d", i, txs[i].ID, id)
		}
	}
}
