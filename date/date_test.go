package date

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestNewNormalizes(t *testing.T) {
	testCases := []struct {
		name string
		got  Date
		want string
	}{
		{name: "day overflow", got: New(2025, time.January, 32), want: "2025-02-01"},
		{name: "day zero", got: New(2025, time.March, 0), want: "2025-02-28"},
		{name: "leap day", got: New(2024, time.February, 29), want: "2024-02-29"},
		{name: "add across year", got: New(2024, time.December, 31).Add(1), want: "2025-01-01"},
		{name: "subtract across month", got: New(2024, time.March, 1).Add(-1), want: "2024-02-29"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.got.String(); got != tc.want {
				t.Errorf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2025-07-01", want: New(2025, time.July, 1)},
		{in: "2025-7-1", want: New(2025, time.July, 1)},
		{in: "2025/07/01", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestOf(t *testing.T) {
	ts := time.Date(2025, time.May, 3, 23, 59, 59, 0, time.Local)
	if got, want := Of(ts), New(2025, time.May, 3); got != want {
		t.Errorf("Of(%v) = %v, want %v", ts, got, want)
	}
}

func TestJSON(t *testing.T) {
	d := New(2025, time.August, 9)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(b) != `"2025-08-09"` {
		t.Errorf("Marshal = %s, want %q", b, "2025-08-09")
	}
	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back != d {
		t.Errorf("Unmarshal = %v, want %v", back, d)
	}
}

func TestScan(t *testing.T) {
	want := New(2025, time.August, 9)
	for _, src := range []any{"2025-08-09", []byte("2025-08-09"), "2025-08-09T00:00:00Z", time.Date(2025, 8, 9, 12, 0, 0, 0, time.UTC)} {
		var d Date
		if err := d.Scan(src); err != nil {
			t.Errorf("Scan(%v): %v", src, err)
			continue
		}
		if d != want {
			t.Errorf("Scan(%v) = %v, want %v", src, d, want)
		}
	}
	var d Date
	if err := d.Scan(42); err == nil {
		t.Errorf("Scan(42) should fail")
	}
}
