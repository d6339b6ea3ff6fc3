package engine

import (
	"testing"
	"time"
)

func TestNormalizeTag(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{"Plain tag", "abc123", "#ABC123", true},
		{"Already prefixed", "#abc123", "#ABC123", true},
		{"Uppercase unchanged", "#ABC123", "#ABC123", true},
		{"Surrounding whitespace", "  #2yqu9l8  ", "#2YQU9L8", true},
		{"Empty", "", "", false},
		{"Only hash", "#", "", false},
		{"Whitespace only", "   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeTag(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("NormalizeTag(%q) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("NormalizeTag(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseBattleTime(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   time.Time
		wantOK bool
	}{
		{
			name:   "Compact game API format",
			raw:    "20250114T123000.000Z",
			want:   time.Date(2025, 1, 14, 12, 30, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "RFC3339",
			raw:    "2025-01-14T12:30:00Z",
			want:   time.Date(2025, 1, 14, 12, 30, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "RFC3339 with offset",
			raw:    "2025-01-14T14:30:00+02:00",
			want:   time.Date(2025, 1, 14, 12, 30, 0, 0, time.UTC),
			wantOK: true,
		},
		{name: "Empty", raw: "", wantOK: false},
		{name: "Garbage", raw: "not-a-time", wantOK: false},
		{name: "Partial compact", raw: "20250114T", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseBattleTime(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("ParseBattleTime(%q) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("ParseBattleTime(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestCardIDs(t *testing.T) {
	cards := []RawCard{{ID: 26000010}, {ID: 26000001}, {ID: 28000004}}
	got := CardIDs(cards)
	want := []int64{26000001, 26000010, 28000004}
	if len(got) != len(want) {
		t.Fatalf("CardIDs returned %d ids, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("CardIDs[%d] = %d, want %d", i, got[i], want[i])
		}
	}

	if ids := CardIDs(nil); len(ids) != 0 {
		t.Errorf("CardIDs(nil) = %v, want empty", ids)
	}
}

func TestWinLossDraw(t *testing.T) {
	win := RawBattle{Team: []RawPlayer{{Crowns: 2}}, Opponent: []RawPlayer{{Crowns: 1}}}
	loss := RawBattle{Team: []RawPlayer{{Crowns: 0}}, Opponent: []RawPlayer{{Crowns: 3}}}
	draw := RawBattle{Team: []RawPlayer{{Crowns: 1}}, Opponent: []RawPlayer{{Crowns: 1}}}

	if !win.IsWin() || win.IsLoss() {
		t.Error("expected win")
	}
	if !loss.IsLoss() || loss.IsWin() {
		t.Error("expected loss")
	}
	if draw.IsWin() || draw.IsLoss() {
		t.Error("draw should be neither win nor loss")
	}

	// Missing sides default to zero crowns.
	empty := RawBattle{}
	if empty.IsWin() || empty.IsLoss() {
		t.Error("empty battle should be a draw")
	}
}
