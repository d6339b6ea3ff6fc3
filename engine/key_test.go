package engine

import "testing"

func sampleBattle() RawBattle {
	return RawBattle{
		BattleTime: "20250114T123000.000Z",
		Type:       "PvP",
		GameMode:   RawGameMode{ID: 72000006, Name: "Ladder"},
		Team: []RawPlayer{{
			Tag:          "#AAA111",
			Crowns:       2,
			TrophyChange: 30,
			Cards:        []RawCard{{ID: 26000001}, {ID: 26000010}, {ID: 28000004}},
		}},
		Opponent: []RawPlayer{{
			Tag:    "#BBB222",
			Crowns: 1,
			Cards:  []RawCard{{ID: 27000000}, {ID: 26000030}},
		}},
	}
}

func TestBuildBattleKeyDeterministic(t *testing.T) {
	a := BuildBattleKey("user-1", "#AAA111", sampleBattle())
	b := BuildBattleKey("user-1", "#AAA111", sampleBattle())
	if a != b {
		t.Errorf("identical input produced different keys: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Errorf("key length = %d, want 64 hex chars", len(a))
	}
}

func TestBuildBattleKeyCardOrderInsensitive(t *testing.T) {
	shuffled := sampleBattle()
	shuffled.Team[0].Cards = []RawCard{{ID: 28000004}, {ID: 26000010}, {ID: 26000001}}
	shuffled.Opponent[0].Cards = []RawCard{{ID: 26000030}, {ID: 27000000}}

	if BuildBattleKey("user-1", "#AAA111", sampleBattle()) != BuildBattleKey("user-1", "#AAA111", shuffled) {
		t.Error("same card sets in different order should hash identically")
	}
}

func TestBuildBattleKeyChangesWithContent(t *testing.T) {
	base := BuildBattleKey("user-1", "#AAA111", sampleBattle())

	mutations := []struct {
		name   string
		mutate func(*RawBattle)
		userID string
		tag    string
	}{
		{"Different user", func(b *RawBattle) {}, "user-2", "#AAA111"},
		{"Different tag", func(b *RawBattle) {}, "user-1", "#CCC333"},
		{"Different battle time", func(b *RawBattle) { b.BattleTime = "20250114T124500.000Z" }, "user-1", "#AAA111"},
		{"Different type", func(b *RawBattle) { b.Type = "challenge" }, "user-1", "#AAA111"},
		{"Different mode", func(b *RawBattle) { b.GameMode = RawGameMode{Name: "Classic Challenge"} }, "user-1", "#AAA111"},
		{"Different crowns", func(b *RawBattle) { b.Team[0].Crowns = 3 }, "user-1", "#AAA111"},
		{"Different opponent crowns", func(b *RawBattle) { b.Opponent[0].Crowns = 0 }, "user-1", "#AAA111"},
		{"Different trophy change", func(b *RawBattle) { b.Team[0].TrophyChange = -29 }, "user-1", "#AAA111"},
		{"Different card set", func(b *RawBattle) { b.Team[0].Cards = append(b.Team[0].Cards, RawCard{ID: 26000099}) }, "user-1", "#AAA111"},
	}

	for _, tt := range mutations {
		t.Run(tt.name, func(t *testing.T) {
			battle := sampleBattle()
			tt.mutate(&battle)
			if got := BuildBattleKey(tt.userID, tt.tag, battle); got == base {
				t.Error("mutated content produced the same key")
			}
		})
	}
}

func TestModeIdentifierPrefersID(t *testing.T) {
	if got := ModeIdentifier(RawGameMode{ID: 72000006, Name: "Ladder"}); got != "72000006" {
		t.Errorf("ModeIdentifier = %q, want numeric id", got)
	}
	if got := ModeIdentifier(RawGameMode{Name: "Ladder"}); got != "Ladder" {
		t.Errorf("ModeIdentifier = %q, want name fallback", got)
	}
}
