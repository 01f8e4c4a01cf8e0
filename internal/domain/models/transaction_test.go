package models

import (
	"encoding/json"
	"testing"
)

func TestQuantityMapPreservesKeyOrder(t *testing.T) {
	var m QuantityMap
	if err := json.Unmarshal([]byte(`{"zz":1,"aa":2,"mm":3}`), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(m) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(m))
	}
	want := []string{"zz", "aa", "mm"}
	for i, e := range m {
		if e.PlayerID != want[i] {
			t.Fatalf("entry %d: expected %q, got %q", i, want[i], e.PlayerID)
		}
	}
}

func TestQuantityMapNonObject(t *testing.T) {
	for _, raw := range []string{`null`, `5`, `"x"`, `[1,2]`} {
		var m QuantityMap
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		if m != nil {
			t.Fatalf("expected nil map for %s, got %v", raw, m)
		}
	}
}

func TestQuantityUnits(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{`1`, 1},
		{`3`, 3},
		{`"2"`, 2},
		{`2.7`, 2},
		{`"abc"`, 1},
		{`null`, 1},
		{`0`, 1},
		{`-4`, 1},
		{`0.5`, 1},
		{`true`, 1},
		{`{}`, 1},
	}
	for _, c := range cases {
		var q Quantity
		if err := json.Unmarshal([]byte(c.raw), &q); err != nil {
			t.Fatalf("unmarshal %s: %v", c.raw, err)
		}
		if got := q.Units(); got != c.want {
			t.Fatalf("units of %s: expected %d, got %d", c.raw, c.want, got)
		}
	}
}

func TestTransactionRecordDecode(t *testing.T) {
	raw := `{"type":"trade","adds":{"100":1,"200":1},"drops":null,"leg":4,"status":"complete"}`

	var r TransactionRecord
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if r.Type != TransactionTrade {
		t.Fatalf("expected trade type, got %q", r.Type)
	}
	if len(r.Adds) != 2 || r.Adds[0].PlayerID != "100" || r.Adds[1].PlayerID != "200" {
		t.Fatalf("unexpected adds: %v", r.Adds)
	}
	if r.Drops != nil {
		t.Fatalf("expected nil drops, got %v", r.Drops)
	}
	if r.Week != 4 {
		t.Fatalf("expected week 4, got %d", r.Week)
	}
}

func TestDisplayNameFallback(t *testing.T) {
	dir := PlayerDirectory{"100": {FirstName: "Alvin", LastName: "Kamara"}}

	if got := dir.DisplayName("100"); got != "Alvin Kamara" {
		t.Fatalf("expected resolved name, got %q", got)
	}
	if got := dir.DisplayName("999"); got != "999" {
		t.Fatalf("expected raw id fallback, got %q", got)
	}
}

func TestSeasonStateMaxWeek(t *testing.T) {
	cases := []struct {
		week int
		want int
	}{
		{0, DefaultSeasonWeeks},
		{7, 7},
		{1, 1},
		{-3, 1},
	}
	for _, c := range cases {
		s := SeasonState{Week: c.week}
		if got := s.MaxWeek(); got != c.want {
			t.Fatalf("week %d: expected %d, got %d", c.week, c.want, got)
		}
	}
}
