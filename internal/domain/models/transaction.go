package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// TransactionRecord is one roster transaction as returned by the Sleeper
// transactions endpoint. Only the fields the aggregation needs are decoded;
// everything else in the payload is ignored.
type TransactionRecord struct {
	Type  string      `json:"type"`
	Adds  QuantityMap `json:"adds"`
	Drops QuantityMap `json:"drops"`
	Week  int         `json:"leg,omitempty"`
}

// TransactionTrade is the transaction type that contributes trade counts.
const TransactionTrade = "trade"

// QuantityEntry is one (player id, quantity) pair of an adds/drops mapping.
type QuantityEntry struct {
	PlayerID string
	Qty      Quantity
}

// QuantityMap holds the adds/drops mapping of a transaction. It preserves
// the key order of the source JSON object, which downstream ranking relies
// on to break score ties by first appearance.
type QuantityMap []QuantityEntry

// UnmarshalJSON decodes a JSON object into ordered entries. A null or
// non-object value decodes to an absent mapping.
func (m *QuantityMap) UnmarshalJSON(b []byte) error {
	*m = nil

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		// null, number, string, or array in place of the mapping
		return nil
	}

	entries := make(QuantityMap, 0, 4)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)

		var q Quantity
		if err := dec.Decode(&q); err != nil {
			return err
		}
		entries = append(entries, QuantityEntry{PlayerID: key, Qty: q})
	}
	if len(entries) > 0 {
		*m = entries
	}
	return nil
}

// Quantity is a tolerant numeric field. Sleeper normally sends an integer
// roster slot count, but payloads in the wild carry strings, nulls and
// other shapes; anything that is not a valid positive number counts as
// exactly one unit. The parse-or-default rule lives here so it stays
// explicit and testable rather than buried in coercion.
type Quantity struct {
	value float64
	valid bool
}

// UnmarshalJSON accepts any JSON value. Numbers and numeric strings parse
// to their value; everything else leaves the quantity invalid.
func (q *Quantity) UnmarshalJSON(b []byte) error {
	q.value, q.valid = 0, false

	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		if f, ferr := n.Float64(); ferr == nil {
			q.value, q.valid = f, true
		}
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if f, ferr := strconv.ParseFloat(s, 64); ferr == nil {
			q.value, q.valid = f, true
		}
	}
	return nil
}

// Units returns the counter increment this quantity contributes: the value
// itself when it is a valid positive number, otherwise 1.
func (q Quantity) Units() int {
	if q.valid && q.value > 0 {
		if n := int(q.value); n > 0 {
			return n
		}
	}
	return 1
}

// PlayerCounters accumulates per-player activity within one league.
// Counters only ever increase.
type PlayerCounters struct {
	Adds   int `json:"adds"`
	Drops  int `json:"drops"`
	Trades int `json:"trades"`
}
