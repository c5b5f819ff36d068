package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	apperrors "stratify/internal/errors"
)

// Decoder turns a raw JSON value into the typed value stored in a column.
type Decoder func(raw json.RawMessage) (interface{}, error)

// Field binds a request body key to a column through a typed decoder.
type Field struct {
	Key    string
	Column string
	Decode Decoder
}

// PatchSchema is the ordered allow-list of fields an update may touch.
// Column names only ever come from the schema, never from the request.
type PatchSchema []Field

// Columns decodes every allow-listed key present in body and returns the
// column/value map for a partial update. Unknown keys are ignored.
func (s PatchSchema) Columns(body map[string]json.RawMessage) (map[string]interface{}, error) {
	cols := make(map[string]interface{}, len(s))
	for _, f := range s {
		raw, ok := body[f.Key]
		if !ok {
			continue
		}
		v, err := f.Decode(raw)
		if err != nil {
			return nil, apperrors.InvalidField(f.Key)
		}
		cols[f.Column] = v
	}
	if len(cols) == 0 {
		return nil, apperrors.ErrNoValidFields
	}
	return cols, nil
}

// Keys returns the body keys accepted by the schema.
func (s PatchSchema) Keys() []string {
	keys := make([]string, len(s))
	for i, f := range s {
		keys[i] = f.Key
	}
	return keys
}

var jsonNull = []byte("null")

// DecodeString accepts a JSON string and trims surrounding whitespace.
// A null decodes to the empty string.
func DecodeString(raw json.RawMessage) (interface{}, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return strings.TrimSpace(s), nil
}

var validate = validator.New()

// DecodeStringWith decodes like DecodeString and then checks the result
// against validator tags, the same ones the create requests carry.
func DecodeStringWith(tag string) Decoder {
	return func(raw json.RawMessage) (interface{}, error) {
		v, err := DecodeString(raw)
		if err != nil {
			return nil, err
		}
		if err := validate.Var(v, tag); err != nil {
			return nil, err
		}
		return v, nil
	}
}

// DecodeDecimal accepts a JSON number or a numeric string.
func DecodeDecimal(raw json.RawMessage) (interface{}, error) {
	if bytes.Equal(bytes.TrimSpace(raw), jsonNull) {
		return nil, fmt.Errorf("null decimal")
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(raw); err != nil {
		return nil, err
	}
	return d, nil
}

// DecodeID accepts a positive integer given as a JSON number or numeric string.
func DecodeID(raw json.RawMessage) (interface{}, error) {
	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	switch t := v.(type) {
	case json.Number:
		n = t
	case string:
		n = json.Number(strings.TrimSpace(t))
	default:
		return nil, fmt.Errorf("id must be a number")
	}
	id, err := strconv.ParseUint(n.String(), 10, 64)
	if err != nil || id == 0 {
		return nil, fmt.Errorf("invalid id %q", n)
	}
	return uint(id), nil
}

// DecodeTransactionType accepts "buy" or "sell" in any case.
func DecodeTransactionType(raw json.RawMessage) (interface{}, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return ParseTransactionType(s)
}

// timeLayouts are tried in order when parsing user supplied dates.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTime parses the date formats accepted in bodies and query strings.
// Values without an offset are taken as UTC; the result is always UTC.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// DecodeTime accepts a JSON string in one of the supported date layouts.
func DecodeTime(raw json.RawMessage) (interface{}, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return ParseTime(s)
}
