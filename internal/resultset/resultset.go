// Package resultset holds the rows returned by executing generated SQL in a
// driver-independent shape. Every cell is a tagged value with one canonical
// string rendering, shared by the HTML table view and the file exporters so
// that a download reproduces the table exactly.
package resultset

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

type Kind int

const (
	KindNull Kind = iota
	KindText
	KindInt
	KindFloat
	KindBool
	KindTime
)

type Value struct {
	kind Kind
	text string
	i    int64
	f    float64
	b    bool
	t    time.Time
}

func Null() Value            { return Value{kind: KindNull} }
func Text(s string) Value    { return Value{kind: KindText, text: s} }
func Int(i int64) Value      { return Value{kind: KindInt, i: i} }
func Float(f float64) Value  { return Value{kind: KindFloat, f: f} }
func Bool(b bool) Value      { return Value{kind: KindBool, b: b} }
func Time(t time.Time) Value { return Value{kind: KindTime, t: t} }

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

// FromDriver maps a database/sql scan target value into a tagged Value.
func FromDriver(raw any) Value {
	switch typed := raw.(type) {
	case nil:
		return Null()
	case []byte:
		return Text(string(typed))
	case string:
		return Text(typed)
	case int64:
		return Int(typed)
	case int32:
		return Int(int64(typed))
	case int:
		return Int(int64(typed))
	case float64:
		return Float(typed)
	case float32:
		return Float(float64(typed))
	case bool:
		return Bool(typed)
	case time.Time:
		return Time(typed)
	default:
		return Text(fmt.Sprint(typed))
	}
}

// String is the canonical cell rendering. Nulls render empty, date-valued
// timestamps render as a bare date, everything else as its natural text form.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindText:
		return v.text
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindTime:
		if isDateOnly(v.t) {
			return v.t.Format("2006-01-02")
		}
		return v.t.Format(time.RFC3339)
	default:
		return ""
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindInt:
		return []byte(strconv.FormatInt(v.i, 10)), nil
	case KindFloat:
		return json.Marshal(v.f)
	case KindBool:
		return []byte(strconv.FormatBool(v.b)), nil
	default:
		return json.Marshal(v.String())
	}
}

func isDateOnly(t time.Time) bool {
	hour, minute, second := t.Clock()
	return hour == 0 && minute == 0 && second == 0 && t.Nanosecond() == 0
}

// ResultSet is an ordered sequence of rows with the column names alongside.
type ResultSet struct {
	Columns []string
	Rows    [][]Value
}

// Record renders row i as canonical strings, one per column.
func (rs ResultSet) Record(i int) []string {
	record := make([]string, len(rs.Rows[i]))
	for j, cell := range rs.Rows[i] {
		record[j] = cell.String()
	}
	return record
}
