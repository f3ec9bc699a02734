package resultset

import (
	"encoding/json"
	"testing"
	"time"
)

func TestFromDriverMapsDriverTypes(t *testing.T) {
	if got := FromDriver(nil); !got.IsNull() {
		t.Fatalf("FromDriver(nil).IsNull() = false")
	}
	if got := FromDriver([]byte("alice")); got.String() != "alice" {
		t.Fatalf("FromDriver([]byte) = %q", got.String())
	}
	if got := FromDriver(int64(42)); got.Kind() != KindInt || got.String() != "42" {
		t.Fatalf("FromDriver(int64) = %v %q", got.Kind(), got.String())
	}
	if got := FromDriver(3.5); got.Kind() != KindFloat || got.String() != "3.5" {
		t.Fatalf("FromDriver(float64) = %v %q", got.Kind(), got.String())
	}
	if got := FromDriver(true); got.String() != "true" {
		t.Fatalf("FromDriver(bool) = %q", got.String())
	}
}

func TestDateOnlyTimeRendersAsDate(t *testing.T) {
	signup := time.Date(2022, 1, 15, 0, 0, 0, 0, time.UTC)
	if got := Time(signup).String(); got != "2022-01-15" {
		t.Fatalf("date String() = %q", got)
	}

	stamp := time.Date(2022, 1, 15, 9, 30, 0, 0, time.UTC)
	if got := Time(stamp).String(); got != "2022-01-15T09:30:00Z" {
		t.Fatalf("timestamp String() = %q", got)
	}
}

func TestNullRendersEmpty(t *testing.T) {
	if got := Null().String(); got != "" {
		t.Fatalf("Null().String() = %q", got)
	}
}

func TestValueJSON(t *testing.T) {
	row := []Value{Null(), Text("alice"), Int(5), Float(2.5), Bool(false)}
	data, err := json.Marshal(row)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `[null,"alice",5,2.5,false]`
	if string(data) != want {
		t.Fatalf("Marshal() = %s, want %s", data, want)
	}
}

func TestRecordRendersEveryCell(t *testing.T) {
	rs := ResultSet{
		Columns: []string{"id", "name", "signup"},
		Rows: [][]Value{
			{Int(1), Text("Alice"), Time(time.Date(2022, 1, 15, 0, 0, 0, 0, time.UTC))},
		},
	}
	record := rs.Record(0)
	want := []string{"1", "Alice", "2022-01-15"}
	for i := range want {
		if record[i] != want[i] {
			t.Fatalf("Record(0)[%d] = %q, want %q", i, record[i], want[i])
		}
	}
}
