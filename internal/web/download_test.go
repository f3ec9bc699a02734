package web

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"testing"
)

func TestDownloadCSVAttachment(t *testing.T) {
	runner := &fakeRunner{rs: customersResultSet()}
	archive := &fakeArchive{}
	h := NewHandler(testConfig(t, nil), Dependencies{Runner: runner, Archive: archive})

	rr := postForm(h, "/download", url.Values{
		"sql_query": {"SELECT * FROM customers LIMIT 5;"},
		"file_type": {"csv"},
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	if got := rr.Header().Get("Content-Type"); got != "text/csv" {
		t.Fatalf("content type = %q", got)
	}
	if got := rr.Header().Get("Content-Disposition"); got != `attachment; filename="query_results.csv"` {
		t.Fatalf("content disposition = %q", got)
	}

	records, err := csv.NewReader(bytes.NewReader(rr.Body.Bytes())).ReadAll()
	if err != nil {
		t.Fatalf("csv read failed: %v", err)
	}
	if len(records) != 6 {
		t.Fatalf("record count = %d", len(records))
	}
	if records[0][0] != "id" || records[0][5] != "signup_date" {
		t.Fatalf("header = %v", records[0])
	}
	if records[1][1] != "Alice" || records[1][5] != "2022-01-15" {
		t.Fatalf("first record = %v", records[1])
	}

	if len(archive.saved) != 1 || archive.saved[0] != "query_results.csv" {
		t.Fatalf("archived files = %v", archive.saved)
	}
}

func TestDownloadDefaultsToCSV(t *testing.T) {
	runner := &fakeRunner{rs: customersResultSet()}
	h := NewHandler(testConfig(t, nil), Dependencies{Runner: runner})

	rr := postForm(h, "/download", url.Values{"sql_query": {"SELECT 1;"}})

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if got := rr.Header().Get("Content-Type"); got != "text/csv" {
		t.Fatalf("content type = %q", got)
	}
}

func TestDownloadRejectsUnknownFileType(t *testing.T) {
	runner := &fakeRunner{}
	h := NewHandler(testConfig(t, nil), Dependencies{Runner: runner})

	rr := postForm(h, "/download", url.Values{
		"sql_query": {"SELECT 1;"},
		"file_type": {"pdf"},
	})

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}
	if runner.calls != 0 {
		t.Fatalf("runner calls = %d", runner.calls)
	}
}

func TestDownloadSucceedsWhenArchiveFails(t *testing.T) {
	runner := &fakeRunner{rs: customersResultSet()}
	archive := &fakeArchive{err: errors.New("bucket unavailable")}
	h := NewHandler(testConfig(t, nil), Dependencies{Runner: runner, Archive: archive})

	rr := postForm(h, "/download", url.Values{
		"sql_query": {"SELECT * FROM customers LIMIT 5;"},
		"file_type": {"excel"},
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if got := rr.Header().Get("Content-Disposition"); got != `attachment; filename="query_results.xlsx"` {
		t.Fatalf("content disposition = %q", got)
	}
}

func TestDownloadExecutionFailureReturnsGenericError(t *testing.T) {
	runner := &fakeRunner{err: errors.New("syntax error at or near SELEC")}
	h := NewHandler(testConfig(t, nil), Dependencies{Runner: runner})

	rr := postForm(h, "/download", url.Values{
		"sql_query": {"SELEC * FROM customers;"},
		"file_type": {"csv"},
	})

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("json decode failed: %v", err)
	}
	if body["error"] != "query execution failed" {
		t.Fatalf("error = %v", body["error"])
	}
}
