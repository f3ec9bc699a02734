package archive

import (
	"context"
	"io"
	"strings"
	"testing"
)

type fakeClient struct {
	puts    []string
	exists  bool
	created []string
	putErr  error
}

func (f *fakeClient) Put(_ context.Context, _ string, key string, reader io.Reader, _ int64, _ string) error {
	if f.putErr != nil {
		return f.putErr
	}
	_, _ = io.ReadAll(reader)
	f.puts = append(f.puts, key)
	return nil
}

func (f *fakeClient) BucketExists(context.Context, string) (bool, error) {
	return f.exists, nil
}

func (f *fakeClient) CreateBucket(_ context.Context, bucket, _ string) error {
	f.created = append(f.created, bucket)
	return nil
}

func TestSaveUsesPrefixAndFilename(t *testing.T) {
	fc := &fakeClient{}
	store, err := NewWithClient("exports", "archive", fc)
	if err != nil {
		t.Fatalf("NewWithClient() error = %v", err)
	}

	key, err := store.Save(context.Background(), "query_results.csv", "text/csv", []byte("id\n1\n"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if !strings.HasPrefix(key, "archive/") {
		t.Fatalf("key = %q, want archive/ prefix", key)
	}
	if !strings.HasSuffix(key, "_query_results.csv") {
		t.Fatalf("key = %q, want filename suffix", key)
	}
	if len(fc.puts) != 1 || fc.puts[0] != key {
		t.Fatalf("puts = %v", fc.puts)
	}
}

func TestSaveRejectsTraversal(t *testing.T) {
	store, err := NewWithClient("exports", "", &fakeClient{})
	if err != nil {
		t.Fatalf("NewWithClient() error = %v", err)
	}
	if _, err := store.Save(context.Background(), "../../etc/passwd", "text/csv", nil); err == nil {
		t.Fatal("expected error for traversal filename")
	}
}

func TestNewWithClientValidation(t *testing.T) {
	if _, err := NewWithClient("", "p", &fakeClient{}); err == nil {
		t.Fatal("expected error for empty bucket")
	}
	if _, err := NewWithClient("b", "p", nil); err == nil {
		t.Fatal("expected error for nil client")
	}
}
