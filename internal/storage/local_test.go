package storage

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestObjectName(t *testing.T) {
	if got := ObjectName(7, 3, "report.pdf"); got != "7_3_report.pdf" {
		t.Errorf("ObjectName() = %q, want %q", got, "7_3_report.pdf")
	}
}

func TestLocalStorageSaveAndOpen(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStorage() error = %v", err)
	}

	ctx := context.Background()
	content := "solution text"

	if err := store.Save(ctx, "7_3_a.pdf", strings.NewReader(content), int64(len(content))); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reader, err := store.Open(ctx, "7_3_a.pdf")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != content {
		t.Errorf("content = %q, want %q", data, content)
	}
}

func TestLocalStorageStripsPath(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	if err != nil {
		t.Fatalf("NewLocalStorage() error = %v", err)
	}

	ctx := context.Background()
	if err := store.Save(ctx, "../escape.txt", strings.NewReader("x"), 1); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Имя с путем усечено до базового, файл остается внутри каталога.
	if _, err := store.Open(ctx, "escape.txt"); err != nil {
		t.Errorf("Open() error = %v", err)
	}
}
