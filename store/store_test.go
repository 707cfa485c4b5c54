package store

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/brunobiangulo/fundsheet/document"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestUpsertInsertThenUpdate(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	id, err := s.UpsertDocument(ctx, Document{
		Path:        "/data/axis.pdf",
		Filename:    "axis.pdf",
		ContentHash: "hash1",
		Status:      "processing",
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if id == 0 {
		t.Fatal("insert returned id 0")
	}

	// Same path upserts in place and keeps the id.
	id2, err := s.UpsertDocument(ctx, Document{
		Path:        "/data/axis.pdf",
		Filename:    "axis.pdf",
		ContentHash: "hash2",
		Status:      "ready",
		FundName:    "AXIS BLUECHIP FUND",
		PageCount:   12,
		TableCount:  9,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if id2 != id {
		t.Errorf("update returned id %d, want %d", id2, id)
	}

	got, err := s.GetDocument(ctx, id)
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if got.ContentHash != "hash2" || got.Status != "ready" ||
		got.FundName != "AXIS BLUECHIP FUND" || got.PageCount != 12 || got.TableCount != 9 {
		t.Errorf("updated row = %+v", got)
	}
}

func TestUpsertDistinctPathsGetDistinctIDs(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	idA, err := s.UpsertDocument(ctx, Document{Path: "/data/a.pdf", Filename: "a.pdf", Status: "ready"})
	if err != nil {
		t.Fatal(err)
	}
	idB, err := s.UpsertDocument(ctx, Document{Path: "/data/b.pdf", Filename: "b.pdf", Status: "ready"})
	if err != nil {
		t.Fatal(err)
	}
	if idA == idB {
		t.Fatalf("distinct paths share id %d", idA)
	}

	// Updating A after inserting B must still report A's id.
	idA2, err := s.UpsertDocument(ctx, Document{Path: "/data/a.pdf", Filename: "a.pdf", Status: "error"})
	if err != nil {
		t.Fatal(err)
	}
	if idA2 != idA {
		t.Errorf("re-upsert of a.pdf returned %d, want %d", idA2, idA)
	}
}

func TestGetDocumentByPath(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	id, err := s.UpsertDocument(ctx, Document{Path: "/data/axis.pdf", Filename: "axis.pdf", Status: "ready"})
	if err != nil {
		t.Fatal(err)
	}

	got, err := s.GetDocumentByPath(ctx, "/data/axis.pdf")
	if err != nil {
		t.Fatalf("GetDocumentByPath: %v", err)
	}
	if got.ID != id {
		t.Errorf("got id %d, want %d", got.ID, id)
	}

	if _, err := s.GetDocumentByPath(ctx, "/data/missing.pdf"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing path error = %v, want ErrNotFound", err)
	}
}

func TestListDocuments(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	for _, p := range []string{"/data/a.pdf", "/data/b.pdf", "/data/c.pdf"} {
		if _, err := s.UpsertDocument(ctx, Document{Path: p, Filename: filepath.Base(p), Status: "ready"}); err != nil {
			t.Fatal(err)
		}
	}

	docs, err := s.ListDocuments(ctx)
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("got %d rows, want 3", len(docs))
	}
}

func TestUpdateDocumentStatus(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	id, err := s.UpsertDocument(ctx, Document{Path: "/data/a.pdf", Filename: "a.pdf", Status: "processing"})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.UpdateDocumentStatus(ctx, id, "error"); err != nil {
		t.Fatalf("UpdateDocumentStatus: %v", err)
	}
	got, err := s.GetDocument(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != "error" {
		t.Errorf("status = %q, want error", got.Status)
	}
}

func TestDeleteDocument(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	id, err := s.UpsertDocument(ctx, Document{Path: "/data/a.pdf", Filename: "a.pdf", Status: "ready"})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteDocument(ctx, id); err != nil {
		t.Fatalf("DeleteDocument: %v", err)
	}
	if _, err := s.GetDocument(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted row error = %v, want ErrNotFound", err)
	}
	if err := s.DeleteDocument(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete error = %v, want ErrNotFound", err)
	}
}

func TestSaveLoadStructured(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	id, err := s.UpsertDocument(ctx, Document{Path: "/data/a.pdf", Filename: "a.pdf", Status: "ready"})
	if err != nil {
		t.Fatal(err)
	}

	doc := document.New()
	doc.Metadata.FundName = "AXIS BLUECHIP FUND"
	tbl := &document.Table{Page: 1, Category: document.Portfolio, Label: "Holdings",
		TableData: [][]string{{"Company", "%"}, {"Infosys", "9.1"}}}
	doc.AddTable(tbl)
	doc.Pages = []document.Page{{PageNumber: 1, Content: []*document.Block{
		document.TableBlock(tbl),
	}}}

	if err := s.SaveStructured(ctx, id, doc); err != nil {
		t.Fatalf("SaveStructured: %v", err)
	}

	got, err := s.LoadStructured(ctx, id)
	if err != nil {
		t.Fatalf("LoadStructured: %v", err)
	}
	if !reflect.DeepEqual(got, doc) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, doc)
	}
}

func TestLoadStructuredErrors(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if _, err := s.LoadStructured(ctx, 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing row error = %v, want ErrNotFound", err)
	}

	id, err := s.UpsertDocument(ctx, Document{Path: "/data/a.pdf", Filename: "a.pdf", Status: "processing"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.LoadStructured(ctx, id); err == nil {
		t.Error("row without structured blob should error")
	}

	if err := s.SaveStructured(ctx, 9999, document.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("save to missing row error = %v, want ErrNotFound", err)
	}
}
