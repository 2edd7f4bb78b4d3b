package database

import (
	"testing"
)

func TestRecordExport_Validation(t *testing.T) {
	svc := NewExportRecordService(openTestDB(t))
	if _, err := svc.RecordExport(ExportRecord{FilePath: "/tmp/a.pptx"}); err == nil {
		t.Error("expected error for missing deck id")
	}
	if _, err := svc.RecordExport(ExportRecord{DeckID: "d1"}); err == nil {
		t.Error("expected error for missing file path")
	}
}

func TestExportHistory_NewestFirst(t *testing.T) {
	svc := NewExportRecordService(openTestDB(t))
	for i, path := range []string{"/tmp/a.pptx", "/tmp/b.pptx"} {
		_, err := svc.RecordExport(ExportRecord{
			DeckID:     "d1",
			FilePath:   path,
			SlideCount: 4,
			SkipCount:  i,
			CreatedAt:  int64(1000 + i),
		})
		if err != nil {
			t.Fatalf("RecordExport: %v", err)
		}
	}

	recs, err := svc.ListExports("d1")
	if err != nil {
		t.Fatalf("ListExports: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("len = %d, want 2", len(recs))
	}
	if recs[0].FilePath != "/tmp/b.pptx" {
		t.Errorf("recs[0] = %q, want the newer export first", recs[0].FilePath)
	}
	if recs[0].ID == "" || recs[0].SkipCount != 1 || recs[0].SlideCount != 4 {
		t.Errorf("recs[0] = %+v", recs[0])
	}

	other, err := svc.ListExports("d2")
	if err != nil {
		t.Fatalf("ListExports: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("unrelated deck has %d records", len(other))
	}
}
