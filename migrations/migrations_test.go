package migrations

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestList_Embedded(t *testing.T) {
	ms, err := List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(ms) == 0 || ms[0].Version != "001" {
		t.Fatalf("Expected 001 first, got %+v", ms)
	}
	if !strings.Contains(ms[0].SQL, "CREATE TABLE IF NOT EXISTS inventory_items") {
		t.Errorf("Expected inventory_items in first migration")
	}
	if len(ms[0].Checksum) != 64 {
		t.Errorf("Expected sha256 hex checksum, got %q", ms[0].Checksum)
	}
}

func TestListFS(t *testing.T) {
	tests := []struct {
		name    string
		fsys    fstest.MapFS
		want    []string
		wantErr string
	}{
		{
			name: "sorted and non-sql skipped",
			fsys: fstest.MapFS{
				"002_b.sql": {Data: []byte("SELECT 2;")},
				"001_a.sql": {Data: []byte("SELECT 1;")},
				"README.md": {Data: []byte("notes")},
			},
			want: []string{"001_a.sql", "002_b.sql"},
		},
		{
			name:    "duplicate version",
			fsys:    fstest.MapFS{"001_a.sql": {}, "001_b.sql": {}},
			wantErr: "duplicate migration version 001",
		},
		{
			name:    "missing version prefix",
			fsys:    fstest.MapFS{"schema.sql": {}},
			wantErr: "invalid migration filename",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ms, err := listFS(tt.fsys)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Expected error %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("listFS: %v", err)
			}
			if len(ms) != len(tt.want) {
				t.Fatalf("Expected %d migrations, got %d", len(tt.want), len(ms))
			}
			for i, m := range ms {
				if m.Filename != tt.want[i] {
					t.Errorf("Expected %s at %d, got %s", tt.want[i], i, m.Filename)
				}
			}
		})
	}
}
