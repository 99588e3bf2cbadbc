package security

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidatePathWithinDirectory(t *testing.T) {
	tmpDir := t.TempDir()

	safeDir := filepath.Join(tmpDir, "safe")
	unsafeDir := filepath.Join(tmpDir, "unsafe")
	if err := os.MkdirAll(safeDir, 0755); err != nil {
		t.Fatalf("Failed to create safe directory: %v", err)
	}
	if err := os.MkdirAll(unsafeDir, 0755); err != nil {
		t.Fatalf("Failed to create unsafe directory: %v", err)
	}

	symlinkPath := filepath.Join(safeDir, "evil-symlink")
	if err := os.Symlink(unsafeDir, symlinkPath); err != nil {
		t.Fatalf("Failed to create symlink: %v", err)
	}

	tests := []struct {
		name      string
		filePath  string
		safeDir   string
		wantError bool
	}{
		{
			name:      "valid path within directory",
			filePath:  filepath.Join(tmpDir, "table.csv"),
			safeDir:   tmpDir,
			wantError: false,
		},
		{
			name:      "valid nested path",
			filePath:  filepath.Join(tmpDir, "subdir", "table.csv"),
			safeDir:   tmpDir,
			wantError: false,
		},
		{
			name:      "safe dir not created yet",
			filePath:  filepath.Join(tmpDir, "later", "table.csv"),
			safeDir:   filepath.Join(tmpDir, "later"),
			wantError: false,
		},
		{
			name:      "path traversal with ..",
			filePath:  filepath.Join(tmpDir, "..", "table.csv"),
			safeDir:   tmpDir,
			wantError: true,
		},
		{
			name:      "absolute path outside safe dir",
			filePath:  "/etc/passwd",
			safeDir:   tmpDir,
			wantError: true,
		},
		{
			name:      "symlink escape",
			filePath:  filepath.Join(symlinkPath, "table.csv"),
			safeDir:   safeDir,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePathWithinDirectory(tt.filePath, tt.safeDir)
			if (err != nil) != tt.wantError {
				t.Errorf("ValidatePathWithinDirectory() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"table_test_Phantom4", "table_test_Phantom4"},
		{"../../etc/passwd", "etc_passwd"},
		{"my table (v2)", "my_table_v2"},
		{"", "unknown"},
		{"...", "unknown"},
		{"FC330-50-200", "FC330-50-200"},
	}
	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExportPath(t *testing.T) {
	dir := t.TempDir()

	got, err := ExportPath(dir, "table_test_Phantom4", ".csv")
	if err != nil {
		t.Fatalf("ExportPath failed: %v", err)
	}
	if want := filepath.Join(dir, "table_test_Phantom4.csv"); got != want {
		t.Errorf("ExportPath = %q, want %q", got, want)
	}

	got, err = ExportPath(dir, "already.csv", ".csv")
	if err != nil {
		t.Fatalf("ExportPath failed: %v", err)
	}
	if want := filepath.Join(dir, "already.csv"); got != want {
		t.Errorf("ExportPath = %q, want %q", got, want)
	}

	got, err = ExportPath(dir, "../escape", ".csv")
	if err != nil {
		t.Fatalf("ExportPath failed: %v", err)
	}
	if filepath.Dir(got) != dir {
		t.Errorf("sanitised name should stay in %s, got %s", dir, got)
	}

	got, err = ExportPath("", "table", ".png")
	if err != nil {
		t.Fatalf("ExportPath failed: %v", err)
	}
	if got != "table.png" {
		t.Errorf("ExportPath with empty dir = %q, want table.png", got)
	}
}
