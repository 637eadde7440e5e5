package testsupport

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteMeta writes a .meta sidecar holding fields as JSON.
func WriteMeta(t testing.TB, path string, fields map[string]any) {
	t.Helper()

	data, err := json.MarshalIndent(fields, "", "    ")
	if err != nil {
		t.Fatalf("marshal meta %s: %v", path, err)
	}
	WriteFile(t, path, string(data))
}

// WriteZip writes an archive at path whose members map names to contents.
func WriteZip(t testing.TB, path string, members map[string]string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range members {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip member %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write member %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip %s: %v", path, err)
	}
}

// SessionsTable renders a delimited table with a header and rows data rows.
func SessionsTable(rows int, delimiter string) string {
	var b strings.Builder
	b.WriteString(strings.Join([]string{"session_id", "player_id", "duration"}, delimiter))
	b.WriteString("\n")
	for i := range rows {
		fmt.Fprintf(&b, "%d%s%s%s%d\n", 1000+i, delimiter, fmt.Sprintf("p%d", i), delimiter, 60*i)
	}
	return b.String()
}

// WriteSessionsZip writes a sessions archive named by the exporter convention
// with an embedded table of rows data rows. ext is ".csv" or ".tsv".
func WriteSessionsZip(t testing.TB, dir, filename, datasetID string, rows int, ext string) string {
	t.Helper()

	stem, _, _ := strings.Cut(filename, ".")
	delimiter := ","
	if ext == ".tsv" {
		delimiter = "\t"
	}
	path := filepath.Join(dir, filename)
	WriteZip(t, path, map[string]string{
		datasetID + "/" + stem + ext: SessionsTable(rows, delimiter),
	})
	return path
}
