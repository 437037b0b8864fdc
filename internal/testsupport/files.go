package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TwoItemCatalog is a small catalog whose second record carries every
// optional field.
const TwoItemCatalog = `[
  {"id": "a1", "url": "https://images.unsplash.com/photo-1?ixid=M3wwfDF8c2VhcmNofDEyfHxtaXN0eSUyMG1vdW50YWlufGVufDB8fHwx", "reason": "Zen/Nature"},
  {"id": "b2", "url": "https://images.unsplash.com/photo-2?ixid=M3wwfDF8c2VhcmNofDR8fFRlYSUyMENlcmVtb255fGVufDA=", "reason": "Food/Tea", "author": "Kenji", "score": 92, "date": "Jan 2026"}
]
`

// WriteText writes body to path, creating parent directories.
func WriteText(t testing.TB, path, body string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// ReadText returns the contents of path.
func ReadText(t testing.TB, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

// WriteStub writes an executable shell script at path that prints output.
func WriteStub(t testing.TB, path, output string) {
	t.Helper()

	quoted := "'" + strings.ReplaceAll(output, "'", `'\''`) + "'"
	script := "#!/bin/sh\nprintf '%s\\n' " + quoted + "\n"
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", path, err)
	}
}
