package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const manifest = `schema: v1.0.0
page: {name: shop, width: 400, height: 800, scrollStep: 200}
observer: {rootMargin: 0px}
sections:
  - {name: hero, minHeight: 1000, height: 1000}
  - {name: reviews, minHeight: 300, height: 500, fetchFrames: 2}
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lazyview.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunCmd_PrintsTimeline(t *testing.T) {
	out, err := execute(t, "run", "-f", writeManifest(t, manifest))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, want := range []string{
		"hero             visible",
		"reviews          loaded",
		"shop: 2/2 sections loaded in 4 frames, page height 1500, 0 watchers left",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunCmd_Summary(t *testing.T) {
	out, err := execute(t, "run", "--summary", "-f", writeManifest(t, manifest))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if lines := strings.Count(out, "\n"); lines != 1 {
		t.Errorf("summary printed %d lines:\n%s", lines, out)
	}
}

func TestValidateCmd(t *testing.T) {
	out, err := execute(t, "validate", "-f", writeManifest(t, manifest))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if strings.TrimSpace(out) != "shop: schema v1.0.0, 2 sections OK" {
		t.Errorf("output = %q", out)
	}

	_, err = execute(t, "validate", "-f", writeManifest(t, "schema: v3.0.0\nsections: [{name: a}]\n"))
	if err == nil || !strings.Contains(err.Error(), "not supported") {
		t.Errorf("err = %v, want unsupported schema", err)
	}
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version", "--short")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if strings.TrimSpace(out) != Version {
		t.Errorf("output = %q, want %q", out, Version)
	}

	out, err = execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "lazysim version "+Version) {
		t.Errorf("output = %q", out)
	}
}

func TestRunCmd_ProductManifest(t *testing.T) {
	out, err := execute(t, "run", "--summary", "-f", filepath.Join("testdata", "product.yaml"))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasPrefix(out, "product: 5/5 sections loaded") {
		t.Errorf("output = %q", out)
	}
}
