package format_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"holofun/internal/format"
	"holofun/internal/paths"
)

func resolveFixture(t *testing.T) *paths.Result {
	t.Helper()
	mount := t.TempDir()
	r, err := paths.New(paths.WithPlatform(paths.Unix{Mount: mount}))
	if err != nil {
		t.Fatal(err)
	}
	req := paths.Request{Root: "holo", Subject: "M01", Date: "220101"}
	raw := r.Drives(req).Raw
	if err := os.MkdirAll(filepath.Join(raw, "t"), 0o755); err != nil {
		t.Fatal(err)
	}
	for _, f := range []string{"a_ori_1.mat", "t/b_ori_2.mat"} {
		if err := os.WriteFile(filepath.Join(raw, f), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	res, err := r.Resolve(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestParseMode(t *testing.T) {
	tests := map[string]format.Mode{
		"":         format.ASCII,
		"table":    format.ASCII,
		"markdown": format.Markdown,
		"json":     format.JSON,
		"yml":      format.YAML,
	}
	for in, want := range tests {
		got, err := format.ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := format.ParseMode("xml"); err == nil {
		t.Error("expected error for xml")
	}
}

func TestResult_ASCII(t *testing.T) {
	out, err := format.Result(resolveFixture(t), format.ASCII)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Orientation tuning", "a_ori_1.mat", "b_ori_2.mat", paths.NotAvailable, "───"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestResult_Markdown(t *testing.T) {
	out, err := format.Result(resolveFixture(t), format.Markdown)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(strings.ToLower(out), "| key") || !strings.Contains(out, "---") {
		t.Errorf("expected markdown table:\n%s", out)
	}
}

func TestResult_JSONAndYAML(t *testing.T) {
	res := resolveFixture(t)
	js, err := format.Result(res, format.JSON)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(js, "{\n  \"srv\"") || !strings.Contains(js, `"ret": "path NA"`) {
		t.Errorf("unexpected json:\n%s", js)
	}
	y, err := format.Result(res, format.YAML)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(y, "srv: ") {
		t.Errorf("unexpected yaml:\n%s", y)
	}
}

func TestBoolMark(t *testing.T) {
	if format.BoolMark(true) != "✓" || format.BoolMark(false) != "✗" {
		t.Error("BoolMark marks changed")
	}
}
