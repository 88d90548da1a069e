package jsonutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jacoelho/rowstream/pointer"
)

func TestLoadPreservesNumberText(t *testing.T) {
	node, err := Load(strings.NewReader(`{"price": 12.50}`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	obj, ok := node.(map[string]any)
	if !ok {
		t.Fatalf("node = %T, want map", node)
	}
	num, ok := obj["price"].(json.Number)
	if !ok {
		t.Fatalf("price = %T, want json.Number", obj["price"])
	}
	if num.String() != "12.50" {
		t.Fatalf("price = %q, want 12.50", num.String())
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	if err := os.WriteFile(path, []byte(`{"a": "b"}`), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	node, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if obj := node.(map[string]any); obj["a"] != "b" {
		t.Fatalf("unexpected document: %v", node)
	}
}

func TestQuery(t *testing.T) {
	doc := `{"base":{"phone":[{"home":"123"}]}}`

	got, err := Query(strings.NewReader(doc), "/base/phone/0/home")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if got != "123" {
		t.Fatalf("Query = %q, want %q", got, "123")
	}

	if _, err := Query(strings.NewReader(doc), "/base/missing"); err == nil {
		t.Fatal("expected error for missing pointer")
	}
}

func TestQueryNode(t *testing.T) {
	node, err := Load(strings.NewReader(`{"a":{"b":[10,20]}}`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	value, ok := QueryNode(node, pointer.MustCompile("/a/b/1"))
	if !ok {
		t.Fatal("expected a match")
	}
	if value.(json.Number).String() != "20" {
		t.Fatalf("value = %v, want 20", value)
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "string", value: "x", want: "x"},
		{name: "number", value: json.Number("1.50"), want: "1.50"},
		{name: "float", value: 2.5, want: "2.5"},
		{name: "bool", value: true, want: "true"},
		{name: "null", value: nil, want: "null"},
		{name: "object_is_empty", value: map[string]any{"a": "b"}, want: ""},
		{name: "array_is_empty", value: []any{"a"}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(tt.value); got != tt.want {
				t.Fatalf("Text(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestPrettyPrint(t *testing.T) {
	node, err := Load(strings.NewReader(`{"a":{"b":"c"}}`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	got, err := PrettyPrint(node)
	if err != nil {
		t.Fatalf("PrettyPrint: %v", err)
	}

	want := "{\n  \"a\": {\n    \"b\": \"c\"\n  }\n}"
	if got != want {
		t.Fatalf("PrettyPrint = %q, want %q", got, want)
	}
}

func TestPrettyPrintTo(t *testing.T) {
	var out strings.Builder
	if err := PrettyPrintTo(&out, map[string]any{"a": "b"}); err != nil {
		t.Fatalf("PrettyPrintTo: %v", err)
	}
	want := "{\n  \"a\": \"b\"\n}\n"
	if out.String() != want {
		t.Fatalf("output = %q, want %q", out.String(), want)
	}
}
