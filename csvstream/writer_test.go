package csvstream

import (
	"errors"
	"iter"
	"slices"
	"strings"
	"testing"

	"github.com/jacoelho/rowstream"
)

func TestWriterRoundTrip(t *testing.T) {
	var out strings.Builder

	w, err := NewWriter(&out, []string{"name", "phone"})
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.Write([]string{"Alice", "123"}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Write([]string{"Bob", "345"}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	want := "name,phone\nAlice,123\nBob,345\n"
	if out.String() != want {
		t.Fatalf("output = %q, want %q", out.String(), want)
	}
}

func TestWriterRejectsWrongShape(t *testing.T) {
	w, err := NewWriter(&strings.Builder{}, []string{"a", "b"})
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	err = w.Write([]string{"only one"})
	if !errors.Is(err, rowstream.ErrShapeMismatch) {
		t.Fatalf("err = %v, want ErrShapeMismatch", err)
	}
}

func TestNewWriterRequiresHeaders(t *testing.T) {
	_, err := NewWriter(&strings.Builder{}, nil)
	if !errors.Is(err, rowstream.ErrConfiguration) {
		t.Fatalf("err = %v, want ErrConfiguration", err)
	}
}

type person struct {
	name  string
	phone string
}

func TestWriteSequence(t *testing.T) {
	people := []person{
		{name: "Alice", phone: "123"},
		{name: "Bob", phone: "345"},
	}

	convert := func(headers []string, p person) ([]string, error) {
		line := make([]string, len(headers))
		for i, h := range headers {
			switch h {
			case "name":
				line[i] = p.name
			case "phone":
				line[i] = p.phone
			}
		}
		return line, nil
	}

	var out strings.Builder
	err := Write(&out, slices.Values(people), []string{"name", "phone"}, convert)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	want := "name,phone\nAlice,123\nBob,345\n"
	if out.String() != want {
		t.Fatalf("output = %q, want %q", out.String(), want)
	}
}

func TestWriteSequenceConversionError(t *testing.T) {
	convertErr := errors.New("unconvertible")
	convert := func([]string, person) ([]string, error) {
		return nil, convertErr
	}

	items := iter.Seq[person](func(yield func(person) bool) {
		yield(person{name: "Alice"})
	})

	err := Write(&strings.Builder{}, items, []string{"name"}, convert)
	if !errors.Is(err, convertErr) {
		t.Fatalf("err = %v, want conversion error", err)
	}
}
