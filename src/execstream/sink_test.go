package execstream

import (
	"bytes"
	"reflect"
	"testing"
)

func TestLabelWriterFormatsLine(t *testing.T) {
	var buf bytes.Buffer
	lw := NewLabelWriter(&buf, "svc")

	lw.Line("hello")

	if got := buf.String(); got != "svc: hello\n" {
		t.Errorf("got %q, want %q", got, "svc: hello\n")
	}
}

func TestLabelWriterOneWritePerLine(t *testing.T) {
	var buf bytes.Buffer
	lw := NewLabelWriter(&buf, "svc")

	lw.Line("one")
	lw.Line("two")

	want := "svc: one\nsvc: two\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCaptureSink(t *testing.T) {
	c := &CaptureSink{}

	if c.First() != "" {
		t.Errorf("empty capture: First should be empty")
	}

	c.Line("token-abc")
	c.Line("noise")

	if c.First() != "token-abc" {
		t.Errorf("First: got %q", c.First())
	}
	if got := c.Lines(); !reflect.DeepEqual(got, []string{"token-abc", "noise"}) {
		t.Errorf("Lines: got %v", got)
	}
}

func TestSinkFunc(t *testing.T) {
	var got []string
	s := SinkFunc(func(line string) { got = append(got, line) })

	s.Line("a")
	s.Line("b")

	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("got %v", got)
	}
}
