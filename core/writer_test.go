package core

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestTagWriterFormat(t *testing.T) {
	var buf bytes.Buffer
	tw := NewTagWriter(&buf)
	tw.Tag(0, "SECTION")
	tw.Int(70, 4)
	tw.Float(10, 1.5)
	if err := tw.Flush(); err != nil {
		t.Fatalf("Flush() error: %v", err)
	}

	want := "  0\r\nSECTION\r\n 70\r\n4\r\n 10\r\n1.5\r\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestTagWriterRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	tw := NewTagWriter(&buf)
	tw.Tag(0, "LINE")
	tw.Tag(8, "WALLS")
	tw.Float(10, 0)
	tw.Float(20, -2.25)
	if err := tw.Flush(); err != nil {
		t.Fatalf("Flush() error: %v", err)
	}

	l := NewLexer(strings.NewReader(buf.String()))
	var got []Tag
	for {
		tag, err := l.Next()
		if err == io.EOF {
			break
		}
		got = append(got, tag)
	}
	if len(got) != 4 {
		t.Fatalf("round trip produced %d tags, want 4", len(got))
	}
	if got[0].Value != "LINE" || got[1].Value != "WALLS" {
		t.Errorf("tags = %v", got)
	}
	f, err := got[3].Float()
	if err != nil || f != -2.25 {
		t.Errorf("got[3].Float() = %v, %v; want -2.25", f, err)
	}
	if len(l.Skipped()) != 0 {
		t.Errorf("round trip skipped lines: %v", l.Skipped())
	}
}
