package core

import (
	"io"
	"strings"
	"testing"
)

func collectTags(t *testing.T, input string) ([]Tag, *Lexer) {
	t.Helper()
	l := NewLexer(strings.NewReader(input))
	var tags []Tag
	for {
		tag, err := l.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next() unexpected error: %v", err)
		}
		tags = append(tags, tag)
	}
	return tags, l
}

func TestLexerBasicTags(t *testing.T) {
	input := "  0\nSECTION\n  2\nHEADER\n  9\n$ACADVER\n  1\nAC1032\n"
	tags, l := collectTags(t, input)

	want := []Tag{
		{Code: 0, Value: "SECTION"},
		{Code: 2, Value: "HEADER"},
		{Code: 9, Value: "$ACADVER"},
		{Code: 1, Value: "AC1032"},
	}
	if len(tags) != len(want) {
		t.Fatalf("got %d tags, want %d", len(tags), len(want))
	}
	for i, w := range want {
		if tags[i].Code != w.Code || tags[i].Value != w.Value {
			t.Errorf("tag %d = %v, want %d=%q", i, tags[i], w.Code, w.Value)
		}
	}
	if len(l.Skipped()) != 0 {
		t.Errorf("Skipped() = %v, want none", l.Skipped())
	}
}

func TestLexerCRLFAndBlankLines(t *testing.T) {
	input := "0\r\nLINE\r\n\r\n8\r\nWALLS\r\n"
	tags, _ := collectTags(t, input)
	if len(tags) != 2 {
		t.Fatalf("got %d tags, want 2", len(tags))
	}
	if tags[0].Value != "LINE" || tags[1].Value != "WALLS" {
		t.Errorf("tags = %v", tags)
	}
}

func TestLexerResyncOnGarbage(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantTags int
		wantSkip int
	}{
		{"garbage between tags", "0\nLINE\nnot-a-code\n8\nWALLS\n", 2, 1},
		{"garbage only", "hello\nworld\n", 0, 2},
		{"truncated final tag", "0\nLINE\n10\n", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tags, l := collectTags(t, tt.input)
			if len(tags) != tt.wantTags {
				t.Errorf("got %d tags, want %d: %v", len(tags), tt.wantTags, tags)
			}
			if len(l.Skipped()) != tt.wantSkip {
				t.Errorf("got %d skipped, want %d: %v", len(l.Skipped()), tt.wantSkip, l.Skipped())
			}
		})
	}
}

func TestLexerLineNumbers(t *testing.T) {
	input := "0\nSECTION\n2\nENTITIES\n"
	tags, _ := collectTags(t, input)
	if tags[0].Line != 1 {
		t.Errorf("first tag line = %d, want 1", tags[0].Line)
	}
	if tags[1].Line != 3 {
		t.Errorf("second tag line = %d, want 3", tags[1].Line)
	}
}

func TestTagFloat(t *testing.T) {
	tests := []struct {
		value   string
		want    float64
		wantErr bool
	}{
		{"1.5", 1.5, false},
		{" 2.0 ", 2.0, false},
		{"-3.25", -3.25, false},
		{"1e3", 1000, false},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := Tag{Code: 10, Value: tt.value}.Float()
		if (err != nil) != tt.wantErr {
			t.Errorf("Float(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("Float(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestTagInt(t *testing.T) {
	tests := []struct {
		value   string
		want    int
		wantErr bool
	}{
		{"4", 4, false},
		{"  70", 70, false},
		{"4.0", 4, false}, // float-formatted integers are accepted
		{"x", 0, true},
	}
	for _, tt := range tests {
		got, err := Tag{Code: 70, Value: tt.value}.Int()
		if (err != nil) != tt.wantErr {
			t.Errorf("Int(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("Int(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
