package oss

import (
	"strings"
	"testing"
)

func TestObjectName(t *testing.T) {
	s := NewStorage(nil, "vidhub", "http://localhost:9002/")

	url := s.URL("video/abc.mp4")
	if url != "http://localhost:9002/vidhub/video/abc.mp4" {
		t.Fatalf("unexpected url %s", url)
	}

	tests := []struct {
		name   string
		url    string
		want   string
		wantOK bool
	}{
		{name: "own object", url: url, want: "video/abc.mp4", wantOK: true},
		{name: "other bucket", url: "http://localhost:9002/other/video/abc.mp4"},
		{name: "other host", url: "https://cdn.example.com/vidhub/video/abc.mp4"},
		{name: "bucket root", url: "http://localhost:9002/vidhub/"},
		{name: "empty", url: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.ObjectName(tt.url)
			if ok != tt.wantOK || got != tt.want {
				t.Fatalf("expected (%q, %v), got (%q, %v)", tt.want, tt.wantOK, got, ok)
			}
		})
	}
}

func TestNewObjectName(t *testing.T) {
	a := NewObjectName("thumbnail", "/tmp/upload/Cover.PNG")
	b := NewObjectName("thumbnail", "/tmp/upload/Cover.PNG")
	if a == b {
		t.Fatal("object names must be unique")
	}
	if !strings.HasPrefix(a, "thumbnail/") || !strings.HasSuffix(a, ".png") {
		t.Fatalf("unexpected object name %s", a)
	}
}

func TestParseDuration(t *testing.T) {
	got, err := parseDuration(`{"streams":[],"format":{"filename":"a.mp4","duration":"12.480000"}}`)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if got != 12.48 {
		t.Fatalf("expected 12.48, got %v", got)
	}

	if _, err := parseDuration(`{"format":{}}`); err == nil {
		t.Fatal("expected error for missing duration")
	}
	if _, err := parseDuration(`not json`); err == nil {
		t.Fatal("expected error for malformed output")
	}
}
