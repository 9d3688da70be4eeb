package storage

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestSanitizePathSegment(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"media", "media"},
		{"Media", "media"},
		{"  posts  ", "posts"},
		{"a/b\\c", "abc"},
		{"cover_image-1", "cover_image-1"},
		{"../etc/passwd", "etcpasswd"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := sanitizePathSegment(tt.in); got != tt.want {
			t.Errorf("sanitizePathSegment(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeExtension(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"png", "png"},
		{".png", "png"},
		{" JPG ", "jpg"},
		{"", "bin"},
		{".", "bin"},
	}
	for _, tt := range tests {
		if got := normalizeExtension(tt.in); got != tt.want {
			t.Errorf("normalizeExtension(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildObjectPath(t *testing.T) {
	now := time.Now().UTC()
	datedir := fmt.Sprintf("%04d/%02d/%02d", now.Year(), now.Month(), now.Day())

	got := buildObjectPath("media", "My Cover", "PNG")
	want := "media/" + datedir + "/my-cover.png"
	if got != want {
		t.Errorf("buildObjectPath = %q, want %q", got, want)
	}

	got = buildObjectPath("", "", "")
	if !strings.HasPrefix(got, "misc/"+datedir+"/") || !strings.HasSuffix(got, ".bin") {
		t.Errorf("buildObjectPath with empty inputs = %q", got)
	}
}

func TestDetectContentType(t *testing.T) {
	if got := detectContentType("png"); got != "image/png" {
		t.Errorf("detectContentType(png) = %q, want image/png", got)
	}
	if got := detectContentType("weird-ext"); got != "application/octet-stream" {
		t.Errorf("detectContentType(weird-ext) = %q, want application/octet-stream", got)
	}
}

func TestJoinPrefix(t *testing.T) {
	tests := []struct {
		prefix string
		key    string
		want   string
	}{
		{"", "media/a.png", "media/a.png"},
		{"blog", "media/a.png", "blog/media/a.png"},
		{"/blog/", "/media/a.png", "blog/media/a.png"},
		{" blog ", "a.png", "blog/a.png"},
	}
	for _, tt := range tests {
		if got := joinPrefix(tt.prefix, tt.key); got != tt.want {
			t.Errorf("joinPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
		}
	}
}
