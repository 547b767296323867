package objectstore

import (
	"regexp"
	"strings"
	"testing"
)

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_-]*/\d+-[0-9a-f]{8}\.(jpg|jpeg|png|gif|webp)$`)

func TestBuildObjectKeyShape(t *testing.T) {
	tests := []struct {
		name       string
		eventID    string
		filename   string
		wantFolder string
		wantExt    string
	}{
		{"plain", "6f1d2c3b", "headshot.png", "6f1d2c3b", "png"},
		{"hostile event id", "../../../etc", "photo.jpg", "etc", "jpg"},
		{"disallowed extension", "event-1", "payload.php", "event-1", "jpg"},
		{"no extension", "event-1", "photo", "event-1", "jpg"},
		{"empty event id", "", "me.webp", "", "webp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := BuildObjectKey(tt.eventID, tt.filename)
			if !keyPattern.MatchString(key) {
				t.Fatalf("BuildObjectKey(%q, %q) = %q, does not match expected shape", tt.eventID, tt.filename, key)
			}
			folder := key[:strings.Index(key, "/")]
			if folder != tt.wantFolder {
				t.Errorf("key folder = %q, want %q", folder, tt.wantFolder)
			}
			if ext := key[strings.LastIndex(key, ".")+1:]; ext != tt.wantExt {
				t.Errorf("key extension = %q, want %q", ext, tt.wantExt)
			}
		})
	}
}

func TestBuildObjectKeyNeverCollides(t *testing.T) {
	// Two uploads of files with the same original name to the same event must
	// produce distinct keys, and repeated calls within the same millisecond
	// must still differ thanks to the random component.
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		key := BuildObjectKey("event-1", "photo.jpg")
		if seen[key] {
			t.Fatalf("duplicate object key generated: %s", key)
		}
		seen[key] = true
	}
}
