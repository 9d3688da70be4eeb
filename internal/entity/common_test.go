package entity

import (
	"testing"
	"time"
)

func TestStringArrayValue(t *testing.T) {
	tests := []struct {
		name string
		in   StringArray
		want string
	}{
		{"nil", nil, "[]"},
		{"empty", StringArray{}, "[]"},
		{"values", StringArray{"go", "blog"}, `["go","blog"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := tt.in.Value()
			if err != nil {
				t.Fatalf("Value returned error: %v", err)
			}
			if value != tt.want {
				t.Errorf("Value = %v, want %v", value, tt.want)
			}
		})
	}
}

func TestStringArrayScan(t *testing.T) {
	var arr StringArray
	if err := arr.Scan(`["a","b"]`); err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if len(arr) != 2 || arr[0] != "a" || arr[1] != "b" {
		t.Errorf("Scan result = %v", arr)
	}

	if err := arr.Scan([]byte(`["c"]`)); err != nil {
		t.Fatalf("Scan of []byte returned error: %v", err)
	}
	if len(arr) != 1 || arr[0] != "c" {
		t.Errorf("Scan result = %v", arr)
	}

	if err := arr.Scan(nil); err != nil {
		t.Fatalf("Scan of nil returned error: %v", err)
	}
	if arr != nil {
		t.Errorf("Scan of nil result = %v, want nil", arr)
	}

	if err := arr.Scan(42); err == nil {
		t.Error("Scan of int expected error, got nil")
	}
}

func TestStringArrayContains(t *testing.T) {
	arr := StringArray{"go", "blog"}
	if !arr.Contains("go") {
		t.Error("Contains(go) = false")
	}
	if arr.Contains("rust") {
		t.Error("Contains(rust) = true")
	}
}

func TestSessionExpired(t *testing.T) {
	now := time.Now()
	live := &DbSession{ExpiresAt: now.Add(time.Hour)}
	if live.Expired(now) {
		t.Error("future session reported expired")
	}
	dead := &DbSession{ExpiresAt: now.Add(-time.Hour)}
	if !dead.Expired(now) {
		t.Error("past session not reported expired")
	}
	var nilSession *DbSession
	if nilSession.Expired(now) {
		t.Error("nil session reported expired")
	}
}

func TestPostUpdatesToMap(t *testing.T) {
	if !(PostUpdates{}).IsEmpty() {
		t.Error("zero PostUpdates not empty")
	}

	title := "New Title"
	published := true
	now := time.Now()
	updates := PostUpdates{
		Title:       &title,
		Published:   &published,
		PublishedAt: NullableTime{Set: true, Value: now},
	}
	m := updates.ToMap()
	if len(m) != 3 {
		t.Fatalf("ToMap has %d entries, want 3", len(m))
	}
	if m["title"] != title {
		t.Errorf("title = %v", m["title"])
	}
	if m["published"] != true {
		t.Errorf("published = %v", m["published"])
	}
	if m["published_at"] != now {
		t.Errorf("published_at = %v", m["published_at"])
	}

	// Clearing the publish timestamp writes NULL, not nothing.
	cleared := PostUpdates{PublishedAt: NullableTime{Set: true, Value: nil}}
	m = cleared.ToMap()
	if len(m) != 1 {
		t.Fatalf("ToMap has %d entries, want 1", len(m))
	}
	if value, ok := m["published_at"]; !ok || value != nil {
		t.Errorf("published_at = %v, want explicit nil", value)
	}
}

func TestContactUpdatesToMap(t *testing.T) {
	if !(ContactUpdates{}).IsEmpty() {
		t.Error("zero ContactUpdates not empty")
	}
	read := true
	m := ContactUpdates{Read: &read}.ToMap()
	// The column is is_read; "read" is reserved in MySQL.
	if len(m) != 1 || m["is_read"] != true {
		t.Errorf("ToMap = %v, want is_read=true", m)
	}
}

func TestUserUpdatesToMap(t *testing.T) {
	if !(UserUpdates{}).IsEmpty() {
		t.Error("zero UserUpdates not empty")
	}
	name := "Ada"
	hash := "bcrypt-hash"
	m := UserUpdates{DisplayName: &name, PasswordHash: &hash}.ToMap()
	if len(m) != 2 || m["display_name"] != name || m["password_hash"] != hash {
		t.Errorf("ToMap = %v", m)
	}
}
