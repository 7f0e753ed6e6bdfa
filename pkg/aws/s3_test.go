package aws

import "testing"

func TestURLForCustomEndpoint(t *testing.T) {
	s := &S3{name: "itembox", endpoint: "http://localhost:9000", region: "us-east-1"}

	got := s.URLFor("uploads/2026/01/01/aabbccddeeff.png")
	want := "http://localhost:9000/itembox/uploads/2026/01/01/aabbccddeeff.png"
	if got != want {
		t.Errorf("URLFor = %q, want %q", got, want)
	}
}

func TestURLForAWS(t *testing.T) {
	s := &S3{name: "itembox", region: "eu-west-1"}

	got := s.URLFor("uploads/2026/01/01/aabbccddeeff.png")
	want := "https://itembox.s3.eu-west-1.amazonaws.com/uploads/2026/01/01/aabbccddeeff.png"
	if got != want {
		t.Errorf("URLFor = %q, want %q", got, want)
	}
}

func TestURLForIsDeterministic(t *testing.T) {
	s := &S3{name: "itembox", endpoint: "http://localhost:9000"}

	key := "uploads/2026/02/02/001122334455.jpg"
	if s.URLFor(key) != s.URLFor(key) {
		t.Error("URLFor returned different results for the same key")
	}
}
