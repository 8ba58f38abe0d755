package codec

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"
)

func TestDecodeBase64_RoundTrip(t *testing.T) {
	payload := []byte("a small binary payload \x00\x01\x02")
	enc := base64.StdEncoding.EncodeToString(payload)

	got, err := DecodeBase64(enc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("round trip mismatch: %q", got)
	}
}

func TestDecodeBase64_MissingPadding(t *testing.T) {
	enc := base64.StdEncoding.EncodeToString([]byte("hello"))
	trimmed := strings.TrimRight(enc, "=")

	got, err := DecodeBase64(trimmed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "hello" {
		t.Fatalf("expected %q, got %q", "hello", got)
	}
}

func TestDecodeBase64_StripsNonAlphabet(t *testing.T) {
	enc := base64.StdEncoding.EncodeToString([]byte("hello world"))
	noisy := " " + enc[:4] + "\n" + enc[4:8] + "\t!" + enc[8:] + " "

	got, err := DecodeBase64(noisy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "hello world" {
		t.Fatalf("expected %q, got %q", "hello world", got)
	}
}

func TestDecodeBase64_Invalid(t *testing.T) {
	// Cleaning leaves a string whose length cannot form valid base64.
	if _, err := DecodeBase64("!!!a"); err == nil {
		t.Fatalf("expected error for undecodable input")
	}
}

func TestContentName_StableAcrossSources(t *testing.T) {
	data := []byte{0x89, 0x50, 0x4e, 0x47}
	a := ContentName("img", data, "png")
	b := ContentName("img", data, "png")
	if a != b {
		t.Fatalf("same bytes must map to same name: %q vs %q", a, b)
	}
	if !strings.HasPrefix(a, "img_") || !strings.HasSuffix(a, ".png") {
		t.Fatalf("unexpected name shape: %q", a)
	}

	other := ContentName("img", []byte{0x00}, "png")
	if other == a {
		t.Fatalf("different bytes must not collide")
	}
}

func TestStyleClass_Deterministic(t *testing.T) {
	a := StyleClass("color:red")
	b := StyleClass("color:red")
	if a != b {
		t.Fatalf("identical style text must map to one class: %q vs %q", a, b)
	}
	if !strings.HasPrefix(a, "inline_") || len(a) != len("inline_")+8 {
		t.Fatalf("unexpected class shape: %q", a)
	}
	if StyleClass("color:blue") == a {
		t.Fatalf("different style text must not collide")
	}
}
