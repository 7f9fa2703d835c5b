package utils

import (
	"strings"
	"testing"

	"smelab/backend/config"
)

func TestObjectPath(t *testing.T) {
	key := ObjectPath("designs", "user-1", "my logo.png")
	if !strings.HasPrefix(key, "designs/user-1/") {
		t.Fatalf("bad key prefix: %s", key)
	}
	if !strings.HasSuffix(key, "-my_logo.png") {
		t.Fatalf("filename not sanitized: %s", key)
	}
	if strings.Contains(key, "..") {
		t.Fatalf("path traversal in key: %s", key)
	}
}

func TestObjectPathStripsDirectories(t *testing.T) {
	key := ObjectPath("cac", "user-1", "../../etc/passwd")
	if strings.Contains(key, "..") {
		t.Fatalf("directory components survived: %s", key)
	}
}

func TestPublicURL(t *testing.T) {
	cfg := config.Config{S3Bucket: "smelab-uploads", AWSRegion: "eu-central-1"}

	got := PublicURL(cfg, "designs/u/1-logo.png")
	want := "https://smelab-uploads.s3.eu-central-1.amazonaws.com/designs/u/1-logo.png"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	cfg.AssetsCDNBase = "https://cdn.example.com/"
	if got := PublicURL(cfg, "a/b.png"); got != "https://cdn.example.com/a/b.png" {
		t.Fatalf("cdn base not applied: %q", got)
	}

	// absolute URLs pass through
	abs := "https://elsewhere.example.com/x.png"
	if got := PublicURL(cfg, abs); got != abs {
		t.Fatalf("absolute url rewritten: %q", got)
	}
}
