package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Web Development!":         "web-development",
		"Hello World":              "hello-world",
		"  spaced  out  ":          "spaced-out",
		"Already-A-Slug":           "already-a-slug",
		"Go 1.23 Release Notes":    "go-1-23-release-notes",
		"C++ & Rust: A Comparison": "c-rust-a-comparison",
		"مرحبا بالعالم":            "",
		"":                         "",
		"---":                      "",
	}

	for input, want := range cases {
		assert.Equal(t, want, Slugify(input), "Slugify(%q)", input)
	}
}

func TestIsValidSlug(t *testing.T) {
	assert.True(t, IsValidSlug("web-development"))
	assert.True(t, IsValidSlug("go-1-23"))

	assert.False(t, IsValidSlug(""))
	assert.False(t, IsValidSlug("Web-Development"))
	assert.False(t, IsValidSlug("hello world"))
	assert.False(t, IsValidSlug("héllo"))
}
