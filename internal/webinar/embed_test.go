package webinar

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestEmbedURLs(t *testing.T) {
	id := uuid.MustParse("4b4688c0-7e08-4845-9fbd-48a29ebf865a")

	assert.Equal(t,
		"https://webinars.example.com/watch/4b4688c0-7e08-4845-9fbd-48a29ebf865a",
		WatchURL(id, "webinars.example.com"))
	assert.Equal(t,
		"https://webinars.example.com/embed/4b4688c0-7e08-4845-9fbd-48a29ebf865a",
		EmbedURL(id, "webinars.example.com"))
}

func TestEmbedCode(t *testing.T) {
	id := uuid.New()
	code := EmbedCode(id, "webinars.example.com")

	assert.Contains(t, code, EmbedURL(id, "webinars.example.com"))
	assert.Contains(t, code, "padding-bottom:56.25%")
	assert.Contains(t, code, "allowfullscreen")
}
