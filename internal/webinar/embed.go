package webinar

import (
	"fmt"

	"github.com/google/uuid"
)

// WatchURL returns the public viewer-facing URL for a webinar
func WatchURL(id uuid.UUID, domain string) string {
	return fmt.Sprintf("https://%s/watch/%s", domain, id)
}

// EmbedURL returns the URL intended for cross-origin iframe embedding
func EmbedURL(id uuid.UUID, domain string) string {
	return fmt.Sprintf("https://%s/embed/%s", domain, id)
}

// EmbedCode returns a responsive 16:9 iframe snippet tenants paste into
// their own pages
func EmbedCode(id uuid.UUID, domain string) string {
	return fmt.Sprintf(`<div style="position:relative; padding-bottom:56.25%%; height:0; overflow:hidden;">
  <iframe src="%s"
    style="position:absolute; top:0; left:0; width:100%%; height:100%%; border:0;"
    allow="autoplay; fullscreen" allowfullscreen>
  </iframe>
</div>`, EmbedURL(id, domain))
}
