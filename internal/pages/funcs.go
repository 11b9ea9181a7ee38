package pages

import (
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/media"
	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/models"
)

type shareLink struct {
	Network string
	URL     string
}

func (r *Renderer) funcMap() template.FuncMap {
	return template.FuncMap{
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("January 2, 2006")
		},
		"isoDate": func(t time.Time) string {
			return t.UTC().Format(time.RFC3339)
		},
		"year": func() int {
			return time.Now().Year()
		},
		// imageURL resizes through the CDN: {{imageURL .FeaturedImage 800 0}}
		"imageURL": func(key string, width, height int) string {
			return r.urls.TransformURL(key, media.Transform{
				Width:   width,
				Height:  height,
				Quality: 80,
				Format:  "webp",
				Fit:     "cover",
			})
		},
		"categoryURL": func(category string) string {
			if category == "" || category == models.CategoryAll {
				return "/blog"
			}
			return "/blog?category=" + url.QueryEscape(category)
		},
		"tagURL": func(tag string) string {
			return "/search?tags=" + url.QueryEscape(tag)
		},
		"shareLinks": shareLinks,
		"paragraphs": paragraphs,
		"join":       strings.Join,
	}
}

func shareLinks(pageURL, title string) []shareLink {
	u := url.QueryEscape(pageURL)
	t := url.QueryEscape(title)
	return []shareLink{
		{Network: "X", URL: "https://twitter.com/intent/tweet?url=" + u + "&text=" + t},
		{Network: "LinkedIn", URL: "https://www.linkedin.com/sharing/share-offsite/?url=" + u},
		{Network: "Facebook", URL: "https://www.facebook.com/sharer/sharer.php?u=" + u},
		{Network: "Email", URL: "mailto:?subject=" + t + "&body=" + u},
	}
}

// paragraphs splits plain-text content on blank lines.
func paragraphs(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	var out []string
	for _, block := range strings.Split(content, "\n\n") {
		if block = strings.TrimSpace(block); block != "" {
			out = append(out, block)
		}
	}
	return out
}

func parseOffset(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// pageLinks returns the previous and next result page URLs, empty when absent.
func pageLinks(req *http.Request, res models.SearchResult) (prev, next string) {
	q := req.URL.Query()
	if res.Offset > 0 {
		p := res.Offset - res.Limit
		if p < 0 {
			p = 0
		}
		q.Set("offset", strconv.Itoa(p))
		prev = req.URL.Path + "?" + q.Encode()
	}
	if res.HasMore {
		q.Set("offset", strconv.Itoa(res.Offset+res.Limit))
		next = req.URL.Path + "?" + q.Encode()
	}
	return prev, next
}
