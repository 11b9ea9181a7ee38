package db

import (
	"time"

	"github.com/AdilKhanbpk/RemoteGuied-blog-sub001/internal/models"
)

// DemoContent returns the authors and posts loaded by cmd/seed. Dates are
// relative to now so the demo always looks recent.
func DemoContent(now time.Time) ([]models.Author, []models.BlogPost) {
	dana := models.Author{
		Name:   "Dana Whitfield",
		Bio:    "Head of content. Writes about editorial strategy and measurement.",
		Social: models.Social{Twitter: "@danawrites", Website: "https://dana.example"},
	}
	marco := models.Author{
		Name:   "Marco Ruiz",
		Bio:    "SEO lead. Has opinions about internal links.",
		Social: models.Social{LinkedIn: "marco-ruiz"},
	}
	days := func(n int) time.Time { return now.Add(-time.Duration(n) * 24 * time.Hour).Truncate(time.Hour) }

	posts := []models.BlogPost{
		{
			Title:       "Building a content strategy that survives the quarter",
			Slug:        "content-strategy-that-survives",
			Excerpt:     "Plans fail when they are written for a slide deck. Here is how we write ours for the team instead.",
			Content:     "Most content plans are written once and then ignored.\n\nStart from the questions your customers ask, group them into themes and give every theme an owner.\n\nReview the plan monthly against search and engagement data, not against the original deck.",
			Category:    "Strategy",
			Tags:        []string{"content", "planning", "strategy"},
			Author:      dana,
			Featured:    true,
			PublishedAt: days(2),
		},
		{
			Title:       "Internal linking for people who hate spreadsheets",
			Slug:        "internal-linking-basics",
			Excerpt:     "A lightweight way to keep your best pages connected.",
			Content:     "Internal links tell search engines which pages matter.\n\nPick ten cornerstone articles and make sure every new post links to at least one of them.",
			Category:    "SEO",
			Tags:        []string{"seo", "links"},
			Author:      marco,
			PublishedAt: days(5),
		},
		{
			Title:       "What scroll depth actually tells you",
			Slug:        "what-scroll-depth-tells-you",
			Excerpt:     "Scroll depth is a proxy, not a goal. Read it together with time on page.",
			Content:     "Scroll milestones at 25, 50, 75 and 100 percent show where readers drop off.\n\nA page with high scroll depth and very short time on page is being skimmed, not read.",
			Category:    "Analytics",
			Tags:        []string{"analytics", "engagement"},
			Author:      dana,
			Featured:    true,
			PublishedAt: days(9),
		},
		{
			Title:       "Newsletter subject lines that earn the open",
			Slug:        "newsletter-subject-lines",
			Excerpt:     "Specific beats clever.",
			Content:     "The best subject lines describe the value of the email in plain words.\n\nTest two variants on a small segment before sending to the full list.",
			Category:    "Email",
			Tags:        []string{"email", "copywriting"},
			Author:      marco,
			PublishedAt: days(14),
		},
		{
			Title:       "Repurposing long reads for social",
			Slug:        "repurposing-for-social",
			Excerpt:     "One article, five posts, zero extra research.",
			Content:     "Pull the three strongest claims from the article and turn each into a standalone post.\n\nLink back to the original only once the post stands on its own.",
			Category:    "Social Media",
			Tags:        []string{"social", "content"},
			Author:      dana,
			PublishedAt: days(21),
		},
		{
			Title:       "Quarterly review template",
			Slug:        "quarterly-review-template",
			Excerpt:     "Draft: not ready for readers yet.",
			Content:     "Work in progress.",
			Category:    "Strategy",
			Author:      dana,
			Status:      models.PostStatusDraft,
			PublishedAt: days(1),
		},
	}
	return []models.Author{dana, marco}, posts
}
