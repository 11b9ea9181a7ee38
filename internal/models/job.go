package models

import "time"

const (
	JobTypeFullTime  = "full-time"
	JobTypePartTime  = "part-time"
	JobTypeContract  = "contract"
	JobTypeFreelance = "freelance"
)

type JobListing struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Company  string    `json:"company"`
	Location string    `json:"location"`
	Type     string    `json:"type"`
	Remote   bool      `json:"remote"`
	URL      string    `json:"url"`
	PostedAt time.Time `json:"postedAt"`
}

// SeedJobListings returns the static listings shown on the jobs page,
// newest first.
func SeedJobListings() []JobListing {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	return []JobListing{
		{
			ID:       "job-senior-content-strategist",
			Title:    "Senior Content Strategist",
			Company:  "Northwind Media",
			Location: "Berlin, DE",
			Type:     JobTypeFullTime,
			Remote:   true,
			URL:      "https://careers.northwind.example/content-strategist",
			PostedAt: day(2026, time.September, 30),
		},
		{
			ID:       "job-seo-specialist",
			Title:    "SEO Specialist",
			Company:  "Brightline Digital",
			Location: "Remote (EU)",
			Type:     JobTypeContract,
			Remote:   true,
			URL:      "https://brightline.example/jobs/seo",
			PostedAt: day(2026, time.September, 18),
		},
		{
			ID:       "job-growth-marketing-manager",
			Title:    "Growth Marketing Manager",
			Company:  "Acme Analytics",
			Location: "London, UK",
			Type:     JobTypeFullTime,
			Remote:   false,
			URL:      "https://acme-analytics.example/careers/growth",
			PostedAt: day(2026, time.September, 2),
		},
		{
			ID:       "job-freelance-copywriter",
			Title:    "Freelance B2B Copywriter",
			Company:  "Paperplane Studio",
			Location: "Anywhere",
			Type:     JobTypeFreelance,
			Remote:   true,
			URL:      "https://paperplane.example/work-with-us",
			PostedAt: day(2026, time.August, 21),
		},
		{
			ID:       "job-social-media-coordinator",
			Title:    "Social Media Coordinator",
			Company:  "Harbor & Co",
			Location: "Lisbon, PT",
			Type:     JobTypePartTime,
			Remote:   false,
			URL:      "https://harborandco.example/jobs/social",
			PostedAt: day(2026, time.August, 5),
		},
	}
}
