package sources

import "newsbrief/internal/core"

// Lists holds the configured sources for one content kind. Official feeds
// are collected before media feeds so trusted announcements rank early in
// the candidate pool.
type Lists struct {
	OfficialRSS  []string
	MediaRSS     []string
	Sitemaps     []string
	HTMLListings []string
	SingleLinks  []string
}

// DefaultLists returns the built-in source set for a kind. Config may
// override any of the slices.
func DefaultLists(kind core.Kind) Lists {
	if kind == core.KindFinance {
		return Lists{
			MediaRSS: []string{
				"https://feeds.reuters.com/reuters/INtopNews",
				"https://www.livemint.com/rss/markets",
				"https://www.business-standard.com/rss/markets-106.rss",
				"https://www.thehindubusinessline.com/feeder/default.rss",
				"https://www.cnbctv18.com/rss/market.xml",
			},
			Sitemaps: []string{
				"https://www.financialexpress.com/news-sitemap.xml",
				"https://www.financialexpress.com/stock-market-indian-indices.xml",
			},
		}
	}
	return Lists{
		OfficialRSS: []string{
			"https://blog.google/rss/",
			"https://openai.com/blog/rss.xml",
			"https://blogs.microsoft.com/feed/",
			"https://blogs.nvidia.com/feed/",
			"https://about.fb.com/news/feed/",
			"https://aws.amazon.com/blogs/aws/feed/",
			"https://www.intel.com/content/www/us/en/newsroom/rss.xml",
			"https://www.qualcomm.com/news/releases/rss.xml",
			"https://cloud.google.com/blog/rss/",
		},
		MediaRSS: []string{
			"https://techcrunch.com/feed/",
			"https://www.theverge.com/rss/index.xml",
			"http://feeds.arstechnica.com/arstechnica/index/",
			"https://www.wired.com/feed/rss",
			"https://www.engadget.com/rss.xml",
			"https://feeds.reuters.com/reuters/technologyNews",
		},
		Sitemaps: []string{
			"https://www.theverge.com/sitemaps/news.xml",
			"https://techcrunch.com/sitemap-news.xml",
		},
		HTMLListings: []string{
			"https://www.thehindu.com/sci-tech/technology/",
			"https://timesofindia.indiatimes.com/technology",
		},
	}
}
