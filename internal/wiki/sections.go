package wiki

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Sections holds filmography-style content scraped from an article
type Sections struct {
	Headings []string // Section headings that look role-related
	Titles   []string // Work titles from tables and lists under them
}

// sectionKeywords mark headings whose content lists acting work
var sectionKeywords = []string{
	"filmography",
	"discography",
	"television",
	"film",
	"voice roles",
	"roles",
	"career",
	"acting credits",
}

// isRoleHeading reports whether a heading introduces a credits section
func isRoleHeading(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range sectionKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// parseSections extracts role-related headings and the work titles listed
// under them from article HTML.
func parseSections(r io.Reader) (*Sections, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	sections := &Sections{}
	seen := make(map[string]bool)

	addTitle := func(raw string) {
		title := strings.TrimSpace(raw)
		if title == "" {
			return
		}
		key := strings.ToLower(title)
		if seen[key] {
			return
		}
		seen[key] = true
		sections.Titles = append(sections.Titles, title)
	}

	doc.Find("h2, h3").Each(func(_ int, heading *goquery.Selection) {
		text := strings.TrimSpace(heading.Text())
		// Strip the "[edit]" suffix MediaWiki appends to headings
		text = strings.TrimSpace(strings.TrimSuffix(text, "[edit]"))
		if !isRoleHeading(text) {
			return
		}

		sections.Headings = append(sections.Headings, text)

		// Walk forward until the next heading, collecting titles from
		// wikitable title columns and list items.
		for node := heading.Next(); node.Length() > 0; node = node.Next() {
			tag := goquery.NodeName(node)
			if tag == "h2" || tag == "h3" {
				break
			}

			switch tag {
			case "table":
				node.Find("td i a, td i").Each(func(_ int, cell *goquery.Selection) {
					if cell.Children().Length() == 0 {
						addTitle(cell.Text())
					}
				})
			case "ul", "ol":
				node.Find("li i a, li i").Each(func(_ int, item *goquery.Selection) {
					if item.Children().Length() == 0 {
						addTitle(item.Text())
					}
				})
			}
		}
	})

	return sections, nil
}

// parseFandomResults extracts page titles from a community search page
func parseFandomResults(r io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var titles []string
	seen := make(map[string]bool)

	doc.Find(".unified-search__result__title").Each(func(_ int, link *goquery.Selection) {
		title := strings.TrimSpace(link.Text())
		if title == "" {
			return
		}
		key := strings.ToLower(title)
		if seen[key] {
			return
		}
		seen[key] = true
		titles = append(titles, title)
	})

	return titles, nil
}
