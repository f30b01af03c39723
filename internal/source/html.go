package source

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/henrykdz/pathment/internal/common"
	"golang.org/x/net/html"
)

// linkAttribute maps a tag to the attribute holding its link.
type linkAttribute struct {
	Tag       string
	Attribute string
}

var linkAttributes = []linkAttribute{
	{Tag: "a", Attribute: "href"},
	{Tag: "link", Attribute: "href"},
	{Tag: "area", Attribute: "href"},
	{Tag: "script", Attribute: "src"},
	{Tag: "img", Attribute: "src"},
	{Tag: "iframe", Attribute: "src"},
	{Tag: "embed", Attribute: "src"},
	{Tag: "source", Attribute: "src"},
	{Tag: "form", Attribute: "action"},
	{Tag: "object", Attribute: "data"},
}

// HTMLContent is what ExtractHTML pulls out of a page.
type HTMLContent struct {
	Text    string
	Links   []string
	Scripts []string
}

// ExtractHTML returns the visible text of a page, the link attributes when
// harvestLinks is set, and the bodies of inline scripts.
func ExtractHTML(content string, harvestLinks bool) (HTMLContent, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return HTMLContent{}, common.WrapError(err, "failed to parse HTML content")
	}

	var result HTMLContent
	if harvestLinks {
		result.Links = harvestLinkAttributes(doc)
	}

	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		if _, hasSrc := s.Attr("src"); hasSrc {
			return
		}
		if body := strings.TrimSpace(s.Text()); body != "" {
			result.Scripts = append(result.Scripts, body)
		}
	})
	doc.Find("script, style, noscript, template").Remove()

	var sb strings.Builder
	for _, node := range doc.Nodes {
		collectText(node, &sb)
	}
	result.Text = normalizeSpace(sb.String())
	return result, nil
}

// collectText writes every text node on its own line. Selection.Text would
// glue the text of adjacent elements together.
func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		sb.WriteByte('\n')
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}

func harvestLinkAttributes(doc *goquery.Document) []string {
	var links []string
	seen := make(map[string]struct{})

	for _, la := range linkAttributes {
		doc.Find(la.Tag + "[" + la.Attribute + "]").Each(func(_ int, s *goquery.Selection) {
			value := strings.TrimSpace(s.AttrOr(la.Attribute, ""))
			if value == "" || strings.HasPrefix(value, "#") || strings.HasPrefix(strings.ToLower(value), "javascript:") {
				return
			}
			if _, ok := seen[value]; ok {
				return
			}
			seen[value] = struct{}{}
			links = append(links, value)
		})
	}

	doc.Find("img[srcset], source[srcset]").Each(func(_ int, s *goquery.Selection) {
		for _, candidate := range strings.Split(s.AttrOr("srcset", ""), ",") {
			fields := strings.Fields(candidate)
			if len(fields) == 0 {
				continue
			}
			if _, ok := seen[fields[0]]; !ok {
				seen[fields[0]] = struct{}{}
				links = append(links, fields[0])
			}
		}
	})
	return links
}

// normalizeSpace collapses blank runs inside lines and drops empty lines.
func normalizeSpace(text string) string {
	lines := strings.Split(text, "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
