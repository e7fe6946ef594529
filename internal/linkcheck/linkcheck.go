// Package linkcheck finds dangling links in a built handbook.
package linkcheck

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	handbook "github.com/alnah/go-handbook"
	"github.com/alnah/go-handbook/internal/fileutil"
)

// Kind classifies a Problem.
type Kind int

const (
	// MissingPage is a site link whose path serves no page.
	MissingPage Kind = iota
	// MissingAnchor is a link whose #fragment names no element id.
	MissingAnchor
	// Unresolved is a relative link left as is, usually to a content file
	// that is not in the outline.
	Unresolved
)

func (k Kind) String() string {
	switch k {
	case MissingPage:
		return "missing page"
	case MissingAnchor:
		return "missing anchor"
	case Unresolved:
		return "unresolved link"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Problem is one broken link.
type Problem struct {
	Page string // path of the page holding the link
	Href string
	Kind Kind
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s %q", p.Page, p.Kind, p.Href)
}

// Check inspects every <a href> of every page. Links to other sites and
// non-http schemes are not followed. Problems are reported in navigation
// order, then document order within a page.
func Check(site *handbook.Site) ([]Problem, error) {
	pages := site.Leaves()

	docs := make(map[string]*goquery.Document, len(pages))
	ids := make(map[string]map[string]bool, len(pages))
	for _, page := range pages {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
		if err != nil {
			return nil, fmt.Errorf("linkcheck: parsing %s: %w", page.Path, err)
		}
		docs[page.Path] = doc
		ids[page.Path] = collectIDs(doc)
	}

	var problems []Problem
	for _, page := range pages {
		docs[page.Path].Find("a[href]").Each(func(_ int, a *goquery.Selection) {
			href := a.AttrOr("href", "")
			if kind, bad := checkHref(site, ids, page.Path, href); bad {
				problems = append(problems, Problem{Page: page.Path, Href: href, Kind: kind})
			}
		})
	}
	return problems, nil
}

func collectIDs(doc *goquery.Document) map[string]bool {
	set := make(map[string]bool)
	doc.Find("[id]").Each(func(_ int, s *goquery.Selection) {
		if id, ok := s.Attr("id"); ok && id != "" {
			set[id] = true
		}
	})
	return set
}

func checkHref(site *handbook.Site, ids map[string]map[string]bool, current, href string) (Kind, bool) {
	if href == "" || fileutil.IsURL(href) {
		return 0, false
	}
	u, err := url.Parse(href)
	if err != nil {
		return Unresolved, true
	}
	if u.Scheme != "" || u.Host != "" {
		return 0, false
	}

	target := current
	switch {
	case u.Path == "":
		// same-page anchor
	case strings.HasPrefix(u.Path, "/"):
		if u.Path == handbook.StylesheetPath {
			return 0, false
		}
		target = u.Path
		if len(target) > 1 {
			target = strings.TrimSuffix(target, "/")
		}
		if _, ok := site.Page(target); !ok {
			return MissingPage, true
		}
	default:
		return Unresolved, true
	}

	if u.Fragment == "" {
		return 0, false
	}
	if !ids[target][u.Fragment] {
		return MissingAnchor, true
	}
	return 0, false
}
