package session

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// page is one fetched portal page: its final URL (after redirects) and the
// parsed document. Each navigation step takes a page and returns the next
// one; there is no shared browser state.
type page struct {
	url *url.URL
	doc *goquery.Document
}

func newPage(u *url.URL, body []byte) (*page, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing page %s: %w", u, err)
	}
	return &page{url: u, doc: doc}, nil
}

// resolve interprets a possibly-relative href against the page URL.
func (p *page) resolve(href string) (*url.URL, error) {
	ref, err := url.Parse(href)
	if err != nil {
		return nil, fmt.Errorf("resolving %q against %s: %w", href, p.url, err)
	}
	return p.url.ResolveReference(ref), nil
}

// form is a parsed HTML form ready for submission.
type form struct {
	action *url.URL
	method string
	values url.Values
}

// parseForm extracts the action, method and pre-filled field values from a
// form element. Inputs seed their markup value; selects seed the selected
// (or first) option.
func parseForm(p *page, sel *goquery.Selection) (*form, error) {
	action, err := p.resolve(sel.AttrOr("action", ""))
	if err != nil {
		return nil, err
	}

	method := strings.ToUpper(sel.AttrOr("method", http.MethodGet))

	values := url.Values{}
	sel.Find("input").Each(func(_ int, in *goquery.Selection) {
		name := in.AttrOr("name", "")
		if name == "" {
			return
		}
		values.Set(name, in.AttrOr("value", ""))
	})
	sel.Find("select").Each(func(_ int, sl *goquery.Selection) {
		name := sl.AttrOr("name", "")
		if name == "" {
			return
		}
		opt := sl.Find("option[selected]").First()
		if opt.Length() == 0 {
			opt = sl.Find("option").First()
		}
		values.Set(name, opt.AttrOr("value", ""))
	})

	return &form{action: action, method: method, values: values}, nil
}

// set assigns a form field, creating it if the markup did not carry it.
func (f *form) set(name, value string) {
	f.values.Set(name, value)
}
