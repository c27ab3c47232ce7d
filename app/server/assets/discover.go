package assets

import (
	"context"
	"errors"
	"fmt"
	"golang.org/x/net/html"
	"io"
	"net/url"
	"start-page/app/server/constants"
	"strings"
)

type Candidates struct {
	Icons  []string `json:"icons"`
	Errors []string `json:"errors"`
}

func (c *Candidates) add(u string) {
	for _, existing := range c.Icons {
		if existing == u {
			return
		}
	}
	c.Icons = append(c.Icons, u)
}

func (c *Candidates) fail(err error) {
	c.Errors = append(c.Errors, err.Error())
}

var iconRelations = map[string]bool{
	"icon":             true,
	"shortcut icon":    true,
	"apple-touch-icon": true,
}

// NormalizePageURL 没有协议时补上 http://
func NormalizePageURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidURL)
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	return parseRemoteURL(raw)
}

// Discover 找出页面可能的图标地址，不保存任何资源。
// 任何网络或解析错误都只记录在 Errors 中，已经找到的候选照常返回。
func (p *Pipeline) Discover(ctx context.Context, rawURL string) *Candidates {
	res := &Candidates{Icons: []string{}, Errors: []string{}}

	page, err := NormalizePageURL(rawURL)
	if err != nil {
		res.fail(err)
		return res
	}

	// 默认位置总是候选
	origin := &url.URL{Scheme: page.Scheme, Host: page.Host}
	res.add(origin.String() + "/favicon.ico")

	ctx, cancel := context.WithTimeout(ctx, constants.IconDiscoverTimeout)
	defer cancel()

	resp, err := p.get(ctx, page, "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	if err != nil {
		res.fail(fmt.Errorf("fetch page: %w", err))
		return res
	}
	defer resp.Body.Close()

	hrefs, err := extractIconLinks(io.LimitReader(resp.Body, constants.IconDiscoverMaxPage))
	if err != nil {
		res.fail(fmt.Errorf("parse page: %w", fetchError(err)))
	}

	for _, href := range hrefs {
		ref, err := url.Parse(href)
		if err != nil {
			res.fail(fmt.Errorf("resolve %q: %w", href, err))
			continue
		}

		abs := page.ResolveReference(ref)
		if abs.Scheme != "http" && abs.Scheme != "https" {
			continue
		}
		res.add(abs.String())
	}

	return res
}

// extractIconLinks 返回所有图标 <link> 的 href ，出错时返回已经找到的部分
func extractIconLinks(r io.Reader) ([]string, error) {
	var hrefs []string

	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return hrefs, err
			}
			return hrefs, nil

		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if string(name) != "link" || !hasAttr {
				continue
			}

			var rel, href string
			for {
				key, val, more := z.TagAttr()
				switch string(key) {
				case "rel":
					rel = strings.ToLower(strings.Join(strings.Fields(string(val)), " "))
				case "href":
					href = strings.TrimSpace(string(val))
				}
				if !more {
					break
				}
			}

			if iconRelations[rel] && href != "" {
				hrefs = append(hrefs, href)
			}
		}
	}
}
