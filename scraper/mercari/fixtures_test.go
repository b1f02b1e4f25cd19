package mercari

import (
	"fmt"
	"strings"
)

type cell struct {
	href, img, title, price string
	noImg, noPrice, noTitle bool
}

func (c cell) html() string {
	var b strings.Builder
	b.WriteString(`<li data-testid="item-cell">`)
	fmt.Fprintf(&b, `<a href="%s">`, c.href)
	if !c.noImg {
		fmt.Fprintf(&b, `<img src="%s" alt="">`, c.img)
	}
	if !c.noTitle {
		fmt.Fprintf(&b, `<h3>%s</h3>`, c.title)
	}
	if !c.noPrice {
		fmt.Fprintf(&b, `<div data-testid="item-price">%s</div>`, c.price)
	}
	b.WriteString(`</a></li>`)
	return b.String()
}

func resultsPage(cells ...cell) string {
	var b strings.Builder
	b.WriteString(`<html><head><title>search</title></head><body><ul id="item-grid">`)
	for _, c := range cells {
		b.WriteString(c.html())
	}
	b.WriteString(`</ul></body></html>`)
	return b.String()
}
