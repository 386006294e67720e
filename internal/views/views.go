// Package views builds the HTML fragments shared across pages: the
// classification navigation list, the classification <select>, the vehicle
// grid and the vehicle detail block. All builders are pure functions of store
// results; dynamic text is escaped before interpolation.
package views

import (
	"fmt"
	"html/template"
	"math"
	"strconv"
	"strings"

	"github.com/csemotors/inventory/internal/model"
)

// Nav builds the site navigation list: Home plus one link per classification.
func Nav(classifications []model.Classification) template.HTML {
	var b strings.Builder
	b.WriteString(`<ul class="nav-list">`)
	b.WriteString(`<li><a href="/" title="Home page">Home</a></li>`)
	for _, c := range classifications {
		name := template.HTMLEscapeString(c.Name)
		fmt.Fprintf(&b,
			`<li><a href="/inv/type/%d" title="See our inventory of %s vehicles">%s</a></li>`,
			c.ID, name, name)
	}
	b.WriteString(`</ul>`)
	return template.HTML(b.String())
}

// ClassificationList builds the classification <select>. The option matching
// selected is marked; no option is marked when selected is 0.
func ClassificationList(classifications []model.Classification, selected int64) template.HTML {
	var b strings.Builder
	b.WriteString(`<select name="classification_id" id="classificationList" required>`)
	b.WriteString(`<option value="">Choose a Classification</option>`)
	for _, c := range classifications {
		fmt.Fprintf(&b, `<option value="%d"`, c.ID)
		if selected != 0 && c.ID == selected {
			b.WriteString(` selected`)
		}
		fmt.Fprintf(&b, `>%s</option>`, template.HTMLEscapeString(c.Name))
	}
	b.WriteString(`</select>`)
	return template.HTML(b.String())
}

// ClassificationGrid builds the vehicle grid. An empty or nil vehicle list
// renders the empty-state notice, never an empty list.
func ClassificationGrid(vehicles []model.Vehicle) template.HTML {
	if len(vehicles) == 0 {
		return `<p class="notice">Sorry, no matching vehicles could be found.</p>`
	}

	var b strings.Builder
	b.WriteString(`<ul id="inv-display">`)
	for _, v := range vehicles {
		name := template.HTMLEscapeString(v.Make + " " + v.Model)
		b.WriteString(`<li>`)
		fmt.Fprintf(&b,
			`<a href="/inv/detail/%d" title="View %s details"><img src="%s" alt="Image of %s on CSE Motors"></a>`,
			v.ID, name, template.HTMLEscapeString(v.Thumbnail), name)
		b.WriteString(`<div class="namePrice">`)
		fmt.Fprintf(&b, `<h2><a href="/inv/detail/%d" title="View %s details">%s</a></h2>`, v.ID, name, name)
		fmt.Fprintf(&b,
			`<form method="POST" action="/wishlist/add"><input type="hidden" name="inv_id" value="%d"><button type="submit">Add to Wishlist</button></form>`,
			v.ID)
		fmt.Fprintf(&b, `<span>$%s</span>`, FormatPrice(v.Price))
		b.WriteString(`</div></li>`)
	}
	b.WriteString(`</ul>`)
	return template.HTML(b.String())
}

// DetailView builds the single-vehicle detail block.
func DetailView(v model.Vehicle) template.HTML {
	name := template.HTMLEscapeString(v.Make + " " + v.Model)
	var b strings.Builder
	b.WriteString(`<div class="vehicle-detail">`)
	fmt.Fprintf(&b, `<div class="vehicle-image"><img src="%s" alt="Image of %s"></div>`,
		template.HTMLEscapeString(v.Image), name)
	b.WriteString(`<div class="vehicle-info">`)
	fmt.Fprintf(&b, `<h2>%s</h2>`, name)
	fmt.Fprintf(&b, `<p>Price: $%s</p>`, FormatPrice(v.Price))
	fmt.Fprintf(&b, `<p>Mileage: %s miles</p>`, FormatInt(v.Miles))
	fmt.Fprintf(&b, `<p>Year: %d</p>`, v.Year)
	fmt.Fprintf(&b, `<p>Color: %s</p>`, template.HTMLEscapeString(v.Color))
	fmt.Fprintf(&b, `<p><span class="vehicle-desc">Description</span> %s</p>`,
		template.HTMLEscapeString(v.Description))
	b.WriteString(`</div></div>`)
	return template.HTML(b.String())
}

// FormatInt formats an integer with thousands separators.
func FormatInt(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// FormatPrice formats a price with thousands separators, dropping any
// fractional cents for whole amounts. Rounds to the nearest cent so values
// without an exact binary representation do not display a cent low.
func FormatPrice(p float64) string {
	total := int64(math.Round(p * 100))
	whole := total / 100
	cents := total % 100
	if cents < 0 {
		cents = -cents
	}
	if cents == 0 {
		return FormatInt(whole)
	}
	return fmt.Sprintf("%s.%02d", FormatInt(whole), cents)
}
