package views

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

type PageConfig struct {
	Title       string
	Description string
}

func Layout(config PageConfig, content ...g.Node) g.Node {
	if config.Title == "" {
		config.Title = "Saral AI - One Chat. Real Hiring Intelligence."
	}
	if config.Description == "" {
		config.Description = "An AI native sourcing and screening OS built for recruiters who care about signal, not volume."
	}

	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1.0")),
				TitleEl(g.Text(config.Title)),
				Meta(Name("description"), Content(config.Description)),
				Meta(g.Attr("property", "og:title"), Content(config.Title)),
				Meta(g.Attr("property", "og:description"), Content(config.Description)),
				Meta(g.Attr("property", "og:type"), Content("website")),
				Link(Rel("stylesheet"), Href("/static/styles.css")),
				Script(Src("https://code.iconify.design/1/1.0.7/iconify.min.js")),
			),
			Body(
				Class("min-h-screen bg-background dot-grid"),
				g.Group(content),
				Script(Src("/static/reveal.js"), Defer()),
				Script(Src("/static/access.js"), Defer()),
			),
		),
	})
}

// Landing is the whole page; the access dialog is rendered only while open
func Landing(dialog g.Node) g.Node {
	return Layout(PageConfig{},
		Topbar(),
		Main(
			Hero(),
			QuoteSection(),
			FeatureCards(),
			CTA(),
		),
		PageFooter(),
		dialog,
	)
}

func icon(name, classes string) g.Node {
	return Span(
		Class("iconify inline-block "+classes),
		g.Attr("data-icon", "lucide:"+name),
		g.Attr("aria-hidden", "true"),
	)
}

// getAccessButton opens the access dialog
func getAccessButton(label, classes string) g.Node {
	return Form(
		Method("post"),
		Action("/access/open"),
		Class("inline"),
		Button(
			Type("submit"),
			Class(classes),
			g.Attr("data-access-open", ""),
			g.Text(label),
		),
	)
}
