package views

import (
	"strconv"
	"time"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func Topbar() g.Node {
	return Header(
		Class("fixed top-0 left-0 right-0 z-50 bg-background/80 backdrop-blur-md border-b border-border/30"),
		Div(
			Class("container mx-auto px-6 h-16 flex items-center justify-between"),
			Span(Class("text-xl font-semibold tracking-tight text-foreground"), g.Text(productName)),
			getAccessButton("Get Access", "rounded-full px-6 h-10 bg-primary text-primary-foreground hover:bg-primary/90 font-medium"),
		),
	)
}

func Hero() g.Node {
	return Section(
		Class("relative min-h-screen pt-24 lg:pt-32 pb-16 overflow-hidden"),
		ID("hero"),
		Div(
			Class("container mx-auto px-6 grid lg:grid-cols-2 gap-12 lg:gap-8 items-center"),
			Div(
				Class("space-y-8 animate-fade-in-up"),
				H1(
					Class("text-4xl sm:text-5xl lg:text-6xl font-bold tracking-tight leading-[1.1]"),
					g.Text("One Chat. "),
					Span(Class("gradient-text"), g.Text("Real")),
					g.Text(" Hiring Intelligence."),
				),
				Div(
					Class("space-y-4"),
					P(Class("text-xl lg:text-2xl text-foreground/90 font-medium"),
						g.Text("Write intent. Saral finds, scores, and ranks candidates in real time.")),
					P(Class("text-base lg:text-lg text-muted-foreground max-w-xl"),
						g.Text("An AI native sourcing and screening OS built for recruiters who care about signal, not volume.")),
				),
				Div(
					Class("flex flex-wrap items-center gap-4 pt-2"),
					getAccessButton("Get Access", "rounded-full px-8 h-12 bg-primary text-primary-foreground font-medium shadow-lg shadow-primary/10"),
					A(Href("#quote-section"), Class("text-muted-foreground hover:text-foreground font-medium underline-offset-4 hover:underline"),
						g.Text("See how it works")),
				),
			),
			Div(Class("relative lg:pl-12 animate-fade-in-up"), geometricIllustration()),
		),
	)
}

// geometricIllustration is the decorative grid of nodes beside the hero copy
func geometricIllustration() g.Node {
	nodes := make([]g.Node, 0, 9)
	for i := 0; i < 9; i++ {
		size := "w-3 h-3"
		if i == 4 {
			size = "w-6 h-6 bg-primary"
		}
		nodes = append(nodes, Div(Class("rounded-full border border-primary/40 animate-pulse "+size),
			g.Attr("style", "animation-delay: "+strconv.Itoa(i*150)+"ms")))
	}
	return Div(
		Class("aspect-square max-w-md mx-auto grid grid-cols-3 place-items-center gap-10"),
		g.Attr("aria-hidden", "true"),
		g.Group(nodes),
	)
}

func QuoteSection() g.Node {
	return Section(
		ID("quote-section"),
		Class("py-24 lg:py-32"),
		Div(
			Class("container mx-auto px-6 max-w-4xl text-center animate-fade-in-up"),
			g.El("blockquote",
				Class("text-2xl sm:text-3xl lg:text-4xl font-semibold tracking-tight leading-relaxed text-foreground"),
				g.Text(`"`+quote+`"`),
			),
		),
	)
}

// FeatureCards fade in as they scroll into view; reveal.js toggles the
// data-visible attribute.
func FeatureCards() g.Node {
	cards := make([]g.Node, 0, len(features))
	for i, f := range features {
		cards = append(cards, featureCard(i, f))
	}
	return Section(
		ID("features"),
		Class("py-16 lg:py-24"),
		Div(Class("container mx-auto px-6 grid md:grid-cols-2 gap-6"), g.Group(cards)),
	)
}

func featureCard(index int, f Feature) g.Node {
	span := ""
	if f.Wide {
		span = " md:col-span-2"
	}
	direction := "md:flex-row"
	if f.Reverse {
		direction = "md:flex-row-reverse"
	}

	return Div(
		Class("reveal-card rounded-3xl border border-border bg-card overflow-hidden"+span),
		g.Attr("data-card-index", strconv.Itoa(index)),
		g.Attr("style", "transition-delay: "+strconv.Itoa(index*100)+"ms"),
		Div(
			Class("flex flex-col gap-6 p-8 "+direction),
			Div(
				Class("flex-1 space-y-3"),
				H3(Class("text-2xl lg:text-3xl font-semibold tracking-tight"),
					g.Text(f.Lead),
					Span(Class("text-muted-foreground"), g.Text(f.Muted)),
					g.If(f.Tail != "", g.Text(f.Tail)),
				),
				P(Class("text-muted-foreground text-base lg:text-lg leading-relaxed"), g.Text(f.Body)),
			),
			Div(Class("flex-1"), Img(Src(f.Image), Alt(f.Alt), Class("w-full h-auto rounded-2xl"), g.Attr("loading", "lazy"))),
		),
	)
}

func CTA() g.Node {
	return Section(
		Class("py-24 lg:py-32 relative overflow-hidden"),
		Div(
			Class("container mx-auto px-6 max-w-4xl relative"),
			Div(
				Class("flex justify-center gap-8 mb-12"),
				Div(Class("w-16 h-16 rounded-2xl bg-secondary flex items-center justify-center border border-border"), icon("users", "w-8 h-8 text-primary")),
				Div(Class("w-20 h-20 rounded-2xl bg-primary/10 flex items-center justify-center border border-primary/30 -mt-2"), icon("target", "w-10 h-10 text-primary")),
				Div(Class("w-16 h-16 rounded-2xl bg-secondary flex items-center justify-center border border-border"), icon("sparkles", "w-8 h-8 text-primary")),
			),
			Div(
				Class("text-center space-y-6"),
				H2(Class("text-3xl sm:text-4xl lg:text-5xl font-bold tracking-tight"),
					g.Text("Hire smarter. "),
					Span(Class("gradient-text"), g.Text("Not harder.")),
				),
				P(Class("text-lg lg:text-xl text-muted-foreground max-w-2xl mx-auto"),
					g.Text("Join recruiters who are already using AI to find the right candidates faster. Less noise, more signal.")),
				Div(Class("pt-4"),
					getAccessButton("Get Access Now", "rounded-full px-10 h-14 bg-primary text-primary-foreground font-medium text-lg shadow-lg shadow-primary/20")),
			),
			Div(
				Class("flex flex-wrap justify-center gap-8 lg:gap-16 mt-16 pt-12 border-t border-border"),
				g.Group(g.Map(stats, func(s Stat) g.Node {
					return Div(Class("text-center"),
						Div(Class("text-2xl lg:text-3xl font-bold text-foreground"), g.Text(s.Value)),
						Div(Class("text-sm text-muted-foreground mt-1"), g.Text(s.Label)),
					)
				})),
			),
		),
	)
}

func PageFooter() g.Node {
	return Footer(
		Class("border-t border-border/30 py-8"),
		P(Class("text-xs text-muted-foreground/60 text-center"), copyright()),
	)
}

func copyright() g.Node {
	return g.Textf("© %d %s. All rights reserved.", time.Now().Year(), productName)
}
