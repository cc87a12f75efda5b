package views

import (
	"slices"
	"strconv"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/saral-ai/landing/pkg/form"
	"github.com/saral-ai/landing/pkg/modal"
)

// AccessModal renders the dialog for the current session state, or nothing
// while it is closed
func AccessModal(st modal.State, v *form.Variant) g.Node {
	if !st.Open {
		return nil
	}

	var body g.Node
	if st.Submitted {
		body = Confirmation(st)
	} else {
		body = stepForm(st, v)
	}

	return Div(
		ID("access-modal"),
		Class("fixed inset-0 z-[60] flex items-center justify-center"),
		g.Attr("role", "dialog"),
		g.Attr("aria-modal", "true"),
		// clicking the overlay dismisses the dialog like the close control does
		Form(
			Method("post"), Action("/access/close"),
			Button(Type("submit"), Class("absolute inset-0 bg-black/60 backdrop-blur-sm cursor-default"),
				g.Attr("aria-label", "Close"), g.Attr("data-access-close", "")),
		),
		Div(
			Class("relative w-full sm:max-w-md bg-card rounded-2xl shadow-2xl overflow-hidden animate-fade-in"),
			Form(
				Method("post"), Action("/access/close"), Class("absolute top-4 right-4"),
				Button(Type("submit"), Class("text-muted-foreground hover:text-foreground"),
					g.Attr("aria-label", "Close"), g.Attr("data-access-close", ""), icon("x", "w-4 h-4")),
			),
			body,
		),
	)
}

func stepForm(st modal.State, v *form.Variant) g.Node {
	step := v.Steps[st.Step]

	return Div(
		Class("p-6 sm:p-8"),
		Div(
			Class("flex items-center justify-between mb-5"),
			Span(Class("text-lg font-bold text-foreground"), g.Text(productName)),
			Span(Class("inline-flex items-center px-3 py-1 rounded-full text-xs font-medium bg-secondary text-muted-foreground"),
				g.Text("Early Access")),
		),
		g.If(len(v.Steps) > 1, progress(st, v)),
		Form(
			Method("post"),
			Action("/access/step"),
			ID("access-form"),
			g.Attr("data-step", strconv.Itoa(st.Step)),
			Div(
				Class("min-h-[160px] space-y-4 animate-fade-in"),
				Div(
					H2(Class("text-xl font-bold text-foreground mb-1"), g.Text(step.Title)),
					P(Class("text-muted-foreground text-sm"), g.Text(step.Subtitle)),
				),
				g.Group(g.Map(step.Fields, func(name string) g.Node {
					f, _ := v.Field(name)
					return input(f, st.Record[name], slices.Contains(step.Required, name))
				})),
				g.If(st.LastStep && len(v.Steps) > 1, emailHint(st, v)),
			),
			actions(st, v),
		),
		Div(
			Class("flex items-center gap-3 mt-6 pt-5 border-t border-border/30"),
			Div(Class("flex -space-x-2"),
				g.Group(g.Map(avatars, func(src string) g.Node {
					return Img(Src(src), Alt(""), Class("w-7 h-7 rounded-full border-2 border-card object-cover"))
				})),
			),
			Span(Class("text-xs text-muted-foreground"), g.Text(socialProof)),
		),
	)
}

func progress(st modal.State, v *form.Variant) g.Node {
	pills := make([]g.Node, 0, 2*len(v.Steps))
	for i, s := range v.Steps {
		tone := "bg-secondary/50 text-muted-foreground/50"
		switch {
		case i == st.Step:
			tone = "bg-primary/15 text-primary"
		case i < st.Step:
			tone = "bg-primary/10 text-primary/70"
		}
		pills = append(pills, Div(
			Class("flex items-center gap-1.5 px-2.5 py-1 rounded-full text-xs font-medium transition-all duration-300 "+tone),
			g.If(i == st.Step, g.Attr("aria-current", "step")),
			icon(s.Icon, "w-3 h-3"),
			g.Text(s.Label),
		))
		if i < len(v.Steps)-1 {
			line := "bg-border/40"
			if i < st.Step {
				line = "bg-primary/40"
			}
			pills = append(pills, Div(Class("w-4 h-px transition-colors duration-300 "+line)))
		}
	}
	return Div(Class("flex items-center gap-2 mb-6"), g.Group(pills))
}

func input(f form.Field, value string, required bool) g.Node {
	classes := "w-full h-11 bg-secondary/50 border border-border/50 rounded-xl px-3 text-sm placeholder:text-muted-foreground/60"

	if f.Kind == form.KindSelect {
		opts := []g.Node{Option(Value(""), g.Text(f.Placeholder))}
		for _, o := range f.Options {
			opts = append(opts, Option(Value(o), g.If(o == value, Selected()), g.Text(o)))
		}
		return Select(Name(f.Name), Class(classes+" appearance-none"), g.Attr("data-field", ""), g.Group(opts))
	}

	kind := f.Kind
	if kind == "" {
		kind = form.KindText
	}
	return Input(
		Type(kind),
		Name(f.Name),
		Value(value),
		Placeholder(f.Placeholder),
		Class(classes),
		g.Attr("data-field", ""),
		g.If(required, Required()),
		g.If(required, g.Attr("data-required", "")),
	)
}

func emailHint(st modal.State, v *form.Variant) g.Node {
	email := st.Record[v.FieldFor(form.LeadEmail)]
	if email == "" {
		email = "your email"
	}
	return P(
		Class("text-xs text-muted-foreground/50 flex items-center gap-1.5"),
		icon("mail", "w-3 h-3"),
		g.Textf("We'll also reach out via %s", email),
	)
}

// actions renders Back and Continue. Continue is disabled while the step's
// required fields are blank; access.js re-enables it as the visitor types.
func actions(st modal.State, v *form.Variant) g.Node {
	label := g.Group([]g.Node{g.Text("Continue "), icon("arrow-right", "w-4 h-4 ml-1")})
	if st.LastStep {
		label = g.Group([]g.Node{g.Text(v.SubmitLabel)})
	}

	return Div(
		Class("flex items-center gap-3 mt-6"),
		g.If(st.CanRetreat, Button(
			Type("submit"), Name("action"), Value("retreat"),
			g.Attr("formnovalidate", ""),
			Class("h-11 px-4 rounded-xl text-muted-foreground hover:text-foreground"),
			icon("arrow-left", "w-4 h-4 mr-1"), g.Text("Back"),
		)),
		Button(
			Type("submit"), Name("action"), Value("advance"),
			ID("access-continue"),
			Class("flex-1 h-11 bg-foreground text-background font-medium rounded-xl disabled:opacity-40"),
			g.If(!st.CanAdvance, Disabled()),
			label,
		),
	)
}

// Confirmation replaces the form once the lead is submitted
func Confirmation(st modal.State) g.Node {
	return Div(
		Class("p-6 sm:p-8 animate-fade-in"),
		Div(Class("mb-8"), Span(Class("text-lg font-bold text-foreground"), g.Text(productName))),
		Div(Class("w-16 h-16 mx-auto mb-6 rounded-full bg-primary/10 flex items-center justify-center"),
			icon("check", "w-8 h-8 text-primary")),
		Div(
			Class("text-center space-y-3"),
			H2(Class("text-2xl font-bold text-foreground"),
				g.Textf("Thanks, %s, for signing up as an early user of %s.", st.FirstName, productName)),
			P(Class("text-muted-foreground text-sm sm:text-base leading-relaxed"),
				g.Text("We'll reach out to you directly with onboarding details soon.")),
		),
		Div(Class("mt-12 pt-4 border-t border-border/30"),
			P(Class("text-xs text-muted-foreground/60 text-center"), copyright())),
	)
}
