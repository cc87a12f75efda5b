package views

// Feature is one of the stacked cards under the quote
type Feature struct {
	Lead    string
	Muted   string
	Tail    string
	Body    string
	Image   string
	Alt     string
	Wide    bool
	Reverse bool
}

// Stat is a trust indicator under the call to action
type Stat struct {
	Value string
	Label string
}

const (
	productName = "Saral AI"
	quote       = "The AI native hiring OS designed around human decision making."
	socialProof = "200+ recruiters and founders are already inside"
)

var features = []Feature{
	{
		Lead:  "Intelligent hiring software is the ",
		Muted: "future",
		Body:  "Saral AI understands hiring intent, candidate signals, and decision outcomes, not just resumes.",
		Image: "/static/img/card-1-search-ui.svg",
		Alt:   "AI-powered candidate search interface with match scores",
		Wide:  true,
	},
	{
		Lead:  "It doesn't just use AI. It's built ",
		Muted: "around",
		Tail:  " it.",
		Body:  "Every layer is designed around reasoning, ranking, and recruiter judgment.",
		Image: "/static/img/card-2-flow-abstract.svg",
		Alt:   "Abstract flow visualization representing AI reasoning",
	},
	{
		Lead:  "Built for builders and ",
		Muted: "recruiters",
		Body:  "Fewer steps. Higher signal. Faster hiring decisions.",
		Image: "/static/img/card-3-nodes-icon.svg",
		Alt:   "Connected nodes representing system architecture",
	},
	{
		Lead:    "Power to ",
		Muted:   "hiring teams",
		Body:    "AI should reduce noise, not add more. Saral AI filters chaos into clarity.",
		Image:   "/static/img/card-4-dashboard.svg",
		Alt:     "Dashboard showing ranked candidate shortlist with signal indicators",
		Wide:    true,
		Reverse: true,
	},
}

var stats = []Stat{
	{Value: "10x", Label: "Faster Screening"},
	{Value: "90%", Label: "Less Manual Work"},
	{Value: "AI Native", Label: "Built for Recruiters"},
}

var avatars = []string{
	"https://images.unsplash.com/photo-1494790108377-be9c29b29330?w=100&h=100&fit=crop&crop=face",
	"https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=100&h=100&fit=crop&crop=face",
	"https://images.unsplash.com/photo-1573497019940-1c28c88b4f3e?w=100&h=100&fit=crop&crop=face",
}
