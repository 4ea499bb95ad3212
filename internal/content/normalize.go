package content

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
)

// MeterLimit is the number of skills shown with a proficiency meter
const MeterLimit = 6

// Proficiency levels fall in [MinLevel, MaxLevel).
const (
	MinLevel = 75.0
	MaxLevel = 95.0
)

// Categories are assigned to meter skills round-robin by position
var Categories = [MeterLimit]string{"Frontend", "Backend", "Database", "Tools", "Language", "Framework"}

// projectColors are the gradient classes cycled across projects
var projectColors = [...]string{
	"from-purple-500 to-pink-500",
	"from-blue-500 to-cyan-500",
	"from-green-500 to-emerald-500",
}

const projectImageURL = "https://source.unsplash.com/800x600/?coding,technology&sig=%d"

// ProficiencySource supplies the random numbers behind skill levels.
// Float64 must return values in [0, 1). *rand.Rand satisfies it.
type ProficiencySource interface {
	Float64() float64
}

// NewSource returns a deterministic source for the given seed
func NewSource(seed uint64) ProficiencySource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RandomSource returns a freshly seeded source
func RandomSource() ProficiencySource {
	return NewSource(rand.Uint64())
}

// Normalized is a Record ready for template substitution
type Normalized struct {
	Name     string
	Title    string
	Email    string
	About    string
	Phone    Optional[string]
	Location Optional[string]

	// NameWords is the name split on whitespace
	NameWords []string
	// Slug is the lower-cased, hyphenated name
	Slug string

	Projects []Project
	Meter    []SkillMeter
	Tags     []string
	Socials  []SocialLink
}

// Project is a project entry that survived filtering
type Project struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Tech        []string         `json:"tech"`
	Link        Optional[string] `json:"link,omitzero"`
	GitHub      Optional[string] `json:"github,omitzero"`
	Image       string           `json:"image"`
	Color       string           `json:"color"`
}

// SkillMeter is a skill shown with a proficiency bar
type SkillMeter struct {
	Name     string  `json:"name"`
	Level    float64 `json:"level"`
	Category string  `json:"category"`
}

// SocialLink is a present social profile
type SocialLink struct {
	Network string // github, linkedin or twitter
	Label   string // display label, e.g. "GitHub"
	Icon    string // lucide-react icon component
	URL     string
}

// HasProjects reports whether the project gallery is rendered
func (n *Normalized) HasProjects() bool {
	return len(n.Projects) > 0
}

// ShowProjectControls reports whether prev/next controls are rendered
func (n *Normalized) ShowProjectControls() bool {
	return len(n.Projects) > 1
}

// Social returns the link for a network, if present
func (n *Normalized) Social(network string) Optional[string] {
	for _, s := range n.Socials {
		if s.Network == network {
			return Present(s.URL)
		}
	}
	return Absent[string]()
}

// Normalize converts a record into substitution-ready content. It never
// fails: blank optional fields simply become Absent. src must not be shared
// with concurrent calls.
func Normalize(rec *Record, src ProficiencySource) *Normalized {
	n := &Normalized{
		Name:      rec.Name,
		Title:     rec.Title,
		Email:     rec.Email,
		About:     rec.About,
		Phone:     NonEmpty(rec.Phone),
		Location:  NonEmpty(rec.Location),
		NameWords: strings.Fields(rec.Name),
		Slug:      Slugify(rec.Name),
	}
	if n.NameWords == nil {
		n.NameWords = []string{}
	}

	n.Projects = normalizeProjects(rec.Projects)
	n.Tags = SplitList(rec.Skills)
	n.Meter = meterSkills(n.Tags, src)
	n.Socials = socialLinks(rec)

	return n
}

// SplitList splits a comma-separated string into trimmed, non-empty tokens.
// The result is never nil.
func SplitList(s string) []string {
	tokens := make([]string, 0)
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			tokens = append(tokens, part)
		}
	}
	return tokens
}

// ProjectImage returns the placeholder image for the project at index i
func ProjectImage(i int) string {
	return fmt.Sprintf(projectImageURL, i)
}

func normalizeProjects(entries []ProjectEntry) []Project {
	projects := make([]Project, 0, len(entries))
	for _, e := range entries {
		title := strings.TrimSpace(e.Title)
		if title == "" {
			continue
		}
		i := len(projects)
		projects = append(projects, Project{
			Title:       title,
			Description: strings.TrimSpace(e.Description),
			Tech:        SplitList(e.Tech),
			Link:        NonEmpty(e.Link),
			GitHub:      NonEmpty(e.GitHub),
			Image:       ProjectImage(i),
			Color:       projectColors[i%len(projectColors)],
		})
	}
	return projects
}

func meterSkills(tags []string, src ProficiencySource) []SkillMeter {
	count := min(len(tags), MeterLimit)
	meter := make([]SkillMeter, 0, count)
	for i, name := range tags[:count] {
		meter = append(meter, SkillMeter{
			Name:     name,
			Level:    proficiency(src),
			Category: Categories[i%len(Categories)],
		})
	}
	return meter
}

// proficiency maps [0,1) onto [MinLevel, MaxLevel). Rounding near the top
// of the range could otherwise produce MaxLevel itself.
func proficiency(src ProficiencySource) float64 {
	level := MinLevel + src.Float64()*(MaxLevel-MinLevel)
	if level >= MaxLevel {
		level = math.Nextafter(MaxLevel, MinLevel)
	}
	if level < MinLevel {
		level = MinLevel
	}
	return level
}

func socialLinks(rec *Record) []SocialLink {
	candidates := []SocialLink{
		{Network: "github", Label: "GitHub", Icon: "Github", URL: rec.GitHub},
		{Network: "linkedin", Label: "LinkedIn", Icon: "Linkedin", URL: rec.LinkedIn},
		{Network: "twitter", Label: "Twitter", Icon: "Twitter", URL: rec.Twitter},
	}

	links := make([]SocialLink, 0, len(candidates))
	for _, c := range candidates {
		if url, ok := NonEmpty(c.URL).Get(); ok {
			c.URL = url
			links = append(links, c)
		}
	}
	return links
}
