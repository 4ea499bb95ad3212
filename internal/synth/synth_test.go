package synth_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/firebird-suite/plume/internal/content"
	"github.com/simonhull/firebird-suite/plume/internal/project"
	"github.com/simonhull/firebird-suite/plume/internal/synth"
	"github.com/simonhull/firebird-suite/plume/internal/templates"
)

func adaLovelace() *content.Record {
	return &content.Record{
		Name:   "Ada Lovelace",
		Title:  "Engineer",
		Email:  "a@example.com",
		About:  "Builder.",
		Skills: "C++, Math",
	}
}

func synthesize(t *testing.T, rec *content.Record) *project.FileSet {
	t.Helper()
	files, err := synth.New(nil).Synthesize(content.Normalize(rec, content.NewSource(42)))
	require.NoError(t, err)
	return files
}

func file(t *testing.T, files *project.FileSet, path string) string {
	t.Helper()
	data, ok := files.Get(path)
	require.True(t, ok, "missing %s", path)
	return string(data)
}

func TestSynthesize_EmitsFullLayout(t *testing.T) {
	files := synthesize(t, adaLovelace())

	assert.ElementsMatch(t, []string{
		"package.json",
		"README.md",
		"src/App.jsx",
		"src/index.css",
		"src/main.jsx",
		"src/components/Hero.jsx",
		"src/components/About.jsx",
		"src/components/Projects.jsx",
		"src/components/Skills.jsx",
		"src/components/Contact.jsx",
		"src/components/Navbar.jsx",
		"src/components/CustomCursor.jsx",
		"src/components/ScrollProgress.jsx",
		"src/components/ThreeBackground.jsx",
	}, files.Paths())
}

func TestSynthesize_StaticFilesCopiedVerbatim(t *testing.T) {
	files := synthesize(t, adaLovelace())

	for _, e := range templates.Default().Entries() {
		if e.Kind != templates.Static {
			continue
		}
		assert.Equal(t, e.Body, file(t, files, e.Path), e.Path)
	}
}

func TestSynthesize_NoPlaceholdersLeft(t *testing.T) {
	files := synthesize(t, adaLovelace())

	for _, f := range files.Files() {
		assert.NotContains(t, string(f.Content), "[[", f.Path)
		assert.NotContains(t, string(f.Content), "<no value>", f.Path)
	}
}

func TestSynthesize_AdaLovelace(t *testing.T) {
	files := synthesize(t, adaLovelace())

	manifest := file(t, files, project.ManifestPath)
	assert.Contains(t, manifest, `"name": "ada-lovelace-portfolio",`)

	app := file(t, files, project.PageShellPath)
	assert.Contains(t, app, `{"Welcome to Ada Lovelace's Portfolio"}`)

	hero := file(t, files, project.HeroPath)
	assert.Contains(t, hero, `    { text: "Ada", className: "text-purple-500" },
    { text: "Lovelace", className: "text-purple-500" },
  ];`)
	assert.Contains(t, hero, `{"Engineer"}`)

	projects := file(t, files, project.ProjectsPath)
	assert.Contains(t, projects, "const projects = [];")
	assert.Contains(t, projects, `<p className="text-center text-gray-400">No projects added yet.</p>`)
	assert.NotContains(t, projects, `<AnimatePresence mode="wait">`)
	assert.NotContains(t, projects, "onClick={prevProject}")

	skills := file(t, files, project.SkillsPath)
	assert.Equal(t, 2, strings.Count(skills, `"category":`))
	assert.Contains(t, skills, `"name": "C++"`)
	assert.Contains(t, skills, `"category": "Backend"`)
	assert.Equal(t, 2, strings.Count(skills, "text-purple-300 rounded-full text-sm"))

	contact := file(t, files, project.ContactPath)
	assert.Contains(t, contact, `{ icon: <Mail size={20} />, text: "a@example.com" },`)
	assert.NotContains(t, contact, "<Phone size={20} />")
	assert.NotContains(t, contact, "<MapPin size={20} />")
	assert.Contains(t, contact, "  const socialLinks = [\n  ].filter(Boolean);")

	readme := file(t, files, project.ReadmePath)
	assert.Contains(t, readme, "# Ada Lovelace's Portfolio")
	assert.Contains(t, readme, "- Email: a@example.com\n\n## ")
	assert.NotContains(t, readme, "GitHub:")
}

func TestSynthesize_ThreeProjectsOneEmpty(t *testing.T) {
	rec := adaLovelace()
	rec.Projects = []content.ProjectEntry{
		{Title: "Engine", Description: "Analytical", Tech: "Brass, Steam", Link: "https://example.com/engine"},
		{Title: ""},
		{Title: "Notes", GitHub: "https://github.com/ada/notes"},
	}

	projects := file(t, synthesize(t, rec), project.ProjectsPath)

	assert.Equal(t, 2, strings.Count(projects, `"title":`))
	assert.Contains(t, projects, `"image": "https://source.unsplash.com/800x600/?coding,technology&sig=0"`)
	assert.Contains(t, projects, `"image": "https://source.unsplash.com/800x600/?coding,technology&sig=1"`)
	assert.NotContains(t, projects, "sig=2")
	assert.Contains(t, projects, `"color": "from-blue-500 to-cyan-500"`)
	assert.Contains(t, projects, `<AnimatePresence mode="wait">`)
	assert.Contains(t, projects, "onClick={prevProject}")
	assert.Contains(t, projects, "onClick={nextProject}")
	assert.NotContains(t, projects, "No projects added yet.")

	// Absent links are left out of the literal rather than emitted empty
	assert.Equal(t, 1, strings.Count(projects, `"link":`))
	assert.Equal(t, 1, strings.Count(projects, `"github":`))
	assert.NotContains(t, projects, `"link": ""`)
}

func TestSynthesize_SingleProjectHasNoControls(t *testing.T) {
	rec := adaLovelace()
	rec.Projects = []content.ProjectEntry{{Title: "Engine"}}

	projects := file(t, synthesize(t, rec), project.ProjectsPath)

	assert.Contains(t, projects, `<AnimatePresence mode="wait">`)
	assert.NotContains(t, projects, "onClick={prevProject}")
	assert.NotContains(t, projects, "<ChevronLeft size={24} />")
}

func TestSynthesize_SkillMeterAndTags(t *testing.T) {
	tests := []struct {
		name      string
		skills    string
		wantMeter int
		wantTags  int
	}{
		{name: "one skill", skills: "Go", wantMeter: 1, wantTags: 1},
		{name: "exactly six", skills: "a,b,c,d,e,f", wantMeter: 6, wantTags: 6},
		{name: "more than six", skills: "a, b, c, d, e, f, g, h, i", wantMeter: 6, wantTags: 9},
		{name: "empty tokens dropped", skills: "a,,b, ,c", wantMeter: 3, wantTags: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := adaLovelace()
			rec.Skills = tt.skills

			skills := file(t, synthesize(t, rec), project.SkillsPath)
			assert.Equal(t, tt.wantMeter, strings.Count(skills, `"category":`))
			assert.Equal(t, tt.wantTags, strings.Count(skills, "text-purple-300 rounded-full text-sm"))
		})
	}
}

func TestSynthesize_OptionalContactFields(t *testing.T) {
	rec := adaLovelace()
	rec.Phone = "555-0100"
	rec.Location = "London"
	rec.GitHub = "https://github.com/ada"
	rec.Twitter = "https://twitter.com/ada"

	files := synthesize(t, rec)

	contact := file(t, files, project.ContactPath)
	assert.Contains(t, contact, `{ icon: <Phone size={20} />, text: "555-0100" },`)
	assert.Contains(t, contact, `{ icon: <MapPin size={20} />, text: "London" },`)
	assert.Contains(t, contact, `{ icon: <Github size={24} />, href: "https://github.com/ada", label: "GitHub" },
    { icon: <Twitter size={24} />, href: "https://twitter.com/ada", label: "Twitter" },
  ].filter(Boolean);`)
	assert.NotContains(t, contact, "<Linkedin size={24} />")

	readme := file(t, files, project.ReadmePath)
	assert.Contains(t, readme, "- Email: a@example.com\n- GitHub: https://github.com/ada\n- Twitter: https://twitter.com/ada\n")
	assert.NotContains(t, readme, "LinkedIn:")
}

func TestSynthesize_BlankOptionalsNeverRendered(t *testing.T) {
	rec := adaLovelace()
	rec.Phone = "   "
	rec.Location = ""
	rec.LinkedIn = " "

	files := synthesize(t, rec)

	contact := file(t, files, project.ContactPath)
	assert.NotContains(t, contact, "<Phone size={20} />")
	assert.NotContains(t, contact, "<MapPin size={20} />")
	assert.NotContains(t, contact, "<Linkedin size={24} />")
	assert.NotContains(t, contact, `text: ""`)
	assert.NotContains(t, contact, `href: ""`)
}

func TestSynthesize_FreeTextIsQuoted(t *testing.T) {
	rec := adaLovelace()
	rec.Name = `Ada "Countess" Lovelace`
	rec.Title = "Math </p> & {machines}"
	rec.About = "Line one.\nI wrote `notes` with ${vars}, {braces} and \"quotes\"."
	rec.Email = `ada@example.com`

	files := synthesize(t, rec)

	about := file(t, files, project.AboutPath)
	assert.Contains(t, about, `{"Line one.\nI wrote `+"`notes`"+` with ${vars}, {braces} and \"quotes\"."}`)

	hero := file(t, files, project.HeroPath)
	assert.Contains(t, hero, `{ text: "\"Countess\"", className: "text-purple-500" },`)
	assert.Contains(t, hero, `{"Math </p> & {machines}"}`)

	manifest := file(t, files, project.ManifestPath)
	assert.Contains(t, manifest, `"name": "ada-\"countess\"-lovelace-portfolio",`)

	contact := file(t, files, project.ContactPath)
	assert.Contains(t, contact, "`mailto:${\"ada@example.com\"}?subject=")
}

func TestSynthesize_DeterministicForSeed(t *testing.T) {
	rec := adaLovelace()
	rec.Skills = "Go, Rust, SQL, React, Docker, Bash, Lua"

	s := synth.New(nil)
	first, err := s.Synthesize(content.Normalize(rec, content.NewSource(9)))
	require.NoError(t, err)
	second, err := s.Synthesize(content.Normalize(rec, content.NewSource(9)))
	require.NoError(t, err)

	if diff := cmp.Diff(first.Files(), second.Files()); diff != "" {
		t.Errorf("synthesis is not deterministic (-first +second):\n%s", diff)
	}
}

func TestSynthesize_UsesOverrides(t *testing.T) {
	lib, err := templates.Default().Override(fstest.MapFS{
		"README.md.tmpl": {Data: []byte("# [[ .Name ]] ([[ .Slug ]])\n")},
	})
	require.NoError(t, err)

	files, err := synth.New(lib).Synthesize(content.Normalize(adaLovelace(), content.NewSource(1)))
	require.NoError(t, err)

	assert.Equal(t, "# Ada Lovelace (ada-lovelace)\n", file(t, files, project.ReadmePath))
}

func TestSynthesize_BrokenOverride(t *testing.T) {
	lib, err := templates.Default().Override(fstest.MapFS{
		"src/App.jsx.tmpl": {Data: []byte("[[ .Nope ]]")},
	})
	require.NoError(t, err)

	_, err = synth.New(lib).Synthesize(content.Normalize(adaLovelace(), content.NewSource(1)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to synthesize src/App.jsx")
}

func TestSynthesize_NilContent(t *testing.T) {
	_, err := synth.New(nil).Synthesize(nil)
	assert.Error(t, err)
}
