package input

import (
	"fmt"

	"github.com/simonhull/firebird-suite/plume/internal/content"
)

// MaxProjects caps the number of projects the wizard asks for
const MaxProjects = 10

// Wizard collects a profile interactively, in the same order as the
// profile file: identity, contact, social links, skills, projects.
// The result is not validated; callers run content.Validate.
func Wizard(p *Prompter) (*content.Record, error) {
	var (
		rec content.Record
		err error
	)

	p.Section("About you")
	if rec.Name, err = p.Required("Full name"); err != nil {
		return nil, err
	}
	if rec.Title, err = p.Required("Professional title"); err != nil {
		return nil, err
	}
	if rec.About, err = p.Required("Short bio"); err != nil {
		return nil, err
	}

	p.Section("Contact")
	if rec.Email, err = p.Required("Email"); err != nil {
		return nil, err
	}
	rec.Phone = p.Prompt("Phone", "")
	rec.Location = p.Prompt("Location", "")

	p.Section("Social links")
	rec.GitHub = p.Prompt("GitHub URL", "")
	rec.LinkedIn = p.Prompt("LinkedIn URL", "")
	rec.Twitter = p.Prompt("Twitter URL", "")

	p.Section("Skills")
	if rec.Skills, err = p.Required("Skills (comma-separated)"); err != nil {
		return nil, err
	}

	p.Section("Projects")
	for i := 0; i < MaxProjects; i++ {
		question := "Add a project?"
		if i > 0 {
			question = "Add another project?"
		}
		if !p.Confirm(question, i == 0) {
			break
		}

		var proj content.ProjectEntry
		label := fmt.Sprintf("Project %d", i+1)
		if proj.Title, err = p.Required(label + " title"); err != nil {
			return nil, err
		}
		proj.Description = p.Prompt(label+" description", "")
		proj.Tech = p.Prompt(label+" technologies (comma-separated)", "")
		proj.Link = p.Prompt(label+" live URL", "")
		proj.GitHub = p.Prompt(label+" repository URL", "")
		rec.Projects = append(rec.Projects, proj)
	}

	return &rec, nil
}
