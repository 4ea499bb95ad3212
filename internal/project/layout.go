package project

import (
	"fmt"
	"path"
	"strings"
)

// Fixed project layout. Paths are forward-slash separated and relative to
// the project root.
const (
	ManifestPath = "package.json"
	ReadmePath   = "README.md"

	SourcesDir    = "src"
	ComponentsDir = SourcesDir + "/components"
	UtilitiesDir  = SourcesDir + "/utils"

	StylesheetPath = SourcesDir + "/index.css"
	EntryPointPath = SourcesDir + "/main.jsx"
	PageShellPath  = SourcesDir + "/App.jsx"

	HeroPath            = ComponentsDir + "/Hero.jsx"
	AboutPath           = ComponentsDir + "/About.jsx"
	ProjectsPath        = ComponentsDir + "/Projects.jsx"
	SkillsPath          = ComponentsDir + "/Skills.jsx"
	ContactPath         = ComponentsDir + "/Contact.jsx"
	NavigationPath      = ComponentsDir + "/Navbar.jsx"
	CursorPath          = ComponentsDir + "/CustomCursor.jsx"
	ScrollIndicatorPath = ComponentsDir + "/ScrollProgress.jsx"
	BackgroundPath      = ComponentsDir + "/ThreeBackground.jsx"
)

// Directories lists every directory of the layout, parents first. The
// utilities directory is reserved and stays empty.
func Directories() []string {
	return []string{SourcesDir, ComponentsDir, UtilitiesDir}
}

// CleanPath validates a project-relative path and returns it unchanged.
// Paths must be relative, use forward slashes, contain no empty, "." or ".."
// segments and must not end in a slash.
func CleanPath(p string) (string, error) {
	if p == "" || p == "." {
		return "", fmt.Errorf("path %q does not name a file", p)
	}
	if strings.Contains(p, `\`) {
		return "", fmt.Errorf("path %q must use forward slashes", p)
	}
	if strings.HasPrefix(p, "/") {
		return "", fmt.Errorf("path %q must be relative to the project root", p)
	}
	if path.Clean(p) != p {
		return "", fmt.Errorf("path %q is not canonical (expected %q)", p, path.Clean(p))
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return "", fmt.Errorf("path %q escapes the project root", p)
		}
	}
	return p, nil
}
