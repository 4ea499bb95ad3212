// Package project describes the shape of a generated portfolio project.
//
// # Overview
//
// Every generated project has the same fixed layout:
//
//	package.json
//	README.md
//	src/
//	  index.css
//	  main.jsx
//	  App.jsx
//	  components/
//	    Hero.jsx About.jsx Projects.jsx Skills.jsx Contact.jsx
//	    Navbar.jsx CustomCursor.jsx ScrollProgress.jsx ThreeBackground.jsx
//	  utils/
//
// # Usage
//
// Collect synthesized files into an ordered, duplicate-free set:
//
//	files := project.NewFileSet()
//	if err := files.Add(project.ManifestPath, manifest); err != nil {
//	    return err
//	}
//	for _, f := range files.Files() {
//	    fmt.Println(f.Path, len(f.Content))
//	}
package project
