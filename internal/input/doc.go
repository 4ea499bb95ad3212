// Package input provides interactive terminal prompts and the profile
// wizard behind `plume init`.
//
// # Usage
//
//	p := input.New(os.Stdin, os.Stdout)
//
//	// Ask for text input with a default
//	title := p.Prompt("Professional title", "Software Engineer")
//
//	// Ask yes/no question
//	if p.Confirm("Add a project?", true) {
//	    // User said yes
//	}
//
//	// Collect a whole profile
//	rec, err := input.Wizard(p)
//
// # Styling
//
// Prompts are cyan and bold; hints (defaults, [Y/n]) are gray.
//
// # Non-Interactive Mode
//
// When input runs out, Prompt and Confirm return their defaults and
// Required reports io.ErrUnexpectedEOF, so piping a profile through stdin
// either completes or fails cleanly instead of looping.
package input
