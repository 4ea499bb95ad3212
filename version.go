// Package plume generates personalized portfolio projects from a profile.
package plume

// Version is the current plume release.
const Version = "0.3.0"
