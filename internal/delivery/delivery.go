// Package delivery hands a finished archive to its consumer: a file on
// disk, an extracted project tree or an HTTP download.
package delivery

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/simonhull/firebird-suite/plume/internal/archive"
	"github.com/simonhull/firebird-suite/plume/internal/content"
)

const (
	// Suffix is appended to the slug to name the project
	Suffix = "-portfolio"
	// Extension is the archive file extension
	Extension = ".zip"
)

// Filename returns the archive name for a person:
// "Jane Q. Public" → "jane-q.-public-portfolio.zip"
func Filename(name string) string {
	return ProjectName(name) + Extension
}

// ProjectName returns the project directory name for a person
func ProjectName(name string) string {
	return content.Slugify(name) + Suffix
}

// Deliverer delivers an archive. Delivery is attempted once; failures are
// *DeliveryError.
type Deliverer interface {
	Deliver(ctx context.Context, arc *archive.Archive) error
}

// DeliveryError reports a failed delivery
type DeliveryError struct {
	Target string // where the archive was going
	Err    error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("failed to deliver %s: %v", e.Target, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// checkFilename makes sure an archive name cannot point outside the target
// directory.
func checkFilename(arc *archive.Archive) error {
	if arc == nil {
		return &DeliveryError{Target: "archive", Err: fmt.Errorf("no archive")}
	}
	name := arc.Filename
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return &DeliveryError{Target: fmt.Sprintf("%q", name), Err: fmt.Errorf("invalid file name")}
	}
	return nil
}
