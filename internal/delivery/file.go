package delivery

import (
	"context"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/simonhull/firebird-suite/plume/internal/archive"
	"github.com/simonhull/firebird-suite/plume/internal/generator"
)

// FileDeliverer saves the archive into Dir under its own name
type FileDeliverer struct {
	Dir    string
	Force  bool      // overwrite an existing file
	DryRun bool      // report only
	Writer io.Writer // progress output, discarded when nil
}

// Path returns where an archive will be written
func (d *FileDeliverer) Path(arc *archive.Archive) string {
	return filepath.Join(d.Dir, arc.Filename)
}

func (d *FileDeliverer) Deliver(ctx context.Context, arc *archive.Archive) error {
	if err := checkFilename(arc); err != nil {
		return err
	}

	target := d.Path(arc)
	ops := []generator.Operation{
		&generator.WriteFileOp{Path: target, Content: arc.Data, Mode: 0644},
	}
	if err := generator.Execute(ctx, ops, d.options()); err != nil {
		return &DeliveryError{Target: target, Err: err}
	}
	return nil
}

func (d *FileDeliverer) options() generator.ExecuteOptions {
	return executeOptions(d.DryRun, d.Force, d.Writer)
}

// ExtractDeliverer unpacks the archive into Dir/<project name>/. Either the
// whole tree is written or nothing is; with Force, files overwritten before a
// failed write get their old content back. Files already holding the generated
// content do not count as conflicts, so a seeded run can be extracted again.
type ExtractDeliverer struct {
	Dir    string
	Force  bool      // overwrite existing files
	DryRun bool      // report only
	Writer io.Writer // progress output, discarded when nil
}

// Root returns the directory an archive is extracted into
func (d *ExtractDeliverer) Root(arc *archive.Archive) string {
	return filepath.Join(d.Dir, strings.TrimSuffix(arc.Filename, Extension))
}

func (d *ExtractDeliverer) Deliver(ctx context.Context, arc *archive.Archive) error {
	if err := checkFilename(arc); err != nil {
		return err
	}

	root := d.Root(arc)
	contents, err := archive.Unpack(arc.Data)
	if err != nil {
		return &DeliveryError{Target: root, Err: err}
	}

	ops, tx := plan(root, contents)
	opts := d.options()

	if d.DryRun {
		if err := generator.Execute(ctx, ops, opts); err != nil {
			return &DeliveryError{Target: root, Err: err}
		}
		return nil
	}

	if err := generator.Validate(ctx, ops, d.Force); err != nil {
		return &DeliveryError{Target: root, Err: err}
	}
	if err := tx.Commit(); err != nil {
		return &DeliveryError{Target: root, Err: err}
	}
	for _, op := range ops {
		report(opts.Writer, op)
	}
	return nil
}

func (d *ExtractDeliverer) options() generator.ExecuteOptions {
	return executeOptions(d.DryRun, d.Force, d.Writer)
}

// plan turns archive contents into validated operations plus the matching
// transaction. Only empty layout directories need their own entry; the
// others are created along with their files.
func plan(root string, c *archive.Contents) ([]generator.Operation, *generator.Transaction) {
	tx := generator.NewTransaction()
	ops := make([]generator.Operation, 0, len(c.Dirs)+c.Files.Len())

	occupied := make(map[string]bool)
	for _, p := range c.Files.Paths() {
		for d := path.Dir(p); d != "."; d = path.Dir(d) {
			occupied[d] = true
		}
	}

	for _, dir := range c.Dirs {
		if occupied[dir] {
			continue
		}
		target := filepath.Join(root, filepath.FromSlash(dir))
		ops = append(ops, &generator.MkdirOp{Path: target, Mode: 0755})
		tx.AddDir(target, 0755)
	}

	for _, f := range c.Files.Files() {
		target := filepath.Join(root, filepath.FromSlash(f.Path))
		ops = append(ops, &generator.WriteFileOp{Path: target, Content: f.Content, Mode: 0644, SameOK: true})
		tx.AddFile(target, f.Content, 0644)
	}

	return ops, tx
}

func executeOptions(dryRun, force bool, w io.Writer) generator.ExecuteOptions {
	if w == nil {
		w = io.Discard
	}
	return generator.ExecuteOptions{DryRun: dryRun, Force: force, Writer: w}
}

func report(w io.Writer, op generator.Operation) {
	io.WriteString(w, "✓ "+op.Description()+"\n")
}
