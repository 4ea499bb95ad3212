package delivery

import (
	"context"
	"mime"
	"net/http"
	"strconv"

	"github.com/simonhull/firebird-suite/plume/internal/archive"
)

// HTTPDeliverer sends the archive as a download
type HTTPDeliverer struct {
	W http.ResponseWriter
}

func (d *HTTPDeliverer) Deliver(ctx context.Context, arc *archive.Archive) error {
	if err := checkFilename(arc); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return &DeliveryError{Target: arc.Filename, Err: err}
	}

	h := d.W.Header()
	h.Set("Content-Type", "application/zip")
	h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": arc.Filename}))
	h.Set("Content-Length", strconv.Itoa(len(arc.Data)))
	d.W.WriteHeader(http.StatusOK)

	if _, err := d.W.Write(arc.Data); err != nil {
		return &DeliveryError{Target: arc.Filename, Err: err}
	}
	return nil
}
