package server

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/simonhull/firebird-suite/plume/internal/content"
	"github.com/simonhull/firebird-suite/plume/internal/delivery"
	"github.com/simonhull/firebird-suite/plume/internal/logger"
	"github.com/simonhull/firebird-suite/plume/internal/portfolio"
)

// Multipart form fields
const (
	FormProfile = "profile"
	FormResume  = "resume"
)

// badRequest is a client error with its response code
type badRequest struct {
	code    string
	message string
	details map[string]interface{}
}

func (e *badRequest) Error() string {
	return e.message
}

// handlePortfolio handles POST /v1/portfolio
func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	gen, err := s.generatorFor(r)
	if err != nil {
		s.writeRequestError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	rec, err := readProfile(r, s.cfg.MaxBodyBytes)
	if err != nil {
		s.writeRequestError(w, r, err)
		return
	}

	res, err := gen.Generate(r.Context(), rec)
	if err != nil {
		s.log.Error("generation failed",
			logger.F("request_id", RequestID(r.Context())),
			logger.F("error", err),
		)
		WriteError(w, r, http.StatusInternalServerError, ErrCodeInternalError,
			"Failed to generate portfolio", true, nil)
		return
	}

	if res.Resume != nil {
		s.log.Debug("resume attached",
			logger.F("request_id", RequestID(r.Context())),
			logger.F("file", res.Resume.FileName),
			logger.F("bytes", len(res.Resume.Data)),
		)
	}

	// Headers are committed from here on; failures can only be logged
	d := &delivery.HTTPDeliverer{W: w}
	if err := d.Deliver(r.Context(), res.Archive); err != nil {
		s.log.Warn("delivery failed",
			logger.F("request_id", RequestID(r.Context())),
			logger.F("file", res.Filename),
			logger.F("error", err),
		)
	}
}

// generatorFor applies the optional ?seed= parameter
func (s *Server) generatorFor(r *http.Request) (*portfolio.Generator, error) {
	raw := r.URL.Query().Get("seed")
	if raw == "" {
		return s.gen, nil
	}

	seed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, &badRequest{
			code:    ErrCodeInvalidRequest,
			message: "seed must be a non-negative integer",
			details: map[string]interface{}{"seed": raw},
		}
	}
	return s.gen.With(portfolio.WithSeed(seed)), nil
}

// writeRequestError maps a request-reading error onto a response
func (s *Server) writeRequestError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		tooLarge *http.MaxBytesError
		invalid  content.ValidationErrors
		bad      *badRequest
	)

	switch {
	case errors.As(err, &tooLarge):
		WriteError(w, r, http.StatusRequestEntityTooLarge, ErrCodeRequestTooLarge,
			"Request body too large", false, map[string]interface{}{"limit": tooLarge.Limit})
	case errors.As(err, &invalid):
		WriteError(w, r, http.StatusBadRequest, ErrCodeValidationFailed,
			"Profile is incomplete or invalid", false, map[string]interface{}{"errors": fieldErrors(invalid)})
	case errors.As(err, &bad):
		WriteError(w, r, http.StatusBadRequest, bad.code, bad.message, false, bad.details)
	default:
		s.log.Error("failed to read request",
			logger.F("request_id", RequestID(r.Context())),
			logger.F("error", err),
		)
		WriteError(w, r, http.StatusInternalServerError, ErrCodeInternalError,
			"Failed to read request", true, nil)
	}
}

func fieldErrors(errs content.ValidationErrors) []FieldError {
	out := make([]FieldError, 0, len(errs))
	for _, e := range errs {
		out = append(out, FieldError{
			Field:      e.Field,
			Message:    e.Message,
			Suggestion: e.Suggestion,
			Line:       e.Line,
		})
	}
	return out
}

// readProfile decodes and validates the profile in r
func readProfile(r *http.Request, maxMemory int64) (*content.Record, error) {
	var (
		data   []byte
		resume *content.Attachment
		err    error
	)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		data, resume, err = readForm(r, maxMemory)
	} else {
		data, err = io.ReadAll(r.Body)
	}
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, &badRequest{code: ErrCodeInvalidRequest, message: "request body is empty"}
	}

	rec, err := content.Parse(data)
	if err != nil {
		bad := &badRequest{code: ErrCodeInvalidRequest, message: err.Error()}
		if errs, serr := content.CheckSchema(data); serr == nil && len(errs) > 0 {
			bad.details = map[string]interface{}{"errors": fieldErrors(errs)}
		}
		return nil, bad
	}
	rec.Resume = resume

	if err := content.Validate(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// readForm reads the profile field (text or file) and the optional résumé
func readForm(r *http.Request, maxMemory int64) ([]byte, *content.Attachment, error) {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, nil, err
		}
		return nil, nil, &badRequest{code: ErrCodeInvalidRequest, message: fmt.Sprintf("invalid form: %v", err)}
	}
	defer r.MultipartForm.RemoveAll()

	var data []byte
	if v := r.MultipartForm.Value[FormProfile]; len(v) > 0 {
		data = []byte(v[0])
	} else if files := r.MultipartForm.File[FormProfile]; len(files) > 0 {
		b, err := readPart(files[0])
		if err != nil {
			return nil, nil, err
		}
		data = b
	}

	var resume *content.Attachment
	if files := r.MultipartForm.File[FormResume]; len(files) > 0 {
		b, err := readPart(files[0])
		if err != nil {
			return nil, nil, err
		}
		resume = &content.Attachment{
			FileName:    files[0].Filename,
			ContentType: files[0].Header.Get("Content-Type"),
			Data:        b,
		}
	}

	return data, resume, nil
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", fh.Filename, err)
	}
	return b, nil
}
