package web

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/JonMunkholm/cda/internal/logging"
	"github.com/JonMunkholm/cda/internal/pipeline"
	"github.com/JonMunkholm/cda/internal/workbook"
	"github.com/go-chi/chi/v5"
)

// Response headers of a conversion.
const (
	HeaderRunID    = "X-Run-ID"
	HeaderWarnings = "X-Validation-Warnings"
)

// Output formats.
const (
	FormatSQL  = "sql"
	FormatYAML = "yaml"
)

// uploadField is the multipart form field holding the workbook.
const uploadField = "file"

type picklistColumn struct {
	Name     string `json:"name"`
	DataType string `json:"data_type"`
}

type picklistInfo struct {
	Name    string           `json:"name"`
	Label   string           `json:"label"`
	Sheet   string           `json:"sheet"`
	Columns []picklistColumn `json:"columns"`
}

type picklistsResponse struct {
	Version   string         `json:"version"`
	Picklists []picklistInfo `json:"picklists"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleListPicklists describes the picklist sheets a workbook may contain.
func (s *Server) handleListPicklists(w http.ResponseWriter, r *http.Request) {
	defs := s.catalog.All()

	resp := picklistsResponse{
		Version:   s.catalog.Version(),
		Picklists: make([]picklistInfo, 0, len(defs)),
	}
	for _, def := range defs {
		info := picklistInfo{Name: def.Name, Label: def.Label, Sheet: def.SheetTitle}
		for _, col := range def.Columns {
			info.Columns = append(info.Columns, picklistColumn{Name: col.Name, DataType: col.DataType})
		}
		resp.Picklists = append(resp.Picklists, info)
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleConvert converts the posted workbook and returns one artifact.
// The workbook is either the raw request body or the "file" field of a
// multipart form.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if format != FormatSQL && format != FormatYAML {
		respondError(w, r, fmt.Errorf("%w: %q", ErrUnknownFormat, format))
		return
	}

	data, err := s.readUpload(w, r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := s.limiter.Acquire(r.Context()); err != nil {
		respondError(w, r, err)
		return
	}
	defer s.limiter.Release()

	wb, err := workbook.OpenReader(bytes.NewReader(data))
	if err != nil {
		respondError(w, r, fmt.Errorf("%w: %v", ErrInvalidWorkbook, err))
		return
	}
	defer wb.Close()

	ctx, runID := logging.ContextWithRunID(r.Context())
	w.Header().Set(HeaderRunID, runID)

	res, err := s.conv.Convert(ctx, wb)
	if err != nil {
		respondError(w, r.WithContext(ctx), err)
		return
	}

	logging.FromContext(ctx).Info("workbook converted",
		"format", format,
		"bytes", len(data),
		"entities", len(res.Kernel.Entities),
		"picklists", len(res.Kernel.Picklists),
	)

	writeResult(w, format, res)
}

func writeResult(w http.ResponseWriter, format string, res *pipeline.Result) {
	if len(res.Warnings) > 0 {
		w.Header().Set(HeaderWarnings, strconv.Itoa(len(res.Warnings)))
	}

	var body []byte
	switch format {
	case FormatSQL:
		w.Header().Set("Content-Type", "application/sql; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+pipeline.ScriptFile+`"`)
		body = []byte(res.SQL)
	default:
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+pipeline.DocumentFile+`"`)
		body = res.Document
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// readUpload returns the workbook bytes, bounded by MaxUploadSize.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadSize)

	var src io.Reader = r.Body
	if mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mediaType == "multipart/form-data" {
		file, _, err := r.FormFile(uploadField)
		if err != nil {
			if tooLarge(err) {
				return nil, ErrUploadTooLarge
			}
			return nil, fmt.Errorf("%w: %v", ErrInvalidWorkbook, err)
		}
		defer file.Close()
		src = file
	}

	data, err := io.ReadAll(src)
	if err != nil {
		if tooLarge(err) {
			return nil, ErrUploadTooLarge
		}
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrInvalidWorkbook)
	}
	return data, nil
}

func tooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large")
}
