package web

// errors.go maps conversion failures to JSON error responses.
//
// Every error is logged server-side with its full text and request ID, and
// returned to the client as a short message, a suggested action and a code
// that support can look up.
//
// Error codes:
//
//	WB001  - Workbook layout problem (missing sheet, header or unknown picklist)
//	WB002  - Cell with an unsupported type (date, decimal, boolean, error)
//	SQL001 - Attribute type with no SQL mapping
//	SQL002 - Picklist value column that is not part of the picklist
//	FILE001 - Upload exceeds SERVER_MAX_UPLOAD_SIZE
//	FILE002 - Body is not a readable xlsx workbook
//	REQ001 - Unknown output format
//	AUTH001 - Missing API key
//	AUTH002 - Invalid API key
//	SRV001 - Anything else
//	SRV002 - All conversion slots busy

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/JonMunkholm/cda/internal/kernel"
	"github.com/JonMunkholm/cda/internal/logging"
	"github.com/JonMunkholm/cda/internal/sqlgen"
	"github.com/JonMunkholm/cda/internal/sqltype"
)

// Request errors raised by the handlers themselves.
var (
	ErrUploadTooLarge  = errors.New("upload too large")
	ErrInvalidWorkbook = errors.New("not a valid xlsx workbook")
	ErrUnknownFormat   = errors.New("unknown output format")
)

// UserMessage is the client-facing description of an error.
type UserMessage struct {
	Message string
	Action  string
	Code    string
}

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

var authMessages = map[string]UserMessage{
	"AUTH001": {Message: "API key required", Action: "Send the key in the X-API-Key header", Code: "AUTH001"},
	"AUTH002": {Message: "API key not accepted", Action: "Check the configured API keys", Code: "AUTH002"},
}

// MapError classifies err and returns its user message and HTTP status.
func MapError(err error) (UserMessage, int) {
	var (
		kernelErr   *kernel.Error
		unresolved  *sqltype.UnresolvedTypeError
		mismatch    *sqlgen.ColumnMismatchError
		unsupported *sqlgen.UnsupportedValueError
	)

	switch {
	case errors.Is(err, ErrUploadTooLarge):
		return UserMessage{
			Message: "The workbook is too large",
			Action:  "Remove unused sheets or raise SERVER_MAX_UPLOAD_SIZE",
			Code:    "FILE001",
		}, http.StatusRequestEntityTooLarge

	case errors.Is(err, ErrInvalidWorkbook):
		return UserMessage{
			Message: "The upload is not a valid xlsx workbook",
			Action:  "Save the file as Excel Workbook (.xlsx) and try again",
			Code:    "FILE002",
		}, http.StatusBadRequest

	case errors.Is(err, ErrUnknownFormat):
		return UserMessage{
			Message: "Unknown output format",
			Action:  "Use /api/convert/sql or /api/convert/yaml",
			Code:    "REQ001",
		}, http.StatusNotFound

	case errors.Is(err, ErrBusy):
		return UserMessage{
			Message: "The service is busy converting other workbooks",
			Action:  "Retry in a few seconds",
			Code:    "SRV002",
		}, http.StatusServiceUnavailable

	case errors.As(err, &kernelErr) && kernelErr.Kind == kernel.KindType:
		return UserMessage{
			Message: kernelErr.Error(),
			Action:  "Enter the cell as text or a whole number",
			Code:    "WB002",
		}, http.StatusUnprocessableEntity

	case errors.As(err, &kernelErr):
		return UserMessage{
			Message: kernelErr.Error(),
			Action:  "Check the sheet names and header rows of the workbook",
			Code:    "WB001",
		}, http.StatusUnprocessableEntity

	case errors.As(err, &unresolved):
		return UserMessage{
			Message: unresolved.Error(),
			Action:  "Use a supported data type or register the picklist column",
			Code:    "SQL001",
		}, http.StatusUnprocessableEntity

	case errors.As(err, &mismatch), errors.As(err, &unsupported):
		return UserMessage{
			Message: err.Error(),
			Action:  "Align the picklist sheet columns with the picklist definition",
			Code:    "SQL002",
		}, http.StatusUnprocessableEntity

	default:
		return UserMessage{
			Message: "An unexpected error occurred",
			Action:  "Try again; if it persists, report the request ID",
			Code:    "SRV001",
		}, http.StatusInternalServerError
	}
}

// respondError logs err and writes its JSON error response.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	msg, status := MapError(err)

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", msg.Code,
	)

	writeError(w, msg, status)
}

// rejectAuth is the APIKey middleware's reject callback.
func rejectAuth(w http.ResponseWriter, _ *http.Request, status int, code string) {
	writeError(w, authMessages[code], status)
}

func writeError(w http.ResponseWriter, msg UserMessage, status int) {
	writeJSON(w, status, ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}

// writeJSON encodes v as JSON with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
