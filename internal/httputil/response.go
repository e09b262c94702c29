package httputil

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
)

// RespondJSON marshals data before writing headers so an encoding failure
// becomes a 500 instead of a truncated 200.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		RespondError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// RespondText writes an export body with the given media type.
// A non-empty filename marks the response as an attachment.
func RespondText(w http.ResponseWriter, status int, contentType, filename, body string) {
	w.Header().Set("Content-Type", contentType+"; charset=utf-8")
	if filename != "" {
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	}
	w.WriteHeader(status)
	io.WriteString(w, body)
}

// ProblemDetail is an RFC 7807 error body. Extra members are flattened
// into the top-level object.
type ProblemDetail struct {
	Type     string                 `json:"type"`
	Title    string                 `json:"title"`
	Status   int                    `json:"status"`
	Detail   string                 `json:"detail,omitempty"`
	Instance string                 `json:"instance,omitempty"`
	Extra    map[string]interface{} `json:"-"`
}

func (p ProblemDetail) MarshalJSON() ([]byte, error) {
	m := make(map[string]interface{}, len(p.Extra)+5)
	for k, v := range p.Extra {
		m[k] = v
	}
	m["type"] = p.Type
	m["title"] = p.Title
	m["status"] = p.Status
	if p.Detail != "" {
		m["detail"] = p.Detail
	}
	if p.Instance != "" {
		m["instance"] = p.Instance
	}
	return json.Marshal(m)
}

// RespondError writes an RFC 7807 Problem Details error response
func RespondError(w http.ResponseWriter, status int, detail string) {
	RespondErrorWithExtras(w, status, detail, nil)
}

// RespondErrorWithExtras writes an RFC 7807 error with additional members
// such as the rejected format name
func RespondErrorWithExtras(w http.ResponseWriter, status int, detail string, extras map[string]interface{}) {
	payload, err := json.Marshal(ProblemDetail{
		Type:   problemType(status),
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
		Extra:  extras,
	})
	if err != nil {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal server error"))
		return
	}

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	w.Write(payload)
}

const rfc9110 = "https://www.rfc-editor.org/rfc/rfc9110#"

func problemType(status int) string {
	switch status {
	case http.StatusBadRequest:
		return rfc9110 + "name-400-bad-request"
	case http.StatusNotFound:
		return rfc9110 + "name-404-not-found"
	case http.StatusMethodNotAllowed:
		return rfc9110 + "name-405-method-not-allowed"
	case http.StatusRequestEntityTooLarge:
		return rfc9110 + "name-413-content-too-large"
	case http.StatusInternalServerError:
		return rfc9110 + "name-500-internal-server-error"
	default:
		return "about:blank"
	}
}
