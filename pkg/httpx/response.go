package httpx

import (
	"encoding/json"
	"net/http"
)

// InternalErrorMessage is the only text clients see for unexpected failures.
const InternalErrorMessage = "Internal server error"

// FieldError describes one failing request field.
type FieldError struct {
	Field   string `json:"field"   example:"name"`
	Message string `json:"message" example:"Product name is required"`
} // @name FieldError

// Pagination is the page metadata attached to list responses.
type Pagination struct {
	CurrentPage int  `json:"currentPage" example:"1"`
	TotalPages  int  `json:"totalPages"  example:"3"`
	TotalCount  int  `json:"totalCount"  example:"12"`
	HasMore     bool `json:"hasMore"     example:"true"`
} // @name Pagination

// Envelope is the body shape of every API response.
// Success responses carry Data (and Pagination for lists); failures carry
// Message and, for validation failures, one Errors entry per failing field.
type Envelope struct {
	Success    bool         `json:"success"`
	Message    string       `json:"message,omitempty"`
	Data       any          `json:"data,omitempty"`
	Pagination *Pagination  `json:"pagination,omitempty"`
	Errors     []FieldError `json:"errors,omitempty"`
} // @name Envelope

// JSON writes v as JSON with the given status code. Content-Type and
// X-Content-Type-Options headers are set automatically. Encoding errors are
// silently discarded. Use this for handler responses, not for streaming.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes {success:true, data}.
func OK(w http.ResponseWriter, status int, data any) {
	JSON(w, status, Envelope{Success: true, Data: data})
}

// OKMessage writes {success:true, message, data}. data may be nil.
func OKMessage(w http.ResponseWriter, status int, message string, data any) {
	JSON(w, status, Envelope{Success: true, Message: message, Data: data})
}

// OKPage writes {success:true, data, pagination}.
func OKPage(w http.ResponseWriter, data any, page Pagination) {
	JSON(w, http.StatusOK, Envelope{Success: true, Data: data, Pagination: &page})
}

// Fail writes {success:false, message}.
func Fail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Envelope{Success: false, Message: message})
}

// FailFields writes {success:false, message, errors}.
func FailFields(w http.ResponseWriter, status int, message string, errs []FieldError) {
	JSON(w, status, Envelope{Success: false, Message: message, Errors: errs})
}
