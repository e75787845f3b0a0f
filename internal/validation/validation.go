// Package validation holds the stateless input checks applied before any
// repository call.  Every function is pure: no I/O and no side effects.
// Failures are reported as *Error values that carry the HTTP status the
// caller should emit.
package validation

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	playground "github.com/go-playground/validator/v10"

	"github.com/quejasboyaca/complaint-service/internal/model"
)

// Length bounds applied to trimmed text, counted in characters.
const (
	DescriptionMin = 10
	DescriptionMax = 1000
	CommentMin     = 10
	CommentMax     = 500
)

// Error is a validation failure.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string { return e.Message }

func badRequest(msg string) *Error {
	return &Error{StatusCode: http.StatusBadRequest, Message: msg}
}

// As extracts a *Error from err.
func As(err error) (*Error, bool) {
	var ve *Error
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

var validate = playground.New()

// parseID accepts a non-empty, all-digit, positive identifier.
func parseID(raw string) (uint64, bool) {
	raw = strings.TrimSpace(raw)
	if validate.Var(raw, "required,number") != nil {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

func textLen(s string) int { return utf8.RuneCountInString(s) }

// Complaint checks a complaint filing.  The entity id must be numeric and
// the trimmed description must fall within [DescriptionMin, DescriptionMax].
func Complaint(entity, description string) (model.NewComplaint, error) {
	if strings.TrimSpace(entity) == "" || description == "" {
		return model.NewComplaint{}, badRequest("La entidad y descripción son requeridas")
	}
	id, ok := parseID(entity)
	if !ok {
		return model.NewComplaint{}, badRequest("ID de entidad debe ser un número válido")
	}
	desc := strings.TrimSpace(description)
	switch n := textLen(desc); {
	case n < DescriptionMin:
		return model.NewComplaint{}, badRequest("La descripción debe tener al menos 10 caracteres")
	case n > DescriptionMax:
		return model.NewComplaint{}, badRequest("La descripción no puede exceder 1000 caracteres")
	}
	return model.NewComplaint{PublicEntityID: id, Description: desc}, nil
}

// ComplaintID parses a complaint identifier.
func ComplaintID(raw string) (uint64, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, badRequest("ID de queja es requerido")
	}
	id, ok := parseID(raw)
	if !ok {
		return 0, badRequest("ID de queja debe ser un número válido")
	}
	return id, nil
}

// Status checks a complaint status literal.
func Status(raw string) (model.ComplaintStatus, error) {
	if raw == "" {
		return "", badRequest("Estado de queja es requerido")
	}
	s := model.ComplaintStatus(raw)
	if !s.Valid() {
		return "", badRequest("Estado no válido. Los estados permitidos son: abierta, en_revision, cerrada")
	}
	return s, nil
}

// Comment checks a new anonymous comment and returns the parsed complaint
// id with the trimmed text.
func Comment(complaintID, text string) (uint64, string, error) {
	id, err := ComplaintID(complaintID)
	if err != nil {
		return 0, "", err
	}
	if strings.TrimSpace(text) == "" {
		return 0, "", badRequest("Texto del comentario es requerido")
	}
	body := strings.TrimSpace(text)
	switch n := textLen(body); {
	case n < CommentMin:
		return 0, "", badRequest("El comentario debe tener al menos 10 caracteres")
	case n > CommentMax:
		return 0, "", badRequest("El comentario no puede exceder 500 caracteres")
	}
	return id, body, nil
}
