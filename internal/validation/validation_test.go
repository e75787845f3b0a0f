package validation

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quejasboyaca/complaint-service/internal/model"
)

func requireBadRequest(t *testing.T, err error, msg string) {
	t.Helper()
	ve, ok := As(err)
	require.True(t, ok, "expected *validation.Error, got %v", err)
	assert.Equal(t, http.StatusBadRequest, ve.StatusCode)
	assert.Equal(t, msg, ve.Message)
}

func TestComplaint_Valid(t *testing.T) {
	nc, err := Complaint("1", "  A valid ten-char description  ")
	require.NoError(t, err)
	assert.Equal(t, model.NewComplaint{PublicEntityID: 1, Description: "A valid ten-char description"}, nc)
}

func TestComplaint_Required(t *testing.T) {
	_, err := Complaint("", "A valid ten-char description")
	requireBadRequest(t, err, "La entidad y descripción son requeridas")

	_, err = Complaint("1", "")
	requireBadRequest(t, err, "La entidad y descripción son requeridas")
}

func TestComplaint_NonNumericEntity(t *testing.T) {
	for _, e := range []string{"abc", "1.5", "-3", "0"} {
		_, err := Complaint(e, "A valid ten-char description")
		requireBadRequest(t, err, "ID de entidad debe ser un número válido")
	}
}

func TestComplaint_DescriptionBounds(t *testing.T) {
	cases := []struct {
		name string
		desc string
		msg  string
	}{
		{"whitespace only", "          ", "La descripción debe tener al menos 10 caracteres"},
		{"nine chars", "123456789", "La descripción debe tener al menos 10 caracteres"},
		{"nine chars padded", "   123456789   ", "La descripción debe tener al menos 10 caracteres"},
		{"too long", strings.Repeat("a", DescriptionMax+1), "La descripción no puede exceder 1000 caracteres"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Complaint("2", tc.desc)
			requireBadRequest(t, err, tc.msg)
		})
	}

	_, err := Complaint("2", strings.Repeat("a", DescriptionMin))
	assert.NoError(t, err)
	_, err = Complaint("2", strings.Repeat("ñ", DescriptionMax))
	assert.NoError(t, err)
}

func TestComplaintID(t *testing.T) {
	id, err := ComplaintID(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)

	_, err = ComplaintID("")
	requireBadRequest(t, err, "ID de queja es requerido")

	_, err = ComplaintID("x1")
	requireBadRequest(t, err, "ID de queja debe ser un número válido")
}

func TestStatus(t *testing.T) {
	for _, s := range []string{"abierta", "en_revision", "cerrada"} {
		got, err := Status(s)
		require.NoError(t, err)
		assert.Equal(t, model.ComplaintStatus(s), got)
	}

	_, err := Status("")
	requireBadRequest(t, err, "Estado de queja es requerido")

	for _, s := range []string{"open", "closed", "Cerrada", "resuelta"} {
		_, err := Status(s)
		requireBadRequest(t, err, "Estado no válido. Los estados permitidos son: abierta, en_revision, cerrada")
	}
}

func TestComment(t *testing.T) {
	id, text, err := Comment("3", "  Esto es un comentario  ")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), id)
	assert.Equal(t, "Esto es un comentario", text)

	_, _, err = Comment("", "Esto es un comentario")
	requireBadRequest(t, err, "ID de queja es requerido")

	_, _, err = Comment("3", "   ")
	requireBadRequest(t, err, "Texto del comentario es requerido")

	_, _, err = Comment("3", "corto")
	requireBadRequest(t, err, "El comentario debe tener al menos 10 caracteres")

	_, _, err = Comment("3", strings.Repeat("b", CommentMax+1))
	requireBadRequest(t, err, "El comentario no puede exceder 500 caracteres")
}

func TestAs_NonValidationError(t *testing.T) {
	_, ok := As(assert.AnError)
	assert.False(t, ok)
}
