package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusCode(ErrTaskNotFound))
	assert.Equal(t, http.StatusNotFound, StatusCode(fmt.Errorf("lookup: %w", ErrClientNotFound)))
	assert.Equal(t, http.StatusBadRequest, StatusCode(ErrInvalidFilter))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(errors.New("disk on fire")))
}
