package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrBody(t *testing.T) {
	body, err := json.Marshal(ErrBadRequest(errors.New("rating out of range")))
	require.NoError(t, err)
	assert.JSONEq(t, `{"message": "rating out of range"}`, string(body))
}

func TestErrConstructors(t *testing.T) {
	cases := map[string]struct {
		err    *Err
		status int
	}{
		"bad request": {ErrBadRequest(errors.New("x")), http.StatusBadRequest},
		"credentials": {ErrWrongCredentials(errors.New("x")), http.StatusUnauthorized},
		"forbidden":   {ErrPermissionDenied(errors.New("x")), http.StatusForbidden},
		"not found":   {ErrNotFound("event", "eventID", 7), http.StatusNotFound},
		"internal":    {ErrInternalServerError(errors.New("x")), http.StatusInternalServerError},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.status, tc.err.StatusCode)
			assert.NotEmpty(t, tc.err.Error())
		})
	}
}
