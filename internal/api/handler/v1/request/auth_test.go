package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validSignup() SignupRequest {
	return SignupRequest{
		Email:           "jordan@example.com",
		Password:        "passw0rd1",
		ConfirmPassword: "passw0rd1",
		Name:            "Jordan Lee",
		Role:            "student",
	}
}

func TestSignupRequest_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req := validSignup()
		assert.NoError(t, req.Validate())
	})

	t.Run("bad email", func(t *testing.T) {
		req := validSignup()
		req.Email = "not-an-email"
		assert.Error(t, req.Validate())
	})

	t.Run("password rules", func(t *testing.T) {
		cases := map[string]string{
			"too short": "ab1",
			"no digit":  "passwords",
			"no letter": "123456789",
		}
		for name, password := range cases {
			t.Run(name, func(t *testing.T) {
				req := validSignup()
				req.Password = password
				req.ConfirmPassword = password

				assert.ErrorIs(t, req.Validate(), errInvalidPassword)
			})
		}
	})

	t.Run("confirm mismatch", func(t *testing.T) {
		req := validSignup()
		req.ConfirmPassword = "different1"
		assert.ErrorIs(t, req.Validate(), errConfirmPasswordMismatch)
	})

	t.Run("role list", func(t *testing.T) {
		for _, role := range []string{"student", "speaker", "school_admin"} {
			req := validSignup()
			req.Role = role
			assert.NoError(t, req.Validate())
		}

		for _, role := range []string{"super_admin", "admin", ""} {
			req := validSignup()
			req.Role = role
			assert.Error(t, req.Validate())
		}
	})
}

func TestLoginRequest_Validate(t *testing.T) {
	req := LoginRequest{Email: "jordan@example.com", Password: "passw0rd1"}
	assert.NoError(t, req.Validate())

	req.Password = ""
	assert.Error(t, req.Validate())
}
