//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	"hotel-booking/internal/domain/user"
	"hotel-booking/internal/handler/dto/request"
	resdto "hotel-booking/internal/handler/dto/response"
	"hotel-booking/tests/common/authtest"
	"hotel-booking/tests/common/builder"
	"hotel-booking/tests/common/dbtest"
	"hotel-booking/tests/common/httptest"
	"hotel-booking/tests/e2e"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	registerURL = "/api/auth/register"
	loginURL    = "/api/auth/login"
	logoutURL   = "/api/auth/logout"
	meURL       = "/api/auth/me"
)

type authSuite struct {
	e2e.SharedSuite
	jwtHelper *authtest.JWTHelper
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(authSuite))
}

func (s *authSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwtHelper = authtest.NewJWTHelper(s.Config.JWT)
}

func (s *authSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	dbtest.CreateTestUser(s.T(), s.DB, "guest@example.com", string(user.RoleCustomer))
	dbtest.CreateTestUser(s.T(), s.DB, "inactive@example.com", string(user.RoleCustomer))
	dbtest.DeactivateUser(s.T(), s.DB, "inactive@example.com")
}

func (s *authSuite) TestRegister() {
	tests := []struct {
		name           string
		body           request.RegisterRequest
		expectedStatus int
	}{
		{
			name:           "new customer",
			body:           builder.NewAuthBuilder().WithEmail("New.Guest@Example.com").BuildRegisterDTO(),
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "email already registered",
			body:           builder.NewAuthBuilder().WithEmail("guest@example.com").BuildRegisterDTO(),
			expectedStatus: http.StatusConflict,
		},
		{
			name: "short password",
			body: func() request.RegisterRequest {
				dto := builder.NewAuthBuilder().WithEmail("short@example.com").BuildRegisterDTO()
				dto.Password = "short"
				return dto
			}(),
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			w := httptest.PerformRequest(t, s.Router, http.MethodPost, registerURL, tt.body, "")
			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())

			if tt.expectedStatus == http.StatusCreated {
				var res resdto.UserResponse
				httptest.DecodeJSON(t, w, &res)
				require.Equal(t, "new.guest@example.com", res.Email)
				require.Equal(t, string(user.RoleCustomer), res.Role)

				// the new account can sign in straight away
				authtest.LoginUser(t, s.Router, "new.guest@example.com", tt.body.Password)
			}
		})
	}
}

func (s *authSuite) TestLogin() {
	tests := []struct {
		name           string
		email          string
		password       string
		expectedStatus int
	}{
		{
			name:           "valid credentials",
			email:          "guest@example.com",
			password:       dbtest.DefaultPassword,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown user",
			email:          "nobody@example.com",
			password:       dbtest.DefaultPassword,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong password",
			email:          "guest@example.com",
			password:       "wrongpassword",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "inactive user",
			email:          "inactive@example.com",
			password:       dbtest.DefaultPassword,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "empty email",
			email:          "",
			password:       dbtest.DefaultPassword,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			body := request.LoginRequest{Email: tt.email, Password: tt.password}
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL, body, "")
			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())

			if tt.expectedStatus == http.StatusOK {
				var res resdto.LoginResponse
				httptest.DecodeJSON(t, w, &res)
				require.NotEmpty(t, res.AccessToken)
				require.Equal(t, "Bearer", res.TokenType)
				require.NotNil(t, httptest.ExtractCookie(w, "access_token"))

				var lastLogin any
				err := s.DB.QueryRow(t.Context(), "SELECT last_login_at FROM users WHERE email = $1", tt.email).Scan(&lastLogin)
				require.NoError(t, err)
				require.NotNil(t, lastLogin, "last_login_at was not updated")
			}
		})
	}
}

func (s *authSuite) TestMe() {
	s.Run("returns the signed in user", func() {
		t := s.T()

		token := authtest.LoginUser(t, s.Router, "guest@example.com", dbtest.DefaultPassword)
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		body := w.Body.String()
		require.Contains(t, body, "guest@example.com")
		require.Contains(t, body, string(user.RoleCustomer))
		require.NotContains(t, body, "password")
	})

	s.Run("cookie authenticates without a header", func() {
		t := s.T()

		login := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
			request.LoginRequest{Email: "guest@example.com", Password: dbtest.DefaultPassword}, "")
		require.Equal(t, http.StatusOK, login.Code)

		w := httptest.PerformRequestWithCookies(t, s.Router, http.MethodGet, meURL, nil, login.Result().Cookies(), "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})
}

func (s *authSuite) TestLogout() {
	s.Run("clears the access cookie", func() {
		t := s.T()

		token := authtest.LoginUser(t, s.Router, "guest@example.com", dbtest.DefaultPassword)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, logoutURL, nil, token)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		cookie := httptest.ExtractCookie(w, "access_token")
		require.NotNil(t, cookie)
		require.Empty(t, cookie.Value)
	})
}

func (s *authSuite) TestRejectedTokens() {
	s.Run("expired, foreign, and missing tokens", func() {
		t := s.T()

		userID := dbtest.CreateTestUser(t, s.DB, "expiry@example.com", string(user.RoleCustomer))
		tokens := map[string]string{
			"expired": s.jwtHelper.CreateExpiredToken(t, userID, user.RoleCustomer),
			"foreign": s.jwtHelper.CreateForeignToken(t, userID, user.RoleCustomer),
			"garbage": "invalid-token",
			"missing": "",
		}

		for name, token := range tokens {
			w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
			require.Equal(t, http.StatusUnauthorized, w.Code, name)
		}
	})
}

func (s *authSuite) TestConcurrentLogin() {
	s.Run("both sessions stay valid", func() {
		t := s.T()

		token1 := authtest.LoginUser(t, s.Router, "guest@example.com", dbtest.DefaultPassword)
		token2 := authtest.CreateAndLogin(t, s.DB, s.Router, "second@example.com", string(user.RoleCustomer))

		w1 := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token1)
		w2 := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token2)
		require.Equal(t, http.StatusOK, w1.Code)
		require.Equal(t, http.StatusOK, w2.Code)
	})
}
