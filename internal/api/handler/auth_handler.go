package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ostrich-systems/field-service-api/internal/api/metrics"
	"github.com/ostrich-systems/field-service-api/internal/core/domain"
	"github.com/ostrich-systems/field-service-api/internal/core/ports"
)

// AuthHandler handles the login and OTP endpoints.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type sendOTPRequest struct {
	Contact string `json:"contact" validate:"required"`
}

type verifyOTPRequest struct {
	Contact string `json:"contact" validate:"required"`
	OTP     string `json:"otp" validate:"required,len=6"`
}

type sessionResponse struct {
	AccessToken  string `json:"access_token"`
	TechnicianID int64  `json:"technician_id"`
	FullName     string `json:"full_name"`
	Role         string `json:"role"`
}

type otpIssuedResponse struct {
	Contact   string `json:"contact"`
	OTP       string `json:"otp,omitempty"`
	ExpiresIn int    `json:"expires_in"`
}

func sessionOf(res *ports.AuthResult) sessionResponse {
	return sessionResponse{
		AccessToken:  res.Token,
		TechnicianID: res.Identity.UserID,
		FullName:     res.Identity.FullName,
		Role:         res.Identity.Role,
	}
}

// Login authenticates a technician with username and password.
//
// @Summary      Login with credentials
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		} else {
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, sessionOf(res))
}

// SendOTP issues a one-time code to the given contact.
//
// @Summary      Send a one-time code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      sendOTPRequest  true  "Contact to send the code to"
// @Success      200   {object}  otpIssuedResponse
// @Failure      400   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /api/v1/auth/send-otp [post]
func (h *AuthHandler) SendOTP(c echo.Context) error {
	var req sendOTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	issued, err := h.authService.IssueOTP(c.Request().Context(), req.Contact)
	if err != nil {
		if errors.Is(err, domain.ErrOTPThrottled) {
			metrics.OTPIssuedTotal.WithLabelValues("throttled").Inc()
		} else {
			metrics.OTPIssuedTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.OTPIssuedTotal.WithLabelValues("sent").Inc()
	return c.JSON(http.StatusOK, otpIssuedResponse{
		Contact:   issued.Contact,
		OTP:       issued.Code,
		ExpiresIn: issued.ExpiresIn,
	})
}

// VerifyOTP exchanges a valid one-time code for a session token.
//
// @Summary      Verify a one-time code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      verifyOTPRequest  true  "Contact and code"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/auth/verify-otp [post]
func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var req verifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.authService.VerifyOTP(c.Request().Context(), req.Contact, req.OTP)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidOTP) || errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.OTPVerifiedTotal.WithLabelValues("invalid").Inc()
		} else {
			metrics.OTPVerifiedTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.OTPVerifiedTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, sessionOf(res))
}
