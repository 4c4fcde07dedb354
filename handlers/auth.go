package handlers

import (
	"net/http"

	"cabinet_avocat_go/config"
	"cabinet_avocat_go/db"
	"cabinet_avocat_go/models"
	"cabinet_avocat_go/services"

	"github.com/labstack/echo/v4"
)

type registerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Specialty string `json:"specialty"`
	FirmName  string `json:"firm_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	Role  string      `json:"role"`
	User  interface{} `json:"user"`
}

// RegisterLawyerHandler creates a new lawyer account
func RegisterLawyerHandler(c echo.Context) error {
	req := new(registerRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "First name, last name, email and password are required"})
	}

	if len(req.Password) < 8 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Password must be at least 8 characters"})
	}

	var count int64
	db.DB.Model(&models.Lawyer{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Email is already registered"})
	}

	hashedPassword, err := services.HashPassword(req.Password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to hash password"})
	}

	lawyer := &models.Lawyer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  hashedPassword,
		Phone:     req.Phone,
		Address:   req.Address,
		City:      req.City,
		Specialty: req.Specialty,
		FirmName:  req.FirmName,
	}

	if err := db.DB.Create(lawyer).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create account"})
	}

	cfg, _ := c.Get("config").(*config.Config)
	if cfg != nil {
		services.SendEmailAsync(cfg, services.BuildWelcomeEmail(lawyer.Email, lawyer.FullName()))
	}

	return c.JSON(http.StatusCreated, lawyer)
}

// LoginLawyerHandler authenticates a lawyer and issues a bearer token
func LoginLawyerHandler(c echo.Context) error {
	req := new(loginRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	var lawyer models.Lawyer
	if err := db.DB.Where("email = ?", req.Email).First(&lawyer).Error; err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid email or password"})
	}

	if !services.CheckPassword(req.Password, lawyer.Password) {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid email or password"})
	}

	cfg, _ := c.Get("config").(*config.Config)
	token, err := services.GenerateToken(cfg.JWTSecret, lawyer.ID, services.RoleAvocat)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to issue token"})
	}

	return c.JSON(http.StatusOK, loginResponse{Token: token, Role: services.RoleAvocat, User: lawyer})
}

// LoginSecretaryHandler authenticates a secretary and issues a bearer token
func LoginSecretaryHandler(c echo.Context) error {
	req := new(loginRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	var secretary models.Secretary
	if err := db.DB.Where("email = ?", req.Email).First(&secretary).Error; err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid email or password"})
	}

	if !services.CheckPassword(req.Password, secretary.Password) {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid email or password"})
	}

	cfg, _ := c.Get("config").(*config.Config)
	token, err := services.GenerateToken(cfg.JWTSecret, secretary.ID, services.RoleSecretaire)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to issue token"})
	}

	return c.JSON(http.StatusOK, loginResponse{Token: token, Role: services.RoleSecretaire, User: secretary})
}

// LoginAdminHandler authenticates a platform admin
func LoginAdminHandler(c echo.Context) error {
	req := new(loginRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	var admin models.Admin
	if err := db.DB.Where("email = ?", req.Email).First(&admin).Error; err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid email or password"})
	}

	if !services.CheckPassword(req.Password, admin.Password) {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid email or password"})
	}

	cfg, _ := c.Get("config").(*config.Config)
	token, err := services.GenerateToken(cfg.JWTSecret, admin.ID, services.RoleAdmin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to issue token"})
	}

	return c.JSON(http.StatusOK, loginResponse{Token: token, Role: services.RoleAdmin, User: admin})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPasswordHandler issues a one-time reset code by email. The response
// is identical whether or not the email exists.
func ForgotPasswordHandler(c echo.Context) error {
	req := new(forgotPasswordRequest)
	if err := c.Bind(req); err != nil || req.Email == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Email is required"})
	}

	resetCode, lawyer, err := services.GenerateResetCode(db.DB, req.Email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create reset code"})
	}

	if resetCode != nil {
		cfg, _ := c.Get("config").(*config.Config)
		services.SendEmailAsync(cfg, services.BuildPasswordResetEmail(lawyer.Email, lawyer.FullName(), resetCode.Code))
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "If the email exists, a reset code has been sent"})
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

// ResetPasswordHandler verifies the one-time code and sets a new password
func ResetPasswordHandler(c echo.Context) error {
	req := new(resetPasswordRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if req.Email == "" || req.Code == "" || req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Email, code and new password are required"})
	}

	if err := services.ResetPassword(db.DB, req.Email, req.Code, req.NewPassword); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Password updated"})
}
