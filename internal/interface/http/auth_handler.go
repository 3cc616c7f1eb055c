package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/devtrails/bootcamp-api/config"
	"github.com/devtrails/bootcamp-api/internal/domain/entity"
	"github.com/devtrails/bootcamp-api/internal/domain/repository"
	"github.com/devtrails/bootcamp-api/internal/interface/middleware"
	"github.com/devtrails/bootcamp-api/pkg/helpers"
	"github.com/devtrails/bootcamp-api/pkg/mailer"
	"github.com/devtrails/bootcamp-api/pkg/response"
	"github.com/devtrails/bootcamp-api/pkg/validation"
)

const resetTokenTTL = 10 * time.Minute

type AuthHandler struct {
	Users   repository.UserRepository
	JWT     *helpers.JWTManager
	Cookies *helpers.CookieManager
	Logger  *logrus.Logger
	Cfg     *config.Config
	Mailgun *mailer.Mailgun
	Pub     *helpers.RabbitPublisher
}

func NewAuthHandler(users repository.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger, cfg *config.Config, mg *mailer.Mailgun, pub *helpers.RabbitPublisher) *AuthHandler {
	return &AuthHandler{
		Users:   users,
		JWT:     jwt,
		Cookies: helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure || cfg.Production()),
		Logger:  logger,
		Cfg:     cfg,
		Mailgun: mg,
		Pub:     pub,
	}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Role     string `json:"role" binding:"omitempty,oneof=user publisher"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// sendToken writes the signed token in the body and mirrors it in an
// httponly cookie.
func (h *AuthHandler) sendToken(c *gin.Context, status int, user *entity.User) {
	token, exp, err := h.JWT.GenerateToken(user.ID.Hex())
	if err != nil {
		response.FromError(c, h.Logger, err, "")
		return
	}
	h.Cookies.SetToken(c, token, exp)
	c.JSON(status, gin.H{"success": true, "token": token})
}

// Register POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, validation.Message(err))
		return
	}

	hash, err := helpers.HashPassword(req.Password)
	if err != nil {
		response.FromError(c, h.Logger, err, "")
		return
	}
	role := req.Role
	if role == "" {
		role = entity.RoleUser
	}
	user := &entity.User{Name: req.Name, Email: req.Email, Role: role, Password: hash}
	if err := h.Users.Create(c.Request.Context(), user); err != nil {
		response.FromError(c, h.Logger, err, "")
		return
	}
	h.sendToken(c, http.StatusOK, user)
}

// Login POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Please enter username and password.")
		return
	}

	user, err := h.Users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil || !helpers.CompareHashAndPassword(user.Password, req.Password) {
		response.Fail(c, http.StatusUnauthorized, "Bad credentials.")
		return
	}
	h.sendToken(c, http.StatusOK, user)
}

// Me GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	response.OK(c, http.StatusOK, middleware.CurrentUser(c))
}

// Logout GET /api/v1/auth/logout
// Tokens stay valid until expiry; logout only drops the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.OK(c, http.StatusOK, gin.H{})
}

// ForgotPassword POST /api/v1/auth/forgot-password
// Always answers 200 so the endpoint cannot be used to enumerate emails.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, validation.Message(err))
		return
	}

	user, err := h.Users.GetByEmail(c.Request.Context(), req.Email)
	if err == nil {
		raw, hashed, terr := helpers.GenResetToken()
		if terr != nil {
			response.FromError(c, h.Logger, terr, "")
			return
		}
		user.ResetPasswordToken = hashed
		user.ResetPasswordExpire = time.Now().UTC().Add(resetTokenTTL)
		if uerr := h.Users.Update(c.Request.Context(), user); uerr != nil {
			response.FromError(c, h.Logger, uerr, "")
			return
		}
		h.deliverResetEmail(c, user, raw)
	}

	response.OK(c, http.StatusOK, "Email sent.")
}

func (h *AuthHandler) deliverResetEmail(c *gin.Context, user *entity.User, rawToken string) {
	if !h.Cfg.MailSendEnabled {
		return
	}
	link := h.Cfg.ResetPasswordURL + "/" + rawToken
	subject := "Password reset request"
	text := "You are receiving this email because you (or someone else) requested a password reset. " +
		"Make a PUT request to: " + link

	// Prefer the queue so delivery never blocks the request; fall back to
	// sending inline when no broker is configured.
	if h.Pub != nil {
		job := mailer.EmailJob{To: user.Email, Subject: subject, Text: text}
		if err := h.Pub.PublishJSON(c.Request.Context(), job); err == nil {
			return
		} else if h.Logger != nil {
			h.Logger.WithField("error", err.Error()).Warn("enqueue reset email failed, sending inline")
		}
	}
	if h.Mailgun != nil {
		if err := h.Mailgun.Send(c.Request.Context(), user.Email, subject, text, ""); err != nil && h.Logger != nil {
			h.Logger.WithField("error", err.Error()).Error("sending reset email failed")
		}
	}
}

// ResetPassword PUT /api/v1/auth/reset-password/:resetToken
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req struct {
		Password string `json:"password" binding:"required,pwd"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, validation.Message(err))
		return
	}

	hashedToken := helpers.HashResetToken(c.Param("resetToken"))
	user, err := h.Users.GetByResetToken(c.Request.Context(), hashedToken)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid token.")
		return
	}

	hash, err := helpers.HashPassword(req.Password)
	if err != nil {
		response.FromError(c, h.Logger, err, "")
		return
	}
	user.Password = hash
	user.ResetPasswordToken = ""
	user.ResetPasswordExpire = time.Time{}
	if err := h.Users.Update(c.Request.Context(), user); err != nil {
		response.FromError(c, h.Logger, err, "")
		return
	}
	h.sendToken(c, http.StatusOK, user)
}
