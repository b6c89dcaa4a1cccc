package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecowash/ecowash-backend/internal/middleware"
	"github.com/ecowash/ecowash-backend/internal/model"
	"github.com/ecowash/ecowash-backend/internal/service"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Auth *service.AuthService
}

func NewAuthHandler(a *service.AuthService) *AuthHandler {
	return &AuthHandler{Auth: a}
}

// ----- DTOs -----

type registerReq struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Phone     string `json:"phone" validate:"required,max=50"`
	Password  string `json:"password" validate:"required,min=6,max=72"`
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResp struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Token     string `json:"token,omitempty"`
}

type adminResp struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	Token   string `json:"token"`
}

func toUserResp(u model.User, token string) userResp {
	return userResp{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		Token:     token,
	}
}

// Register: create user and sign them in.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	u, tok, err := h.Auth.Register(ctx, service.Registration{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
	})
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(http.StatusCreated, toUserResp(u, tok.Token))
}

// Login: verify credentials and issue a user token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	u, tok, err := h.Auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(http.StatusOK, toUserResp(u, tok.Token))
}

// AdminLogin: verify operator credentials and issue an admin token.
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	var req loginReq
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	a, tok, err := h.Auth.AdminLogin(ctx, req.Email, req.Password)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(http.StatusOK, adminResp{ID: a.ID, Email: a.Email, IsAdmin: true, Token: tok.Token})
}

// Me returns the signed-in user's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return message(c, http.StatusUnauthorized, "Non autorisé")
	}
	return c.JSON(http.StatusOK, toUserResp(u, ""))
}
