package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/novamarket/app/models"
	"github.com/shashiranjanraj/novamarket/app/services"
	"github.com/shashiranjanraj/novamarket/pkg/bind"
	"github.com/shashiranjanraj/novamarket/pkg/response"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

type registerInput struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authPayload struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// Register creates a customer account.
// POST /api/auth/register
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var in registerInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, token, err := c.auth.Register(in.Name, in.Email, in.Password)
	if err != nil {
		serviceError(w, err)
		return
	}

	response.Created(w, authPayload{User: user, Token: token})
}

// Login exchanges credentials for a JWT.
// POST /api/auth/login
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, token, err := c.auth.Login(in.Email, in.Password)
	if err != nil {
		serviceError(w, err)
		return
	}

	response.Success(w, authPayload{User: user, Token: token})
}
