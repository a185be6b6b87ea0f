package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/food-ordering-app/middlewares"
	"github.com/yeremiapane/food-ordering-app/services"
	"github.com/yeremiapane/food-ordering-app/utils"
)

type UserController struct {
	Auth         *services.AuthService
	CookieSecure bool
	CookieMaxAge int
}

func NewUserController(auth *services.AuthService, cookieSecure bool, cookieMaxAge int) *UserController {
	return &UserController{Auth: auth, CookieSecure: cookieSecure, CookieMaxAge: cookieMaxAge}
}

func (uc *UserController) setAuthCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middlewares.AuthCookie, token, maxAge, "/", "", uc.CookieSecure, true)
}

func (uc *UserController) respondSession(c *gin.Context, code int, message string, s *services.Session) {
	uc.setAuthCookie(c, s.Token, uc.CookieMaxAge)
	utils.RespondJSON(c, code, message, gin.H{
		"user":  s.User.Summary(),
		"token": s.Token,
	})
}

// Register creates a CUSTOMER or OWNER account.
func (uc *UserController) Register(c *gin.Context) {
	var req services.RegisterInput
	if !bindBody(c, &req) {
		return
	}
	session, err := uc.Auth.Register(c.Request.Context(), req)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	uc.respondSession(c, http.StatusCreated, "User registered", session)
}

func (uc *UserController) Login(c *gin.Context) {
	var req services.LoginInput
	if !bindBody(c, &req) {
		return
	}
	session, err := uc.Auth.Login(c.Request.Context(), req)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	uc.respondSession(c, http.StatusOK, "Login successful", session)
}

// Logout revokes the presented credential and clears the cookie.
func (uc *UserController) Logout(c *gin.Context) {
	claims, _ := c.Get(middlewares.ContextClaims)
	cc, _ := claims.(*utils.CustomClaims)
	if err := uc.Auth.Logout(c.Request.Context(), cc); err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	uc.setAuthCookie(c, "", -1)
	utils.RespondJSON(c, http.StatusOK, "Logged out successfully", nil)
}

func (uc *UserController) Profile(c *gin.Context) {
	user, err := uc.Auth.Profile(c.Request.Context(), actorFrom(c).UserID)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Profile", user.Summary())
}

func (uc *UserController) UpdateProfile(c *gin.Context) {
	var req services.ProfileUpdate
	if !bindBody(c, &req) {
		return
	}
	user, err := uc.Auth.UpdateProfile(c.Request.Context(), actorFrom(c).UserID, req)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Profile updated successfully", user.Summary())
}
