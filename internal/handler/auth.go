package handler

import (
	"net/http"
	"time"

	"github.com/Re1354/building-management-system/internal/models"
	"github.com/Re1354/building-management-system/internal/service"
	"github.com/Re1354/building-management-system/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler serves register, login and me.
type AuthHandler struct {
	Users  *service.UserService
	Tokens *util.SessionTokens
	Log    *zap.Logger
}

func NewAuthHandler(users *service.UserService, tokens *util.SessionTokens, log *zap.Logger) *AuthHandler {
	return &AuthHandler{Users: users, Tokens: tokens, Log: log}
}

type userResp struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResp(u *models.User) userResp {
	return userResp{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, CreatedAt: u.CreatedAt}
}

type registerReq struct {
	Name     string `json:"name" binding:"max=128"`
	Email    string `json:"email" binding:"max=255"`
	Password string `json:"password" binding:"max=128"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.Users.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		util.Fail(c, h.Log, err)
		return
	}

	token, err := h.Tokens.Issue(user.ID)
	if err != nil {
		h.Log.Error("sign token", zap.Error(err))
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Server error")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  toUserResp(user),
	})
}

type loginReq struct {
	Email    string `json:"email" binding:"max=255"`
	Password string `json:"password" binding:"max=128"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.Users.Authenticate(c.Request.Context(), req.Email, req.Password, c.ClientIP())
	if err != nil {
		util.Fail(c, h.Log, err)
		return
	}

	token, err := h.Tokens.Issue(user.ID)
	if err != nil {
		h.Log.Error("sign token", zap.Error(err))
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  toUserResp(user),
	})
}

// Me returns the user resolved by the auth middleware.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": toUserResp(user)})
}
