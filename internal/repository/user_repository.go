package repository

import (
	"context"
	"strings"

	"github.com/iliyamo/limpopo-connect-web/internal/backend"
	"github.com/iliyamo/limpopo-connect-web/internal/model"
)

// UserRepo wraps the account endpoints of the backend.
type UserRepo struct{ API *backend.Client }

func NewUserRepo(api *backend.Client) *UserRepo { return &UserRepo{API: api} }

// Registration is the JSON body of POST /api/register.  A nil Age is sent
// as null.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Age      *int   `json:"age"`
	Location string `json:"location"`
}

// RegisterResult is the backend's acknowledgement of a new account.
type RegisterResult struct {
	Message  string `json:"message"`
	UserID   string `json:"user_id"`
	Verified bool   `json:"verified"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResp struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
}

// Register creates an account.
func (r *UserRepo) Register(ctx context.Context, reg Registration) (RegisterResult, error) {
	reg.Email = strings.TrimSpace(reg.Email)
	var out RegisterResult
	if err := r.API.PostJSON(ctx, "/api/register", reg, &out); err != nil {
		return RegisterResult{}, translate(err)
	}
	return out, nil
}

// Login verifies credentials and returns the minimal session user.
func (r *UserRepo) Login(ctx context.Context, email, password string) (model.User, error) {
	var out loginResp
	req := loginReq{Email: strings.TrimSpace(email), Password: password}
	if err := r.API.PostJSON(ctx, "/api/login", req, &out); err != nil {
		return model.User{}, translate(err)
	}
	return model.User{ID: out.UserID, Name: out.Name, Email: out.Email}, nil
}
