package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MatiasdeBuren/consorcio-console/internal/apierr"
	"github.com/MatiasdeBuren/consorcio-console/internal/dtos"
)

func (c *Client) ListUsers(ctx context.Context, token string) ([]dtos.User, error) {
	return getList[dtos.User](ctx, c, token, AdminUsersPath, "users", apierr.ResourceUsers)
}

// UpdateUserRole changes a user's role and returns the updated user.
func (c *Client) UpdateUserRole(ctx context.Context, token string, id int, draft dtos.UserRoleDraft) (dtos.User, error) {
	req, err := draft.ToRequest()
	if err != nil {
		return dtos.User{}, err
	}
	path := fmt.Sprintf("%s/%d/role", AdminUsersPath, id)
	return getOne[dtos.User](ctx, c, token, http.MethodPut, path, req, apierr.ResourceUsers)
}
