package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/MatiasdeBuren/consorcio-console/internal/apierr"
	"github.com/MatiasdeBuren/consorcio-console/internal/dtos"
)

func (c *Client) AdminStats(ctx context.Context, token string) (dtos.AdminStats, error) {
	return getOne[dtos.AdminStats](ctx, c, token, http.MethodGet, AdminStatsPath, nil, apierr.ResourceStats)
}

// ClaimStats fetches claim counts for one period window. offset counts
// windows back from the current one (0 = current).
func (c *Client) ClaimStats(ctx context.Context, token, period string, offset int) (dtos.ClaimStats, error) {
	query := url.Values{}
	query.Set("period", period)
	query.Set("offset", fmt.Sprintf("%d", offset))
	path := AdminClaimStatsPath + "?" + query.Encode()
	return getOne[dtos.ClaimStats](ctx, c, token, http.MethodGet, path, nil, apierr.ResourceClaims)
}
