package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MatiasdeBuren/consorcio-console/internal/apierr"
	"github.com/MatiasdeBuren/consorcio-console/internal/dtos"
)

func (c *Client) ListReservations(ctx context.Context, token string) ([]dtos.Reservation, error) {
	return getList[dtos.Reservation](ctx, c, token, AdminReservationsPath, "reservations", apierr.ResourceReservations)
}

func (c *Client) ListPendingReservations(ctx context.Context, token string) ([]dtos.Reservation, error) {
	return getList[dtos.Reservation](ctx, c, token, AdminReservationsPendingPath, "reservations", apierr.ResourceReservations)
}

func (c *Client) ApproveReservation(ctx context.Context, token string, id int) (dtos.Reservation, error) {
	path := fmt.Sprintf("%s/%d/approve", AdminReservationsPath, id)
	return getOne[dtos.Reservation](ctx, c, token, http.MethodPut, path, nil, apierr.ResourceReservations)
}

func (c *Client) RejectReservation(ctx context.Context, token string, id int) (dtos.Reservation, error) {
	path := fmt.Sprintf("%s/%d/reject", AdminReservationsPath, id)
	return getOne[dtos.Reservation](ctx, c, token, http.MethodPut, path, nil, apierr.ResourceReservations)
}

func (c *Client) CancelReservation(ctx context.Context, token string, id int) error {
	path := fmt.Sprintf("%s/%d/cancel", AdminReservationsPath, id)
	_, err := c.doRaw(ctx, token, http.MethodDelete, path, nil, apierr.ResourceReservations)
	if err != nil {
		return apierr.RefineDeleteError(apierr.ResourceReservations, err)
	}
	return nil
}
