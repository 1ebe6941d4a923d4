package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MatiasdeBuren/consorcio-console/internal/apierr"
	"github.com/MatiasdeBuren/consorcio-console/internal/dtos"
)

func (c *Client) ListAmenities(ctx context.Context, token string) ([]dtos.Amenity, error) {
	return getList[dtos.Amenity](ctx, c, token, AdminAmenitiesPath, "amenities", apierr.ResourceAmenities)
}

// CreateAmenity validates the draft before dispatching anything, so a bad
// capacity never reaches the network.
func (c *Client) CreateAmenity(ctx context.Context, token string, draft dtos.AmenityDraft) (dtos.Amenity, error) {
	req, err := draft.ToRequest()
	if err != nil {
		return dtos.Amenity{}, err
	}
	return getOne[dtos.Amenity](ctx, c, token, http.MethodPost, AdminAmenitiesPath, req, apierr.ResourceAmenities)
}

func (c *Client) UpdateAmenity(ctx context.Context, token string, id int, draft dtos.AmenityDraft) (dtos.Amenity, error) {
	req, err := draft.ToRequest()
	if err != nil {
		return dtos.Amenity{}, err
	}
	path := fmt.Sprintf("%s/%d", AdminAmenitiesPath, id)
	return getOne[dtos.Amenity](ctx, c, token, http.MethodPut, path, req, apierr.ResourceAmenities)
}

func (c *Client) DeleteAmenity(ctx context.Context, token string, id int) error {
	path := fmt.Sprintf("%s/%d", AdminAmenitiesPath, id)
	_, err := c.doRaw(ctx, token, http.MethodDelete, path, nil, apierr.ResourceAmenities)
	if err != nil {
		return apierr.RefineDeleteError(apierr.ResourceAmenities, err)
	}
	return nil
}

// AmenityReservations feeds the analytics views.
func (c *Client) AmenityReservations(ctx context.Context, token string, id int) ([]dtos.Reservation, error) {
	path := fmt.Sprintf("%s/%d/reservations", AdminAmenitiesPath, id)
	return getList[dtos.Reservation](ctx, c, token, path, "reservations", apierr.ResourceReservations)
}
