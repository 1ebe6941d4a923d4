package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MatiasdeBuren/consorcio-console/internal/apierr"
	"github.com/MatiasdeBuren/consorcio-console/internal/dtos"
)

func (c *Client) ListApartments(ctx context.Context, token string) ([]dtos.Apartment, error) {
	return getList[dtos.Apartment](ctx, c, token, AdminApartmentsPath, "apartments", apierr.ResourceApartments)
}

// CreateApartment validates the draft before dispatching anything.
func (c *Client) CreateApartment(ctx context.Context, token string, draft dtos.ApartmentDraft) (dtos.Apartment, error) {
	req, err := draft.ToRequest()
	if err != nil {
		return dtos.Apartment{}, err
	}
	return getOne[dtos.Apartment](ctx, c, token, http.MethodPost, AdminApartmentsPath, req, apierr.ResourceApartments)
}

func (c *Client) UpdateApartment(ctx context.Context, token string, id int, draft dtos.ApartmentDraft) (dtos.Apartment, error) {
	req, err := draft.ToRequest()
	if err != nil {
		return dtos.Apartment{}, err
	}
	path := fmt.Sprintf("%s/%d", AdminApartmentsPath, id)
	return getOne[dtos.Apartment](ctx, c, token, http.MethodPut, path, req, apierr.ResourceApartments)
}

func (c *Client) DeleteApartment(ctx context.Context, token string, id int) error {
	path := fmt.Sprintf("%s/%d", AdminApartmentsPath, id)
	_, err := c.doRaw(ctx, token, http.MethodDelete, path, nil, apierr.ResourceApartments)
	if err != nil {
		return apierr.RefineDeleteError(apierr.ResourceApartments, err)
	}
	return nil
}
