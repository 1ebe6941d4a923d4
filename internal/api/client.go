package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/MatiasdeBuren/consorcio-console/internal/apierr"
	"github.com/MatiasdeBuren/consorcio-console/internal/logging"
)

// Client is the shared request path for every resource module. The bearer
// token is an argument on each call, not client state: the session owns it
// and threads it through, so an expired token swap never races a request.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		timeout:    timeout,
	}
}

// errorBody is the backend's error envelope. Older deployments send only
// `message`; `code` arrived later and wins when present.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// doRaw issues one authenticated request and returns the raw response body.
// Non-2xx responses come back as *apierr.APIError with a localized message.
func (c *Client) doRaw(
	ctx context.Context,
	token, method, path string,
	body any,
	resource apierr.Resource,
) (json.RawMessage, error) {
	logger := logging.Logger.WithFields(logrus.Fields{
		"method":    method,
		"path":      path,
		"requestID": uuid.New().String(),
	})

	var reqBody io.Reader
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			logger.WithError(err).Error("Failed to encode request body")
			return nil, apierr.Network(err)
		}
		reqBody = bytes.NewReader(payload)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		logger.WithError(err).Error("Failed to build request")
		return nil, apierr.Network(err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if (method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch) && len(payload) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.WithError(err).Error("Request failed")
		return nil, apierr.Network(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.WithError(err).Error("Failed to read response body")
		return nil, apierr.Network(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		if json.Unmarshal(raw, &eb) != nil || (eb.Code == "" && eb.Message == "") {
			eb.Message = strings.TrimSpace(string(raw))
		}
		apiErr := apierr.FromStatus(resource, resp.StatusCode, eb.Code, eb.Message)
		logger.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"code":   apiErr.Code,
		}).Warn(apiErr.Message)
		return nil, apiErr
	}

	logger.WithField("status", resp.StatusCode).Debug("Request completed")
	return raw, nil
}

// getOne decodes a single entity response.
func getOne[T any](
	ctx context.Context,
	c *Client,
	token, method, path string,
	body any,
	resource apierr.Resource,
) (T, error) {
	var out T
	raw, err := c.doRaw(ctx, token, method, path, body, resource)
	if err != nil {
		return out, err
	}
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		logging.Logger.WithError(err).WithField("path", path).Error("Failed to decode response")
		return out, apierr.Network(err)
	}
	return out, nil
}

// getList fetches a list endpoint tolerating both response shapes the backend
// has shipped over time: `{"<key>": [...]}` and a bare array. Anything else
// yields an empty list with a logged warning.
func getList[T any](
	ctx context.Context,
	c *Client,
	token, path, envelopeKey string,
	resource apierr.Resource,
) ([]T, error) {
	raw, err := c.doRaw(ctx, token, http.MethodGet, path, nil, resource)
	if err != nil {
		return nil, err
	}
	return normalizeList[T](raw, envelopeKey, path), nil
}

func normalizeList[T any](raw json.RawMessage, envelopeKey, path string) []T {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		logging.Logger.WithField("path", path).Warn("Empty list response, returning no items")
		return []T{}
	}

	switch trimmed[0] {
	case '[':
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			logging.Logger.WithError(err).WithField("path", path).Warn("Unparseable list response, returning no items")
			return []T{}
		}
		return items
	case '{':
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &envelope); err == nil {
			if inner, ok := envelope[envelopeKey]; ok {
				var items []T
				if err := json.Unmarshal(inner, &items); err == nil {
					return items
				}
			}
		}
	}

	logging.Logger.WithFields(logrus.Fields{
		"path": path,
		"key":  envelopeKey,
	}).Warn("Unexpected list response shape, returning no items")
	return []T{}
}
