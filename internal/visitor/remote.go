package visitor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"evodex/internal/record"
	"evodex/pkg/models"
)

var (
	ErrSave = errors.New("failed to save remote record")
	ErrLoad = errors.New("failed to load remote record")
)

// Remote talks to the record endpoint at BaseURL.
type Remote struct {
	BaseURL string
	HTTP    *http.Client
}

func NewRemote(baseURL string, timeout time.Duration) *Remote {
	return &Remote{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

func (r *Remote) endpoint(name string) string {
	return r.BaseURL + "/users/" + url.PathEscape(name)
}

// Save stores caught under name. Names shorter than record.MinSaveNameLen
// after trimming are rejected without touching the network.
func (r *Remote) Save(ctx context.Context, name string, caught []string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if err := record.ValidateName(name, record.MinSaveNameLen); err != nil {
		return nil, err
	}
	if caught == nil {
		caught = []string{}
	}

	var u models.User
	status, err := r.doJSON(ctx, http.MethodPut, r.endpoint(name),
		map[string]any{"caughtFamilyIDs": caught}, &u)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSave, err)
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrSave, status)
	}
	return &u, nil
}

// Load fetches the record for name. A 404 maps to record.ErrNotFound.
func (r *Remote) Load(ctx context.Context, name string) (*models.User, error) {
	name = strings.TrimSpace(name)

	var u models.User
	status, err := r.doJSON(ctx, http.MethodGet, r.endpoint(name), nil, &u)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	switch {
	case status == http.StatusNotFound:
		return nil, record.ErrNotFound
	case status < 200 || status >= 300:
		return nil, fmt.Errorf("%w: status %d", ErrLoad, status)
	}
	if u.CaughtFamilyIDs == nil {
		u.CaughtFamilyIDs = []string{}
	}
	return &u, nil
}

// doJSON returns the response status. out is only decoded for 2xx.
func (r *Remote) doJSON(ctx context.Context, method, endpoint string, payload, out any) (int, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return 0, err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return 0, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.HTTP.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || out == nil {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	return resp.StatusCode, nil
}
