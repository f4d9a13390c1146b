package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/olimjons/clinicdesk/pkg/domain"
)

// fallbackUnauthorized is shown when the backend rejects the token
// without a message body.
const fallbackUnauthorized = "Unauthorized: token expired or invalid"

// Client is the clinic API client. Every backend call in the application
// goes through its do method; nothing else in the repo touches the network.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger

	mu    sync.RWMutex
	token string
}

// New creates a new API client. The client carries no timeout of its own;
// callers bound requests through the context if they need to.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		log:        zerolog.Nop(),
	}
}

// SetLogger routes request logs through l.
func (c *Client) SetLogger(l zerolog.Logger) {
	c.log = l
}

// SetToken installs the bearer token used for authenticated calls.
// An empty string removes it. The session manager is the only caller.
func (c *Client) SetToken(tok string) {
	c.mu.Lock()
	c.token = tok
	c.mu.Unlock()
}

// Token returns the current bearer token, or "" when logged out.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Result describes a completed backend call. NoContent distinguishes a
// 204 response from a call that never produced a result.
type Result struct {
	Status    int
	NoContent bool
}

// Do issues an authenticated request with the stored token.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) (Result, error) {
	return c.do(ctx, method, path, c.Token(), body, out)
}

// do is the single chokepoint for backend calls. Classification order:
// 401/403 -> AuthError, other non-2xx -> RequestError, 204 -> NoContent
// marker, anything else -> decode JSON into out (when out is non-nil).
// It never retries and never caches.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) (Result, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return Result{}, fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return Result{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	reqID := uuid.NewString()
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug().Str("req_id", reqID).Str("method", method).Str("path", path).Err(err).Msg("request transport failure")
		return Result{}, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	c.log.Debug().
		Str("req_id", reqID).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request completed")

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		msg := readBody(resp.Body)
		if msg == "" {
			msg = fallbackUnauthorized
		}
		return Result{Status: resp.StatusCode}, &AuthError{StatusCode: resp.StatusCode, Message: msg}

	case resp.StatusCode < 200 || resp.StatusCode > 299:
		msg := readBody(resp.Body)
		if msg == "" {
			msg = fmt.Sprintf("Request failed: %d", resp.StatusCode)
		}
		return Result{Status: resp.StatusCode}, &RequestError{StatusCode: resp.StatusCode, Message: msg}

	case resp.StatusCode == http.StatusNoContent:
		return Result{Status: resp.StatusCode, NoContent: true}, nil
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return Result{Status: resp.StatusCode}, fmt.Errorf("decode response: %w", err)
		}
	}
	return Result{Status: resp.StatusCode}, nil
}

// readBody drains an error response body as plain text.
func readBody(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 1<<20)) // 1 MB max error body
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// --- Auth ---

// LoginRequest is the payload for /auth/login.
type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// LoginResponse is the raw login reply before user normalization.
type LoginResponse struct {
	Token string         `json:"token"`
	User  domain.RawUser `json:"user"`
}

// Login authenticates with phone + password. The call is always issued
// without a bearer token, whatever the client currently holds.
func (c *Client) Login(ctx context.Context, phone, password string) (*LoginResponse, error) {
	var res LoginResponse
	if _, err := c.do(ctx, http.MethodPost, "/auth/login", "", LoginRequest{Phone: phone, Password: password}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// --- Patients ---

// CreatePatientRequest is the payload for creating a patient.
type CreatePatientRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	BirthDate string `json:"birth_date,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// ListPatients fetches all patients.
func (c *Client) ListPatients(ctx context.Context) ([]domain.Patient, error) {
	var patients []domain.Patient
	if _, err := c.Do(ctx, http.MethodGet, "/patients", nil, &patients); err != nil {
		return nil, fmt.Errorf("client.ListPatients: %w", err)
	}
	return patients, nil
}

// CreatePatient registers a new patient.
func (c *Client) CreatePatient(ctx context.Context, p CreatePatientRequest) (*domain.Patient, error) {
	var created domain.Patient
	if _, err := c.Do(ctx, http.MethodPost, "/patients", p, &created); err != nil {
		return nil, fmt.Errorf("client.CreatePatient: %w", err)
	}
	return &created, nil
}

// DeletePatient removes a patient by ID.
func (c *Client) DeletePatient(ctx context.Context, id int64) error {
	if _, err := c.Do(ctx, http.MethodDelete, "/patients/"+strconv.FormatInt(id, 10), nil, nil); err != nil {
		return fmt.Errorf("client.DeletePatient: %w", err)
	}
	return nil
}

// --- Appointments ---

// ListAppointments fetches appointments, optionally filtered by date
// (YYYY-MM-DD) and status.
func (c *Client) ListAppointments(ctx context.Context, date, status string) ([]domain.Appointment, error) {
	params := url.Values{}
	if date != "" {
		params.Set("date", date)
	}
	if status != "" {
		params.Set("status", status)
	}
	path := "/appointments"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var appts []domain.Appointment
	if _, err := c.Do(ctx, http.MethodGet, path, nil, &appts); err != nil {
		return nil, fmt.Errorf("client.ListAppointments: %w", err)
	}
	return appts, nil
}

// UpdateAppointmentStatus transitions an appointment to the given status.
func (c *Client) UpdateAppointmentStatus(ctx context.Context, id int64, status string) error {
	body := map[string]string{"status": status}
	if _, err := c.Do(ctx, http.MethodPatch, "/appointments/"+strconv.FormatInt(id, 10)+"/status", body, nil); err != nil {
		return fmt.Errorf("client.UpdateAppointmentStatus: %w", err)
	}
	return nil
}

// --- Services ---

// ListServices fetches services, optionally only active ones.
func (c *Client) ListServices(ctx context.Context, activeOnly bool) ([]domain.Service, error) {
	path := "/services"
	if activeOnly {
		path += "?active=true"
	}
	var services []domain.Service
	if _, err := c.Do(ctx, http.MethodGet, path, nil, &services); err != nil {
		return nil, fmt.Errorf("client.ListServices: %w", err)
	}
	return services, nil
}

// --- Staff ---

// ListStaff fetches clinic staff accounts. Admin only on the backend side.
func (c *Client) ListStaff(ctx context.Context) ([]domain.Staff, error) {
	var staff []domain.Staff
	if _, err := c.Do(ctx, http.MethodGet, "/admin/users", nil, &staff); err != nil {
		return nil, fmt.Errorf("client.ListStaff: %w", err)
	}
	return staff, nil
}

// --- Treatments ---

// ListTreatments fetches treatment records.
func (c *Client) ListTreatments(ctx context.Context) ([]domain.Treatment, error) {
	var treatments []domain.Treatment
	if _, err := c.Do(ctx, http.MethodGet, "/treatments", nil, &treatments); err != nil {
		return nil, fmt.Errorf("client.ListTreatments: %w", err)
	}
	return treatments, nil
}

// ListDebts fetches outstanding patient debts.
func (c *Client) ListDebts(ctx context.Context) ([]domain.DebtEntry, error) {
	var debts []domain.DebtEntry
	if _, err := c.Do(ctx, http.MethodGet, "/treatments/debts", nil, &debts); err != nil {
		return nil, fmt.Errorf("client.ListDebts: %w", err)
	}
	return debts, nil
}
