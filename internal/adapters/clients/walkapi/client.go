package walkapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/blochwalk/blochwalk/internal/adapters/clients"
	"github.com/blochwalk/blochwalk/internal/domain"
	"github.com/blochwalk/blochwalk/internal/platform/logging"
)

// serviceName identifies this dependency in errors and health checks.
const serviceName = "walk-service"

// basePath is the API prefix all walk endpoints live under.
const basePath = "/api/v1"

// Config holds the dependencies for a Client.
type Config struct {
	// Client is the underlying HTTP client with retries and circuit
	// breaking. Required.
	Client *clients.Client

	// Logger for request tracing. Defaults to slog.Default().
	Logger *slog.Logger
}

// Client talks to a remote walk service.
type Client struct {
	client *clients.Client
	logger *slog.Logger
}

// New creates a walk API client. Panics if cfg.Client is nil.
func New(cfg Config) *Client {
	if cfg.Client == nil {
		panic("walkapi: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		client: cfg.Client,
		logger: logger,
	}
}

// Wire types mirror the server's JSON responses. They stay unexported:
// everything leaving this package is a translated view type.

type complexValue struct {
	Re float64 `json:"re"`
	Im float64 `json:"im"`
}

type stateResponse struct {
	Alpha    complexValue  `json:"alpha"`
	Beta     complexValue  `json:"beta"`
	Position domain.Vector `json:"position"`
	ThetaDeg float64       `json:"thetaDeg"`
	PhiDeg   float64       `json:"phiDeg"`
	ProbZero float64       `json:"probZero"`
	ProbOne  float64       `json:"probOne"`
}

type walkResponse struct {
	ID        string        `json:"id"`
	Label     string        `json:"label,omitempty"`
	State     stateResponse `json:"state"`
	Gates     int           `json:"gates"`
	Distance  float64       `json:"distance"`
	Version   int           `json:"version"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

type gateAppliedResponse struct {
	walkResponse

	StepDistance float64 `json:"stepDistance"`
}

type trailResponse struct {
	WalkID string          `json:"walkId"`
	Points []domain.Vector `json:"points"`
	Count  int             `json:"count"`
}

type stepResponse struct {
	Gate      string    `json:"gate"`
	ThetaDeg  float64   `json:"thetaDeg,omitempty"`
	PhiDeg    float64   `json:"phiDeg,omitempty"`
	AppliedAt time.Time `json:"appliedAt"`
}

type circuitResponse struct {
	WalkID  string         `json:"walkId"`
	Diagram string         `json:"diagram"`
	Steps   []stepResponse `json:"steps"`
}

type gateInfoResponse struct {
	Name       string             `json:"name"`
	Title      string             `json:"title"`
	TakesTheta bool               `json:"takesTheta"`
	TakesPhi   bool               `json:"takesPhi"`
	Matrix     [2][2]complexValue `json:"matrix"`
}

type gateListResponse struct {
	Gates []gateInfoResponse `json:"gates"`
}

type walkSummaryResponse struct {
	ID        string        `json:"id"`
	Label     string        `json:"label,omitempty"`
	Gates     int           `json:"gates"`
	Distance  float64       `json:"distance"`
	Position  domain.Vector `json:"position"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

type walkListResponse struct {
	Items      []walkSummaryResponse `json:"items"`
	NextCursor string                `json:"nextCursor,omitempty"`
	HasMore    bool                  `json:"hasMore"`
}

// State is the translated view of a walk's qubit state.
type State struct {
	Alpha    complex128
	Beta     complex128
	Position domain.Vector
	ThetaDeg float64
	PhiDeg   float64
	ProbZero float64
	ProbOne  float64
}

// Walk is the translated view of a remote walk.
type Walk struct {
	ID        string
	Label     string
	State     State
	Gates     int
	Distance  float64
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GateResult is a walk plus the arc length the last gate moved it.
type GateResult struct {
	Walk

	StepDistance float64
}

// Trail is the translated trail of Bloch-sphere points.
type Trail struct {
	WalkID string
	Points []domain.Vector
}

// Step is one applied gate in a walk's circuit.
type Step struct {
	Gate      string
	ThetaDeg  float64
	PhiDeg    float64
	AppliedAt time.Time
}

// Circuit is the ordered gate history of a remote walk.
type Circuit struct {
	WalkID  string
	Diagram string
	Steps   []Step
}

// GateInfo describes one gate from the server's catalog.
type GateInfo struct {
	Name       string
	Title      string
	TakesTheta bool
	TakesPhi   bool
	Matrix     [2][2]complex128
}

// WalkPage is one page of a walk listing.
type WalkPage struct {
	Walks      []WalkSummary
	NextCursor string
	HasMore    bool
}

// WalkSummary is the compact listing form of a walk.
type WalkSummary struct {
	ID        string
	Label     string
	Gates     int
	Distance  float64
	Position  domain.Vector
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GateRequest describes a gate to apply remotely. ThetaDeg and PhiDeg
// are only sent when non-nil, matching the server's optional fields.
type GateRequest struct {
	Gate     string   `json:"gate"`
	ThetaDeg *float64 `json:"thetaDeg,omitempty"`
	PhiDeg   *float64 `json:"phiDeg,omitempty"`
}

// CreateWalk starts a new walk on the server. The label may be empty.
func (c *Client) CreateWalk(ctx context.Context, label string) (*Walk, error) {
	const operation = "create walk"

	body, err := json.Marshal(map[string]string{"label": label})
	if err != nil {
		return nil, fmt.Errorf("encoding create request: %w", err)
	}

	ext, err := doJSON[walkResponse](ctx, c, http.MethodPost, basePath+"/walks", bytes.NewReader(body), operation, "")
	if err != nil {
		return nil, err
	}

	return translateWalk(ext)
}

// GetWalk fetches a walk by ID.
func (c *Client) GetWalk(ctx context.Context, id string) (*Walk, error) {
	const operation = "get walk"

	if id == "" {
		return nil, domain.NewValidationError("id", "is required")
	}

	ext, err := doJSON[walkResponse](ctx, c, http.MethodGet, walkPath(id), nil, operation, id)
	if err != nil {
		return nil, err
	}

	return translateWalk(ext)
}

// ListWalks fetches one page of walks. An empty cursor starts from the
// beginning; limit <= 0 lets the server pick its default page size.
func (c *Client) ListWalks(ctx context.Context, cursor string, limit int) (*WalkPage, error) {
	const operation = "list walks"

	path := basePath + "/walks"

	query := url.Values{}
	if cursor != "" {
		query.Set("cursor", cursor)
	}

	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	ext, err := doJSON[walkListResponse](ctx, c, http.MethodGet, path, nil, operation, "")
	if err != nil {
		return nil, err
	}

	page := &WalkPage{
		Walks:      make([]WalkSummary, 0, len(ext.Items)),
		NextCursor: ext.NextCursor,
		HasMore:    ext.HasMore,
	}

	for i := range ext.Items {
		summary, err := translateSummary(&ext.Items[i])
		if err != nil {
			return nil, fmt.Errorf("translating walk %d: %w", i, err)
		}

		page.Walks = append(page.Walks, *summary)
	}

	return page, nil
}

// ApplyGate applies a gate to a remote walk and returns the updated
// walk with the step's arc distance.
func (c *Client) ApplyGate(ctx context.Context, id string, gate GateRequest) (*GateResult, error) {
	const operation = "apply gate"

	if id == "" {
		return nil, domain.NewValidationError("id", "is required")
	}

	if gate.Gate == "" {
		return nil, domain.NewValidationError("gate", "is required")
	}

	body, err := json.Marshal(gate)
	if err != nil {
		return nil, fmt.Errorf("encoding gate request: %w", err)
	}

	ext, err := doJSON[gateAppliedResponse](ctx, c, http.MethodPost, walkPath(id)+"/gates", bytes.NewReader(body), operation, id)
	if err != nil {
		return nil, err
	}

	walk, err := translateWalk(&ext.walkResponse)
	if err != nil {
		return nil, err
	}

	return &GateResult{Walk: *walk, StepDistance: ext.StepDistance}, nil
}

// UndoGate removes the most recent gate from a remote walk.
func (c *Client) UndoGate(ctx context.Context, id string) (*Walk, error) {
	const operation = "undo gate"

	if id == "" {
		return nil, domain.NewValidationError("id", "is required")
	}

	ext, err := doJSON[walkResponse](ctx, c, http.MethodPost, walkPath(id)+"/undo", nil, operation, id)
	if err != nil {
		return nil, err
	}

	return translateWalk(ext)
}

// ResetWalk clears a remote walk back to |0⟩.
func (c *Client) ResetWalk(ctx context.Context, id string) (*Walk, error) {
	const operation = "reset walk"

	if id == "" {
		return nil, domain.NewValidationError("id", "is required")
	}

	ext, err := doJSON[walkResponse](ctx, c, http.MethodPost, walkPath(id)+"/reset", nil, operation, id)
	if err != nil {
		return nil, err
	}

	return translateWalk(ext)
}

// DeleteWalk removes a remote walk.
func (c *Client) DeleteWalk(ctx context.Context, id string) error {
	const operation = "delete walk"

	if id == "" {
		return domain.NewValidationError("id", "is required")
	}

	resp, err := c.client.Delete(ctx, walkPath(id))
	if err != nil {
		return mapHTTPError(nil, err, operation, id)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusNoContent {
		return mapHTTPError(resp, nil, operation, id)
	}

	return nil
}

// GetTrail fetches the Bloch-sphere trail of a remote walk.
func (c *Client) GetTrail(ctx context.Context, id string) (*Trail, error) {
	const operation = "get trail"

	if id == "" {
		return nil, domain.NewValidationError("id", "is required")
	}

	ext, err := doJSON[trailResponse](ctx, c, http.MethodGet, walkPath(id)+"/trail", nil, operation, id)
	if err != nil {
		return nil, err
	}

	return &Trail{WalkID: ext.WalkID, Points: ext.Points}, nil
}

// GetCircuit fetches the gate history of a remote walk.
func (c *Client) GetCircuit(ctx context.Context, id string) (*Circuit, error) {
	const operation = "get circuit"

	if id == "" {
		return nil, domain.NewValidationError("id", "is required")
	}

	ext, err := doJSON[circuitResponse](ctx, c, http.MethodGet, walkPath(id)+"/circuit", nil, operation, id)
	if err != nil {
		return nil, err
	}

	circuit := &Circuit{
		WalkID:  ext.WalkID,
		Diagram: ext.Diagram,
		Steps:   make([]Step, 0, len(ext.Steps)),
	}

	for _, s := range ext.Steps {
		circuit.Steps = append(circuit.Steps, Step{
			Gate:      s.Gate,
			ThetaDeg:  s.ThetaDeg,
			PhiDeg:    s.PhiDeg,
			AppliedAt: s.AppliedAt,
		})
	}

	return circuit, nil
}

// ListGates fetches the server's gate catalog.
func (c *Client) ListGates(ctx context.Context) ([]GateInfo, error) {
	const operation = "list gates"

	ext, err := doJSON[gateListResponse](ctx, c, http.MethodGet, basePath+"/gates", nil, operation, "")
	if err != nil {
		return nil, err
	}

	gates := make([]GateInfo, 0, len(ext.Gates))
	for _, g := range ext.Gates {
		gates = append(gates, GateInfo{
			Name:       g.Name,
			Title:      g.Title,
			TakesTheta: g.TakesTheta,
			TakesPhi:   g.TakesPhi,
			Matrix:     translateMatrix(g.Matrix),
		})
	}

	return gates, nil
}

// BlochSVG fetches the rendered Bloch-sphere SVG for a walk.
func (c *Client) BlochSVG(ctx context.Context, id string) ([]byte, error) {
	const operation = "render bloch svg"

	if id == "" {
		return nil, domain.NewValidationError("id", "is required")
	}

	resp, err := c.client.Get(ctx, walkPath(id)+"/bloch.svg")
	if err != nil {
		return nil, mapHTTPError(nil, err, operation, id)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, mapHTTPError(resp, nil, operation, id)
	}

	svg, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading svg response: %w", err)
	}

	return svg, nil
}

// Name returns the health check name for this client.
// Implements ports.HealthChecker.
func (c *Client) Name() string {
	return serviceName
}

// Check verifies connectivity by hitting the server's liveness probe.
// Implements ports.HealthChecker.
func (c *Client) Check(ctx context.Context) error {
	resp, err := c.client.Get(ctx, "/-/live")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("walk service returned status %d", resp.StatusCode)
	}

	return nil
}

// walkPath builds the path for a single-walk endpoint. The ID is
// escaped so caller input cannot smuggle path segments.
func walkPath(id string) string {
	return basePath + "/walks/" + url.PathEscape(id)
}

// doJSON executes a request and decodes a JSON response of type T.
// Non-2xx responses and transport failures come back as domain errors.
func doJSON[T any](ctx context.Context, c *Client, method, path string, body io.Reader, operation, entityID string) (*T, error) {
	c.logger.Log(ctx, logging.LevelTrace, "starting request",
		slog.String("method", method),
		slog.String("path", path))

	var (
		resp *http.Response
		err  error
	)

	switch method {
	case http.MethodGet:
		resp, err = c.client.Get(ctx, path)
	case http.MethodPost:
		resp, err = c.client.Post(ctx, path, body)
	default:
		return nil, fmt.Errorf("unsupported method %s", method)
	}

	if err != nil {
		return nil, mapHTTPError(nil, err, operation, entityID)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Log(ctx, logging.LevelTrace, "request complete",
		slog.String("path", path),
		slog.Int("status", resp.StatusCode))

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, mapHTTPError(resp, nil, operation, entityID)
	}

	var result T
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding %s response: %w", operation, err)
	}

	return &result, nil
}

// translateWalk converts the wire walk to the exported view, checking
// the fields the CLI relies on.
func translateWalk(ext *walkResponse) (*Walk, error) {
	if ext.ID == "" {
		return nil, domain.NewValidationError("id", "missing in response")
	}

	return &Walk{
		ID:        ext.ID,
		Label:     ext.Label,
		State:     translateState(&ext.State),
		Gates:     ext.Gates,
		Distance:  ext.Distance,
		Version:   ext.Version,
		CreatedAt: ext.CreatedAt,
		UpdatedAt: ext.UpdatedAt,
	}, nil
}

// translateSummary converts a wire listing entry to the exported view.
func translateSummary(ext *walkSummaryResponse) (*WalkSummary, error) {
	if ext.ID == "" {
		return nil, domain.NewValidationError("id", "missing in response")
	}

	return &WalkSummary{
		ID:        ext.ID,
		Label:     ext.Label,
		Gates:     ext.Gates,
		Distance:  ext.Distance,
		Position:  ext.Position,
		CreatedAt: ext.CreatedAt,
		UpdatedAt: ext.UpdatedAt,
	}, nil
}

// translateState converts the wire state to the exported view.
func translateState(ext *stateResponse) State {
	return State{
		Alpha:    complex(ext.Alpha.Re, ext.Alpha.Im),
		Beta:     complex(ext.Beta.Re, ext.Beta.Im),
		Position: ext.Position,
		ThetaDeg: ext.ThetaDeg,
		PhiDeg:   ext.PhiDeg,
		ProbZero: ext.ProbZero,
		ProbOne:  ext.ProbOne,
	}
}

// translateMatrix converts a wire gate matrix to complex form.
func translateMatrix(ext [2][2]complexValue) [2][2]complex128 {
	var m [2][2]complex128
	for i := range ext {
		for j := range ext[i] {
			m[i][j] = complex(ext[i][j].Re, ext[i][j].Im)
		}
	}

	return m
}
