package client

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

	"github.com/daniacca/rdmc/internal/rxn"
	"github.com/gorilla/websocket"
)

// ModelBuilder provides a fluent API for building reaction network models.
// Use it to declare species, tabulated complex rates and reactions, then
// call Build to obtain a ModelConfig or send it to a compile server.
type ModelBuilder struct {
	name         string
	species      []rxn.SpeciesConfig
	complexRates []rxn.ComplexRateConfig
	reactions    []*ReactionBuilder
	settings     rxn.SettingsConfig
}

// NewModel creates a new model builder with the given name.
func NewModel(name string) *ModelBuilder {
	return &ModelBuilder{
		name:      name,
		species:   make([]rxn.SpeciesConfig, 0),
		reactions: make([]*ReactionBuilder, 0),
	}
}

// Volume adds a species that diffuses in 3D with the given diffusion constant.
func (mb *ModelBuilder) Volume(name string, diffusion float64) *ModelBuilder {
	mb.species = append(mb.species, rxn.SpeciesConfig{Name: name, Kind: string(rxn.KindVolume), Diffusion: diffusion})
	return mb
}

// Surface adds a species that lives on surfaces.
func (mb *ModelBuilder) Surface(name string, diffusion float64) *ModelBuilder {
	mb.species = append(mb.species, rxn.SpeciesConfig{Name: name, Kind: string(rxn.KindSurface), Diffusion: diffusion})
	return mb
}

// SurfaceClass adds a surface class. Surface classes mark wall properties
// and take part in reactions as the last reactant.
func (mb *ModelBuilder) SurfaceClass(name string) *ModelBuilder {
	mb.species = append(mb.species, rxn.SpeciesConfig{Name: name, Kind: string(rxn.KindSurfaceClass)})
	return mb
}

// ComplexRate declares a tabulated rate that reactions can refer to by name.
func (mb *ModelBuilder) ComplexRate(name string, rates ...float64) *ModelBuilder {
	mb.complexRates = append(mb.complexRates, rxn.ComplexRateConfig{Name: name, Rates: rates})
	return mb
}

// Reaction adds a reaction definition to the model.
func (mb *ModelBuilder) Reaction(rb *ReactionBuilder) *ModelBuilder {
	mb.reactions = append(mb.reactions, rb)
	return mb
}

// PbFactor sets the calibration factor applied to every reaction.
func (mb *ModelBuilder) PbFactor(f float64) *ModelBuilder {
	mb.settings.PbFactor = &f
	return mb
}

// ProbabilityReport asks the compiler to report every pathway probability.
func (mb *ModelBuilder) ProbabilityReport(enabled bool) *ModelBuilder {
	mb.settings.ProbabilityReport = enabled
	return mb
}

// HighProbabilityPolicy sets how probabilities above the warning threshold
// are handled: "cope", "warn" or "error".
func (mb *ModelBuilder) HighProbabilityPolicy(policy string) *ModelBuilder {
	mb.settings.HighProbabilityPolicy = policy
	return mb
}

// Build converts the builder to a ModelConfig.
func (mb *ModelBuilder) Build() rxn.ModelConfig {
	reactions := make([]rxn.ReactionConfig, 0, len(mb.reactions))
	for _, rb := range mb.reactions {
		reactions = append(reactions, rb.Build())
	}

	return rxn.ModelConfig{
		Name:         mb.name,
		Species:      mb.species,
		Reactions:    reactions,
		ComplexRates: mb.complexRates,
		Settings:     mb.settings,
	}
}

// ReactionBuilder provides a fluent API for building one reaction pathway.
type ReactionBuilder struct {
	name      string
	reactants []rxn.PlayerConfig
	products  []rxn.PlayerConfig
	rate      rxn.RateConfig
	flag      string
}

// NewReaction creates a reaction with the given reactant species, all
// without orientation. Use Reactant to add oriented reactants.
func NewReaction(reactants ...string) *ReactionBuilder {
	rb := &ReactionBuilder{}
	for _, sp := range reactants {
		rb.reactants = append(rb.reactants, rxn.PlayerConfig{Species: sp})
	}
	return rb
}

// Name sets the pathway name used by reaction output.
func (rb *ReactionBuilder) Name(name string) *ReactionBuilder {
	rb.name = name
	return rb
}

// Reactant adds a reactant with an orientation: 1 or -1 for oriented
// players, 0 for none.
func (rb *ReactionBuilder) Reactant(species string, orientation int) *ReactionBuilder {
	rb.reactants = append(rb.reactants, rxn.PlayerConfig{Species: species, Orientation: orientation})
	return rb
}

// Product adds a product with an orientation.
func (rb *ReactionBuilder) Product(species string, orientation int) *ReactionBuilder {
	rb.products = append(rb.products, rxn.PlayerConfig{Species: species, Orientation: orientation})
	return rb
}

// Products adds unoriented products.
func (rb *ReactionBuilder) Products(species ...string) *ReactionBuilder {
	for _, sp := range species {
		rb.products = append(rb.products, rxn.PlayerConfig{Species: sp})
	}
	return rb
}

// Rate sets a constant rate, replacing any rate set before.
func (rb *ReactionBuilder) Rate(rate float64) *ReactionBuilder {
	rb.rate = rxn.RateConfig{Constant: &rate}
	return rb
}

// RateFile sets a tabulated time-varying rate read from path.
func (rb *ReactionBuilder) RateFile(path string) *ReactionBuilder {
	rb.rate = rxn.RateConfig{File: path}
	return rb
}

// ComplexRate refers to a complex rate table declared on the model.
func (rb *ReactionBuilder) ComplexRate(name string) *ReactionBuilder {
	rb.rate = rxn.RateConfig{Complex: name}
	return rb
}

// Reflective marks the reaction as a reflective surface-class boundary.
func (rb *ReactionBuilder) Reflective() *ReactionBuilder {
	rb.flag = "reflective"
	return rb
}

// Transparent marks the reaction as a transparent surface-class boundary.
func (rb *ReactionBuilder) Transparent() *ReactionBuilder {
	rb.flag = "transparent"
	return rb
}

// Absorptive marks the reaction as an absorptive surface-class boundary.
func (rb *ReactionBuilder) Absorptive() *ReactionBuilder {
	rb.flag = "absorptive"
	return rb
}

// Clamp turns the reaction into a concentration clamp holding the volume
// reactant at concentration on the surface class side.
func (rb *ReactionBuilder) Clamp(concentration float64) *ReactionBuilder {
	rb.flag = "clamp"
	rb.rate = rxn.RateConfig{Constant: &concentration}
	return rb
}

// Build converts the builder to a ReactionConfig.
func (rb *ReactionBuilder) Build() rxn.ReactionConfig {
	return rxn.ReactionConfig{
		Name:      rb.name,
		Reactants: rb.reactants,
		Products:  rb.products,
		Rate:      rb.rate,
		Flag:      rb.flag,
	}
}

// CompileResult is a compile stored by the server.
type CompileResult struct {
	ID                       string                  `json:"id"`
	Model                    string                  `json:"model"`
	CreatedAt                time.Time               `json:"created_at"`
	Table                    rxn.TableSnapshot       `json:"table"`
	Notices                  []rxn.ProbabilityNotice `json:"notices"`
	Warnings                 []string                `json:"warnings"`
	ProbabilityLimitExceeded bool                    `json:"probability_limit_exceeded"`
}

// CompileSummary is one entry of ListCompiles.
type CompileSummary struct {
	ID        string    `json:"id"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
	Reactions int       `json:"reactions"`
	Warnings  int       `json:"warnings"`
}

// NotifierInfo describes a notifier registered on the server.
type NotifierInfo struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// APIError is returned when the server answers with a non-success status.
type APIError struct {
	StatusCode int
	Message    string
	Kind       string
	Issues     []string
}

func (e *APIError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("server returned status %d (%s): %s", e.StatusCode, e.Kind, e.Message)
	}
	return fmt.Sprintf("server returned status %d: %s", e.StatusCode, e.Message)
}

// Client talks to an rdmc compile server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the server at baseURL (e.g. "http://localhost:8080").
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// WithHTTPClient replaces the HTTP client used for requests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// Health checks that the server is up.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil, nil)
}

// Compile sends the model to the server. Probability notices are also
// delivered to the listed notifiers.
func (c *Client) Compile(ctx context.Context, model *ModelBuilder, notifierIDs ...string) (*CompileResult, error) {
	return c.CompileConfig(ctx, model.Build(), notifierIDs...)
}

// CompileConfig sends an already built model configuration to the server.
func (c *Client) CompileConfig(ctx context.Context, cfg rxn.ModelConfig, notifierIDs ...string) (*CompileResult, error) {
	var query url.Values
	if len(notifierIDs) > 0 {
		query = url.Values{"notifiers": {strings.Join(notifierIDs, ",")}}
	}
	var res CompileResult
	if err := c.do(ctx, http.MethodPost, "/compile", query, cfg, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetCompile fetches a stored compile by ID.
func (c *Client) GetCompile(ctx context.Context, id string) (*CompileResult, error) {
	var res CompileResult
	if err := c.do(ctx, http.MethodGet, "/compiles/"+url.PathEscape(id), nil, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ListCompiles returns the stored compiles, oldest first.
func (c *Client) ListCompiles(ctx context.Context) ([]CompileSummary, error) {
	var res struct {
		Compiles []CompileSummary `json:"compiles"`
	}
	if err := c.do(ctx, http.MethodGet, "/compiles", nil, nil, &res); err != nil {
		return nil, err
	}
	return res.Compiles, nil
}

// DeleteCompile removes a stored compile.
func (c *Client) DeleteCompile(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/compiles/"+url.PathEscape(id), nil, nil, nil)
}

// WebhookOptions configures a webhook notifier.
type WebhookOptions struct {
	Headers      map[string]string
	WarningsOnly bool
}

// RegisterWebhook registers a webhook notifier that receives compile notices.
func (c *Client) RegisterWebhook(ctx context.Context, id, webhookURL string, opts WebhookOptions) error {
	config := map[string]any{"url": webhookURL}
	if len(opts.Headers) > 0 {
		config["headers"] = opts.Headers
	}
	if opts.WarningsOnly {
		config["warnings_only"] = true
	}
	body := map[string]any{
		"type":   "webhook",
		"id":     id,
		"config": config,
	}
	return c.do(ctx, http.MethodPost, "/notifiers", nil, body, nil)
}

// ListNotifiers returns the notifiers registered on the server.
func (c *Client) ListNotifiers(ctx context.Context) ([]NotifierInfo, error) {
	var res struct {
		Notifiers []NotifierInfo `json:"notifiers"`
	}
	if err := c.do(ctx, http.MethodGet, "/notifiers", nil, nil, &res); err != nil {
		return nil, err
	}
	return res.Notifiers, nil
}

// UnregisterNotifier removes a notifier from the server.
func (c *Client) UnregisterNotifier(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/notifiers/"+url.PathEscape(id), nil, nil, nil)
}

// Stream follows compile notices over the server's websocket and calls fn
// for each one. An empty compileID follows every compile. Stream blocks
// until ctx is done or the server closes the connection; both return nil.
func (c *Client) Stream(ctx context.Context, compileID string, fn func(rxn.NotificationEvent)) error {
	u, err := url.Parse(c.baseURL + "/ws")
	if err != nil {
		return fmt.Errorf("failed to build URL: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	if compileID != "" {
		u.RawQuery = url.Values{"compile": {compileID}}.Encode()
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		var event rxn.NotificationEvent
		if err := conn.ReadJSON(&event); err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("failed to read event: %w", err)
		}
		fn(event)
	}
}

// Compile sends the model to the server at baseURL and returns the stored
// compile.
func Compile(ctx context.Context, baseURL string, model *ModelBuilder) (*CompileResult, error) {
	return New(baseURL).Compile(ctx, model)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		jsonData, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// decodeAPIError reads a JSON error body when the server sent one and
// falls back to the plain text body otherwise.
func decodeAPIError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(data))}

	var body struct {
		Error  string   `json:"error"`
		Kind   string   `json:"kind"`
		Issues []string `json:"issues"`
	}
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") && json.Unmarshal(data, &body) == nil {
		apiErr.Message = body.Error
		apiErr.Kind = body.Kind
		apiErr.Issues = body.Issues
	}
	return apiErr
}

// IsNotFound reports whether err is a 404 answer from the server.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
