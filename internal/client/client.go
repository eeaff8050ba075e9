// Package client runs enhance and craft requests against a model provider.
//
// Each call builds the meta-prompt, issues exactly one completion request and
// returns either a complete result or a *failure.Error. Nothing is retried or
// cached, and the credential is taken from the caller on every call.
package client

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/valpere/promptcraft/internal"
	"github.com/valpere/promptcraft/internal/failure"
	"github.com/valpere/promptcraft/internal/metaprompt"
	"github.com/valpere/promptcraft/internal/provider"
	"github.com/valpere/promptcraft/internal/schema"
	"github.com/valpere/promptcraft/internal/validator"
)

const (
	EnhanceTemperature float32 = 0.7
	CraftTemperature   float32 = 0.8
)

// verifyInstruction is the throwaway prompt used to check a credential.
const verifyInstruction = "Test"

// State is the lifecycle of one logical request.
type State int

const (
	Idle State = iota
	Requesting
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Requesting:
		return "requesting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

type Config struct {
	// Model is the provider model id; empty selects the provider default.
	Model string
	// Strict enables full schema validation of enhance replies.
	Strict bool
	// OnState, when set, is called with Requesting and then with exactly
	// one terminal state for every call.
	OnState func(State)
}

// Client holds only immutable configuration and is safe for concurrent use.
type Client struct {
	completer provider.Completer
	validator *validator.Validator
	model     string
	onState   func(State)
	logger    *zap.Logger
}

func New(completer provider.Completer, cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	v := validator.New()
	if cfg.Strict {
		v = validator.NewStrict()
	}

	model := cfg.Model
	if model == "" {
		model = provider.DefaultModel(completer.Name())
	}

	return &Client{
		completer: completer,
		validator: v,
		model:     model,
		onState:   cfg.OnState,
		logger:    logger,
	}
}

func (c *Client) Model() string {
	return c.model
}

func (c *Client) Provider() string {
	return c.completer.Name()
}

// Run issues one request for mode and returns the provider's raw text. An
// enhance reply is returned only after it passes validation.
func (c *Client) Run(ctx context.Context, mode metaprompt.Mode, userText, language, credential string) (string, error) {
	raw, _, err := c.run(ctx, mode, userText, language, credential)
	return raw, err
}

// Enhance critiques userText and decodes the structured reply.
func (c *Client) Enhance(ctx context.Context, userText, language, credential string) (*internal.AnalysisResult, error) {
	_, result, err := c.run(ctx, metaprompt.Enhance, userText, language, credential)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Craft returns the crafted prompt exactly as the model wrote it.
func (c *Client) Craft(ctx context.Context, topic, language, credential string) (internal.CraftResult, error) {
	raw, err := c.Run(ctx, metaprompt.Craft, topic, language, credential)
	if err != nil {
		return "", err
	}
	return internal.CraftResult(raw), nil
}

// Verify sends a minimal request to check that credential is accepted.
func (c *Client) Verify(ctx context.Context, credential string) error {
	c.emit(Requesting)

	if strings.TrimSpace(credential) == "" {
		return c.finish("verify", failure.MissingCredential())
	}

	_, err := c.completer.Complete(ctx, credential, c.model, verifyInstruction, provider.Options{})
	return c.finish("verify", err)
}

func (c *Client) run(ctx context.Context, mode metaprompt.Mode, userText, language, credential string) (string, *internal.AnalysisResult, error) {
	c.emit(Requesting)

	raw, err := c.complete(ctx, mode, userText, language, credential)
	if mode == metaprompt.Enhance && errors.Is(err, provider.ErrEmptyResponse) {
		// An empty enhance reply is not JSON; let the validator reject it.
		raw, err = "", nil
	}
	if err != nil {
		return "", nil, c.finish(mode, err)
	}

	var result *internal.AnalysisResult
	if mode == metaprompt.Enhance {
		result, err = c.validator.Decode(raw)
		if err != nil {
			c.logger.Debug("undecodable enhance reply", zap.Int("reply_length", len(raw)))
			return "", nil, c.finish(mode, err)
		}
	}

	c.finish(mode, nil)
	return raw, result, nil
}

func (c *Client) complete(ctx context.Context, mode metaprompt.Mode, userText, language, credential string) (string, error) {
	if strings.TrimSpace(credential) == "" {
		return "", failure.MissingCredential()
	}

	instruction, err := metaprompt.Build(mode, userText, language)
	if err != nil {
		return "", failure.New(failure.UnknownFailure, "cannot build instruction", err)
	}

	opts := optionsFor(mode)

	c.logger.Debug("sending completion request",
		zap.String("mode", mode.String()),
		zap.String("provider", c.completer.Name()),
		zap.String("model", c.model),
		zap.String("language", language),
		zap.Int("instruction_length", len(instruction)),
		zap.Bool("schema", opts.Schema != nil))

	start := time.Now()
	raw, err := c.completer.Complete(ctx, credential, c.model, instruction, opts)
	if err != nil {
		return "", err
	}

	c.logger.Debug("completion received",
		zap.String("mode", mode.String()),
		zap.Duration("latency", time.Since(start)),
		zap.Int("reply_length", len(raw)))

	return raw, nil
}

func optionsFor(mode metaprompt.Mode) provider.Options {
	if mode == metaprompt.Enhance {
		return provider.Options{Schema: schema.EnhanceMap(), Temperature: EnhanceTemperature}
	}
	return provider.Options{Temperature: CraftTemperature}
}

// finish classifies err, reports the terminal state and returns the
// classified error, or nil on success.
func (c *Client) finish(mode metaprompt.Mode, err error) error {
	if err == nil {
		c.emit(Succeeded)
		return nil
	}

	fe := failure.Classify(err)
	c.logger.Warn("model request failed",
		zap.String("mode", mode.String()),
		zap.String("kind", fe.Kind.String()),
		zap.String("diagnostic", fe.Diagnostic),
		zap.Error(fe.Err))
	c.emit(Failed)
	return fe
}

func (c *Client) emit(s State) {
	if c.onState != nil {
		c.onState(s)
	}
}
