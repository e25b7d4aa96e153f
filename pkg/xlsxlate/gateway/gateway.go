// Package gateway wraps an external translation capability with pacing and
// fail-soft error handling.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/xlsxlate/xlsxlate/pkg/xlsxlate/models"
)

// ErrEmptyResponse indicates the capability answered with no text.
var ErrEmptyResponse = errors.New("empty response")

// Default sampling parameters favor literal, repeatable output.
const (
	DefaultModel       = "glm-4"
	DefaultTemperature = 0.1
	DefaultTopP        = 0.7
)

// Request is a single call to the translation capability.
type Request struct {
	// Model is the model identifier.
	Model string
	// System is the task instruction.
	System string
	// User is the text to translate.
	User string
	// Temperature is the sampling temperature.
	Temperature float64
	// TopP is the nucleus-sampling cutoff.
	TopP float64
}

// Capability is the external translation service.
type Capability interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// CapabilityFunc adapts a function to Capability.
type CapabilityFunc func(ctx context.Context, req Request) (string, error)

// Complete calls f.
func (f CapabilityFunc) Complete(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// Result is the outcome of translating one fragment. On failure Text holds
// the original input and Err the cause.
type Result struct {
	Text string
	Err  error
}

// OK reports whether the capability produced the text.
func (r Result) OK() bool {
	return r.Err == nil
}

// Options configures a Gateway.
type Options struct {
	// Model is the model identifier (default glm-4).
	Model string
	// Temperature is the sampling temperature (default 0.1).
	Temperature *float64
	// TopP is the nucleus-sampling cutoff (default 0.7).
	TopP *float64
	// Instruction overrides the system instruction template.
	Instruction string
	// Terms overrides the preserved terminology list.
	Terms []string
	// Pacer spaces calls. Defaults to NewPacer(DefaultInterval).
	Pacer Pacer
	// Timeout bounds a single call (0 = no gateway-side timeout).
	Timeout time.Duration
	// Verbose enables logging of passthrough failures.
	Verbose bool
}

// Gateway translates text fragments through a Capability.
type Gateway struct {
	capability  Capability
	model       string
	temperature float64
	topP        float64
	instruction string
	terms       []string
	pacer       Pacer
	timeout     time.Duration
	verbose     bool
}

// New creates a Gateway around capability.
func New(capability Capability, opts Options) *Gateway {
	g := &Gateway{
		capability:  capability,
		model:       opts.Model,
		temperature: DefaultTemperature,
		topP:        DefaultTopP,
		instruction: opts.Instruction,
		terms:       opts.Terms,
		pacer:       opts.Pacer,
		timeout:     opts.Timeout,
		verbose:     opts.Verbose,
	}
	if g.model == "" {
		g.model = DefaultModel
	}
	if opts.Temperature != nil {
		g.temperature = *opts.Temperature
	}
	if opts.TopP != nil {
		g.topP = *opts.TopP
	}
	if g.pacer == nil {
		g.pacer = NewPacer(DefaultInterval)
	}
	return g
}

// Translate translates text from source to target. It never fails: any
// capability error yields the original text with Err set.
func (g *Gateway) Translate(ctx context.Context, text string, source, target models.Language) Result {
	if strings.TrimSpace(text) == "" {
		return Result{Text: text}
	}

	if err := g.pacer.Wait(ctx); err != nil {
		return g.passthrough(text, fmt.Errorf("pacing: %w", err))
	}

	callCtx := ctx
	if g.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	out, err := g.capability.Complete(callCtx, Request{
		Model:       g.model,
		System:      Instruction(g.instruction, source, target, g.terms),
		User:        text,
		Temperature: g.temperature,
		TopP:        g.topP,
	})
	if err != nil {
		return g.passthrough(text, err)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return g.passthrough(text, ErrEmptyResponse)
	}
	return Result{Text: out}
}

// Func binds the gateway to a language pair, returning only the text.
func (g *Gateway) Func(ctx context.Context, source, target models.Language) func(string) string {
	return func(text string) string {
		return g.Translate(ctx, text, source, target).Text
	}
}

func (g *Gateway) passthrough(text string, err error) Result {
	if g.verbose {
		log.Printf("[gateway] keeping original text %q: %v", truncate(text, 60), err)
	}
	return Result{Text: text, Err: err}
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
