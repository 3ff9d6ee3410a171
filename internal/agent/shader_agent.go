// internal/agent/shader_agent.go
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"aiupstart.com/shadergen/internal/llm"
	"aiupstart.com/shadergen/internal/metrics"
	"aiupstart.com/shadergen/internal/model"
	"aiupstart.com/shadergen/internal/shader"
	"aiupstart.com/shadergen/internal/utils"
)

// ErrEmptyDescription is returned before any LLM call when there is nothing to
// describe.
var ErrEmptyDescription = errors.New("description is required")

// ShaderAgent turns effect descriptions into shader pairs: it prompts the LLM
// and runs the reply through the extraction pipeline.
type ShaderAgent struct {
	name        string
	llmClient   llm.LLMClient
	promptStyle string
	extractor   *shader.Extractor
}

// NewShaderAgent builds an agent. A nil extractor uses the default pipeline.
func NewShaderAgent(name string, llmClient llm.LLMClient, promptStyle string, extractor *shader.Extractor) *ShaderAgent {
	if extractor == nil {
		extractor = shader.NewExtractor()
	}
	return &ShaderAgent{
		name:        name,
		llmClient:   llmClient,
		promptStyle: promptStyle,
		extractor:   extractor,
	}
}

func (a *ShaderAgent) Name() string { return a.name }

// Generate returns either a Result or an error. Pipeline and LLM failures are
// always *shader.ExtractionError; ErrEmptyDescription and prompt errors are not.
func (a *ShaderAgent) Generate(ctx context.Context, description string) (shader.Result, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return shader.Result{}, ErrEmptyDescription
	}
	prompt, err := BuildPrompt(a.promptStyle, description)
	if err != nil {
		return shader.Result{}, err
	}

	raw, err := a.callLLM(ctx, prompt)
	if err != nil {
		ee := shader.NetworkError(err)
		a.record(string(ee.Kind))
		utils.Logger.Error().Err(err).Str("agent", a.name).Msg("LLM call failed")
		return shader.Result{}, ee
	}

	res, err := a.extractor.Process(raw)
	if err != nil {
		ee, _ := shader.AsExtractionError(err)
		a.record(string(ee.Kind))
		utils.Logger.Warn().
			Str("agent", a.name).
			Str("kind", string(ee.Kind)).
			Err(ee.Err).
			Int("raw_len", len(raw)).
			Msg(ee.Message)
		return shader.Result{}, ee
	}

	a.record(string(res.Method))
	utils.Logger.Info().
		Str("agent", a.name).
		Str("method", string(res.Method)).
		Str("mode", string(res.Pair.Mode)).
		Str("geometry", string(res.Pair.Geometry)).
		Msg("Shader pair extracted")
	return res, nil
}

// callLLM is the only place a collaborator fault can enter; a panicking
// client is converted to an error here.
func (a *ShaderAgent) callLLM(ctx context.Context, prompt string) (raw string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("llm client panicked: %v", r)
		}
	}()
	return a.llmClient.Generate(ctx, prompt)
}

func (a *ShaderAgent) record(outcome string) {
	metrics.GenerationsTotal.WithLabelValues(a.name, outcome).Inc()
}

// Start serves descriptions arriving on input until it is closed, then closes
// output.
func (a *ShaderAgent) Start(input <-chan model.Message, output chan<- model.Message) {
	a.StartContext(context.Background(), input, output)
}

// StartContext is Start with every LLM call bound to ctx.
func (a *ShaderAgent) StartContext(ctx context.Context, input <-chan model.Message, output chan<- model.Message) {
	go func() {
		defer close(output)
		for msg := range input {
			utils.Logger.Debug().
				Str("agent", a.name).
				Str("event", "received_message").
				Msgf("Received: %s", msg.Content)
			output <- a.reply(ctx, msg)
		}
	}()
}

func (a *ShaderAgent) reply(ctx context.Context, msg model.Message) model.Message {
	res, err := a.Generate(ctx, msg.Content)
	if err == nil {
		return model.Message{Sender: a.name, Content: res.Display, MessageType: model.TypeShader, Shader: &res}
	}
	ee, ok := shader.AsExtractionError(err)
	if !ok {
		ee = &shader.ExtractionError{Message: err.Error(), Err: err}
	}
	return model.Message{Sender: a.name, Content: ee.Message, MessageType: model.TypeError, Error: ee}
}
