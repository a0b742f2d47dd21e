package llm

import "context"

// Outcome states for one attempt to answer through the model.
type Outcome int

const (
	// OutcomeOK means the model produced a usable answer.
	OutcomeOK Outcome = iota
	// OutcomeUnavailable means no model is configured; the caller should
	// fall back to the canned catalog.
	OutcomeUnavailable
	// OutcomeError means the model was asked but failed; the caller logs
	// the error and falls back.
	OutcomeError
)

// Result is the explicit outcome of the model-calling path. Fallback
// decisions are made on Outcome, never on panics or sentinel strings.
type Result struct {
	Outcome  Outcome
	Response Response
	Err      error
}

// Ask runs one prompt through c with the given system prompt. A nil
// client yields OutcomeUnavailable.
func Ask(ctx context.Context, c Client, systemPrompt, input string) Result {
	if c == nil {
		return Result{Outcome: OutcomeUnavailable}
	}
	var msgs []Message
	if systemPrompt != "" {
		msgs = append(msgs, Message{Role: "system", Content: systemPrompt})
	}
	msgs = append(msgs, Message{Role: "user", Content: input})

	resp, err := c.Generate(ctx, msgs)
	if err != nil {
		return Result{Outcome: OutcomeError, Err: err}
	}
	return Result{Outcome: OutcomeOK, Response: resp}
}

// DefaultSystemPrompt frames the assistant when no prompt file is
// configured.
const DefaultSystemPrompt = `You are G.E.N.G.A.R (Gage's Enhanced Next-Gen AI Responder), an AI assistant
specialized in cybersecurity, penetration testing, and offensive security.

You help with:
- Explaining security concepts and vulnerabilities
- Providing guidance on penetration testing methodologies
- Assisting with CTF challenges and techniques
- Explaining tools and their usage
- Offering security best practices

Always provide accurate, educational, and ethical guidance. Focus on
defensive security and authorized testing only.`
