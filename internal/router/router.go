// Package router implements the GENGAR dispatch loop: it classifies each
// line of input as a system directive, a registered command, or a question
// for the model/catalog, records every interaction, and owns the shutdown
// sequence.
package router

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"gengar/internal/catalog"
	"gengar/internal/llm"
	"gengar/internal/logging"
	"gengar/internal/session"
	"gengar/internal/storage"
	"gengar/internal/voice"
)

// State of the dispatch loop. STOPPED is terminal.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateStopped
)

// CommandRunner is the registry collaborator. Execute returns "" with a
// nil error when nothing matched; a present-but-empty response is treated
// the same way.
type CommandRunner interface {
	Execute(ctx context.Context, raw string) (string, error)
	Count() int
	Usages() []string
}

// Response sources recorded with each interaction.
const (
	SourceDirective = "directive"
	SourceCommand   = "command"
	SourceModel     = "model"
	SourceError     = "error"
)

var shutdownDirectives = map[string]bool{
	"exit":     true,
	"quit":     true,
	"shutdown": true,
}

var helpDirectives = map[string]bool{
	"help": true,
	"?":    true,
}

const prompt = "🎤 G.E.N.G.A.R > "

// Deps wires the router to its collaborators. Catalog, Session and Log are
// required; the rest may be nil (Speaker defaults to a no-op).
type Deps struct {
	Catalog  *catalog.Catalog
	Registry CommandRunner
	Model    llm.Client
	Session  *session.State
	Recorder storage.Recorder
	Summary  storage.SummaryWriter
	Speaker  voice.Speaker
	Log      *logging.Logger

	SystemPrompt string
	ModelName    string
	VoiceEnabled bool
}

type Router struct {
	deps  Deps
	state State
	out   io.Writer
}

func New(deps Deps, out io.Writer) *Router {
	if deps.Speaker == nil {
		deps.Speaker = voice.Noop{}
	}
	return &Router{deps: deps, out: out}
}

func (r *Router) State() State { return r.state }

// Run drives the interactive loop until a shutdown directive, EOF, or
// context cancellation. Cancellation (e.g. an interrupt signal) takes the
// same shutdown path as an explicit directive, so nothing recorded so far
// is lost.
func (r *Router) Run(ctx context.Context, in io.Reader) error {
	r.state = StateRunning
	r.deps.Session.Start()
	r.deps.Log.Infof("G.E.N.G.A.R session %s started", r.deps.Session.ID())

	fmt.Fprintln(r.out, "🤖 G.E.N.G.A.R is now online and ready to assist!")
	fmt.Fprintln(r.out, "💬 Type 'help' for available commands or 'exit' to quit")

	lines := readLines(in)
	for r.state == StateRunning {
		fmt.Fprint(r.out, prompt)
		select {
		case <-ctx.Done():
			fmt.Fprintln(r.out, "\n🛑 Shutdown signal received...")
			r.state = StateStopped
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(r.out)
				r.state = StateStopped
				break
			}
			r.HandleInput(ctx, line)
		}
	}

	return r.shutdown()
}

// readLines feeds input lines through a channel so the loop can also wake
// up on context cancellation. The goroutine exits on reader EOF.
func readLines(in io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			ch <- sc.Text()
		}
	}()
	return ch
}

// HandleInput runs one input through the dispatch chain. Whitespace-only
// input is skipped without a record; everything else produces exactly one
// session record and one persisted event, no matter which step answered.
func (r *Router) HandleInput(ctx context.Context, input string) {
	if strings.TrimSpace(input) == "" {
		return
	}

	response, source := r.dispatch(ctx, input)
	rec := r.deps.Session.Append(input, response)
	r.persist(rec, source)

	fmt.Fprintf(r.out, "🤖 G.E.N.G.A.R: %s\n", response)
	r.deps.Speaker.Speak(response)
}

// dispatch walks the chain in fixed order: shutdown directive, help,
// status, registered command, model, catalog. First applicable step wins.
// A panic anywhere in the chain (registry, model client, catalog) is
// converted into the error-text response; nothing below the router is
// allowed to end the loop.
func (r *Router) dispatch(ctx context.Context, input string) (response, source string) {
	defer func() {
		if p := recover(); p != nil {
			r.deps.Log.Errorf("dispatch panicked for input %q: %v", input, p)
			response = fmt.Sprintf("❌ Error processing command: %v", p)
			source = SourceError
		}
	}()

	lower := strings.ToLower(strings.TrimSpace(input))

	switch {
	case shutdownDirectives[lower]:
		r.state = StateStopped
		r.deps.Session.Stop()
		return "🛑 Shutting down G.E.N.G.A.R...", SourceDirective
	case helpDirectives[lower]:
		return r.helpText(), SourceDirective
	case lower == "status":
		return r.StatusText(), SourceDirective
	}

	cmdResp, err := r.execCommand(ctx, input)
	if err != nil {
		r.deps.Log.Errorf("command failed for input %q: %v", input, err)
		return fmt.Sprintf("❌ Error processing command: %v", err), SourceError
	}
	if cmdResp != "" {
		return cmdResp, SourceCommand
	}

	res := llm.Ask(ctx, r.deps.Model, r.deps.SystemPrompt, input)
	switch res.Outcome {
	case llm.OutcomeOK:
		r.deps.Log.Infof("model response [model=%s, tokens: prompt=%d, completion=%d, total=%d]",
			res.Response.Model, res.Response.PromptTokens, res.Response.CompletionTokens, res.Response.TotalTokens)
		return res.Response.Content, SourceModel
	case llm.OutcomeError:
		r.deps.Log.Errorf("model request failed, using canned response: %v", res.Err)
	}

	c := r.deps.Catalog.Classify(input)
	return c.Body, "catalog:" + c.Topic
}

// execCommand shields the loop from a misbehaving registry: both returned
// errors and panics come back as plain errors.
func (r *Router) execCommand(ctx context.Context, input string) (resp string, err error) {
	if r.deps.Registry == nil {
		return "", nil
	}
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("command handler panicked: %v", p)
		}
	}()
	return r.deps.Registry.Execute(ctx, input)
}

// persist writes one event to the recorder. Persistence failures never
// reach the prompt; they are logged and the loop continues.
func (r *Router) persist(rec session.Record, source string) {
	if r.deps.Recorder == nil {
		return
	}
	ev := storage.Event{
		Timestamp: rec.Timestamp,
		SessionID: r.deps.Session.ID(),
		Input:     rec.Input,
		Response:  rec.Response,
		Source:    source,
		InDomain:  r.deps.Catalog.IsInDomain(rec.Input),
		Elapsed:   rec.Elapsed.String(),
	}
	if err := r.deps.Recorder.AppendInteraction(ev); err != nil {
		r.deps.Log.Errorf("failed to record interaction: %v", err)
	}
}

// StatusText renders the status directive's snapshot. Before the session
// has started, uptime and start time read "N/A".
func (r *Router) StatusText() string {
	snap := r.deps.Session.Snapshot()
	start, uptime := "N/A", "N/A"
	if snap.Started {
		start = snap.StartedAt.Format(time.RFC3339)
		uptime = snap.Uptime.Round(time.Second).String()
	}
	cmdCount := 0
	if r.deps.Registry != nil {
		cmdCount = r.deps.Registry.Count()
	}
	return fmt.Sprintf(`📊 G.E.N.G.A.R System Status:

🕐 Session Start: %s
⏱️ Uptime: %s
🎤 Voice Enabled: %t
🤖 AI Model: %s
📝 Commands Processed: %d
🔧 Custom Commands: %d`,
		start, uptime, r.deps.VoiceEnabled, r.deps.ModelName, snap.Count, cmdCount)
}

// helpText builds the help directive's response. The custom-commands
// section comes from the registry, so disabled commands drop out of it.
func (r *Router) helpText() string {
	var b strings.Builder
	b.WriteString(`🤖 G.E.N.G.A.R AI Assistant - Available Commands:

📋 System Commands:
  • help, ? - Show this help message
  • status - Show system status
  • exit, quit, shutdown - Exit G.E.N.G.A.R
`)

	if r.deps.Registry != nil {
		if usages := r.deps.Registry.Usages(); len(usages) > 0 {
			b.WriteString("\n🔧 Custom Commands:\n")
			for _, u := range usages {
				b.WriteString("  • " + u + "\n")
			}
		}
	}

	b.WriteString(`
🧠 AI Features:
  • Ask questions about cybersecurity
  • Request help with penetration testing
  • Get explanations of security concepts
  • Discuss CTF challenges and techniques

💡 Examples:
  • "What is SQL injection?"
  • "Help me understand privilege escalation"
  • "Scan 192.168.1.1"
  • "Check VPN status"`)

	return b.String()
}

// shutdown flushes the session: stop bookkeeping, persist the summary,
// join speech with a bounded wait. Runs exactly once per Run.
func (r *Router) shutdown() error {
	r.deps.Session.Stop()
	r.deps.Log.Infof("shutting down G.E.N.G.A.R...")

	if r.deps.Summary != nil {
		if sum, ok := r.deps.Session.Summarize(); ok {
			if err := r.deps.Summary.WriteSummary(sum); err != nil {
				r.deps.Log.Errorf("failed to save session summary: %v", err)
			}
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := r.deps.Speaker.Close(ctx); err != nil {
		r.deps.Log.Warnf("speech cleanup incomplete: %v", err)
	}

	fmt.Fprintln(r.out, "👋 G.E.N.G.A.R shutdown complete. Goodbye!")
	return nil
}
