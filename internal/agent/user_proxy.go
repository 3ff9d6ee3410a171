// internal/agent/user_proxy.go
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"aiupstart.com/shadergen/internal/model"
)

// maxLineBytes bounds one description read from the terminal.
const maxLineBytes = 1 << 20

// UserProxyAgent stands in for a human at a terminal: it reads descriptions
// from in and prints whatever comes back to out.
type UserProxyAgent struct {
	name    string
	in      io.Reader
	out     io.Writer
	replied chan struct{}
	done    chan struct{}
}

func NewUserProxyAgent(name string, in io.Reader, out io.Writer) *UserProxyAgent {
	return &UserProxyAgent{
		name:    name,
		in:      in,
		out:     out,
		replied: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

func (u *UserProxyAgent) Name() string { return u.name }

// Start prints messages destined for the user until input is closed.
func (u *UserProxyAgent) Start(input <-chan model.Message, output chan<- model.Message) {
	go func() {
		defer close(u.done)
		for msg := range input {
			u.print(msg)
			select {
			case u.replied <- struct{}{}:
			default:
			}
		}
	}()
}

func (u *UserProxyAgent) print(msg model.Message) {
	switch msg.MessageType {
	case model.TypeShader:
		fmt.Fprintf(u.out, "[From %s]:\n%s\n", msg.Sender, msg.Content)
		if msg.Shader != nil && (msg.Shader.Pair.Mode != "" || msg.Shader.Pair.Geometry != "") {
			fmt.Fprintf(u.out, "(mode=%s geometry=%s)\n", msg.Shader.Pair.Mode, msg.Shader.Pair.Geometry)
		}
	case model.TypeError:
		fmt.Fprintf(u.out, "[Error from %s]: %s\n", msg.Sender, msg.Content)
		if msg.Error != nil && msg.Error.Diagnostic != "" {
			fmt.Fprintf(u.out, "--- model output ---\n%s\n--------------------\n", msg.Error.Diagnostic)
		}
	default:
		fmt.Fprintf(u.out, "[From %s]: %s\n", msg.Sender, msg.Content)
	}
}

// UserInputLoop sends one message per non-empty input line and waits for the
// reply before prompting again. It closes output when input ends or ctx is
// done, and returns the read error, if any.
func (u *UserProxyAgent) UserInputLoop(ctx context.Context, output chan<- model.Message) error {
	defer close(output)
	scanner := bufio.NewScanner(u.in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for {
		fmt.Fprint(u.out, "[You]: ")
		if !scanner.Scan() {
			fmt.Fprintln(u.out)
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			return nil
		}
		userInput := strings.TrimSpace(scanner.Text())
		if userInput == "" {
			continue
		}
		select {
		case output <- model.Message{Sender: u.name, Content: userInput, MessageType: model.TypeChat}:
		case <-ctx.Done():
			return ctx.Err()
		}
		select {
		case <-u.replied:
		case <-u.done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Wait blocks until every reply has been printed.
func (u *UserProxyAgent) Wait() {
	<-u.done
}
