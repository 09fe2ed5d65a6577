package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/aiworkbench/internal/client/services"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context, username string, password []byte) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Open(ctx context.Context, location string) error
	Routes(ctx context.Context) error
}

// prompt prints the REPL prompt. While the REPL waits for input it can be
// reprinted from another goroutine when the auth state changes, so a
// session revoked in the background shows up without a keystroke.
type prompt struct {
	mu       sync.Mutex
	statusFn func() string
	waiting  bool
	shown    string
}

func newPrompt(statusFn func() string) *prompt {
	return &prompt{statusFn: statusFn}
}

// show prints the prompt and marks the REPL as waiting for input.
func (p *prompt) show() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.shown = p.statusFn()
	p.waiting = true
	printlnFn(fmt.Sprintf("wb %s> ", p.shown))
}

// busy marks the REPL as running a command; refresh stays quiet until the
// next show.
func (p *prompt) busy() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.waiting = false
}

// refresh reprints the prompt if the status changed while waiting for input.
func (p *prompt) refresh() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.waiting {
		return
	}
	if s := p.statusFn(); s != p.shown {
		p.shown = s
		printlnFn(fmt.Sprintf("\nwb %s> ", s))
	}
}

// follow refreshes the prompt on every state change until states is closed.
func (p *prompt) follow(states <-chan services.State) {
	for range states {
		p.refresh()
	}
}

// runREPL starts a simple read–eval–print loop for the workbench shell.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from p) and accepts commands:
//
//	help              — show available commands
//	login [username]  — sign in (prompts for what is missing)
//	logout            — sign out
//	whoami            — show the signed-in user
//	open <path>       — navigate to a page, e.g. open /admin
//	routes            — list pages and what they require
//	exit | quit       — leave the program
//
// Errors returned by command handlers are not printed here; the controller
// reports sign-in outcomes through its notifier.
func runREPL(ctx context.Context, a execIface, p *prompt, scanner *bufio.Scanner) {
	for {
		p.show()
		if !scanner.Scan() {
			return
		}
		p.busy()
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, open <path>, routes, logout, exit")
			} else {
				printlnFn("Available commands: login [username], open <path>, routes, exit")
			}

		case "login":
			var username string
			if len(args) > 0 {
				username = args[0]
			}
			_ = a.Login(ctx, username, nil)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "open":
			if len(args) == 0 {
				printlnFn("Usage: open <path>")
				continue
			}
			_ = a.Open(ctx, args[0])

		case "routes":
			_ = a.Routes(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

// Shell runs the REPL on the app's input until EOF or exit. The prompt
// follows the controller's state for as long as the REPL runs.
func (a *App) Shell(ctx context.Context) {
	printlnFn("Welcome to the AI Workbench shell (type 'help' for commands)")

	p := newPrompt(a.getStatus)
	states, unsubscribe := a.ctrl.Subscribe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		p.follow(states)
	}()
	defer func() {
		unsubscribe()
		<-done
	}()

	runREPL(ctx, a, p, bufio.NewScanner(a.reader))
}
