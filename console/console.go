// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/alnvdl/wcf-truco/middleware"
	"github.com/alnvdl/wcf-truco/models"
)

const prompt = "truco> "

// Dispatcher runs one command line for the user in ctx
type Dispatcher interface {
	Dispatch(ctx context.Context, line string) models.Response
}

// Authenticator logs a user in for the duration of one command
type Authenticator interface {
	Login(ctx context.Context, name string) (context.Context, error)
}

// Console reads "<user> <command> [arg]" lines and writes the replies
type Console struct {
	router Dispatcher
	users  Authenticator
	in     io.Reader
	out    io.Writer

	interactive bool
	errColor    *color.Color
	userColor   *color.Color
}

// New creates a console. The prompt and colors are only used when in and out
// are terminals.
func New(router Dispatcher, users Authenticator, in io.Reader, out io.Writer) *Console {
	c := &Console{
		router:      router,
		users:       users,
		in:          in,
		out:         out,
		interactive: isTerminal(in),
		errColor:    color.New(color.FgRed),
		userColor:   color.New(color.FgCyan, color.Bold),
	}
	if isTerminal(out) {
		c.errColor.EnableColor()
		c.userColor.EnableColor()
	} else {
		c.errColor.DisableColor()
		c.userColor.DisableColor()
	}
	return c
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Run processes lines until the input ends or ctx is cancelled. Blank lines
// and lines starting with # are ignored.
func (c *Console) Run(ctx context.Context) error {
	lines := make(chan string)
	done := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		done <- scanner.Err()
	}()

	for {
		if c.interactive {
			fmt.Fprint(c.out, prompt)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-done:
			return err
		case line := <-lines:
			c.Exec(ctx, line)
		}
	}
}

// Exec runs a single console line and prints the reply
func (c *Console) Exec(ctx context.Context, line string) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return
	}

	name, command, _ := strings.Cut(line, " ")
	userCtx, err := c.users.Login(ctx, name)
	if err != nil {
		c.print(name, middleware.ErrorResponse(err))
		return
	}

	c.print(name, c.router.Dispatch(userCtx, command))
}

func (c *Console) print(name string, resp models.Response) {
	if c.interactive {
		c.userColor.Fprintf(c.out, "@%s\n", strings.TrimPrefix(name, "@"))
	}
	if resp.IsError() {
		c.errColor.Fprintln(c.out, resp.Text)
		return
	}
	fmt.Fprintln(c.out, resp.Text)
}
