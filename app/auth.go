package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/srworkflow/workflow/internal/config"
	"github.com/srworkflow/workflow/internal/identity"
)

type authFunc func(
	s *identity.Service,
	ctx context.Context,
	email, password string,
) (*identity.User, error)

// passwordReader reads one password line from a terminal or a pipe.
type passwordReader struct {
	in  io.Reader
	out io.Writer
	buf *bufio.Reader
}

func newPasswordReader(in io.Reader, out io.Writer) *passwordReader {
	return &passwordReader{
		in:  in,
		out: out,
		buf: bufio.NewReader(in),
	}
}

func (r *passwordReader) terminal() (int, bool) {
	f, ok := r.in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}

	return int(f.Fd()), true
}

// read prints prompt and returns the next password. Terminal input is not
// echoed.
func (r *passwordReader) read(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)

	if fd, ok := r.terminal(); ok {
		b, err := term.ReadPassword(fd)

		fmt.Fprintln(r.out)

		if err != nil {
			return "", errReadPassword.Wrap(err)
		}

		return string(b), nil
	}

	line, err := r.buf.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", errReadPassword.Wrap(err)
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// authenticate runs fn with the --email flag and a password read from
// stdin.
func authenticate(
	ctx *cli.Context,
	fn authFunc,
	confirm bool,
	success string,
) error {
	e, err := setup(ctx)
	if err != nil {
		return err
	}

	defer e.close()

	pr := newPasswordReader(config.Stdin, config.Stdout)

	password, err := pr.read("Password: ")
	if err != nil {
		return err
	}

	// Piped input carries a single password.
	if _, ok := pr.terminal(); confirm && ok {
		again, err := pr.read("Confirm password: ")
		if err != nil {
			return err
		}

		if again != password {
			return errPasswordMismatch
		}
	}

	u, err := fn(e.accounts, ctx.Context, ctx.String("email"), password)
	if err != nil {
		return err
	}

	pterm.Success.WithWriter(config.Stdout).Printfln("%s as %s", success, u.Email)

	return nil
}

func signUpAction(ctx *cli.Context) error {
	return authenticate(ctx, (*identity.Service).SignUp, true, "Account created. Signed in")
}

func signInAction(ctx *cli.Context) error {
	return authenticate(ctx, (*identity.Service).SignIn, false, "Signed in")
}

func signOutAction(ctx *cli.Context) error {
	e, err := setup(ctx)
	if err != nil {
		return err
	}

	defer e.close()

	if err := e.accounts.SignOut(ctx.Context); err != nil {
		return err
	}

	pterm.Success.WithWriter(config.Stdout).Println("Signed out")

	return nil
}

func whoAmIAction(ctx *cli.Context) error {
	e, err := setup(ctx)
	if err != nil {
		return err
	}

	defer e.close()

	u, ok := e.identity.Current()
	if !ok {
		pterm.Info.WithWriter(config.Stdout).Println("Not signed in")
		return nil
	}

	_, err = fmt.Fprintln(config.Stdout, u.Email)

	return err
}
