// Package shell is the interactive terminal front end. It renders the
// current screen, reads one command at a time and hands it to the screen's
// controller.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/client/config"
	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/client/controllers"
	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/client/nav"
	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/client/provider"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"
)

const searchNotImplemented = "AI trail search is not implemented yet."

type Options struct {
	In     io.Reader
	Out    io.Writer
	Config *config.Config

	Auth  provider.AuthProvider
	Docs  provider.DocumentStore
	Facts provider.FactSource

	Logger *zap.Logger
	// Plain disables terminal styling of rendered markdown.
	Plain bool
}

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, args string) error
}

type Shell struct {
	in     io.Reader
	reader *bufio.Reader
	out    io.Writer
	cfg    *config.Config
	logger *zap.Logger
	styles styles
	md     *glamour.TermRenderer

	nav     *nav.Stack
	session *provider.Session

	login    *controllers.SessionController
	register *controllers.RegistrationController
	facts    *controllers.FactController
	profile  *controllers.ProfileController
}

func New(opts Options) *Shell {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	s := &Shell{
		in:     opts.In,
		reader: bufio.NewReader(opts.In),
		out:    opts.Out,
		cfg:    cfg,
		logger: logger,
		styles: newStyles(opts.Out),
		nav:    nav.NewStack(),
	}

	mdStyle := glamour.WithAutoStyle()
	if opts.Plain {
		mdStyle = glamour.WithStandardStyle("notty")
	}
	md, err := glamour.NewTermRenderer(mdStyle, glamour.WithWordWrap(80))
	if err != nil {
		logger.Warn("markdown renderer unavailable", zap.Error(err))
	} else {
		s.md = md
	}

	s.login = controllers.NewSessionController(opts.Auth, s.nav, s, logger.Named("login"))
	s.register = controllers.NewRegistrationController(opts.Auth, opts.Docs, s.nav, s, logger.Named("register"))
	s.facts = controllers.NewFactController(opts.Facts, s.nav, logger.Named("facts"))
	s.profile = controllers.NewProfileController(opts.Auth, s.nav, s, logger.Named("profile"))

	s.facts.OnBusyChange(func(busy bool) {
		if busy {
			fmt.Fprintln(s.out, s.styles.Muted.Render("Fetching a fun fact..."))
		}
	})
	return s
}

// Run loops until exit, EOF on the input, or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, s.styles.Title.Render("TrekPoint")+" "+s.styles.Muted.Render("(type 'help' for commands)"))

	var shown nav.Route
	shownDepth := 0
	for {
		if ctx.Err() != nil {
			return nil
		}

		current := s.nav.Current()
		depth := len(s.nav.Routes())
		if current.Route != shown || depth != shownDepth {
			s.render(current)
			shown, shownDepth = current.Route, depth
		}

		fmt.Fprintf(s.out, "trekpoint %s> ", current.Route)
		line, err := readLine(s.reader)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out)
			return nil
		}
		if err != nil {
			return err
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		name := fields[0]
		args := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), name))

		quit, err := s.dispatch(ctx, current, name, args)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out)
			return nil
		}
		if err != nil {
			return err
		}
		if quit {
			fmt.Fprintln(s.out, "Bye!")
			return nil
		}
	}
}

func (s *Shell) dispatch(ctx context.Context, current nav.Entry, name, args string) (bool, error) {
	switch name {
	case "exit", "quit":
		return true, nil
	case "help":
		s.printHelp(current.Route)
		return false, nil
	case "back":
		if !s.nav.Back() {
			fmt.Fprintln(s.out, s.styles.Muted.Render("Already at the first screen."))
		}
		return false, nil
	}

	for _, cmd := range s.commands(current.Route) {
		if cmd.name == name {
			return false, cmd.run(ctx, args)
		}
	}
	fmt.Fprintln(s.out, "Unknown command:", name)
	return false, nil
}

func (s *Shell) commands(route nav.Route) []command {
	switch route {
	case nav.Login:
		return []command{
			{"login", "sign in with email and password", s.runLogin},
			{"register", "open the sign-up screen", func(context.Context, string) error {
				s.nav.Push(nav.Register, nil)
				return nil
			}},
		}
	case nav.Register:
		return []command{
			{"submit", "create an account", s.runRegister},
		}
	case nav.Home:
		return []command{
			{"fact", "get a fun nature fact", s.runFact},
			{"search", "search trails (search <text>)", s.runSearch},
			{"map", "show the map", func(context.Context, string) error {
				s.renderMap()
				return nil
			}},
			{"trails", "list nearby trails", func(context.Context, string) error {
				s.nav.Push(nav.Results, nil)
				return nil
			}},
			{"profile", "open your profile", func(context.Context, string) error {
				s.nav.Push(nav.Profile, nil)
				return nil
			}},
		}
	case nav.Profile:
		return []command{
			{"logout", "sign out", s.runLogout},
		}
	}
	return nil
}

func (s *Shell) printHelp(route nav.Route) {
	cmds := s.commands(route)
	cmds = append(cmds,
		command{name: "back", usage: "go to the previous screen"},
		command{name: "help", usage: "show this list"},
		command{name: "exit", usage: "leave TrekPoint"},
	)
	sort.SliceStable(cmds, func(i, j int) bool { return cmds[i].name < cmds[j].name })

	var b strings.Builder
	b.WriteString("Available commands:\n\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "* %s: %s\n", c.name, c.usage)
	}
	fmt.Fprintln(s.out, s.renderMarkdown(b.String()))
}

// Alert shows a titled message and waits for Enter.
func (s *Shell) Alert(title, message string) {
	body := s.styles.Title.Render(title)
	if message != "" {
		body += "\n" + message
	}
	fmt.Fprintln(s.out, s.styles.Alert.Render(body))
	fmt.Fprint(s.out, s.styles.Muted.Render("Press Enter to continue"))
	_, _ = readLine(s.reader)
	fmt.Fprintln(s.out)
}

func (s *Shell) printStatus(text string) {
	if text != "" {
		fmt.Fprintln(s.out, s.styles.Status.Render(text))
	}
}

func (s *Shell) runLogin(ctx context.Context, _ string) error {
	email, err := prompt(s.reader, s.out, "Email")
	if err != nil {
		return err
	}
	password, err := promptPassword(s.reader, s.in, s.out)
	if err != nil {
		return err
	}

	sess, err := s.login.SignIn(ctx, email, password)
	s.printStatus(s.login.Status())
	if err == nil {
		s.session = sess
	}
	return nil
}

func (s *Shell) runRegister(ctx context.Context, _ string) error {
	fullName, err := prompt(s.reader, s.out, "Full name")
	if err != nil {
		return err
	}
	email, err := prompt(s.reader, s.out, "Email")
	if err != nil {
		return err
	}
	password, err := promptPassword(s.reader, s.in, s.out)
	if err != nil {
		return err
	}

	if err := s.register.Register(ctx, fullName, email, password); errors.Is(err, controllers.ErrFieldsRequired) {
		return nil
	}
	s.printStatus(s.register.Status())
	return nil
}

func (s *Shell) runFact(ctx context.Context, _ string) error {
	s.facts.GetFunFact(ctx, s.session)
	return nil
}

func (s *Shell) runSearch(_ context.Context, args string) error {
	query := args
	if query == "" {
		var err error
		if query, err = prompt(s.reader, s.out, "Search for trails"); err != nil {
			return err
		}
	}
	s.logger.Info("trail search submitted", zap.String("query", query))
	s.Alert(searchNotImplemented, "")
	return nil
}

func (s *Shell) runLogout(ctx context.Context, _ string) error {
	err := s.profile.SignOut(ctx, s.session)
	s.printStatus(s.profile.Status())
	if err == nil {
		s.session = nil
	}
	return nil
}
