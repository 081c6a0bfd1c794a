package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/jessevdk/go-flags"
)

const (
	// Control API prefix.
	routeAPI = "/api/v1"
)

// Options shared by all commands.
type globalOptions struct {
	URL     string `short:"u" long:"url" env:"MONITOR_API_URL" default:"http://localhost:3114" description:"Monitor API address."`
	Timeout int    `short:"t" long:"timeout" default:"70" description:"Request timeout in seconds."`

	client *apiClient
	out    io.Writer
}

// Lazily creates API client.
func (g *globalOptions) api() *apiClient {
	if nil == g.client {
		g.client = newAPIClient(g.URL, g.Timeout)
	}

	return g.client
}

// Calls API and prints the response.
func (g *globalOptions) call(method string, path string, body string) error {
	resp, err := g.api().do(method, path, body)
	if err != nil {
		return err
	}

	fmt.Fprintln(g.out, resp) // nolint: errcheck
	return nil
}

// Registers all commands.
func newParser(opts *globalOptions, out io.Writer) *flags.Parser {
	opts.out = out
	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)

	add := func(name string, short string, data flags.Commander) {
		if _, err := parser.AddCommand(name, short, short, data); err != nil {
			panic(err)
		}
	}

	add("startup", "Report installation start-up", &startupCommand{opts: opts})
	add("finished", "Report finished start-up", &simpleCommand{opts: opts, method: http.MethodPost, path: "/startup/finished"})
	add("shutdown", "Report installation shutdown", &simpleCommand{opts: opts, method: http.MethodPost, path: "/shutdown"})
	add("health", "Run health check", &simpleCommand{opts: opts, method: http.MethodPost, path: "/health"})
	add("prune", "Remove monitors of vanished devices", &simpleCommand{opts: opts, method: http.MethodPost, path: "/prune"})
	add("state", "Show engine state", &simpleCommand{opts: opts, method: http.MethodGet, path: "/state"})
	add("register", "Register devices", &registerCommand{opts: opts})
	add("log", "Send collector log message", &logCommand{opts: opts})
	add("status", "Show monitored device status", &statusCommand{opts: opts})
	add("set", "Set host property", &setCommand{opts: opts})
	add("unset", "Mark host property unavailable", &unsetCommand{opts: opts})
	add("mapper", "Show mapped input values", &simpleCommand{opts: opts, method: http.MethodGet, path: "/mapper"})
	add("mapper-reset", "Reload input mappings", &simpleCommand{opts: opts, method: http.MethodPost, path: "/mapper/reset"})

	return parser
}

// Command without arguments.
type simpleCommand struct {
	opts   *globalOptions
	method string
	path   string
}

// Execute runs the command.
func (c *simpleCommand) Execute([]string) error {
	return c.opts.call(c.method, c.path, "")
}

// Reports start-up.
type startupCommand struct {
	opts    *globalOptions
	Timeout int `long:"startup-timeout" description:"Seconds after which installation is considered up."`
}

// Execute runs the command.
func (c *startupCommand) Execute([]string) error {
	path := "/startup"
	if c.Timeout > 0 {
		path += "?timeout=" + strconv.Itoa(c.Timeout)
	}

	return c.opts.call(http.MethodPost, path, "")
}

// Registers devices of the category.
type registerCommand struct {
	opts *globalOptions
	Args struct {
		Category string   `positional-arg-name:"category" description:"network, spot or watchout"`
		Names    []string `positional-arg-name:"names" description:"Device names or patterns"`
	} `positional-args:"yes" required:"yes"`
}

// Execute runs the command.
func (c *registerCommand) Execute([]string) error {
	if 0 == len(c.Args.Names) {
		return &errMissingArgument{Name: "names"}
	}

	return c.opts.call(http.MethodPost, "/register/"+url.PathEscape(c.Args.Category),
		strings.Join(c.Args.Names, ", "))
}

// Sends log message.
type logCommand struct {
	opts  *globalOptions
	Level string `short:"l" long:"level" default:"info" description:"Log level name or number."`
	Args  struct {
		Message []string `positional-arg-name:"message"`
	} `positional-args:"yes" required:"yes"`
}

// Execute runs the command.
func (c *logCommand) Execute([]string) error {
	return c.opts.call(http.MethodPost, "/log?level="+url.QueryEscape(c.Level),
		strings.Join(c.Args.Message, " "))
}

// Shows device status.
type statusCommand struct {
	opts *globalOptions
	Args struct {
		Path string `positional-arg-name:"path" description:"Device path, e.g. Network.proj1"`
	} `positional-args:"yes" required:"yes"`
}

// Execute runs the command.
func (c *statusCommand) Execute([]string) error {
	return c.opts.call(http.MethodGet, "/devices/"+url.PathEscape(c.Args.Path), "")
}

// Sets property.
type setCommand struct {
	opts *globalOptions
	Args struct {
		Path  string `positional-arg-name:"path"`
		Value string `positional-arg-name:"value" description:"JSON value"`
	} `positional-args:"yes" required:"yes"`
}

// Execute runs the command.
func (c *setCommand) Execute([]string) error {
	return c.opts.call(http.MethodPut, "/property/"+url.PathEscape(c.Args.Path), c.Args.Value)
}

// Marks property unavailable.
type unsetCommand struct {
	opts *globalOptions
	Args struct {
		Path string `positional-arg-name:"path"`
	} `positional-args:"yes" required:"yes"`
}

// Execute runs the command.
func (c *unsetCommand) Execute([]string) error {
	return c.opts.call(http.MethodDelete, "/property/"+url.PathEscape(c.Args.Path), "")
}
