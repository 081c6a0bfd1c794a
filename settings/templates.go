package settings

import (
	"bytes"
	"os"
	"text/template"

	"github.com/go-home-io/device-monitor/common"
	"github.com/pkg/errors"
)

// ITemplateProvider defines template logic.
type ITemplateProvider interface {
	Process([]byte) ([]byte, error)
}

// Template engine provider.
type provider struct {
	Logger    common.ILoggerProvider
	functions template.FuncMap
}

// Contains data required for a new template.
type constructTemplate struct {
	Logger common.ILoggerProvider
}

// Constructs a new template engine.
func newTemplateProvider(ctor *constructTemplate) *provider {
	provider := &provider{
		Logger: ctor.Logger,
	}

	provider.functions = template.FuncMap{
		"env":     provider.getEnvVariable,
		"default": defaultValue,
	}

	return provider
}

// Process applies template functions which allow reading from
// environment variables.
func (p *provider) Process(rawFile []byte) ([]byte, error) {
	tpl, err := template.New("monitor").Funcs(p.functions).Parse(string(rawFile))
	if err != nil {
		return nil, errors.Wrap(err, "template parse failed")
	}

	b := bytes.Buffer{}
	if err := tpl.Execute(&b, nil); err != nil {
		return nil, errors.Wrap(err, "template execute failed")
	}

	return b.Bytes(), nil
}

// Returns environment variable.
func (p *provider) getEnvVariable(name string) string {
	p.Logger.Debug("Template is requesting environment variable",
		common.LogNameToken, name, common.LogSystemToken, logSystem)
	return os.Getenv(name)
}

// Returns fallback if value is empty.
func defaultValue(fallback string, value string) string {
	if "" == value {
		return fallback
	}

	return value
}
