// Copyright (c) 2026 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package fetchconfig builds Transports and loggers from YAML.
//
//	transport: socket
//	logging:
//	  level: ${LOG_LEVEL:info}
//	socket:
//	  keepAlive: 30s
//	  maxIdleConnsPerHost: 4
//	  responseHeaderTimeout: 5s
//
// ${NAME} and ${NAME:default} are expanded from the environment before the
// document is parsed. Unknown keys are rejected.
package fetchconfig

import (
	"fmt"
	"io"
	"time"

	"github.com/fetchkit/fetch/api/transport"
	"github.com/fetchkit/fetch/internal/interpolate"
	"github.com/fetchkit/fetch/transport/socket"
	"github.com/fetchkit/fetch/transport/xhr"
	"github.com/opentracing/opentracing-go"
	"github.com/uber-go/tally"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v2"
)

// Transport kinds.
const (
	KindXHR    = "xhr"
	KindSocket = "socket"
)

// Config is the top-level configuration.
type Config struct {
	// Transport selects the implementation: "xhr" (the default) or "socket".
	Transport string        `yaml:"transport"`
	Logging   LoggingConfig `yaml:"logging"`
	XHR       XHRConfig     `yaml:"xhr"`
	Socket    SocketConfig  `yaml:"socket"`
}

// LoggingConfig configures the zap logger returned by NewLogger.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Encoding    string `yaml:"encoding"`
	Development bool   `yaml:"development"`
}

// XHRConfig configures the browser-style transport.
type XHRConfig struct {
	WithCredentials bool `yaml:"withCredentials"`
}

// SocketConfig configures the socket transport. Zero values keep the
// transport's defaults.
type SocketConfig struct {
	KeepAlive             time.Duration `yaml:"keepAlive"`
	MaxIdleConns          int           `yaml:"maxIdleConns"`
	MaxIdleConnsPerHost   int           `yaml:"maxIdleConnsPerHost"`
	IdleConnTimeout       time.Duration `yaml:"idleConnTimeout"`
	DisableKeepAlives     bool          `yaml:"disableKeepAlives"`
	DisableCompression    bool          `yaml:"disableCompression"`
	ResponseHeaderTimeout time.Duration `yaml:"responseHeaderTimeout"`
	ConnTimeout           time.Duration `yaml:"connTimeout"`
}

// Default returns the configuration used when nothing is specified.
func Default() *Config {
	return &Config{
		Transport: KindXHR,
		Logging: LoggingConfig{
			Level:    "info",
			Encoding: "json",
		},
	}
}

type loadOptions struct {
	resolve interpolate.VariableResolver
}

// LoadOption customizes LoadYAML.
type LoadOption func(*loadOptions)

// Variables sets the resolver for ${NAME} references.
//
// Defaults to the process environment.
func Variables(resolve interpolate.VariableResolver) LoadOption {
	return func(o *loadOptions) {
		o.resolve = resolve
	}
}

// LoadYAML reads, expands, parses and validates a configuration. Fields
// absent from the document keep the values of Default.
func LoadYAML(r io.Reader, opts ...LoadOption) (*Config, error) {
	options := loadOptions{resolve: interpolate.Env}
	for _, opt := range opts {
		opt(&options)
	}

	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	expanded, err := interpolate.Expand(string(b), options.resolve)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.UnmarshalStrict([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var errs error
	switch c.Transport {
	case KindXHR, KindSocket:
	default:
		errs = multierr.Append(errs, fmt.Errorf("unknown transport %q: must be %q or %q", c.Transport, KindXHR, KindSocket))
	}

	if _, err := c.Logging.level(); err != nil {
		errs = multierr.Append(errs, err)
	}
	switch c.Logging.Encoding {
	case "", "json", "console":
	default:
		errs = multierr.Append(errs, fmt.Errorf("unknown logging encoding %q", c.Logging.Encoding))
	}

	s := c.Socket
	for _, d := range []struct {
		name  string
		value time.Duration
	}{
		{"keepAlive", s.KeepAlive},
		{"idleConnTimeout", s.IdleConnTimeout},
		{"responseHeaderTimeout", s.ResponseHeaderTimeout},
		{"connTimeout", s.ConnTimeout},
	} {
		if d.value < 0 {
			errs = multierr.Append(errs, fmt.Errorf("socket.%s must not be negative, got %v", d.name, d.value))
		}
	}
	if s.MaxIdleConns < 0 {
		errs = multierr.Append(errs, fmt.Errorf("socket.maxIdleConns must not be negative, got %d", s.MaxIdleConns))
	}
	if s.MaxIdleConnsPerHost < 0 {
		errs = multierr.Append(errs, fmt.Errorf("socket.maxIdleConnsPerHost must not be negative, got %d", s.MaxIdleConnsPerHost))
	}
	return errs
}

func (l LoggingConfig) level() (zapcore.Level, error) {
	var level zapcore.Level
	if l.Level == "" {
		return zapcore.InfoLevel, nil
	}
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return level, fmt.Errorf("invalid logging level %q: %v", l.Level, err)
	}
	return level, nil
}

// NewLogger builds the logger described by the logging section.
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := c.Logging.level()
	if err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	if c.Logging.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	if c.Logging.Encoding != "" {
		zc.Encoding = c.Logging.Encoding
	}
	return zc.Build()
}

type buildOptions struct {
	logger *zap.Logger
	scope  tally.Scope
	tracer opentracing.Tracer
}

// BuildOption supplies a dependency to NewTransport.
type BuildOption func(*buildOptions)

// Logger sets the logger handed to the transport.
func Logger(logger *zap.Logger) BuildOption {
	return func(o *buildOptions) {
		o.logger = logger
	}
}

// Scope sets the metrics scope handed to the transport.
func Scope(scope tally.Scope) BuildOption {
	return func(o *buildOptions) {
		o.scope = scope
	}
}

// Tracer sets the tracer handed to the transport.
func Tracer(tracer opentracing.Tracer) BuildOption {
	return func(o *buildOptions) {
		o.tracer = tracer
	}
}

// NewTransport builds the configured Transport. The caller owns it and must
// Close it.
func (c *Config) NewTransport(opts ...BuildOption) (transport.Transport, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var options buildOptions
	for _, opt := range opts {
		opt(&options)
	}

	switch c.Transport {
	case KindSocket:
		return socket.NewTransport(c.socketOptions(options)...), nil
	default:
		return xhr.NewClient(c.xhrOptions(options)...), nil
	}
}

func (c *Config) xhrOptions(b buildOptions) []xhr.ClientOption {
	opts := []xhr.ClientOption{xhr.WithCredentials(c.XHR.WithCredentials)}
	if b.logger != nil {
		opts = append(opts, xhr.Logger(b.logger))
	}
	if b.scope != nil {
		opts = append(opts, xhr.Scope(b.scope))
	}
	if b.tracer != nil {
		opts = append(opts, xhr.Tracer(b.tracer))
	}
	return opts
}

func (c *Config) socketOptions(b buildOptions) []socket.TransportOption {
	s := c.Socket
	var opts []socket.TransportOption
	if s.KeepAlive > 0 {
		opts = append(opts, socket.KeepAlive(s.KeepAlive))
	}
	if s.MaxIdleConns > 0 {
		opts = append(opts, socket.MaxIdleConns(s.MaxIdleConns))
	}
	if s.MaxIdleConnsPerHost > 0 {
		opts = append(opts, socket.MaxIdleConnsPerHost(s.MaxIdleConnsPerHost))
	}
	if s.IdleConnTimeout > 0 {
		opts = append(opts, socket.IdleConnTimeout(s.IdleConnTimeout))
	}
	if s.DisableKeepAlives {
		opts = append(opts, socket.DisableKeepAlives())
	}
	if s.DisableCompression {
		opts = append(opts, socket.DisableCompression())
	}
	if s.ResponseHeaderTimeout > 0 {
		opts = append(opts, socket.ResponseHeaderTimeout(s.ResponseHeaderTimeout))
	}
	if s.ConnTimeout > 0 {
		opts = append(opts, socket.ConnTimeout(s.ConnTimeout))
	}
	if b.logger != nil {
		opts = append(opts, socket.Logger(b.logger))
	}
	if b.scope != nil {
		opts = append(opts, socket.Scope(b.scope))
	}
	if b.tracer != nil {
		opts = append(opts, socket.Tracer(b.tracer))
	}
	return opts
}
