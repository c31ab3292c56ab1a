// Copyright 2026 Harald Albrecht.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"bytes"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// PortEnvironmentVariable names the environment variable specifying the port
// to listen on.
const PortEnvironmentVariable = "PORT"

// Defaults.
const (
	DefaultRoot              = "dist"
	DefaultIndex             = "index.html"
	DefaultHost              = "0.0.0.0"
	DefaultPort              = 5173
	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultShutdownTimeout   = 5 * time.Second
	DefaultLogFormat         = LogFormatText
)

// Supported log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config is the process-wide configuration; it is read-only after startup.
type Config struct {
	// Root is the serving root directory containing the built SPA.
	Root string `yaml:"root"`
	// Index is the name of the SPA's root document inside Root.
	Index string `yaml:"index"`
	// Host and Port to listen on.
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// ReadHeaderTimeout bounds the time allowed to read request headers; zero
	// means no timeout.
	ReadHeaderTimeout time.Duration `yaml:"readHeaderTimeout"`
	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	// BaseRewriting enables rewriting the index document's <base href>.
	BaseRewriting bool `yaml:"baseRewriting"`
	// LogFormat is either "text" or "json".
	LogFormat string `yaml:"logFormat"`
	// Verbosity is the logr V-level to log up to.
	Verbosity int `yaml:"verbosity"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Root:              DefaultRoot,
		Index:             DefaultIndex,
		Host:              DefaultHost,
		Port:              DefaultPort,
		ReadHeaderTimeout: DefaultReadHeaderTimeout,
		ShutdownTimeout:   DefaultShutdownTimeout,
		LogFormat:         DefaultLogFormat,
	}
}

// LoadFile overlays the configuration with the settings from the YAML file at
// the specified path. Keys not present in the file keep their current values,
// unknown keys are an error.
func (c *Config) LoadFile(path string) error {
	contents, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "unable to read configuration file")
	}
	dec := yaml.NewDecoder(bytes.NewReader(contents))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		return errors.Wrapf(err, "unable to parse configuration file %s", path)
	}
	return nil
}

// LoadDotEnv loads environment variables from the specified .env files (or
// ".env" if none are given) without overriding variables already set. Missing
// files are silently skipped.
func LoadDotEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, filename := range filenames {
		if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(filename); err != nil {
			return errors.Wrapf(err, "unable to load environment file %s", filename)
		}
	}
	return nil
}

// LoadEnv overlays the configuration with the settings from the environment.
func (c *Config) LoadEnv() error {
	port, ok := os.LookupEnv(PortEnvironmentVariable)
	if !ok || port == "" {
		return nil
	}
	p, err := strconv.Atoi(port)
	if err != nil {
		return errors.Wrapf(err, "invalid %s environment variable value %q",
			PortEnvironmentVariable, port)
	}
	c.Port = p
	return nil
}

// Validate checks the configuration for invalid settings.
func (c Config) Validate() error {
	if c.Root == "" {
		return errors.New("empty serving root")
	}
	if c.Index == "" {
		return errors.New("empty root document name")
	}
	if c.Port < 1 || c.Port > 65535 {
		return errors.Errorf("invalid port %d", c.Port)
	}
	if c.ReadHeaderTimeout < 0 {
		return errors.Errorf("invalid negative read header timeout %s", c.ReadHeaderTimeout)
	}
	if c.ShutdownTimeout < 0 {
		return errors.Errorf("invalid negative shutdown timeout %s", c.ShutdownTimeout)
	}
	switch c.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return errors.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

// Address returns the host:port address to listen on.
func (c Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
