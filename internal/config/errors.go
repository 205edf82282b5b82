package config

import "fmt"

// ConfigError reports a malformed configuration. It is fatal to the whole run.
type ConfigError struct {
	// Source is the file or position the problem was found at, if known.
	Source string
	Msg    string
	Err    error
}

func (e *ConfigError) Error() string {
	msg := e.Msg
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg = fmt.Sprintf("%s: %v", msg, e.Err)
		}
	}
	if e.Source != "" {
		return fmt.Sprintf("config error at %s: %s", e.Source, msg)
	}
	return "config error: " + msg
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Errorf builds a *ConfigError without a source position.
func Errorf(format string, args ...any) *ConfigError {
	return &ConfigError{Msg: fmt.Sprintf(format, args...)}
}
