// Package socketio_report streams run results to a socket.io endpoint, so a
// dashboard can follow a run live.
package socketio_report

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/specialistvlad/uiprobe/internal/ctxlog"
	"github.com/specialistvlad/uiprobe/internal/report"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

const (
	// EventResult carries one finished (project, scenario) pair.
	EventResult = "scenario_result"
	// EventFinished carries the run summary.
	EventFinished = "run_finished"

	defaultConnectTimeout = 15 * time.Second
)

// Config defines the socket.io endpoint.
type Config struct {
	URL                string
	Namespace          string
	InsecureSkipVerify bool
	ConnectTimeout     time.Duration
}

// Publisher is a report.Sink that emits results over a websocket transport.
type Publisher struct {
	client *socket.Socket
}

// Connect dials the endpoint and waits for the connect handshake.
func Connect(ctx context.Context, cfg Config) (*Publisher, error) {
	logger := ctxlog.FromContext(ctx).With("sink", "socketio", "url", cfg.URL)
	logger.Debug("Creating socket.io client.")

	parsedURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("socket.io URL %q must include scheme and host", cfg.URL)
	}
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	opts := socket.DefaultOptions()
	if parsedURL.Path != "" {
		opts.SetPath(parsedURL.Path)
	}
	if cfg.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 1)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(cfg.Namespace, opts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Debug("EVENT HANDLER: 'connect' event fired", "sid", io.Id())
		select {
		case connectChan <- nil:
		default:
		}
	})

	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := fmt.Errorf("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		logger.Debug("EVENT HANDLER: 'connect_error' event fired", "error", err)
		select {
		case connectChan <- err:
		default:
		}
	})

	logger.Debug("Initiating connection...")
	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		logger.Info("🔌 Report stream connected", "sid", io.Id())
		return &Publisher{client: io}, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(timeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", timeout)
	}
}

func (p *Publisher) Name() string { return "socketio" }

// Publish emits EventResult with the JSON form of r.
func (p *Publisher) Publish(ctx context.Context, r report.Result) error {
	return p.emit(ctx, EventResult, report.JSONPayload(r))
}

// Close emits EventFinished with the summary and disconnects.
func (p *Publisher) Close(ctx context.Context, s *report.Summary) error {
	defer p.client.Disconnect()
	return p.emit(ctx, EventFinished, report.JSONSummaryPayload(s))
}

func (p *Publisher) emit(ctx context.Context, event string, payload any) error {
	if !p.client.Connected() {
		return fmt.Errorf("socket.io client is not connected")
	}
	data, err := toWire(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s payload: %w", event, err)
	}
	ctxlog.FromContext(ctx).Debug("Emitting event", "event", event, "sid", p.client.Id())
	p.client.Emit(event, data)
	return nil
}

// toWire converts a JSON-tagged struct into the generic map form the
// socket.io parser serializes.
func toWire(payload any) (map[string]any, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
