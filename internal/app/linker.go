package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samvad-hq/oracle-linker/internal/config"
	"github.com/samvad-hq/oracle-linker/internal/logger"
	"github.com/samvad-hq/oracle-linker/pkg/httpclient"
	"github.com/samvad-hq/oracle-linker/pkg/oracle"
	"github.com/samvad-hq/oracle-linker/pkg/publishers"
)

// Linker is the lookup runtime. It owns the oracle client and the optional
// publisher fan-out; each Lookup is independent.
type Linker struct {
	cfg    *config.Config
	client *oracle.Client
	fanout *publishers.Fanout
	log    logger.Logger
}

// NewLinker builds a Linker from config. Publishing is enabled only when
// cfg.PublishersFile is set.
func NewLinker(ctx context.Context, cfg *config.Config, log logger.Logger) (*Linker, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	httpClient := httpclient.NewRestyClientWithOptions(httpclient.Options{
		Timeout:   cfg.HTTPTimeout,
		UserAgent: cfg.UserAgent,
	})
	client := oracle.NewClient(
		oracle.WithHTTPClient(httpClient),
		oracle.WithBaseURL(cfg.OracleBaseURL),
		oracle.WithLogger(log),
	)

	fanout, err := buildFanout(ctx, cfg.PublishersFile, log)
	if err != nil {
		return nil, err
	}

	return newLinker(cfg, client, fanout, log), nil
}

func newLinker(cfg *config.Config, client *oracle.Client, fanout *publishers.Fanout, log logger.Logger) *Linker {
	return &Linker{cfg: cfg, client: client, fanout: fanout, log: log}
}

func buildFanout(ctx context.Context, path string, log logger.Logger) (*publishers.Fanout, error) {
	if path == "" {
		log.InfoObj("publishing disabled", "publishers_file", path)
		return publishers.NewFanout(nil), nil
	}

	publisherReg, err := publishers.LoadRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}

	enabled := publisherReg.Enabled()
	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}

	summaries := make([]map[string]string, 0, len(enabled))
	for _, pubCfg := range enabled {
		summaries = append(summaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(summaries),
		"publishers": summaries,
	})
	return publishers.NewFanout(pubClients), nil
}

// Lookup resolves the link between from and to. An empty apiKey falls back
// to the configured key. Publishing failures are logged, not returned.
func (l *Linker) Lookup(ctx context.Context, from, to, apiKey string) (oracle.Response, error) {
	if l == nil || l.client == nil {
		return nil, fmt.Errorf("linker is not initialized")
	}
	if apiKey == "" {
		apiKey = l.cfg.OracleAPIKey
	}

	start := time.Now()
	q, err := oracle.NewQuery(from, to, apiKey)
	if err != nil {
		l.log.WarnObj("lookup rejected", "lookup_error", lookupErrorFields(from, to, err))
		return nil, err
	}

	resp, err := l.client.Find(ctx, q)
	if err != nil {
		l.log.ErrorObj("lookup failed", "lookup_error", lookupErrorFields(from, to, err))
		return nil, err
	}

	evt := publishers.NewEvent(q, resp)
	l.log.InfoObj("lookup completed", "lookup", lookupFields(evt, time.Since(start)))

	if l.fanout.Size() > 0 {
		delivered, err := l.fanout.Publish(ctx, evt)
		if err != nil {
			l.log.ErrorObj("lookup publish failed", "publish_error", map[string]any{
				"event_id":  evt.ID,
				"delivered": delivered,
				"error":     err.Error(),
			})
		}
	}
	return resp, nil
}

// Close releases publisher resources.
func (l *Linker) Close() error {
	if l == nil {
		return nil
	}
	return l.fanout.Close()
}

func lookupFields(evt publishers.Event, elapsed time.Duration) map[string]any {
	fields := map[string]any{
		"event_id":   evt.ID,
		"from":       evt.From,
		"to":         evt.To,
		"kind":       evt.Kind,
		"elapsed_ms": elapsed.Milliseconds(),
	}
	if evt.Path != nil {
		fields["path"] = evt.Path
	}
	if evt.Candidates != nil {
		fields["candidates"] = evt.Candidates
	}
	if evt.ErrorSubtype != "" {
		fields["error_subtype"] = evt.ErrorSubtype
	}
	if evt.Message != "" {
		fields["message"] = evt.Message
	}
	return fields
}

// lookupErrorFields never carries the API key: transport errors quote the
// request URI, so the error text is redacted.
func lookupErrorFields(from, to string, err error) map[string]any {
	fields := map[string]any{
		"from":  from,
		"to":    to,
		"error": oracle.RedactAPIKey(err.Error()),
	}
	var verr *oracle.ValidationError
	if errors.As(err, &verr) {
		fields["violations"] = verr.Violations
	}
	var nerr *oracle.NetworkError
	if errors.As(err, &nerr) {
		fields["failure_kind"] = string(nerr.Kind)
		if nerr.StatusCode != 0 {
			fields["status"] = nerr.StatusCode
		}
	}
	return fields
}
