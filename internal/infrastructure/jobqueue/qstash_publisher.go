package jobqueue

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/league-engine/internal/platform/logging"
	"github.com/riskibarqy/league-engine/internal/platform/resilience"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const maxLoggedBody = 4096

var (
	errQStashTransient = crerr.New("qstash transient failure")
	errJobPathRequired = crerr.New("job path is required")
)

type QStashPublisherConfig struct {
	BaseURL          string
	Token            string
	TargetBaseURL    string
	Retries          int
	InternalJobToken string
	Timeout          time.Duration
	CircuitBreaker   resilience.CircuitBreakerConfig
}

// QStashPublisher schedules internal job triggers through the QStash publish API.
type QStashPublisher struct {
	client           *http.Client
	baseURL          string
	token            string
	targetBaseURL    string
	retries          int
	internalJobToken string
	logger           *logging.Logger
	breaker          *resilience.CircuitBreaker
	circuitEnabled   bool
}

func NewQStashPublisher(cfg QStashPublisherConfig, logger *logging.Logger) *QStashPublisher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)
	if breakerCfg.OnStateChange == nil {
		breakerCfg.OnStateChange = func(name string, from, to resilience.CircuitState) {
			logger.Warn("circuit breaker state changed", "breaker", name, "from", from, "to", to)
		}
	}

	return &QStashPublisher{
		client:           &http.Client{Timeout: timeout},
		baseURL:          strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		token:            strings.TrimSpace(cfg.Token),
		targetBaseURL:    strings.TrimRight(strings.TrimSpace(cfg.TargetBaseURL), "/"),
		retries:          cfg.Retries,
		internalJobToken: strings.TrimSpace(cfg.InternalJobToken),
		logger:           logger,
		breaker:          resilience.NewCircuitBreaker("qstash", breakerCfg),
		circuitEnabled:   breakerCfg.Enabled,
	}
}

// publishJob is one resolved publish call.
type publishJob struct {
	path       string
	targetURL  string
	publishURL string
	body       []byte
	delay      string
	dedupID    string
}

func (p *QStashPublisher) Enqueue(ctx context.Context, path string, payload any, delay time.Duration, deduplicationID string) error {
	job, err := p.resolve(path, payload, delay, deduplicationID)
	if err != nil {
		return err
	}

	publish := func() error { return p.publish(ctx, job) }
	if !p.circuitEnabled {
		return publish()
	}

	err = p.breaker.Execute(publish, isQStashTransient)
	if crerr.Is(err, resilience.ErrCircuitOpen) {
		p.logger.WarnContext(ctx, "qstash circuit breaker rejected request", "state", p.breaker.State(), "path", job.path)
		return fmt.Errorf("qstash is temporarily unavailable: %w", err)
	}
	return err
}

func (p *QStashPublisher) publish(ctx context.Context, job publishJob) error {
	preview := p.curlPreview(job)

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("qstash.publish_url", job.publishURL),
			attribute.String("qstash.target_url", job.targetURL),
			attribute.String("qstash.path", job.path),
			attribute.String("qstash.delay", job.delay),
			attribute.String("qstash.deduplication_id", job.dedupID),
			attribute.String("qstash.request_curl_preview", preview),
		)
	}
	p.logger.DebugContext(ctx, "qstash publish request", "path", job.path, "target_url", job.targetURL, "curl_preview", preview)

	if err := p.send(ctx, job); err != nil {
		return err
	}

	p.logger.InfoContext(ctx, "qstash job published",
		"path", job.path,
		"delay", job.delay,
		"deduplication_id", job.dedupID,
	)
	return nil
}

func (p *QStashPublisher) resolve(path string, payload any, delay time.Duration, deduplicationID string) (publishJob, error) {
	path = "/" + strings.TrimLeft(strings.TrimSpace(path), "/")
	if path == "/" {
		return publishJob{}, errJobPathRequired
	}

	baseURL, err := validateHTTPBaseURL(p.baseURL)
	if err != nil {
		return publishJob{}, crerr.Wrap(err, "invalid QSTASH_BASE_URL")
	}
	targetBaseURL, err := validateHTTPBaseURL(p.targetBaseURL)
	if err != nil {
		return publishJob{}, crerr.Wrap(err, "invalid QSTASH_TARGET_BASE_URL")
	}

	if payload == nil {
		payload = map[string]any{}
	}
	body, err := sonic.Marshal(payload)
	if err != nil {
		return publishJob{}, crerr.Wrap(err, "marshal job payload")
	}

	targetURL := targetBaseURL + path
	return publishJob{
		path:       path,
		targetURL:  targetURL,
		publishURL: baseURL + "/v2/publish/" + targetURL,
		body:       body,
		delay:      normalizeDelay(delay),
		dedupID:    strings.TrimSpace(deduplicationID),
	}, nil
}

func (p *QStashPublisher) send(ctx context.Context, job publishJob) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, job.publishURL, bytes.NewReader(job.body))
	if err != nil {
		return crerr.Wrap(err, "create qstash request")
	}
	for key, value := range p.headers(job) {
		req.Header.Set(key, value)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: publish qstash job target_url=%s: %v", errQStashTransient, job.targetURL, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode/100 == 2 {
		return nil
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxLoggedBody))
	detail := fmt.Sprintf("publish qstash job status=%d target_url=%s body=%s", resp.StatusCode, job.targetURL, strings.TrimSpace(string(raw)))
	if isQStashRetryableStatus(resp.StatusCode) {
		return fmt.Errorf("%w: %s", errQStashTransient, detail)
	}
	return crerr.New(detail)
}

func (p *QStashPublisher) headers(job publishJob) map[string]string {
	out := map[string]string{
		"Authorization":  "Bearer " + p.token,
		"Content-Type":   "application/json",
		"Upstash-Method": http.MethodPost,
	}
	if p.retries > 0 {
		out["Upstash-Retries"] = strconv.Itoa(p.retries)
	}
	if job.delay != "0s" {
		out["Upstash-Delay"] = job.delay
	}
	if job.dedupID != "" {
		out["Upstash-Deduplication-Id"] = job.dedupID
	}
	if p.internalJobToken != "" {
		out["Upstash-Forward-X-Internal-Job-Token"] = p.internalJobToken
	}
	return out
}

// curlPreview renders the publish call for logs with secrets masked.
func (p *QStashPublisher) curlPreview(job publishJob) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	write := func(parts ...string) {
		for _, part := range parts {
			if buf.Len() > 0 {
				_ = buf.WriteByte(' ')
			}
			_, _ = buf.WriteString(part)
		}
	}

	write("curl", "-X", "POST", shellQuote(job.publishURL))
	for _, name := range []string{"Authorization", "Content-Type", "Upstash-Method", "Upstash-Retries", "Upstash-Delay", "Upstash-Deduplication-Id", "Upstash-Forward-X-Internal-Job-Token"} {
		value, ok := p.headers(job)[name]
		if !ok {
			continue
		}
		switch name {
		case "Authorization":
			value = "Bearer ***"
		case "Upstash-Forward-X-Internal-Job-Token":
			value = "***"
		}
		write("-H", shellQuote(name+": "+value))
	}
	write("-d", shellQuote(truncateForLog(string(job.body), maxLoggedBody)))

	return buf.String()
}

func normalizeDelay(delay time.Duration) string {
	seconds := int(delay.Round(time.Second).Seconds())
	if seconds <= 0 {
		return "0s"
	}
	return strconv.Itoa(seconds) + "s"
}

func validateHTTPBaseURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}

	return strings.TrimRight(candidate, "/"), nil
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "'\"'\"'") + "'"
}

func truncateForLog(value string, max int) string {
	if max <= 0 || len(value) <= max {
		return value
	}
	return value[:max] + "...(truncated)"
}

func isQStashTransient(err error) bool {
	return crerr.Is(err, errQStashTransient)
}

func isQStashRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}
