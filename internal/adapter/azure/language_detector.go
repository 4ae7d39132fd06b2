package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"bilingual-rag/internal/domain"
)

const (
	languagesPath = "/text/analytics/v3.1/languages"
	cacheSize     = 512
)

// LanguageDetector resolves query language via the Azure Text Analytics
// language endpoint. Results are LRU-cached per query text and outbound
// calls are rate-limited to stay inside the service quota. Any failure
// falls back to English rather than erroring the query.
type LanguageDetector struct {
	Endpoint string
	APIKey   string
	Client   *http.Client
	logger   *slog.Logger
	cache    *lru.Cache[string, domain.Language]
	limiter  *rate.Limiter
}

// NewLanguageDetector constructs a detector for the given Azure endpoint.
func NewLanguageDetector(endpoint, apiKey string, client *http.Client, logger *slog.Logger) *LanguageDetector {
	cache, _ := lru.New[string, domain.Language](cacheSize)
	return &LanguageDetector{
		Endpoint: strings.TrimRight(endpoint, "/"),
		APIKey:   apiKey,
		Client:   client,
		logger:   logger,
		cache:    cache,
		limiter:  rate.NewLimiter(rate.Limit(10), 20),
	}
}

type detectRequest struct {
	Documents []detectDocument `json:"documents"`
}

type detectDocument struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type detectResponse struct {
	Documents []struct {
		DetectedLanguage struct {
			ISO6391Name string `json:"iso6391Name"`
		} `json:"detectedLanguage"`
	} `json:"documents"`
}

// Detect returns the detected language for the text. Detection is
// best-effort: transport errors, bad statuses, and rate-limiter cancellation
// all resolve to English after logging.
func (d *LanguageDetector) Detect(ctx context.Context, text string) (domain.Language, error) {
	if cached, ok := d.cache.Get(text); ok {
		return cached, nil
	}

	if err := d.limiter.Wait(ctx); err != nil {
		d.logger.Warn("language_detect_rate_limited", slog.String("error", err.Error()))
		return domain.LanguageEnglish, nil
	}

	lang := d.callAzure(ctx, text)
	d.cache.Add(text, lang)
	return lang, nil
}

func (d *LanguageDetector) callAzure(ctx context.Context, text string) domain.Language {
	start := time.Now()

	payload := detectRequest{Documents: []detectDocument{{ID: "1", Text: text}}}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		d.logger.Warn("language_detect_failed", slog.String("error", err.Error()))
		return domain.LanguageEnglish
	}

	url := fmt.Sprintf("%s%s", d.Endpoint, languagesPath)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		d.logger.Warn("language_detect_failed", slog.String("error", err.Error()))
		return domain.LanguageEnglish
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", d.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.Client.Do(req)
	if err != nil {
		d.logger.Warn("language_detect_failed",
			slog.String("error", err.Error()),
			slog.Duration("elapsed", time.Since(start)))
		return domain.LanguageEnglish
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		d.logger.Warn("language_detect_bad_status",
			slog.Int("status", resp.StatusCode),
			slog.Duration("elapsed", time.Since(start)))
		return domain.LanguageEnglish
	}

	var respBody detectResponse
	if err := json.NewDecoder(resp.Body).Decode(&respBody); err != nil {
		d.logger.Warn("language_detect_failed", slog.String("error", err.Error()))
		return domain.LanguageEnglish
	}
	if len(respBody.Documents) == 0 {
		return domain.LanguageEnglish
	}

	detected := domain.LanguageEnglish
	if respBody.Documents[0].DetectedLanguage.ISO6391Name == "ar" {
		detected = domain.LanguageArabic
	}

	d.logger.Info("language_detect_completed",
		slog.String("language", string(detected)),
		slog.Duration("elapsed", time.Since(start)))
	return detected
}

var _ domain.LanguageDetector = (*LanguageDetector)(nil)
