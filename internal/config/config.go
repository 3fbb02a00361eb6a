package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
)

// SourceType selects where the raw capture byte stream comes from.
type SourceType string

const (
	SourceExec  SourceType = "exec"
	SourceFile  SourceType = "file"
	SourceAzure SourceType = "azure"
)

type Config struct {
	Host string
	Port string

	// OCR engine
	TessdataPath string
	OCRLanguages []string

	// Capture source
	StreamSource  SourceType
	StreamCommand string
	StreamFile    string

	AzureAccount   string
	AzureKey       string
	AzureContainer string
	AzureBlob      string

	// Pipeline tuning
	QueueCapacity       int
	SubscriberBuffer    int
	SimilarityThreshold float64
	TextDedup           bool

	// Fractional screen regions
	ReadyRowFraction   float64
	QuestionBandTop    float64
	QuestionBandBottom float64
	AnswersBandTop     float64
	AnswersBandBottom  float64
}

func (c *Config) ServerAddress() string {
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Host:         getEnvOrDefault("HOST", "localhost"),
		Port:         getEnvOrDefault("PORT", "8779"),
		TessdataPath: getEnvOrDefault("TESSDATA_PATH", "/usr/share/tesseract-ocr/tessdata"),
		OCRLanguages: strings.Split(getEnvOrDefault("OCR_LANGUAGES", "rus+eng"), "+"),

		StreamSource:  SourceType(getEnvOrDefault("STREAM_SOURCE", "exec")),
		StreamCommand: getEnvOrDefault("STREAM_COMMAND", "sh stream.sh"),
		StreamFile:    os.Getenv("STREAM_FILE"),

		AzureAccount:   os.Getenv("AZURE_ACCOUNT"),
		AzureKey:       os.Getenv("AZURE_KEY"),
		AzureContainer: os.Getenv("AZURE_CONTAINER"),
		AzureBlob:      os.Getenv("AZURE_BLOB"),

		QueueCapacity:       parseIntOrDefault("QUEUE_CAPACITY", 100),
		SubscriberBuffer:    parseIntOrDefault("SUB_BUFFER", 16),
		SimilarityThreshold: parseFloatOrDefault("SIMILARITY_THRESHOLD", 0.99),
		TextDedup:           parseBoolOrDefault("TEXT_DEDUP", true),

		ReadyRowFraction:   parseFloatOrDefault("READY_ROW_FRACTION", 0.54),
		QuestionBandTop:    parseFloatOrDefault("QUESTION_BAND_TOP", 0.11),
		QuestionBandBottom: parseFloatOrDefault("QUESTION_BAND_BOTTOM", 0.32),
		AnswersBandTop:     parseFloatOrDefault("ANSWERS_BAND_TOP", 0.32),
		AnswersBandBottom:  parseFloatOrDefault("ANSWERS_BAND_BOTTOM", 0.56),
	}

	// Validate port is numeric and in range
	p, err := strconv.Atoi(strings.TrimSpace(cfg.Port))
	if err != nil || p < 1 || p > 65535 {
		return nil, fmt.Errorf("invalid PORT: %q", cfg.Port)
	}
	switch cfg.StreamSource {
	case SourceExec, SourceFile, SourceAzure:
	default:
		return nil, fmt.Errorf("invalid STREAM_SOURCE: %q", cfg.StreamSource)
	}
	if cfg.QueueCapacity <= 0 {
		return nil, fmt.Errorf("QUEUE_CAPACITY must be > 0 (got %d)", cfg.QueueCapacity)
	}
	if cfg.SubscriberBuffer <= 0 {
		return nil, fmt.Errorf("SUB_BUFFER must be > 0 (got %d)", cfg.SubscriberBuffer)
	}
	if cfg.SimilarityThreshold <= 0 || cfg.SimilarityThreshold > 1 {
		return nil, fmt.Errorf("SIMILARITY_THRESHOLD must be in (0, 1] (got %g)", cfg.SimilarityThreshold)
	}
	for name, f := range map[string]float64{
		"READY_ROW_FRACTION":   cfg.ReadyRowFraction,
		"QUESTION_BAND_TOP":    cfg.QuestionBandTop,
		"QUESTION_BAND_BOTTOM": cfg.QuestionBandBottom,
		"ANSWERS_BAND_TOP":     cfg.AnswersBandTop,
		"ANSWERS_BAND_BOTTOM":  cfg.AnswersBandBottom,
	} {
		if f <= 0 || f >= 1 {
			return nil, fmt.Errorf("%s must be in (0, 1) (got %g)", name, f)
		}
	}
	if cfg.QuestionBandTop >= cfg.QuestionBandBottom {
		return nil, fmt.Errorf("question band is empty (%g >= %g)", cfg.QuestionBandTop, cfg.QuestionBandBottom)
	}
	if cfg.AnswersBandTop >= cfg.AnswersBandBottom {
		return nil, fmt.Errorf("answers band is empty (%g >= %g)", cfg.AnswersBandTop, cfg.AnswersBandBottom)
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func parseBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
