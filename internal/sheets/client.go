package sheets

import (
	"context"
	"fmt"
	"os"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"

	"tournament-reg/internal/config"
)

const (
	readCacheTTL     = 30 * time.Second
	readCacheCleanup = 5 * time.Minute
)

type Client struct {
	srv           *sheetsv4.Service
	spreadsheetID string
	appendRange   string
	readRange     string
	cache         *gocache.Cache
	logger        *zap.Logger
}

// New authenticates with the service account key from cfg. An inline JSON
// key wins over a key file path.
func New(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*Client, error) {
	var creds option.ClientOption
	switch {
	case cfg.ServiceAccountKey != "":
		creds = option.WithCredentialsJSON([]byte(cfg.ServiceAccountKey))
	case cfg.ServiceAccountFile != "":
		if _, err := os.Stat(cfg.ServiceAccountFile); err != nil {
			return nil, fmt.Errorf("service account json: %w", err)
		}
		creds = option.WithCredentialsFile(cfg.ServiceAccountFile)
	default:
		return nil, fmt.Errorf("service account credentials missing")
	}
	return NewWithOptions(ctx, cfg, logger, creds, option.WithScopes(sheetsv4.SpreadsheetsScope))
}

// NewWithOptions builds a client from explicit API options (endpoint, HTTP client, credentials).
func NewWithOptions(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger, opts ...option.ClientOption) (*Client, error) {
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	srv, err := sheetsv4.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{
		srv:           srv,
		spreadsheetID: cfg.SpreadsheetID,
		appendRange:   cfg.AppendRange,
		readRange:     cfg.ReadRange,
		cache:         gocache.New(readCacheTTL, readCacheCleanup),
		logger:        logger,
	}, nil
}

func (c *Client) SpreadsheetID() string { return c.spreadsheetID }
