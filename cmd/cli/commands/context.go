package commands

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/jakechorley/workshop-groups/internal/config"
	"github.com/jakechorley/workshop-groups/pkg/clients/sheetsclient"
	"github.com/jakechorley/workshop-groups/pkg/core/services"
	"github.com/jakechorley/workshop-groups/pkg/responses"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Env    string
	Cfg    *config.Config
	Logger *zap.Logger
	Ctx    context.Context

	mu           sync.Mutex
	sheetsClient *sheetsclient.Client
}

// SheetsClient returns the Google Sheets client, authenticating on first use.
// Commands working from local files never trigger the OAuth flow.
func (a *AppContext) SheetsClient() (*sheetsclient.Client, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.sheetsClient != nil {
		return a.sheetsClient, nil
	}

	a.Logger.Info("Loading OAuth client configuration")
	oauthCfg, err := config.LoadOAuthClientWithEnv(a.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to load OAuth client config: %w", err)
	}

	a.Logger.Info("Initializing sheets client")
	client, err := sheetsclient.NewClient(a.Ctx, oauthCfg, a.Env, a.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	a.Logger.Debug("Sheets client initialized successfully")

	a.sheetsClient = client
	return client, nil
}

// responseSource picks the CSV file when one is given, otherwise the configured sheet
func (a *AppContext) responseSource(file string) (services.ResponseSource, error) {
	if file != "" {
		a.Logger.Debug("Reading responses from file", zap.String("path", file))
		return &responses.CSVSource{Path: file}, nil
	}
	client, err := a.SheetsClient()
	if err != nil {
		return nil, err
	}
	return client, nil
}
