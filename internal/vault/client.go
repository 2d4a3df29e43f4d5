package vault

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/vault/api"

	"staffing-awards/internal/config"
)

// Client wraps the Vault KV store holding the external API tokens
// (HubSpot, Loops). Keeping them out of the environment lets ops rotate
// them without redeploying.
type Client struct {
	client *api.Client
}

// NewClient creates a new Vault client
func NewClient(cfg *config.VaultConfig) (*Client, error) {
	apiConfig := api.DefaultConfig()
	apiConfig.Address = cfg.Address

	client, err := api.NewClient(apiConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create vault client: %w", err)
	}

	client.SetToken(cfg.Token)

	return &Client{client: client}, nil
}

// GetSecret retrieves a secret from Vault KV
func (c *Client) GetSecret(path string) (map[string]interface{}, error) {
	ctx := context.Background()

	secretPath := fmt.Sprintf("secret/data/%s", path)

	secret, err := c.client.Logical().ReadWithContext(ctx, secretPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read secret: %w", err)
	}

	if secret == nil || secret.Data == nil {
		return nil, fmt.Errorf("secret not found")
	}

	data, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("invalid secret data format")
	}

	return data, nil
}

// GetString reads a single string field from a KV secret
func (c *Client) GetString(path, field string) (string, error) {
	data, err := c.GetSecret(path)
	if err != nil {
		return "", err
	}

	value, ok := data[field].(string)
	if !ok {
		return "", fmt.Errorf("field %s not found in secret %s", field, path)
	}

	return value, nil
}

// Health checks Vault health status
func (c *Client) Health() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	health, err := c.client.Sys().HealthWithContext(ctx)
	if err != nil {
		return fmt.Errorf("vault health check failed: %w", err)
	}

	if !health.Initialized {
		return fmt.Errorf("vault is not initialized")
	}

	if health.Sealed {
		return fmt.Errorf("vault is sealed")
	}

	return nil
}
