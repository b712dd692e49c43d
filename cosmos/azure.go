// Copyright (c) Microsoft. All rights reserved.

package cosmos

import (
	"context"
	"fmt"
	"os"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/data/azcosmos"

	af "github.com/microsoft/agent-framework-cosmos/go/agentframework"
)

// Environment variables read by [NewAzureClientFromEnv].
const (
	EnvEndpoint         = EnvPrefix + "ENDPOINT"
	EnvKey              = EnvPrefix + "KEY"
	EnvConnectionString = EnvPrefix + "CONNECTION_STRING"
)

// WrapAzureClient adapts an azcosmos client to [Client]. The caller keeps
// ownership of c.
func WrapAzureClient(c *azcosmos.Client) Client {
	return &azureClient{client: c}
}

// NewAzureClient creates a [Client] for endpoint authenticated with an
// Entra ID credential, e.g. azidentity.NewDefaultAzureCredential.
func NewAzureClient(endpoint string, cred azcore.TokenCredential, options *azcosmos.ClientOptions) (Client, error) {
	c, err := azcosmos.NewClient(endpoint, cred, options)
	if err != nil {
		return nil, fmt.Errorf("%w: create cosmos client: %w", af.ErrConfiguration, err)
	}
	return WrapAzureClient(c), nil
}

// NewAzureClientWithKey creates a [Client] for endpoint authenticated with an
// account key.
func NewAzureClientWithKey(endpoint, key string, options *azcosmos.ClientOptions) (Client, error) {
	cred, err := azcosmos.NewKeyCredential(key)
	if err != nil {
		return nil, fmt.Errorf("%w: cosmos account key: %w", af.ErrConfiguration, err)
	}
	c, err := azcosmos.NewClientWithKey(endpoint, cred, options)
	if err != nil {
		return nil, fmt.Errorf("%w: create cosmos client: %w", af.ErrConfiguration, err)
	}
	return WrapAzureClient(c), nil
}

// NewAzureClientFromConnectionString creates a [Client] from an account
// connection string.
func NewAzureClientFromConnectionString(connectionString string, options *azcosmos.ClientOptions) (Client, error) {
	c, err := azcosmos.NewClientFromConnectionString(connectionString, options)
	if err != nil {
		return nil, fmt.Errorf("%w: create cosmos client: %w", af.ErrConfiguration, err)
	}
	return WrapAzureClient(c), nil
}

// NewAzureClientFromEnv creates a [Client] from environment variables. It uses
// the connection string if set, then endpoint and key, then endpoint and cred.
func NewAzureClientFromEnv(cred azcore.TokenCredential, options *azcosmos.ClientOptions) (Client, error) {
	if conn := os.Getenv(EnvConnectionString); conn != "" {
		return NewAzureClientFromConnectionString(conn, options)
	}
	endpoint := os.Getenv(EnvEndpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("%w: set %s or %s", af.ErrConfiguration, EnvConnectionString, EnvEndpoint)
	}
	if key := os.Getenv(EnvKey); key != "" {
		return NewAzureClientWithKey(endpoint, key, options)
	}
	if cred == nil {
		return nil, fmt.Errorf("%w: %s is unset and no credential was provided", af.ErrConfiguration, EnvKey)
	}
	return NewAzureClient(endpoint, cred, options)
}

type azureClient struct {
	client *azcosmos.Client
}

func (c *azureClient) Database(id string) (Database, error) {
	db, err := c.client.NewDatabase(id)
	if err != nil {
		return nil, err
	}
	return &azureDatabase{db: db}, nil
}

func (c *azureClient) CreateDatabase(ctx context.Context, id string) error {
	_, err := c.client.CreateDatabase(ctx, azcosmos.DatabaseProperties{ID: id}, nil)
	return err
}

// Close is a no-op; azcosmos clients have nothing to release.
func (c *azureClient) Close() error { return nil }

type azureDatabase struct {
	db *azcosmos.DatabaseClient
}

func (d *azureDatabase) Read(ctx context.Context) error {
	_, err := d.db.Read(ctx, nil)
	return err
}

func (d *azureDatabase) Container(id string) (Container, error) {
	c, err := d.db.NewContainer(id)
	if err != nil {
		return nil, err
	}
	return &azureContainer{container: c}, nil
}

func (d *azureDatabase) CreateContainer(ctx context.Context, id, partitionKeyPath string) error {
	props := azcosmos.ContainerProperties{
		ID: id,
		PartitionKeyDefinition: azcosmos.PartitionKeyDefinition{
			Paths: []string{partitionKeyPath},
		},
	}
	_, err := d.db.CreateContainer(ctx, props, nil)
	return err
}

type azureContainer struct {
	container *azcosmos.ContainerClient
}

func (c *azureContainer) Read(ctx context.Context) error {
	_, err := c.container.Read(ctx, nil)
	return err
}

func (c *azureContainer) ReadItem(ctx context.Context, id, partitionKey string) ([]byte, error) {
	resp, err := c.container.ReadItem(ctx, azcosmos.NewPartitionKeyString(partitionKey), id, nil)
	if err != nil {
		return nil, err
	}
	return resp.Value, nil
}

func (c *azureContainer) UpsertItem(ctx context.Context, partitionKey string, item []byte) error {
	_, err := c.container.UpsertItem(ctx, azcosmos.NewPartitionKeyString(partitionKey), item, nil)
	return err
}
