// Copyright (c) Microsoft. All rights reserved.

package cosmos

import (
	"context"
	"errors"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"

	af "github.com/microsoft/agent-framework-cosmos/go/agentframework"
)

// Client is the part of a Cosmos DB account client that [ChatMessageStore]
// relies on. [WrapAzureClient] adapts an azcosmos client; tests can supply
// their own implementation.
//
// Implementations signal a missing resource with an error for which
// [IsNotFound] reports true, and a create that lost a race with an error for
// which [IsConflict] reports true.
type Client interface {
	// Database returns a handle to the named database without any I/O.
	Database(id string) (Database, error)

	// CreateDatabase creates the named database.
	CreateDatabase(ctx context.Context, id string) error

	// Close releases the client's resources.
	Close() error
}

// Database is a handle to one database in the account.
type Database interface {
	// Read fetches the database metadata.
	Read(ctx context.Context) error

	// Container returns a handle to the named container without any I/O.
	Container(id string) (Container, error)

	// CreateContainer creates a container partitioned on partitionKeyPath.
	CreateContainer(ctx context.Context, id, partitionKeyPath string) error
}

// Container is a handle to one container in a database.
type Container interface {
	// Read fetches the container metadata.
	Read(ctx context.Context) error

	// ReadItem returns the JSON document with the given id in the given partition.
	ReadItem(ctx context.Context, id, partitionKey string) ([]byte, error)

	// UpsertItem inserts or replaces a JSON document in the given partition.
	UpsertItem(ctx context.Context, partitionKey string, item []byte) error
}

// IsNotFound reports whether err means the requested resource does not exist.
func IsNotFound(err error) bool {
	if errors.Is(err, af.ErrNotFound) {
		return true
	}
	return hasStatus(err, http.StatusNotFound)
}

// IsConflict reports whether err means the resource being created already exists.
func IsConflict(err error) bool {
	return hasStatus(err, http.StatusConflict)
}

func hasStatus(err error, status int) bool {
	var respErr *azcore.ResponseError
	return errors.As(err, &respErr) && respErr.StatusCode == status
}
