// Copyright (c) Microsoft. All rights reserved.

package cosmos

import (
	"fmt"
	"os"
	"strings"

	af "github.com/microsoft/agent-framework-cosmos/go/agentframework"
)

const (
	DefaultDatabaseName     = "chat_messages_db"
	DefaultContainerName    = "chat_messages_container"
	DefaultPartitionKeyPath = "/thread_id"

	// EnvPrefix prefixes every environment variable read by this package.
	EnvPrefix = "AZURE_COSMOS_DB_NO_SQL_"

	EnvDatabaseName  = EnvPrefix + "DATABASE_NAME"
	EnvContainerName = EnvPrefix + "CONTAINER_NAME"
	EnvPartitionKey  = EnvPrefix + "PARTITION_KEY"
)

// maxResourceNameLen is the Cosmos DB limit for database and container ids.
const maxResourceNameLen = 255

// Settings configures a [ChatMessageStore]. It is resolved and validated once,
// when the store is created.
type Settings struct {
	DatabaseName     string
	ContainerName    string
	PartitionKeyPath string

	// ThreadID names the conversation; a UUID is generated when empty.
	ThreadID string

	// SaveEveryMessage persists the thread after every AddMessages call
	// instead of only on SerializeState.
	SaveEveryMessage bool

	// CreateResources creates the database and container, if missing,
	// on the first persist.
	CreateResources bool
}

// DefaultSettings returns the settings used when no option overrides them.
func DefaultSettings() Settings {
	return Settings{
		DatabaseName:     DefaultDatabaseName,
		ContainerName:    DefaultContainerName,
		PartitionKeyPath: DefaultPartitionKeyPath,
	}
}

// SettingsFromEnv returns [DefaultSettings] with resource names overridden by
// the AZURE_COSMOS_DB_NO_SQL_* environment variables that are set.
func SettingsFromEnv() Settings {
	s := DefaultSettings()
	if v := os.Getenv(EnvDatabaseName); v != "" {
		s.DatabaseName = v
	}
	if v := os.Getenv(EnvContainerName); v != "" {
		s.ContainerName = v
	}
	if v := os.Getenv(EnvPartitionKey); v != "" {
		s.PartitionKeyPath = v
	}
	return s
}

// Validate checks resource names and the partition key path.
// Errors match [af.ErrConfiguration].
func (s Settings) Validate() error {
	if err := validateResourceName("database name", s.DatabaseName); err != nil {
		return err
	}
	if err := validateResourceName("container name", s.ContainerName); err != nil {
		return err
	}
	if !strings.HasPrefix(s.PartitionKeyPath, "/") || len(s.PartitionKeyPath) < 2 {
		return fmt.Errorf("%w: partition key path %q must start with '/' and name a property",
			af.ErrConfiguration, s.PartitionKeyPath)
	}
	return nil
}

func validateResourceName(field, name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: %s is required", af.ErrConfiguration, field)
	case len(name) > maxResourceNameLen:
		return fmt.Errorf("%w: %s exceeds %d characters", af.ErrConfiguration, field, maxResourceNameLen)
	case strings.ContainsAny(name, `/\#?`):
		return fmt.Errorf("%w: %s %q contains one of / \\ # ?", af.ErrConfiguration, field, name)
	case strings.HasSuffix(name, " "):
		return fmt.Errorf("%w: %s %q ends with a space", af.ErrConfiguration, field, name)
	}
	return nil
}
