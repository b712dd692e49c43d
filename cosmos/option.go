// Copyright (c) Microsoft. All rights reserved.

package cosmos

import "log/slog"

// storeConfig holds resolved configuration for a [ChatMessageStore].
type storeConfig struct {
	settings Settings
	logger   *slog.Logger
	metrics  *Metrics
}

// Option configures a [ChatMessageStore].
type Option func(*storeConfig)

// WithSettings replaces all settings, e.g. with the result of [SettingsFromEnv].
// Options after it still apply on top.
func WithSettings(s Settings) Option {
	return func(c *storeConfig) { c.settings = s }
}

// WithDatabaseName sets the database holding the container.
func WithDatabaseName(name string) Option {
	return func(c *storeConfig) { c.settings.DatabaseName = name }
}

// WithContainerName sets the container holding thread documents.
func WithContainerName(name string) Option {
	return func(c *storeConfig) { c.settings.ContainerName = name }
}

// WithPartitionKeyPath sets the partition key path used when creating the container.
func WithPartitionKeyPath(path string) Option {
	return func(c *storeConfig) { c.settings.PartitionKeyPath = path }
}

// WithThreadID sets the thread identifier instead of generating one.
func WithThreadID(id string) Option {
	return func(c *storeConfig) { c.settings.ThreadID = id }
}

// WithSaveEveryMessage persists the thread after every AddMessages call.
func WithSaveEveryMessage(enabled bool) Option {
	return func(c *storeConfig) { c.settings.SaveEveryMessage = enabled }
}

// WithCreateResources creates the database and container on first persist.
func WithCreateResources(enabled bool) Option {
	return func(c *storeConfig) { c.settings.CreateResources = enabled }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *storeConfig) { c.logger = logger }
}

// WithMetrics records every Cosmos DB call on m.
func WithMetrics(m *Metrics) Option {
	return func(c *storeConfig) { c.metrics = m }
}
