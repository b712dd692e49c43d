// Copyright (c) Microsoft. All rights reserved.

package cosmos

import (
	"context"
	"time"
)

// databaseExists reads the database metadata. Not found is false; any other
// error is a persistence error.
func (s *ChatMessageStore) databaseExists(ctx context.Context) (bool, error) {
	db, err := s.database()
	if err != nil {
		return false, err
	}
	start := time.Now()
	err = db.Read(ctx)
	s.metrics.observe(opReadDatabase, start, err)
	switch {
	case err == nil:
		return true, nil
	case IsNotFound(err):
		return false, nil
	default:
		return false, s.persistenceError(opReadDatabase, s.settings.DatabaseName, err)
	}
}

// containerExists is databaseExists for the container.
func (s *ChatMessageStore) containerExists(ctx context.Context) (bool, error) {
	c, err := s.container()
	if err != nil {
		return false, err
	}
	start := time.Now()
	err = c.Read(ctx)
	s.metrics.observe(opReadContainer, start, err)
	switch {
	case err == nil:
		return true, nil
	case IsNotFound(err):
		return false, nil
	default:
		return false, s.persistenceError(opReadContainer, s.containerPath(), err)
	}
}

// ensureResources creates the database, then the container, when missing.
// This is check-then-create: another writer may create a resource in between,
// in which case the resulting conflict is treated as success.
func (s *ChatMessageStore) ensureResources(ctx context.Context) error {
	exists, err := s.databaseExists(ctx)
	if err != nil {
		return err
	}
	if !exists {
		start := time.Now()
		err := s.client.CreateDatabase(ctx, s.settings.DatabaseName)
		s.metrics.observe(opCreateDatabase, start, err)
		if err != nil && !IsConflict(err) {
			return s.persistenceError(opCreateDatabase, s.settings.DatabaseName, err)
		}
		s.logger.DebugContext(ctx, "created database",
			"database", s.settings.DatabaseName,
			"already_existed", err != nil,
		)
	}

	exists, err = s.containerExists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	db, err := s.database()
	if err != nil {
		return err
	}
	start := time.Now()
	err = db.CreateContainer(ctx, s.settings.ContainerName, s.settings.PartitionKeyPath)
	s.metrics.observe(opCreateContainer, start, err)
	if err != nil && !IsConflict(err) {
		return s.persistenceError(opCreateContainer, s.containerPath(), err)
	}
	s.logger.DebugContext(ctx, "created container",
		"database", s.settings.DatabaseName,
		"container", s.settings.ContainerName,
		"partition_key", s.settings.PartitionKeyPath,
		"already_existed", err != nil,
	)
	return nil
}
