// Copyright (c) Microsoft. All rights reserved.

// Package cosmos provides an [agentframework.MessageStore] backed by
// Azure Cosmos DB for NoSQL.
//
// Each thread is one document in a container, keyed and partitioned by the
// thread id:
//
//	{
//	  "id": "<thread id>",
//	  "thread_id": "<thread id>",
//	  "additional_properties": {},
//	  "messages": [...]
//	}
//
// Create a client and a store, then attach the store to a thread:
//
//	cred, _ := azidentity.NewDefaultAzureCredential(nil)
//	client, err := cosmos.NewAzureClient(endpoint, cred, nil)
//	store, err := cosmos.NewChatMessageStore(client, cosmos.WithCreateResources(true))
//	thread := agentframework.NewThread(agentframework.WithMessageStore(store))
//
// # Write policy
//
// By default messages are buffered in memory and written when the thread is
// serialized. [WithSaveEveryMessage] writes after every AddMessages call
// instead.
//
// # Configuration
//
// Options override [DefaultSettings]. [SettingsFromEnv] and
// [NewAzureClientFromEnv] read the AZURE_COSMOS_DB_NO_SQL_* variables.
package cosmos
