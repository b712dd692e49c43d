// Copyright (c) Microsoft. All rights reserved.

// Command cosmos persists a conversation thread in Azure Cosmos DB and
// restores it into a fresh thread.
//
// Each line read from stdin is recorded as a user message followed by an
// assistant acknowledgement. On EOF the thread is serialized, loaded back
// through a new store, and the restored history is printed.
//
// Usage with Entra ID:
//
//	export AZURE_COSMOS_DB_NO_SQL_ENDPOINT=https://<account>.documents.azure.com:443/
//	go run .
//
// Usage with an account key:
//
//	export AZURE_COSMOS_DB_NO_SQL_ENDPOINT=https://<account>.documents.azure.com:443/
//	export AZURE_COSMOS_DB_NO_SQL_KEY=<key>
//	go run .
//
// AZURE_COSMOS_DB_NO_SQL_DATABASE_NAME and AZURE_COSMOS_DB_NO_SQL_CONTAINER_NAME
// override the default database and container.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	af "github.com/microsoft/agent-framework-cosmos/go/agentframework"
	"github.com/microsoft/agent-framework-cosmos/go/cosmos"
)

func main() {
	// Load .env file if present (ignored if missing).
	_ = godotenv.Load()

	if os.Getenv("DEBUG") != "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	ctx := context.Background()
	metrics := cosmos.NewMetrics(prometheus.DefaultRegisterer)

	store := newStore(metrics, cosmos.WithCreateResources(true))
	thread := af.NewThread(af.WithMessageStore(af.LoggingStore(store, slog.Default())))
	defer thread.Close()

	fmt.Printf("Thread %s. Type messages, Ctrl-D to save.\n", store.ThreadID())
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := thread.AddMessages(ctx,
			af.NewUserMessage(line),
			af.NewAssistantMessage(fmt.Sprintf("Noted (%d characters).", len(line))),
		); err != nil {
			log.Fatalf("add messages: %v", err)
		}
	}
	fmt.Println()

	state, err := thread.Serialize(ctx, map[string]any{"user_id": userID()})
	if err != nil {
		log.Fatalf("serialize thread: %v", err)
	}
	saved, _ := json.MarshalIndent(state, "", "  ")
	fmt.Printf("Saved thread state:\n%s\n\n", saved)

	restored, err := af.DeserializeThread(ctx, state,
		af.WithMessageStore(af.LoggingStore(newStore(metrics), slog.Default())),
	)
	if err != nil {
		log.Fatalf("restore thread: %v", err)
	}
	defer restored.Close()

	history, err := restored.Messages(ctx)
	if err != nil {
		log.Fatalf("list messages: %v", err)
	}
	fmt.Printf("Restored %d messages:\n", len(history))
	for i := range history {
		fmt.Printf("  %-9s %s\n", history[i].Role+":", history[i].Text())
	}
}

func newStore(metrics *cosmos.Metrics, opts ...cosmos.Option) *cosmos.ChatMessageStore {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		log.Fatalf("azure credential: %v", err)
	}
	client, err := cosmos.NewAzureClientFromEnv(cred, nil)
	if err != nil {
		log.Fatal(err)
	}

	opts = append([]cosmos.Option{
		cosmos.WithSettings(cosmos.SettingsFromEnv()),
		cosmos.WithMetrics(metrics),
	}, opts...)
	store, err := cosmos.NewChatMessageStore(client, opts...)
	if err != nil {
		log.Fatal(err)
	}
	return store
}

func userID() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "anonymous"
}
