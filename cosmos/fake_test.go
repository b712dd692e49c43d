// Copyright (c) Microsoft. All rights reserved.

package cosmos_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"

	"github.com/microsoft/agent-framework-cosmos/go/cosmos"
)

// statusError builds the error azcosmos returns for an HTTP status.
func statusError(status int) error {
	req, _ := http.NewRequest(http.MethodGet, "https://fake.documents.azure.com/dbs", nil)
	return runtime.NewResponseError(&http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader(`{"code":"` + http.StatusText(status) + `"}`)),
		Request:    req,
	})
}

// fakeAccount is an in-memory Cosmos DB account. It counts calls per
// operation and can fail any operation through failOn.
type fakeAccount struct {
	databases map[string]map[string]*fakeContainer
	calls     map[string]int
	failOn    map[string]error
	closed    int
}

type fakeContainer struct {
	partitionKeyPath string
	items            map[string][]byte // partition key + "|" + id
}

func newFakeAccount() *fakeAccount {
	return &fakeAccount{
		databases: map[string]map[string]*fakeContainer{},
		calls:     map[string]int{},
		failOn:    map[string]error{},
	}
}

// provision creates db and container directly, without counting calls.
func (a *fakeAccount) provision(db, container string) *fakeAccount {
	if a.databases[db] == nil {
		a.databases[db] = map[string]*fakeContainer{}
	}
	a.databases[db][container] = &fakeContainer{partitionKeyPath: "/thread_id", items: map[string][]byte{}}
	return a
}

// item returns the stored document for id in the default database and container.
func (a *fakeAccount) item(id string) ([]byte, bool) {
	c := a.databases[cosmos.DefaultDatabaseName][cosmos.DefaultContainerName]
	if c == nil {
		return nil, false
	}
	b, ok := c.items[id+"|"+id]
	return b, ok
}

// putItem stores a raw document in the default database and container.
func (a *fakeAccount) putItem(id string, doc string) {
	a.provision(cosmos.DefaultDatabaseName, cosmos.DefaultContainerName)
	a.databases[cosmos.DefaultDatabaseName][cosmos.DefaultContainerName].items[id+"|"+id] = []byte(doc)
}

func (a *fakeAccount) call(op string) error {
	a.calls[op]++
	return a.failOn[op]
}

func (a *fakeAccount) networkCalls() int {
	n := 0
	for _, c := range a.calls {
		n += c
	}
	return n
}

func (a *fakeAccount) Database(id string) (cosmos.Database, error) {
	return &fakeDatabase{account: a, id: id}, nil
}

func (a *fakeAccount) CreateDatabase(_ context.Context, id string) error {
	if err := a.call("create database"); err != nil {
		return err
	}
	if _, ok := a.databases[id]; ok {
		return statusError(http.StatusConflict)
	}
	a.databases[id] = map[string]*fakeContainer{}
	return nil
}

func (a *fakeAccount) Close() error {
	a.closed++
	return nil
}

type fakeDatabase struct {
	account *fakeAccount
	id      string
}

func (d *fakeDatabase) Read(_ context.Context) error {
	if err := d.account.call("read database"); err != nil {
		return err
	}
	if _, ok := d.account.databases[d.id]; !ok {
		return statusError(http.StatusNotFound)
	}
	return nil
}

func (d *fakeDatabase) Container(id string) (cosmos.Container, error) {
	return &fakeContainerClient{account: d.account, db: d.id, id: id}, nil
}

func (d *fakeDatabase) CreateContainer(_ context.Context, id, partitionKeyPath string) error {
	if err := d.account.call("create container"); err != nil {
		return err
	}
	containers, ok := d.account.databases[d.id]
	if !ok {
		return statusError(http.StatusNotFound)
	}
	if _, ok := containers[id]; ok {
		return statusError(http.StatusConflict)
	}
	containers[id] = &fakeContainer{partitionKeyPath: partitionKeyPath, items: map[string][]byte{}}
	return nil
}

type fakeContainerClient struct {
	account *fakeAccount
	db, id  string
}

func (c *fakeContainerClient) lookup() (*fakeContainer, error) {
	fc := c.account.databases[c.db][c.id]
	if fc == nil {
		return nil, statusError(http.StatusNotFound)
	}
	return fc, nil
}

func (c *fakeContainerClient) Read(_ context.Context) error {
	if err := c.account.call("read container"); err != nil {
		return err
	}
	_, err := c.lookup()
	return err
}

func (c *fakeContainerClient) ReadItem(_ context.Context, id, partitionKey string) ([]byte, error) {
	if err := c.account.call("read item"); err != nil {
		return nil, err
	}
	fc, err := c.lookup()
	if err != nil {
		return nil, err
	}
	b, ok := fc.items[partitionKey+"|"+id]
	if !ok {
		return nil, statusError(http.StatusNotFound)
	}
	return append([]byte(nil), b...), nil
}

func (c *fakeContainerClient) UpsertItem(_ context.Context, partitionKey string, item []byte) error {
	if err := c.account.call("upsert item"); err != nil {
		return err
	}
	fc, err := c.lookup()
	if err != nil {
		return err
	}
	var doc struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(item, &doc); err != nil {
		return statusError(http.StatusBadRequest)
	}
	fc.items[partitionKey+"|"+doc.ID] = append([]byte(nil), item...)
	return nil
}
