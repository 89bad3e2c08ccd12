package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/config"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/apperr"
	"github.com/KadirBarquet/crud-productos-taller3-DW-GraphQL/internal/domain/repository"
)

type fakeBackend struct {
	name       Name
	calls      []string
	connectErr error
	schemaErr  error
	report     SchemaReport
}

func (f *fakeBackend) Name() Name { return f.name }
func (f *fakeBackend) Connect(context.Context) error {
	f.calls = append(f.calls, "connect")
	return f.connectErr
}
func (f *fakeBackend) EnsureSchema(context.Context) (SchemaReport, error) {
	f.calls = append(f.calls, "ensure")
	return f.report, f.schemaErr
}
func (f *fakeBackend) Users() repository.UserRepository       { return nil }
func (f *fakeBackend) Products() repository.ProductRepository { return nil }
func (f *fakeBackend) Ping(context.Context) error             { return nil }
func (f *fakeBackend) Close(context.Context) error {
	f.calls = append(f.calls, "close")
	return nil
}

func TestParseName(t *testing.T) {
	for in, want := range map[string]Name{
		"":         Relational,
		"postgres": Relational,
		" PG ":     Relational,
		"MongoDB":  Document,
		"mongo":    Document,
	} {
		got, err := ParseName(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseName("oracle")
	assert.ErrorIs(t, err, apperr.ErrConfiguration)
}

func TestSelectUnknownEngineFailsBeforeConnecting(t *testing.T) {
	_, err := Select(context.Background(), &config.Config{DBEngine: "cassandra"}, nil)
	assert.ErrorIs(t, err, apperr.ErrConfiguration)
}

func TestSelectNamesLinkedEnginesWhenMissing(t *testing.T) {
	registryMu.Lock()
	saved := factories
	factories = map[Name]Factory{Document: func(*config.Config, *logrus.Logger) Backend { return &fakeBackend{name: Document} }}
	registryMu.Unlock()
	t.Cleanup(func() {
		registryMu.Lock()
		factories = saved
		registryMu.Unlock()
	})

	_, err := Select(context.Background(), &config.Config{DBEngine: "postgres"}, nil)
	require.ErrorIs(t, err, apperr.ErrConfiguration)
	assert.Contains(t, err.Error(), `engine "postgres" is not linked into this binary (linked: mongo)`)
}

func TestSelectUsesRegisteredFactory(t *testing.T) {
	fb := &fakeBackend{name: Document, report: SchemaReport{Existing: []string{"usuarios"}, Provisioned: []string{"producto"}}}
	registryMu.Lock()
	factories[Document] = func(*config.Config, *logrus.Logger) Backend { return fb }
	registryMu.Unlock()
	t.Cleanup(func() {
		registryMu.Lock()
		delete(factories, Document)
		registryMu.Unlock()
	})

	logger, hook := test.NewNullLogger()
	h, err := Select(context.Background(), &config.Config{DBEngine: "mongodb"}, logger)
	require.NoError(t, err)

	assert.Equal(t, []string{"connect", "ensure"}, fb.calls)
	assert.Equal(t, Document, h.Name())
	assert.Equal(t, Document, h.Report.Engine)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "storage ready", hook.LastEntry().Message)
	assert.Contains(t, Registered(), "mongo")
}

func TestBindStopsOnConnectError(t *testing.T) {
	fb := &fakeBackend{name: Relational, connectErr: apperr.Storage("connect", errors.New("refused"))}
	_, err := Bind(context.Background(), fb, nil)

	assert.ErrorIs(t, err, apperr.ErrStorage)
	assert.Equal(t, []string{"connect"}, fb.calls)
}

func TestBindClosesWhenProvisioningFails(t *testing.T) {
	fb := &fakeBackend{name: Relational, schemaErr: errors.New("permission denied")}
	_, err := Bind(context.Background(), fb, nil)

	require.Error(t, err)
	assert.Equal(t, []string{"connect", "ensure", "close"}, fb.calls)
}

func TestDiscoveryWarningsDoNotGate(t *testing.T) {
	fb := &fakeBackend{name: Relational, report: SchemaReport{Warnings: []string{"list tables: timeout"}}}
	logger, hook := test.NewNullLogger()

	h, err := Bind(context.Background(), fb, logger)
	require.NoError(t, err)
	assert.NotNil(t, h)

	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warned = true
		}
	}
	assert.True(t, warned)
}
