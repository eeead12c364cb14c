package export

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/agenthands/attackmap/internal/core/model"
)

type MockDriver struct {
	Queries      []string
	QueryParams  []map[string]interface{}
	IndicesBuilt int
	Closed       bool
	Err          error
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	m.Queries = append(m.Queries, query)
	m.QueryParams = append(m.QueryParams, params)
	if m.Err != nil {
		return neo4j.EagerResult{}, m.Err
	}
	return neo4j.EagerResult{}, nil
}

func (m *MockDriver) BuildIndices(ctx context.Context) error {
	m.IndicesBuilt++
	return nil
}

func (m *MockDriver) Close(ctx context.Context) error {
	m.Closed = true
	return nil
}

type failingSink struct{ err error }

func (f failingSink) Name() string { return "failing" }
func (f failingSink) Export(context.Context, model.Table) error {
	return f.err
}
func (f failingSink) Close() error { return nil }
