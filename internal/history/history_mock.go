package history

import (
	"time"

	"github.com/huangsam/trendplot/internal/contract"
	"github.com/huangsam/trendplot/schema"
	"github.com/stretchr/testify/mock"
)

// MockHistoryManager is a mock implementation of HistoryManager for testing.
type MockHistoryManager struct {
	mock.Mock
}

var _ contract.HistoryManager = &MockHistoryManager{} // Compile-time check

// GetHistoryStore implements the HistoryManager interface.
func (m *MockHistoryManager) GetHistoryStore() contract.HistoryStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.HistoryStore)
	return store
}

// MockHistoryStore is a mock implementation of HistoryStore for testing.
type MockHistoryStore struct {
	mock.Mock
}

var _ contract.HistoryStore = &MockHistoryStore{} // Compile-time check

// BeginRun implements the HistoryStore interface.
func (m *MockHistoryStore) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	args := m.Called(startTime, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// EndRun implements the HistoryStore interface.
func (m *MockHistoryStore) EndRun(runID int64, endTime time.Time, chartsWritten int) error {
	args := m.Called(runID, endTime, chartsWritten)
	return args.Error(0)
}

// RecordSeriesSummary implements the HistoryStore interface.
func (m *MockHistoryStore) RecordSeriesSummary(runID int64, summary schema.SeriesSummary) error {
	args := m.Called(runID, summary)
	return args.Error(0)
}

// GetStatus implements the HistoryStore interface.
func (m *MockHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.HistoryStatus), args.Error(1)
}

// GetAllRenderRuns implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllRenderRuns() ([]schema.RenderRunRecord, error) {
	args := m.Called()
	runs, _ := args.Get(0).([]schema.RenderRunRecord)
	return runs, args.Error(1)
}

// GetAllSeriesSummaries implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllSeriesSummaries() ([]schema.SeriesSummaryRecord, error) {
	args := m.Called()
	summaries, _ := args.Get(0).([]schema.SeriesSummaryRecord)
	return summaries, args.Error(1)
}

// Close implements the HistoryStore interface.
func (m *MockHistoryStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
