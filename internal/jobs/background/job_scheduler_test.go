package background

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"borsibaar/internal/logging"
	"borsibaar/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrganizationSource struct {
	mock.Mock
}

func (m *MockOrganizationSource) WithoutAdmin(ctx context.Context) ([]*models.Organization, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Organization), args.Error(1)
}

func bufferLogger(buf *bytes.Buffer) logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
}

func TestReportAdminCoverage(t *testing.T) {
	var buf bytes.Buffer
	orgs := &MockOrganizationSource{}
	orgs.On("WithoutAdmin", mock.Anything).Return([]*models.Organization{
		{ID: 3, Name: "Orphan Bar"},
		{ID: 8, Name: "Night Shift"},
	}, nil)

	js, err := NewJobScheduler(orgs, time.Hour, bufferLogger(&buf))
	require.NoError(t, err)
	defer js.Stop()

	require.NoError(t, js.ReportAdminCoverage(context.Background()))

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "organization has no admin"))
	assert.Contains(t, out, "Orphan Bar")
	assert.Contains(t, out, "without_admin=2")
}

func TestReportAdminCoverage_Error(t *testing.T) {
	var buf bytes.Buffer
	orgs := &MockOrganizationSource{}
	orgs.On("WithoutAdmin", mock.Anything).Return(nil, errors.New("db down"))

	js, err := NewJobScheduler(orgs, time.Hour, bufferLogger(&buf))
	require.NoError(t, err)
	defer js.Stop()

	assert.Error(t, js.ReportAdminCoverage(context.Background()))
	assert.Contains(t, buf.String(), "admin coverage report failed")
}

func TestJobScheduler_RunsOnStart(t *testing.T) {
	done := make(chan struct{}, 1)
	orgs := &MockOrganizationSource{}
	orgs.On("WithoutAdmin", mock.Anything).Return([]*models.Organization{}, nil).Run(func(mock.Arguments) {
		select {
		case done <- struct{}{}:
		default:
		}
	})

	js, err := NewJobScheduler(orgs, time.Hour, logging.Discard())
	require.NoError(t, err)
	js.Start()
	defer js.Stop()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("admin coverage job did not run")
	}
}

func TestNewJobScheduler_InvalidInterval(t *testing.T) {
	_, err := NewJobScheduler(&MockOrganizationSource{}, 0, logging.Discard())
	assert.Error(t, err)
}
