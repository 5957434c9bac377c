package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/jurisref"
	"github.com/fwojciec/jurisref/mock"
	jurisrefslog "github.com/fwojciec/jurisref/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockAdapter() *mock.Adapter {
	return &mock.Adapter{
		SiteFn:               func() jurisref.Site { return jurisref.SiteLegifrance },
		CheckCompatibilityFn: func() bool { return true },
		ExtractMetadataFn: func(ctx context.Context) (*jurisref.CaseMetadata, error) {
			return &jurisref.CaseMetadata{Court: "CE", Date: "14/09/2023", DecisionNumber: "n°465765"}, nil
		},
		ExtractDecisionTextFn: func(ctx context.Context) (string, error) {
			return "Considérant", nil
		},
		ExtractAnalysisFn: func(ctx context.Context) (string, error) {
			return "", errors.New("boom")
		},
		ExtractOpinionFn: func(ctx context.Context) (string, error) {
			return "", nil
		},
		RecordOptionsFn: func() jurisref.RecordOptions {
			return jurisref.RecordOptions{ExtraRequired: []string{jurisref.FieldDecisionNumber}}
		},
	}
}

func TestLoggingAdapter(t *testing.T) {
	t.Parallel()

	t.Run("logs extracted metadata fields", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

		a := jurisrefslog.NewLoggingAdapter(newMockAdapter(), logger)
		m, err := a.ExtractMetadata(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "CE", m.Court)
		output := buf.String()
		assert.Contains(t, output, "extract metadata")
		assert.Contains(t, output, "site=legifrance")
		assert.Contains(t, output, "court=CE")
		assert.Contains(t, output, "number=n°465765")
	})

	t.Run("logs text length", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

		a := jurisrefslog.NewLoggingAdapter(newMockAdapter(), logger)
		text, err := a.ExtractDecisionText(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "Considérant", text)
		assert.Contains(t, buf.String(), "chars=11")
	})

	t.Run("logs errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

		a := jurisrefslog.NewLoggingAdapter(newMockAdapter(), logger)
		_, err := a.ExtractAnalysis(context.Background())

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=boom")
	})

	t.Run("delegates without logging at info level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		a := jurisrefslog.NewLoggingAdapter(newMockAdapter(), logger)

		assert.True(t, a.CheckCompatibility())
		assert.Equal(t, []string{jurisref.FieldDecisionNumber}, a.RecordOptions().ExtraRequired)
		assert.Empty(t, buf.String())
	})
}
