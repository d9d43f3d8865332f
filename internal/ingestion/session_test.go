package ingestion

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore records every write so tests can assert the exact persistence
// trace of a session. Failures are injected per loan id or globally.
type fakeStore struct {
	fcHistory     []ForeclosureRecord
	fcActive      []ForeclosureRecord
	dmHistory     []DailyMetricsRecord
	dmCurrent     []DailyMetricsRecord
	sessions      []UploadSession
	reportDates   []string
	failLoan      string
	failAllWrites bool
}

var errStoreDown = errors.New("connection refused")

func (s *fakeStore) InsertForeclosureHistory(_ context.Context, rec ForeclosureRecord, reportDate string, _ uuid.UUID) error {
	if s.failAllWrites || rec.LoanID == s.failLoan {
		return errStoreDown
	}
	s.fcHistory = append(s.fcHistory, rec)
	s.reportDates = append(s.reportDates, reportDate)
	return nil
}

func (s *fakeStore) UpsertActiveForeclosure(_ context.Context, rec ForeclosureRecord) error {
	if s.failAllWrites || rec.LoanID == s.failLoan {
		return errStoreDown
	}
	s.fcActive = append(s.fcActive, rec)
	return nil
}

func (s *fakeStore) InsertDailyMetricsHistory(_ context.Context, rec DailyMetricsRecord, reportDate string, _ uuid.UUID) error {
	if s.failAllWrites || rec.LoanID == s.failLoan {
		return errStoreDown
	}
	s.dmHistory = append(s.dmHistory, rec)
	s.reportDates = append(s.reportDates, reportDate)
	return nil
}

func (s *fakeStore) UpsertDailyMetricsCurrent(_ context.Context, rec DailyMetricsRecord, _ string) error {
	if s.failAllWrites || rec.LoanID == s.failLoan {
		return errStoreDown
	}
	s.dmCurrent = append(s.dmCurrent, rec)
	return nil
}

func (s *fakeStore) SaveUploadSession(_ context.Context, session UploadSession) error {
	s.sessions = append(s.sessions, session)
	return nil
}

func (s *fakeStore) PurgeSessionsBefore(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

func testPipeline(store Store) *Pipeline {
	p := NewPipeline(store)
	p.now = func() time.Time {
		return time.Date(2024, time.March, 3, 12, 0, 0, 0, time.UTC)
	}
	return p
}

// The sentinel scan needs both Loan ID and Prin Bal on the header line, so
// even foreclosure fixtures carry a Prin Bal column.
const fcHeader = "Loan ID,Investor ID,FC Jurisdiction,FC Status,FC Start Date,FC Closed Date,FC Closed Reason,Active FC Days,Prin Bal\n"

const dmHeader = "Loan ID,First Name,Last Name,Address,City,State,Zip,Prin Bal,Int Rate\n"

func TestIngestForeclosureFile(t *testing.T) {
	csv := fcHeader +
		"L1,INV-1,Judicial,Closed,2023-01-01,2023-06-01,Reinstated,0,100\n" +
		"L1,INV-1,Judicial,Active,2023-08-01,,,45,100\n" +
		"L2,INV-2,NonJudicial,Active,2024-01-05,,,12,200\n"

	store := &fakeStore{}
	res, err := testPipeline(store).Ingest(context.Background(), []byte(csv), "foreclosure_data_2024-01-15.csv")
	require.NoError(t, err)

	assert.Equal(t, FileTypeForeclosure, res.FileType)
	assert.Equal(t, "success", res.Status)
	assert.Equal(t, "2024-01-15", res.ReportDate)
	// two loan groups inserted, every event in history, one active per loan
	assert.Equal(t, 2, res.RecordCount)
	assert.Equal(t, 3, res.TotalRecords)
	assert.Equal(t, 0, res.SkippedCount)
	assert.Equal(t, 0, res.ErrorCount)
	assert.Len(t, store.fcHistory, 3)
	require.Len(t, store.fcActive, 2)
	require.NotNil(t, store.fcActive[0].Status)
	assert.Equal(t, "Active", *store.fcActive[0].Status)
	assert.Nil(t, store.fcActive[0].ClosedDate)
	for _, d := range store.reportDates {
		assert.Equal(t, "2024-01-15", d)
	}

	require.Len(t, store.sessions, 1)
	s := store.sessions[0]
	assert.Equal(t, res.SessionID, s.ID)
	assert.Equal(t, SessionCompleted, s.Status)
	assert.Equal(t, 3, s.RecordCount)
	assert.Equal(t, "foreclosure_data_2024-01-15.csv", s.OriginalFilename)

	assert.Contains(t, res.Message, "Successfully processed 2 loans")
}

func TestIngestForeclosureSkips(t *testing.T) {
	csv := fcHeader +
		"L1,INV-1,Judicial,Active,2023-08-01,,,45,100\n" +
		",INV-9,Judicial,Active,2023-08-01,,,45,100\n" +
		"L3,INV-3,Bankruptcy Ch13,Active,2023-08-01,,,45,100\n"

	store := &fakeStore{}
	res, err := testPipeline(store).Ingest(context.Background(), []byte(csv), "fc.csv")
	require.NoError(t, err)

	assert.Equal(t, 1, res.RecordCount)
	assert.Equal(t, 2, res.SkippedCount)
	assert.Equal(t, 0, res.ErrorCount)
	assert.Len(t, store.fcHistory, 1)
	require.Len(t, store.sessions, 1)
	assert.Equal(t, SessionCompleted, store.sessions[0].Status)
}

func TestIngestForeclosureAllClosedHasNoActiveUpsert(t *testing.T) {
	csv := fcHeader +
		"L1,INV-1,Judicial,Closed,2023-01-01,2023-06-01,Paid Off,0,100\n"

	store := &fakeStore{}
	res, err := testPipeline(store).Ingest(context.Background(), []byte(csv), "fc.csv")
	require.NoError(t, err)

	assert.Equal(t, 1, res.RecordCount)
	assert.Len(t, store.fcHistory, 1)
	assert.Empty(t, store.fcActive)
}

func TestIngestDailyMetricsFile(t *testing.T) {
	csv := dmHeader +
		"L1,Ada,Lovelace,1 Main St,Austin,TX,78701,\"$185,250.75\",7.125%\n" +
		"L2,Alan,Turing,2 Main St,Austin,TX,78702,\"$(1,234.56)\",6.5\n"

	store := &fakeStore{}
	res, err := testPipeline(store).Ingest(context.Background(), []byte(csv), "daily_metrics_20240115.xlsx")
	require.NoError(t, err)

	assert.Equal(t, FileTypeDailyMetrics, res.FileType)
	assert.Equal(t, "2024-01-15", res.ReportDate)
	assert.Equal(t, 2, res.RecordCount)
	assert.Equal(t, 2, res.TotalRecords)
	require.Len(t, store.dmHistory, 2)
	require.Len(t, store.dmCurrent, 2)
	require.NotNil(t, store.dmHistory[0].PrinBal)
	assert.Equal(t, "185250.75", store.dmHistory[0].PrinBal.String())
	require.NotNil(t, store.dmHistory[1].PrinBal)
	assert.Equal(t, "-1234.56", store.dmHistory[1].PrinBal.String())
	assert.Contains(t, res.Message, "Successfully imported 2 of 2")
	require.Len(t, store.sessions, 1)
	assert.Equal(t, SessionCompleted, store.sessions[0].Status)
}

func TestIngestEmptyFileFails(t *testing.T) {
	store := &fakeStore{}
	_, err := testPipeline(store).Ingest(context.Background(), []byte(dmHeader), "empty.csv")
	require.ErrorIs(t, err, ErrNoData)

	require.Len(t, store.sessions, 1)
	assert.Equal(t, SessionFailed, store.sessions[0].Status)
	assert.Equal(t, FileTypeUnknown, store.sessions[0].FileType)
}

func TestIngestUnknownHeadersFail(t *testing.T) {
	csv := "Loan ID,Prin Bal\nL1,100\n"
	store := &fakeStore{}
	_, err := testPipeline(store).Ingest(context.Background(), []byte(csv), "mystery.csv")
	require.ErrorIs(t, err, ErrUnknownFileType)

	assert.Empty(t, store.dmHistory)
	require.Len(t, store.sessions, 1)
	assert.Equal(t, SessionFailed, store.sessions[0].Status)
}

func TestIngestCorruptWorkbookFails(t *testing.T) {
	store := &fakeStore{}
	_, err := testPipeline(store).Ingest(context.Background(), []byte("PK\x03\x04 not a real archive"), "broken.xlsx")
	require.Error(t, err)
	require.Len(t, store.sessions, 1)
	assert.Equal(t, SessionFailed, store.sessions[0].Status)
}

func TestIngestPartialStoreFailure(t *testing.T) {
	csv := dmHeader +
		"L1,Ada,Lovelace,1 Main St,Austin,TX,78701,100,7\n" +
		"BAD,Grace,Hopper,3 Main St,Austin,TX,78703,200,7\n" +
		"L3,Alan,Turing,2 Main St,Austin,TX,78702,300,7\n"

	store := &fakeStore{failLoan: "BAD"}
	res, err := testPipeline(store).Ingest(context.Background(), []byte(csv), "dm.csv")
	require.NoError(t, err)

	assert.Equal(t, 2, res.RecordCount)
	assert.Equal(t, 1, res.ErrorCount)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "Row 2")
	require.Len(t, store.sessions, 1)
	assert.Equal(t, SessionCompletedWithErrors, store.sessions[0].Status)
}

func TestIngestTotalStoreFailure(t *testing.T) {
	csv := dmHeader +
		"L1,Ada,Lovelace,1 Main St,Austin,TX,78701,100,7\n" +
		"L2,Alan,Turing,2 Main St,Austin,TX,78702,300,7\n"

	store := &fakeStore{failAllWrites: true}
	res, err := testPipeline(store).Ingest(context.Background(), []byte(csv), "dm.csv")
	require.NoError(t, err)

	assert.Equal(t, 0, res.RecordCount)
	assert.Equal(t, 2, res.ErrorCount)
	require.Len(t, store.sessions, 1)
	assert.Equal(t, SessionFailed, store.sessions[0].Status)
}

func TestIngestBoundsErrorSample(t *testing.T) {
	var b strings.Builder
	b.WriteString(dmHeader)
	for i := 1; i <= 8; i++ {
		fmt.Fprintf(&b, "L%d,A,B,1 Main St,Austin,TX,78701,100,7\n", i)
	}

	store := &fakeStore{failAllWrites: true}
	res, err := testPipeline(store).Ingest(context.Background(), []byte(b.String()), "dm.csv")
	require.NoError(t, err)

	assert.Equal(t, 8, res.ErrorCount)
	assert.Len(t, res.Errors, 5, "only the earliest five errors are reported")
	assert.Contains(t, res.Errors[0], "Row 1")
	assert.Contains(t, res.Errors[4], "Row 5")
}

func TestIngestFilenameWithoutDateFallsBackToNow(t *testing.T) {
	csv := dmHeader + "L1,Ada,Lovelace,1 Main St,Austin,TX,78701,100,7\n"

	store := &fakeStore{}
	res, err := testPipeline(store).Ingest(context.Background(), []byte(csv), "latest_export.csv")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-03", res.ReportDate)
}
