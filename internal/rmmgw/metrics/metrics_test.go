package metrics

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/usnistgov/rmm-go/internal/rmmgw/envelope"
	"github.com/usnistgov/rmm-go/internal/rmmgw/filter"
	"github.com/usnistgov/rmm-go/internal/rmmgw/queryplan"
	"github.com/usnistgov/rmm-go/internal/rmmgw/store"
	"github.com/usnistgov/rmm-go/internal/rmmgw/store/memstore"
)

func planFor(f filter.Node) queryplan.Plan {
	return queryplan.Plan{Filter: f}
}

func TestRecordAccessAppendsRawLogAndSummary(t *testing.T) {
	s := memstore.New()
	agg := NewAggregator(s)

	ev := DownloadEvent{PDRID: "P1", EDIID: "E1", ClientID: "client-a", Timestamp: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), Size: 100}
	err := agg.RecordAccess(context.Background(), ev)
	assert.NoError(t, err)

	n, err := s.Count(context.Background(), RawLogCollection, nil)
	assert.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = s.Count(context.Background(), RecordSummaryCollection, filter.Leaf{Field: "ediid", Match: filter.Equals{Value: "E1"}})
	assert.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestRecordAccessMonotonicDownloadCount(t *testing.T) {
	s := memstore.New()
	agg := NewAggregator(s)

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		ev := DownloadEvent{PDRID: "P1", EDIID: "E1", ClientID: "client-a", Timestamp: base.Add(time.Duration(i) * time.Hour), Size: 100}
		assert.NoError(t, agg.RecordAccess(context.Background(), ev))
	}

	cur, err := s.Find(context.Background(), RecordSummaryCollection, planFor(filter.Leaf{Field: "ediid", Match: filter.Equals{Value: "E1"}}))
	assert.NoError(t, err)
	defer cur.Close(context.Background())
	assert.True(t, cur.Next(context.Background()))
	doc, err := cur.Decode()
	assert.NoError(t, err)
	assert.EqualValues(t, 3, doc["record_download"])
}

func TestRecordAccessDistinctUsers(t *testing.T) {
	s := memstore.New()
	agg := NewAggregator(s)

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	clients := []string{"a", "b", "a"}
	for i, c := range clients {
		ev := DownloadEvent{EDIID: "E1", ClientID: c, Timestamp: base.Add(time.Duration(i) * time.Hour), Size: 10}
		assert.NoError(t, agg.RecordAccess(context.Background(), ev))
	}

	cur, err := s.Find(context.Background(), RecordSummaryCollection, planFor(filter.Leaf{Field: "ediid", Match: filter.Equals{Value: "E1"}}))
	assert.NoError(t, err)
	defer cur.Close(context.Background())
	cur.Next(context.Background())
	doc, _ := cur.Decode()
	assert.EqualValues(t, 2, doc["number_users"])
}

func TestRecordAccessAddsUniqueUserPerDay(t *testing.T) {
	s := memstore.New()
	agg := NewAggregator(s)

	day := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.NoError(t, agg.RecordAccess(context.Background(), DownloadEvent{EDIID: "E1", ClientID: "a", Timestamp: day, Size: 1}))
	assert.NoError(t, agg.RecordAccess(context.Background(), DownloadEvent{EDIID: "E1", ClientID: "b", Timestamp: day, Size: 1}))

	n, err := s.Count(context.Background(), UniqueUsersCollection, filter.Leaf{Field: "date", Match: filter.Equals{Value: "2026-03-01"}})
	assert.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestSanitizeNumericReplacesNaNAndInf(t *testing.T) {
	assert.Equal(t, float64(0), SanitizeNumeric(math.NaN()))
	assert.Equal(t, float64(0), SanitizeNumeric(math.Inf(1)))
	assert.Equal(t, float64(0), SanitizeNumeric(math.Inf(-1)))
	assert.Equal(t, 42.0, SanitizeNumeric(42.0))
}

func TestRecordAccessWithFilePathWritesFileSummary(t *testing.T) {
	s := memstore.New()
	agg := NewAggregator(s)

	ev := DownloadEvent{
		PDRID: "P1", EDIID: "E1", ClientID: "client-a",
		Timestamp: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), Size: 100,
		FilePath: "data/file1.csv", DownloadURL: "https://example.org/file1.csv",
	}
	assert.NoError(t, agg.RecordAccess(context.Background(), ev))

	cur, err := s.Find(context.Background(), FileSummaryCollection, planFor(filter.Leaf{Field: "filepath", Match: filter.Equals{Value: "data/file1.csv"}}))
	assert.NoError(t, err)
	defer cur.Close(context.Background())
	assert.True(t, cur.Next(context.Background()))
	doc, err := cur.Decode()
	assert.NoError(t, err)
	assert.EqualValues(t, 1, doc["success_get"])
	assert.EqualValues(t, 0, doc["failure_get"])
	assert.EqualValues(t, "https://example.org/file1.csv", doc["downloadURL"])
	assert.EqualValues(t, 100, doc["total_size_download"])
}

func TestRecordAccessWithoutFilePathSkipsFileSummary(t *testing.T) {
	s := memstore.New()
	agg := NewAggregator(s)

	ev := DownloadEvent{EDIID: "E1", ClientID: "client-a", Timestamp: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), Size: 10}
	assert.NoError(t, agg.RecordAccess(context.Background(), ev))

	empty, err := s.IsEmpty(context.Background(), FileSummaryCollection)
	assert.NoError(t, err)
	assert.True(t, empty)
}

func TestRecordAccessFailedEventIncrementsFailureGet(t *testing.T) {
	s := memstore.New()
	agg := NewAggregator(s)

	ev := DownloadEvent{EDIID: "E1", ClientID: "client-a", Timestamp: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), Size: 5, FilePath: "f.csv", Failed: true}
	assert.NoError(t, agg.RecordAccess(context.Background(), ev))

	cur, err := s.Find(context.Background(), FileSummaryCollection, planFor(filter.Leaf{Field: "filepath", Match: filter.Equals{Value: "f.csv"}}))
	assert.NoError(t, err)
	defer cur.Close(context.Background())
	assert.True(t, cur.Next(context.Background()))
	doc, err := cur.Decode()
	assert.NoError(t, err)
	assert.EqualValues(t, 0, doc["success_get"])
	assert.EqualValues(t, 1, doc["failure_get"])
}

func TestNewDataSetMetricsEnvelopeUsesNamedKeysAndSanitizes(t *testing.T) {
	env := envelope.ResultEnvelope{
		ResultCount: 2,
		PageSize:    10,
		ResultData: []store.Document{
			{"ediid": "E1", "total_size_download": math.Inf(1)},
		},
	}

	out := NewDataSetMetricsEnvelope(env)
	assert.EqualValues(t, 2, out.DataSetMetricsCount)
	assert.Equal(t, 10, out.PageSize)
	assert.Len(t, out.DataSetMetrics, 1)
	assert.Equal(t, float64(0), out.DataSetMetrics[0]["total_size_download"])
}

func TestNewTotalUsersEnvelopeHasNoDataOrMetricsField(t *testing.T) {
	out := NewTotalUsersEnvelope(envelope.ResultEnvelope{ResultCount: 7})
	assert.EqualValues(t, 7, out.TotalUsersCount)
}
