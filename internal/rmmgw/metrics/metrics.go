// Package metrics implements the Metrics Aggregator (spec.md §4.7): it
// turns observed record-download events into the per-record,
// per-file, per-repository, and unique-user summaries the
// /usagemetrics/* endpoints read back.
package metrics

import (
	"context"
	"math"
	"time"

	"github.com/usnistgov/rmm-go/internal/rmmgw/envelope"
	"github.com/usnistgov/rmm-go/internal/rmmgw/filter"
	"github.com/usnistgov/rmm-go/internal/rmmgw/queryplan"
	"github.com/usnistgov/rmm-go/internal/rmmgw/store"
)

// Collection names for the metrics subsystem.
const (
	RawLogCollection        = "usagemetrics_raw"
	RecordSummaryCollection = "usagemetrics_records"
	FileSummaryCollection   = "usagemetrics_files"
	RepoSummaryCollection   = "usagemetrics_repo"
	UniqueUsersCollection   = "usagemetrics_users"
)

// MetricsRecord is the per-dataset download summary (spec.md §3).
type MetricsRecord struct {
	PDRID             string  `json:"pdrid"`
	EDIID             string  `json:"ediid"`
	FirstTimeLogged   string  `json:"first_time_logged"`
	LastTimeLogged    string  `json:"last_time_logged"`
	TotalSizeDownload float64 `json:"total_size_download"`
	SuccessGet        int64   `json:"success_get"`
	NumberUsers       int64   `json:"number_users"`
	RecordDownload    int64   `json:"record_download"`
}

// FileMetricsRecord is the per-file download summary (spec.md §9
// supplement: original_source's fileMetrics collection, see
// app/crud/metrics.py's get_file_metrics/get_file_metrics_list).
type FileMetricsRecord struct {
	PDRID             string  `json:"pdrid"`
	EDIID             string  `json:"ediid"`
	Filepath          string  `json:"filepath"`
	DownloadURL       string  `json:"downloadURL"`
	SuccessGet        int64   `json:"success_get"`
	FailureGet        int64   `json:"failure_get"`
	DatacartOrClient  int64   `json:"datacart_or_client"`
	NumberUsers       int64   `json:"number_users"`
	TotalSizeDownload float64 `json:"total_size_download"`
	FirstTimeLogged   string  `json:"first_time_logged"`
	LastTimeLogged    string  `json:"last_time_logged"`
}

// RepoMetricsRecord is the monthly repository-wide rollup.
type RepoMetricsRecord struct {
	Year         int      `json:"year"`
	Month        int      `json:"month"`
	Downloads    int64    `json:"downloads"`
	UniqueUsers  int64    `json:"unique_users"`
	LastUpdated  string   `json:"last_updated"`
	IPList       []string `json:"-"`
}

// DownloadEvent is the observed traffic fact the aggregator consumes
// (spec.md §9: "re-architect as an explicit observer invoked from the
// single-record executor").
type DownloadEvent struct {
	PDRID       string
	EDIID       string
	ClientID    string
	Timestamp   time.Time
	Size        int64
	FilePath    string
	DownloadURL string
	Failed      bool
	ViaDatacart bool
}

// Aggregator implements the four-step on-download-event algorithm of
// spec.md §4.7 against a CollectionStore.
type Aggregator struct {
	Store store.CollectionStore
}

// NewAggregator builds an Aggregator writing to s.
func NewAggregator(s store.CollectionStore) *Aggregator {
	return &Aggregator{Store: s}
}

// RecordAccess runs the full aggregation pipeline for one observed
// download event.
func (a *Aggregator) RecordAccess(ctx context.Context, ev DownloadEvent) error {
	if err := a.appendRawLog(ctx, ev); err != nil {
		return err
	}
	if err := a.upsertRecordSummary(ctx, ev); err != nil {
		return err
	}
	if err := a.upsertRepoSummary(ctx, ev); err != nil {
		return err
	}
	if err := a.upsertFileSummary(ctx, ev); err != nil {
		return err
	}
	return a.addUniqueUser(ctx, ev)
}

func (a *Aggregator) appendRawLog(ctx context.Context, ev DownloadEvent) error {
	f := filter.Leaf{Field: "_id", Match: filter.Equals{Value: rawLogKey(ev)}}
	t := store.Transform{}.
		SetOnInsert("pdrid", ev.PDRID).
		SetOnInsert("ediid", ev.EDIID).
		SetOnInsert("client_id", ev.ClientID).
		SetOnInsert("timestamp", ev.Timestamp.Format(time.RFC3339)).
		SetOnInsert("filepath", ev.FilePath).
		SetOnInsert("size", float64(ev.Size))
	_, err := a.Store.Upsert(ctx, RawLogCollection, f, t)
	return err
}

func rawLogKey(ev DownloadEvent) string {
	return ev.EDIID + "|" + ev.ClientID + "|" + ev.Timestamp.Format(time.RFC3339Nano)
}

// upsertRecordSummary updates the per-ediid summary row. It counts
// events and distinct users by re-querying the raw log rather than
// trusting client-maintained counters, so concurrent events linearize
// correctly regardless of arrival order (spec.md §5).
//
// total_download_size uses previous_total + event.size, the corrected
// behavior chosen for the "event.size * download_count" open question
// in spec.md §9 (that formula recomputes every historical event at the
// current event's size, which is not the intended cumulative total).
func (a *Aggregator) upsertRecordSummary(ctx context.Context, ev DownloadEvent) error {
	f := filter.Leaf{Field: "ediid", Match: filter.Equals{Value: ev.EDIID}}

	downloadCount, err := a.Store.Count(ctx, RawLogCollection, filter.Leaf{Field: "ediid", Match: filter.Equals{Value: ev.EDIID}})
	if err != nil {
		return err
	}
	uniqueUsers, err := a.countDistinctClients(ctx, ev.EDIID)
	if err != nil {
		return err
	}

	ts := ev.Timestamp.Format(time.RFC3339)
	t := store.Transform{}.
		Set("ediid", ev.EDIID).
		Set("pdrid", ev.PDRID).
		Set("last_time_logged", ts).
		Set("success_get", downloadCount).
		Set("number_users", uniqueUsers).
		Set("record_download", downloadCount).
		Min("first_time_logged", ts).
		Inc("total_size_download", float64(ev.Size))

	_, err = a.Store.Upsert(ctx, RecordSummaryCollection, f, t)
	return err
}

func (a *Aggregator) countDistinctClients(ctx context.Context, ediid string) (int64, error) {
	f := filter.Leaf{Field: "ediid", Match: filter.Equals{Value: ediid}}
	return a.countDistinctClientsMatching(ctx, f)
}

func (a *Aggregator) upsertRepoSummary(ctx context.Context, ev DownloadEvent) error {
	year, month := ev.Timestamp.Year(), int(ev.Timestamp.Month())
	f := filter.And{Children: []filter.Node{
		filter.Leaf{Field: "year", Match: filter.Equals{Value: itoa(year)}},
		filter.Leaf{Field: "month", Match: filter.Equals{Value: itoa(month)}},
	}}

	uniqueUsers, err := a.countDistinctClientsInMonth(ctx, year, month)
	if err != nil {
		return err
	}
	downloads, err := a.Store.Count(ctx, RawLogCollection, monthFilter(year, month))
	if err != nil {
		return err
	}

	t := store.Transform{}.
		Set("year", year).
		Set("month", month).
		Set("downloads", downloads).
		Set("unique_users", uniqueUsers).
		Set("last_updated", ev.Timestamp.Format(time.RFC3339))

	_, err = a.Store.Upsert(ctx, RepoSummaryCollection, f, t)
	return err
}

// upsertFileSummary updates the per-filepath row in FileSummaryCollection
// (original_source's fileMetrics collection). Events without a file path
// (record- or repo-level accesses) don't touch this collection.
func (a *Aggregator) upsertFileSummary(ctx context.Context, ev DownloadEvent) error {
	if ev.FilePath == "" {
		return nil
	}
	fileFilter := filter.Leaf{Field: "filepath", Match: filter.Equals{Value: ev.FilePath}}

	uniqueUsers, err := a.countDistinctClientsMatching(ctx, fileFilter)
	if err != nil {
		return err
	}

	ts := ev.Timestamp.Format(time.RFC3339)
	t := store.Transform{}.
		Set("filepath", ev.FilePath).
		Set("pdrid", ev.PDRID).
		Set("ediid", ev.EDIID).
		Set("downloadURL", ev.DownloadURL).
		Set("last_time_logged", ts).
		Set("number_users", uniqueUsers).
		Min("first_time_logged", ts).
		Inc("total_size_download", float64(ev.Size))

	if ev.Failed {
		t = t.Inc("failure_get", int64(1))
	} else {
		t = t.Inc("success_get", int64(1))
	}
	if ev.ViaDatacart {
		t = t.Inc("datacart_or_client", int64(1))
	}

	_, err = a.Store.Upsert(ctx, FileSummaryCollection, fileFilter, t)
	return err
}

func (a *Aggregator) countDistinctClientsInMonth(ctx context.Context, year, month int) (int64, error) {
	return a.countDistinctClientsMatching(ctx, monthFilter(year, month))
}

func (a *Aggregator) countDistinctClientsMatching(ctx context.Context, f filter.Node) (int64, error) {
	cur, err := a.Store.Find(ctx, RawLogCollection, queryplan.Plan{Filter: f})
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	seen := map[string]bool{}
	for cur.Next(ctx) {
		doc, err := cur.Decode()
		if err != nil {
			return 0, err
		}
		if clientID, ok := doc["client_id"].(string); ok {
			seen[clientID] = true
		}
	}
	return int64(len(seen)), cur.Err()
}

func (a *Aggregator) addUniqueUser(ctx context.Context, ev DownloadEvent) error {
	date := ev.Timestamp.Format("2006-01-02")
	f := filter.Leaf{Field: "date", Match: filter.Equals{Value: date}}
	t := store.Transform{}.Set("date", date).AddToSet("users", ev.ClientID)
	_, err := a.Store.Upsert(ctx, UniqueUsersCollection, f, t)
	return err
}

func monthFilter(year, month int) filter.Node {
	return filter.And{Children: []filter.Node{
		filter.DateRange{Field: "timestamp", Gte: monthStart(year, month), Lt: monthStart(year, month+1)},
	}}
}

func monthStart(year, month int) string {
	for month > 12 {
		month -= 12
		year++
	}
	for month < 1 {
		month += 12
		year--
	}
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format(time.RFC3339)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// SanitizeNumeric replaces NaN and ±Inf with 0 so the JSON encoder
// never emits a non-finite literal (spec.md §4.7, §8 "JSON safety").
func SanitizeNumeric(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// DataSetMetricsEnvelope is the named response shape for
// /usagemetrics/records*, matching original_source's metrics_base.py
// "{collection_name}Count"/"{collection_name}" convention.
type DataSetMetricsEnvelope struct {
	DataSetMetricsCount int64            `json:"DataSetMetricsCount"`
	PageSize            int              `json:"PageSize"`
	DataSetMetrics      []store.Document `json:"DataSetMetrics"`
	Metrics             envelope.Metrics `json:"Metrics"`
}

// FilesMetricsEnvelope is the named response shape for /usagemetrics/files*.
type FilesMetricsEnvelope struct {
	FilesMetricsCount int64            `json:"FilesMetricsCount"`
	PageSize          int              `json:"PageSize"`
	FilesMetrics      []store.Document `json:"FilesMetrics"`
	Metrics           envelope.Metrics `json:"Metrics"`
}

// RepoMetricsEnvelope is the named response shape for /usagemetrics/repo.
type RepoMetricsEnvelope struct {
	RepoMetricsCount int64            `json:"RepoMetricsCount"`
	PageSize         int              `json:"PageSize"`
	RepoMetrics      []store.Document `json:"RepoMetrics"`
	Metrics          envelope.Metrics `json:"Metrics"`
}

// TotalUsersEnvelope is the named response shape for
// /usagemetrics/totalusers: metrics_base.py returns only the count for
// this one endpoint, with no data array or Metrics block.
type TotalUsersEnvelope struct {
	TotalUsersCount int64 `json:"TotalUsersCount"`
	PageSize        int   `json:"PageSize"`
}

// NewDataSetMetricsEnvelope converts a generic executor result into the
// named DataSetMetrics shape, sanitizing every numeric field so a
// NaN/Inf value never reaches the JSON encoder.
func NewDataSetMetricsEnvelope(env envelope.ResultEnvelope) DataSetMetricsEnvelope {
	return DataSetMetricsEnvelope{
		DataSetMetricsCount: env.ResultCount,
		PageSize:            env.PageSize,
		DataSetMetrics:      sanitizeDocuments(env.ResultData),
		Metrics:             env.Metrics,
	}
}

// NewFilesMetricsEnvelope converts a generic executor result into the
// named FilesMetrics shape.
func NewFilesMetricsEnvelope(env envelope.ResultEnvelope) FilesMetricsEnvelope {
	return FilesMetricsEnvelope{
		FilesMetricsCount: env.ResultCount,
		PageSize:          env.PageSize,
		FilesMetrics:      sanitizeDocuments(env.ResultData),
		Metrics:           env.Metrics,
	}
}

// NewRepoMetricsEnvelope converts a generic executor result into the
// named RepoMetrics shape.
func NewRepoMetricsEnvelope(env envelope.ResultEnvelope) RepoMetricsEnvelope {
	return RepoMetricsEnvelope{
		RepoMetricsCount: env.ResultCount,
		PageSize:         env.PageSize,
		RepoMetrics:      sanitizeDocuments(env.ResultData),
		Metrics:          env.Metrics,
	}
}

// NewTotalUsersEnvelope converts a generic executor result into the
// count-only TotalUsers shape.
func NewTotalUsersEnvelope(env envelope.ResultEnvelope) TotalUsersEnvelope {
	return TotalUsersEnvelope{TotalUsersCount: env.ResultCount, PageSize: env.PageSize}
}

// sanitizeDocuments replaces every non-finite float64 field in docs with
// 0, so a corrupted or partially-aggregated metrics document never makes
// jsoncodec.Marshal reject the response (spec.md §4.7, §8 "JSON safety").
func sanitizeDocuments(docs []store.Document) []store.Document {
	out := make([]store.Document, len(docs))
	for i, d := range docs {
		out[i] = sanitizeDocument(d)
	}
	return out
}

func sanitizeDocument(d store.Document) store.Document {
	out := make(store.Document, len(d))
	for k, v := range d {
		if f, ok := v.(float64); ok {
			out[k] = SanitizeNumeric(f)
		} else {
			out[k] = v
		}
	}
	return out
}
