package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/methylsight/bicover/pkg/errors"
	"github.com/methylsight/bicover/pkg/stats"
)

const (
	defaultDatabase   = "bicover"
	reportsCollection = "reports"

	connectTimeout = 10 * time.Second
)

// MongoConfig holds connection settings for the report archive.
type MongoConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

// MongoStore archives analysis reports in MongoDB, keyed by run ID.
// It is safe for concurrent use; the underlying driver handles pooling.
type MongoStore struct {
	client  *mongo.Client
	reports *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection with a
// ping. An empty database name falls back to "bicover".
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		return nil, errors.New(errors.ErrCodeStore, "mongo URI is required")
	}
	db := cfg.Database
	if db == "" {
		db = defaultDatabase
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connect to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeStore, err, "ping mongo")
	}

	return &MongoStore{
		client:  client,
		reports: client.Database(db).Collection(reportsCollection),
	}, nil
}

// SaveReport upserts a report by run ID.
func (s *MongoStore) SaveReport(ctx context.Context, rep *stats.Report) error {
	filter := bson.M{"run_id": rep.RunID}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.reports.ReplaceOne(ctx, filter, rep, opts); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "save report %s", rep.RunID)
	}
	return nil
}

// GetReport fetches a report by run ID. A missing document maps to
// [errors.ErrCodeResultNotFound].
func (s *MongoStore) GetReport(ctx context.Context, runID string) (*stats.Report, error) {
	var rep stats.Report
	err := s.reports.FindOne(ctx, bson.M{"run_id": runID}).Decode(&rep)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeResultNotFound, "report %s not found", runID)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "get report %s", runID)
	}
	if rep.DominatingSet != nil {
		rep.DominatingSet.Restore()
	}
	return &rep, nil
}

// LatestReport returns the most recently generated report for a
// timepoint, or [errors.ErrCodeResultNotFound] when none exists.
func (s *MongoStore) LatestReport(ctx context.Context, timepoint string) (*stats.Report, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "generated_at", Value: -1}})
	var rep stats.Report
	err := s.reports.FindOne(ctx, bson.M{"timepoint": timepoint}, opts).Decode(&rep)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeResultNotFound, "no reports for timepoint %s", timepoint)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "latest report for %s", timepoint)
	}
	if rep.DominatingSet != nil {
		rep.DominatingSet.Restore()
	}
	return &rep, nil
}

// ReportSummary is the listing view of an archived report.
type ReportSummary struct {
	RunID       string    `bson:"run_id"`
	Timepoint   string    `bson:"timepoint"`
	GeneratedAt time.Time `bson:"generated_at"`
}

// ListReports returns summaries of archived reports, newest first.
// An empty timepoint lists across all timepoints.
func (s *MongoStore) ListReports(ctx context.Context, timepoint string) ([]ReportSummary, error) {
	filter := bson.M{}
	if timepoint != "" {
		filter["timepoint"] = timepoint
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "generated_at", Value: -1}}).
		SetProjection(bson.M{"run_id": 1, "timepoint": 1, "generated_at": 1})

	cur, err := s.reports.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list reports")
	}
	defer cur.Close(ctx)

	var out []ReportSummary
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "decode report summaries")
	}
	return out, nil
}

// DeleteReport removes an archived report by run ID.
func (s *MongoStore) DeleteReport(ctx context.Context, runID string) error {
	res, err := s.reports.DeleteOne(ctx, bson.M{"run_id": runID})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "delete report %s", runID)
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodeResultNotFound, "report %s not found", runID)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect mongo: %w", err)
	}
	return nil
}
