// File: internal/jobs/profile_search_sync.go
package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"devlink_backend/internal/config"
	"devlink_backend/internal/profile"
	"devlink_backend/internal/profile/esutil"
	platformes "devlink_backend/internal/platform/elasticsearch"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const syncBatchSize = 200

// ProfileSearchSyncJob periodically reindexes all profiles into the
// search index so it converges with the database.
type ProfileSearchSyncJob struct {
	repo          profile.Repository
	esClient      *platformes.ESClientWrapper
	logger        *zap.Logger
	cfg           *config.Config
	cronScheduler *cron.Cron
}

// NewProfileSearchSyncJob creates a new ProfileSearchSyncJob.
func NewProfileSearchSyncJob(
	repo profile.Repository,
	esClient *platformes.ESClientWrapper,
	logger *zap.Logger,
	cfg *config.Config,
) *ProfileSearchSyncJob {
	scheduler := cron.New(cron.WithLogger(NewCronLogger(logger.Named("cron"))))

	return &ProfileSearchSyncJob{
		repo:          repo,
		esClient:      esClient,
		logger:        logger.Named("ProfileSearchSyncJob"),
		cfg:           cfg,
		cronScheduler: scheduler,
	}
}

// SetupAndStart schedules and starts the cron job.
func (j *ProfileSearchSyncJob) SetupAndStart() error {
	jobSpec := j.cfg.ProfileSearchSyncSchedule
	if jobSpec == "" {
		j.logger.Warn("Profile search sync schedule not defined (PROFILE_SEARCH_SYNC_SCHEDULE). Job will not run.")
		return nil
	}
	if j.esClient == nil {
		j.logger.Warn("Elasticsearch client not configured. Profile search sync job will not run.")
		return nil
	}

	jobID, err := j.cronScheduler.AddFunc(jobSpec, j.runJob)
	if err != nil {
		j.logger.Error("Failed to schedule profile search sync job", zap.String("spec", jobSpec), zap.Error(err))
		return err
	}

	j.logger.Info("Profile search sync job scheduled", zap.String("spec", jobSpec), zap.Any("jobID", jobID))
	j.cronScheduler.Start()
	return nil
}

// runJob is the actual work performed by the cron job.
func (j *ProfileSearchSyncJob) runJob() {
	j.logger.Info("Starting profile search sync run...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	indexed, err := j.Sync(ctx)
	if err != nil {
		j.logger.Error("Profile search sync run failed", zap.Error(err))
	} else {
		j.logger.Info("Profile search sync run completed", zap.Int("profiles_indexed", indexed))
	}
}

// Sync pages through all profiles and bulk-indexes them. It returns the
// number of profiles submitted to the index.
func (j *ProfileSearchSyncJob) Sync(ctx context.Context) (int, error) {
	indexed := 0
	for offset := 0; ; offset += syncBatchSize {
		profiles, err := j.repo.FindPage(ctx, offset, syncBatchSize)
		if err != nil {
			return indexed, fmt.Errorf("failed to load profile batch at offset %d: %w", offset, err)
		}
		if len(profiles) == 0 {
			return indexed, nil
		}

		if err := j.indexBatch(ctx, profiles); err != nil {
			return indexed, err
		}
		indexed += len(profiles)

		if len(profiles) < syncBatchSize {
			return indexed, nil
		}
	}
}

func (j *ProfileSearchSyncJob) indexBatch(ctx context.Context, profiles []profile.Profile) error {
	var buf strings.Builder
	for i := range profiles {
		doc, err := esutil.ProfileToSearchDoc(&profiles[i])
		if err != nil {
			j.logger.Warn("Skipping unindexable profile", zap.Error(err), zap.String("profileID", profiles[i].ID.String()))
			continue
		}
		buf.WriteString(fmt.Sprintf(`{"index":{"_id":"%s"}}`, profiles[i].ID.String()))
		buf.WriteByte('\n')
		buf.WriteString(doc)
		buf.WriteByte('\n')
	}
	if buf.Len() == 0 {
		return nil
	}

	req := esapi.BulkRequest{
		Index:   platformes.ProfilesIndexName,
		Body:    strings.NewReader(buf.String()),
		Refresh: "false",
	}
	res, err := req.Do(ctx, j.esClient)
	if err != nil {
		return fmt.Errorf("bulk index request failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("bulk index request returned status %s", res.Status())
	}
	return nil
}

// Stop gracefully stops the cron scheduler.
func (j *ProfileSearchSyncJob) Stop() {
	if j.cronScheduler != nil {
		j.logger.Info("Stopping profile search sync scheduler...")
		stopCtx := j.cronScheduler.Stop()
		select {
		case <-stopCtx.Done():
			j.logger.Info("Profile search sync scheduler stopped gracefully.")
		case <-time.After(10 * time.Second):
			j.logger.Warn("Profile search sync scheduler stop timed out.")
		}
	}
}

// --- Cron Logger Adapter ---

// cronLogger adapts zap.Logger to cron.Logger interface.
type cronLogger struct {
	zl *zap.Logger
}

// NewCronLogger creates a new cronLogger.
func NewCronLogger(zl *zap.Logger) cron.Logger {
	return &cronLogger{zl: zl}
}

// Info logs routine messages from cron.
func (cl *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	cl.zl.Info(msg, cl.parseKeysAndValues(keysAndValues...)...)
}

// Error logs error messages from cron.
func (cl *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := cl.parseKeysAndValues(keysAndValues...)
	fields = append(fields, zap.Error(err))
	cl.zl.Error(msg, fields...)
}

func (cl *cronLogger) parseKeysAndValues(keysAndValues ...interface{}) []zap.Field {
	var fields []zap.Field
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 < len(keysAndValues) {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), keysAndValues[i+1]))
		} else {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), "MISSING_VALUE"))
		}
	}
	return fields
}
