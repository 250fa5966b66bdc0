package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/tutor-scheduler/internal/config"
)

// ObjectPutter is the part of the S3 client the archiver uses.
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Archiver buffers events and ships them to object storage as NDJSON
// batches on Flush.
type Archiver struct {
	client ObjectPutter
	bucket string
	log    *zap.Logger
	now    func() time.Time

	mu      sync.Mutex
	pending []Event
}

func NewArchiver(client ObjectPutter, bucket string, log *zap.Logger) *Archiver {
	return &Archiver{
		client: client,
		bucket: bucket,
		log:    log,
		now:    time.Now,
	}
}

func NewS3Client(cfg *config.Config) *s3.Client {
	awsCfg := aws.Config{
		Region: cfg.AuditArchiveRegion,
	}
	if cfg.AWSAccessKeyID != "" {
		awsCfg.Credentials = credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.AuditArchiveEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.AuditArchiveEndpoint)
			o.UsePathStyle = true
		}
	})
}

func (a *Archiver) Record(_ context.Context, ev Event) error {
	a.mu.Lock()
	a.pending = append(a.pending, ev)
	a.mu.Unlock()
	return nil
}

// Flush uploads pending events as one object. On failure the batch is put
// back in front of newer events.
func (a *Archiver) Flush(ctx context.Context) error {
	a.mu.Lock()
	batch := a.pending
	a.pending = nil
	a.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, ev := range batch {
		if err := enc.Encode(ev); err != nil {
			return fmt.Errorf("encode audit event: %w", err)
		}
	}

	key := a.objectKey()
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("application/x-ndjson"),
	})
	if err != nil {
		a.mu.Lock()
		a.pending = append(batch, a.pending...)
		a.mu.Unlock()
		return fmt.Errorf("put %s: %w", key, err)
	}

	a.log.Info("audit batch archived", zap.String("key", key), zap.Int("events", len(batch)))
	return nil
}

func (a *Archiver) objectKey() string {
	t := a.now().UTC()
	return fmt.Sprintf("audit/%s/%d.ndjson", t.Format("2006/01/02"), t.UnixNano())
}

// Schedule registers a periodic flush on c.
func (a *Archiver) Schedule(c *cron.Cron, spec string) error {
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if err := a.Flush(ctx); err != nil {
			a.log.Warn("audit archive flush failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("add audit archive schedule %q: %w", spec, err)
	}
	return nil
}
