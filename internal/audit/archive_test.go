package audit

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type fakePutter struct {
	inputs []*s3.PutObjectInput
	bodies []string
	err    error
}

func (f *fakePutter) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	b, _ := io.ReadAll(in.Body)
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, string(b))
	return &s3.PutObjectOutput{}, nil
}

func fixedArchiver(p ObjectPutter) *Archiver {
	a := NewArchiver(p, "audit-bucket", zap.NewNop())
	a.now = func() time.Time { return time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC) }
	return a
}

func TestArchiver_FlushWritesNDJSON(t *testing.T) {
	p := &fakePutter{}
	a := fixedArchiver(p)

	_ = a.Record(context.Background(), Event{Action: "booking.created", Summary: "one"})
	_ = a.Record(context.Background(), Event{Action: "booking.updated", Summary: "two"})

	if err := a.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if len(p.inputs) != 1 {
		t.Fatalf("expected one object, got %d", len(p.inputs))
	}
	if got := *p.inputs[0].Bucket; got != "audit-bucket" {
		t.Errorf("unexpected bucket %s", got)
	}
	if key := *p.inputs[0].Key; !strings.HasPrefix(key, "audit/2026/03/09/") {
		t.Errorf("unexpected key %s", key)
	}

	sc := bufio.NewScanner(strings.NewReader(p.bodies[0]))
	var lines []Event
	for sc.Scan() {
		var ev Event
		if err := json.Unmarshal(sc.Bytes(), &ev); err != nil {
			t.Fatalf("line is not json: %v", err)
		}
		lines = append(lines, ev)
	}
	if len(lines) != 2 || lines[1].Summary != "two" {
		t.Fatalf("unexpected archived events %+v", lines)
	}
}

func TestArchiver_FlushEmptyIsNoop(t *testing.T) {
	p := &fakePutter{}
	if err := fixedArchiver(p).Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if len(p.inputs) != 0 {
		t.Fatal("expected no upload")
	}
}

func TestArchiver_FailedFlushKeepsEvents(t *testing.T) {
	p := &fakePutter{err: errors.New("unavailable")}
	a := fixedArchiver(p)
	_ = a.Record(context.Background(), Event{Action: "x"})

	if err := a.Flush(context.Background()); err == nil {
		t.Fatal("expected error")
	}

	p.err = nil
	if err := a.Flush(context.Background()); err != nil {
		t.Fatalf("retry flush: %v", err)
	}
	if len(p.inputs) != 1 {
		t.Fatalf("expected retried upload, got %d", len(p.inputs))
	}
}

func TestArchiver_ScheduleRejectsBadSpec(t *testing.T) {
	a := fixedArchiver(&fakePutter{})
	if err := a.Schedule(cron.New(), "not a schedule"); err == nil {
		t.Fatal("expected error for invalid spec")
	}
	if err := a.Schedule(cron.New(), "@every 1m"); err != nil {
		t.Fatalf("valid spec: %v", err)
	}
}
