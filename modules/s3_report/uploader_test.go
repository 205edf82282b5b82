package s3_report

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/johannesboyne/gofakes3"
	"github.com/johannesboyne/gofakes3/backend/s3mem"
	"github.com/specialistvlad/uiprobe/internal/report"
	"github.com/specialistvlad/uiprobe/internal/scenario"
	"github.com/stretchr/testify/require"
)

const testBucket = "uiprobe-reports"

// newFakeS3 starts gofakes3 with an empty bucket and returns an Uploader
// pointed at it plus a raw client for assertions.
func newFakeS3(t *testing.T, prefix string) (*Uploader, *s3.Client) {
	t.Helper()

	faker := gofakes3.New(s3mem.New())
	ts := httptest.NewServer(faker.Server())
	t.Cleanup(ts.Close)

	ctx := context.Background()
	up, err := New(ctx, Config{
		Bucket:          testBucket,
		Prefix:          prefix,
		Endpoint:        ts.URL,
		Region:          "us-east-1",
		AccessKeyID:     "test-key",
		SecretAccessKey: "test-secret",
	})
	require.NoError(t, err)

	_, err = up.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(testBucket)})
	require.NoError(t, err)
	return up, up.client
}

func summary() *report.Summary {
	started := time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)
	return &report.Summary{
		RunID:     "0b7a6c1e-run",
		StartedAt: started,
		Duration:  2 * time.Second,
		Results: []report.Result{
			{Project: "Chrome Desktop", Scenario: "example.hcl › should login successfully", Status: scenario.Passed, FailedStep: -1, StartedAt: started, Duration: time.Second},
			{Project: "Chrome Desktop", Scenario: "negative.hcl › wrong password", Status: scenario.Failed, Err: errors.New("boom"), FailedStep: 2, StartedAt: started, Duration: time.Second},
		},
	}
}

func TestUploader_Key(t *testing.T) {
	require.Equal(t, "nightly/run.json", NewFromClient(nil, "b", "/nightly/").Key("run"))
	require.Equal(t, "run.json", NewFromClient(nil, "b", "").Key("run"))
}

func TestUploader_CloseUploadsReport(t *testing.T) {
	up, client := newFakeS3(t, "uiprobe/nightly")
	ctx := context.Background()
	s := summary()

	require.NoError(t, up.Publish(ctx, s.Results[0]))
	require.NoError(t, up.Close(ctx, s))

	obj, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(testBucket),
		Key:    aws.String("uiprobe/nightly/0b7a6c1e-run.json"),
	})
	require.NoError(t, err)
	defer obj.Body.Close()
	body, err := io.ReadAll(obj.Body)
	require.NoError(t, err)

	var got struct {
		RunID   string `json:"run_id"`
		Passed  int    `json:"passed"`
		Failed  int    `json:"failed"`
		Results []struct {
			Status     string `json:"status"`
			FailedStep *int   `json:"failed_step"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	require.Equal(t, "0b7a6c1e-run", got.RunID)
	require.Equal(t, 1, got.Passed)
	require.Equal(t, 1, got.Failed)
	require.Len(t, got.Results, 2)
	require.Nil(t, got.Results[0].FailedStep)
	require.Equal(t, 2, *got.Results[1].FailedStep)
}

func TestUploader_MissingBucketFails(t *testing.T) {
	up, _ := newFakeS3(t, "")
	up.bucket = "does-not-exist"
	require.Error(t, up.Close(context.Background(), summary()))
}

func TestNew_RequiresBucket(t *testing.T) {
	_, err := New(context.Background(), Config{})
	require.ErrorContains(t, err, "bucket is required")
}
