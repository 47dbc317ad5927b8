package mailer

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	bodies []any
}

func (p *recordingPublisher) PublishJSON(_ context.Context, body any) error {
	p.bodies = append(p.bodies, body)
	return nil
}

func TestQueuePublishesJob(t *testing.T) {
	pub := &recordingPublisher{}
	err := Queue{Pub: pub}.Send(context.Background(), Message{To: "a@b.io", Subject: "s", Text: "t"})
	require.NoError(t, err)
	require.Len(t, pub.bodies, 1)
	assert.Equal(t, EmailJob{To: "a@b.io", Subject: "s", Text: "t"}, pub.bodies[0])

	assert.Error(t, Queue{}.Send(context.Background(), Message{}))
}

func TestQueuePublishesTemplateJob(t *testing.T) {
	pub := &recordingPublisher{}
	data := map[string]any{"Name": "Ann", "ResetURL": "http://x/reset/abc"}
	err := Queue{Pub: pub}.Send(context.Background(), Message{
		To: "a@b.io", Subject: "rendered", Text: "rendered", Template: "reset_password", Data: data,
	})
	require.NoError(t, err)
	require.Len(t, pub.bodies, 1)
	assert.Equal(t, EmailJob{To: "a@b.io", Template: "reset_password", Data: data}, pub.bodies[0])
}

func TestLogMailer(t *testing.T) {
	logger, hook := test.NewNullLogger()
	require.NoError(t, Log{Logger: logger}.Send(context.Background(), Message{To: "a@b.io", Subject: "s", Text: "body"}))
	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
	assert.Equal(t, "a@b.io", hook.LastEntry().Data["to"])
}
