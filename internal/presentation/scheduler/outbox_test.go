package scheduler_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Builder-Lawyers/tutorials-backend/internal/application"
	"github.com/Builder-Lawyers/tutorials-backend/internal/application/errs"
	"github.com/Builder-Lawyers/tutorials-backend/internal/application/events"
	"github.com/Builder-Lawyers/tutorials-backend/internal/domain/consts"
	"github.com/Builder-Lawyers/tutorials-backend/internal/presentation/scheduler"
	"github.com/Builder-Lawyers/tutorials-backend/internal/testinfra"
	"github.com/Builder-Lawyers/tutorials-backend/pkg/db"
	shared "github.com/Builder-Lawyers/tutorials-backend/pkg/interfaces"
	"github.com/stretchr/testify/require"
)

var uowFactory = db.NewUoWFactory(testinfra.Pool)

type fakeSender struct {
	handled []events.CommentPublished
	err     error
}

func (f *fakeSender) Handle(_ context.Context, event events.CommentPublished) (shared.UoW, error) {
	f.handled = append(f.handled, event)
	return nil, f.err
}

func insertEvent(t *testing.T, name string, payload any) int64 {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	var id int64
	err = testinfra.Pool.QueryRow(context.Background(),
		"INSERT INTO site.outbox(event, status, payload) VALUES ($1, 0, $2) RETURNING id", name, raw).Scan(&id)
	require.NoError(t, err)
	return id
}

func statusOf(t *testing.T, id int64) consts.OutboxStatus {
	t.Helper()
	var status int
	require.NoError(t, testinfra.Pool.QueryRow(context.Background(), "SELECT status FROM site.outbox WHERE id = $1", id).Scan(&status))
	return consts.OutboxStatus(status)
}

func Test_Poll_When_Comment_Event_Pending_Then_Handled_And_Processed(t *testing.T) {
	ctx := context.Background()
	testinfra.Truncate(ctx)
	id := insertEvent(t, "CommentPublished", events.CommentPublished{TutorialSlug: "channels", UserName: "alice"})
	sender := &fakeSender{}
	SUT := scheduler.NewOutboxPoller(&application.Handlers{SendCommentMail: sender}, uowFactory, scheduler.NewOutboxConfig())

	SUT.PollTable(ctx)

	require.Len(t, sender.handled, 1)
	require.Equal(t, "channels", sender.handled[0].TutorialSlug)
	require.Equal(t, "alice", sender.handled[0].UserName)
	require.Equal(t, consts.Processed, statusOf(t, id))

	SUT.PollTable(ctx)
	require.Len(t, sender.handled, 1)
}

func Test_Poll_When_Handler_Fails_Then_Status_Reflects_Error_Kind(t *testing.T) {
	ctx := context.Background()
	testinfra.Truncate(ctx)
	failed := insertEvent(t, "CommentPublished", events.CommentPublished{})
	SUT := scheduler.NewOutboxPoller(&application.Handlers{SendCommentMail: &fakeSender{err: errors.New("boom")}},
		uowFactory, scheduler.NewOutboxConfig())
	SUT.PollTable(ctx)
	require.Equal(t, consts.InError, statusOf(t, failed))

	retried := insertEvent(t, "CommentPublished", events.CommentPublished{})
	SUT = scheduler.NewOutboxPoller(&application.Handlers{SendCommentMail: &fakeSender{err: errs.RetryableError{Err: errors.New("busy")}}},
		uowFactory, scheduler.NewOutboxConfig())
	SUT.PollTable(ctx)
	require.Equal(t, consts.NotProcessed, statusOf(t, retried))
}

func Test_Poll_When_Event_Unknown_Then_In_Error(t *testing.T) {
	ctx := context.Background()
	testinfra.Truncate(ctx)
	id := insertEvent(t, "SomethingElse", map[string]string{})
	SUT := scheduler.NewOutboxPoller(&application.Handlers{SendCommentMail: &fakeSender{}}, uowFactory, scheduler.NewOutboxConfig())

	SUT.PollTable(ctx)
	require.Equal(t, consts.InError, statusOf(t, id))
}

func Test_Stop_When_Started_Then_Returns(t *testing.T) {
	SUT := scheduler.NewOutboxPoller(&application.Handlers{}, uowFactory, scheduler.NewOutboxConfig())
	go SUT.Start()
	SUT.Stop()
}

func Test_Poll_When_Payload_Malformed_Then_In_Error_And_Not_Handled(t *testing.T) {
	ctx := context.Background()
	testinfra.Truncate(ctx)
	id := insertEvent(t, "CommentPublished", []int{1, 2})
	sender := &fakeSender{}
	SUT := scheduler.NewOutboxPoller(&application.Handlers{SendCommentMail: sender}, uowFactory, scheduler.NewOutboxConfig())

	SUT.PollTable(ctx)
	require.Empty(t, sender.handled)
	require.Equal(t, consts.InError, statusOf(t, id))
}
