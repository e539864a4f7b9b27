package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/Builder-Lawyers/tutorials-backend/internal/application"
	"github.com/Builder-Lawyers/tutorials-backend/internal/application/errs"
	"github.com/Builder-Lawyers/tutorials-backend/internal/application/events"
	"github.com/Builder-Lawyers/tutorials-backend/internal/domain/consts"
	"github.com/Builder-Lawyers/tutorials-backend/internal/infra/db"
	dbs "github.com/Builder-Lawyers/tutorials-backend/pkg/db"
	"github.com/Builder-Lawyers/tutorials-backend/pkg/env"
	"github.com/Builder-Lawyers/tutorials-backend/pkg/interfaces"
	"github.com/jackc/pgx/v5"
)

type OutboxPoller struct {
	handlers   *application.Handlers
	uowFactory *dbs.UOWFactory
	cfg        *OutboxConfig
	stop       chan struct{}
	done       chan struct{}
}

type OutboxConfig struct {
	limit    uint8
	interval uint16
}

func NewOutboxConfig() *OutboxConfig {
	limit := env.GetEnvInt("SCHEDULER_LIMIT", 5)
	if limit < 1 || limit > 255 {
		limit = 5
	}
	interval := env.GetEnvInt("SCHEDULER_INTERVAL", 5)
	if interval < 1 {
		interval = 5
	}
	return &OutboxConfig{
		limit:    uint8(limit),
		interval: uint16(interval),
	}
}

func NewOutboxPoller(handlers *application.Handlers, uowFactory *dbs.UOWFactory, cfg *OutboxConfig) *OutboxPoller {
	return &OutboxPoller{
		handlers:   handlers,
		uowFactory: uowFactory,
		cfg:        cfg,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Start polls the outbox until Stop is called. A poll always finishes before
// the next timer is armed.
func (o *OutboxPoller) Start() {
	slog.Info("Starting outbox poller...")
	defer close(o.done)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := time.NewTimer(time.Duration(o.cfg.interval) * time.Second)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			o.PollTable(ctx)
			t.Reset(time.Duration(o.cfg.interval) * time.Second)
		case <-o.stop:
			slog.Info("Cancelling current execution")
			return
		}
	}
}

// PollTable claims up to limit pending events and runs their handlers.
func (o *OutboxPoller) PollTable(ctx context.Context) {
	uow := o.uowFactory.GetUoW()
	tx, err := uow.Begin(ctx)
	if err != nil {
		slog.Error("error in poller", "err", err)
		return
	}

	query := "SELECT id, event, status, payload, created_at FROM site.outbox WHERE status = $1 ORDER BY created_at, id LIMIT $2 FOR NO KEY UPDATE SKIP LOCKED"
	rows, err := tx.Query(ctx, query, int(consts.NotProcessed), int(o.cfg.limit))
	if err != nil {
		_ = uow.Rollback()
		slog.Error("error in poller", "err", err)
		return
	}

	var eventsToProcess []db.Outbox
	var eventIDs []int64
	for rows.Next() {
		var event db.Outbox
		if err = rows.Scan(&event.ID, &event.Event, &event.Status, &event.Payload, &event.CreatedAt); err != nil {
			slog.Error("error in poller", "err", err)
			continue
		}
		eventIDs = append(eventIDs, int64(event.ID))
		eventsToProcess = append(eventsToProcess, event)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		slog.Error("error reading result sets", "err", err)
	}

	if len(eventsToProcess) == 0 {
		_ = uow.Rollback()
		slog.Debug("no events to process")
		return
	}

	_, err = tx.Exec(ctx, "UPDATE site.outbox SET status = $1 WHERE id = ANY($2)", int(consts.Processing), eventIDs)
	if err != nil {
		_ = uow.Rollback()
		slog.Error("error setting events status to processing", "err", err)
		return
	}

	if err := uow.Commit(); err != nil {
		slog.Error("err committing", "err", err)
		return
	}

	var wg sync.WaitGroup
	for _, event := range eventsToProcess {
		wg.Add(1)
		go func(ev db.Outbox) {
			defer wg.Done()
			if err := o.handleEvent(ctx, ev); err != nil {
				slog.Error("handler error", "event", ev.ID, "err", err)
			}
		}(event)
	}

	wg.Wait()
	slog.Debug("Finished poller thread processing")
}

func (o *OutboxPoller) handleEvent(ctx context.Context, outbox db.Outbox) error {
	var (
		uow    interfaces.UoW
		tx     pgx.Tx
		err    error
		status = consts.Processed
	)

	slog.Info("Handling event", "event", outbox.Event, "id", outbox.ID)

	switch outbox.Event {
	case events.CommentPublished{}.GetType():
		var event events.CommentPublished
		event, err = db.MapOutboxModelToCommentPublished(outbox)
		if err != nil {
			status = consts.InError
			break
		}
		uow, err = o.handlers.SendCommentMail.Handle(ctx, event)
		if err != nil {
			var r errs.RetryableError
			if errors.As(err, &r) {
				slog.Warn("mail server unavailable, will retry later", "id", outbox.ID)
				status = consts.NotProcessed
			} else {
				status = consts.InError
			}
		}
	default:
		slog.Warn("no handler for event", "event", outbox.Event, "id", outbox.ID)
		status = consts.InError
	}

	if err != nil {
		slog.Error("error in handler", "event", outbox.Event, "id", outbox.ID, "err", err)
		if uow != nil {
			// the handler's writes are dropped with the failed attempt
			_ = uow.Rollback()
			uow = nil
		}
	}

	if uow == nil {
		var errTx error
		// open new transaction if there was none in event handler
		newUow := o.uowFactory.GetUoW()
		tx, errTx = newUow.Begin(ctx)
		if errTx != nil {
			return errors.Join(err, errTx)
		}
		uow = newUow
	} else {
		tx = uow.GetTx()
	}

	_, err = tx.Exec(ctx, "UPDATE site.outbox SET status = $1 WHERE id = $2", int(status), outbox.ID)
	if err != nil {
		errRollback := uow.Rollback()
		slog.Error("error in poller", "err", err)
		return errors.Join(err, errRollback)
	}

	if err = uow.Commit(); err != nil {
		slog.Error("error in poller", "err", err)
		return err
	}

	slog.Info("processed event", "id", outbox.ID, "status", status)
	return nil
}

// Stop ends the polling loop and waits for a running poll to finish.
func (o *OutboxPoller) Stop() {
	slog.Info("Stopping poller")
	close(o.stop)
	<-o.done
}
