package testinfra

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/Builder-Lawyers/tutorials-backend/internal/infra/db"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var Pool *pgxpool.Pool

func init() {
	Pool = SetupDB()
}

func SetupDB() *pgxpool.Pool {

	ctx := context.Background()

	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:17.2-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_PASSWORD": "password",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: pgReq,
		Started:          true,
	})
	if err != nil {
		log.Panicf("start postgres: %v", err)
	}

	pgHostPort, err := pgC.Endpoint(ctx, "")
	if err != nil {
		log.Panicf("postgres endpoint: %v", err)
	}
	pgDSN := fmt.Sprintf("postgres://postgres:password@%s/testdb?sslmode=disable", pgHostPort)

	pool, err := pgxpool.New(ctx, pgDSN)
	if err != nil {
		log.Panicf("pgxpool connect: %v", err)
	}

	ok := false
	for i := 0; i < 20; i++ {
		slog.Info("ping db", "try", i)
		ctxPing, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
		err = pool.Ping(ctxPing)
		cancel()
		if err == nil {
			ok = true
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if !ok {
		log.Panic("db did not respond after 20 attempts")
	}

	if err = db.Migrate(ctx, pool); err != nil {
		log.Panicf("create tables: %v", err)
	}

	return pool
}

// Truncate empties every table of the site schema.
func Truncate(ctx context.Context) {
	_, err := Pool.Exec(ctx, "TRUNCATE site.mails, site.outbox, site.tutorial_comments, site.tutorials_websites, "+
		"site.tutorials, site.websites, site.users RESTART IDENTITY CASCADE")
	if err != nil {
		log.Panicf("err truncating tables, %v", err)
	}
}

func InsertUser(ctx context.Context, name string) int64 {
	var id int64
	err := Pool.QueryRow(ctx, "INSERT INTO site.users(name, email) VALUES ($1, $2) RETURNING id",
		name, name+"@example.com").Scan(&id)
	if err != nil {
		log.Panicf("err inserting user, %v", err)
	}
	return id
}

func InsertWebsite(ctx context.Context, comments, anonymous bool, anonymousUser *int64) int64 {
	var id int64
	err := Pool.QueryRow(ctx, "INSERT INTO site.websites(name, tutorial_comment, tutorial_anonymous, tutorial_anonymous_user) "+
		"VALUES ($1,$2,$3,$4) RETURNING id", "test site", comments, anonymous, anonymousUser).Scan(&id)
	if err != nil {
		log.Panicf("err inserting website, %v", err)
	}
	return id
}

type TutorialFixture struct {
	Name       string
	Slug       string
	Content    string
	Visibility string
	Active     bool
	Keywords   string
	UserID     *int64
	CreatedAt  time.Time
	Websites   []int64
}

func InsertTutorial(ctx context.Context, f TutorialFixture) int64 {
	if f.Visibility == "" {
		f.Visibility = "public"
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now()
	}
	var id int64
	err := Pool.QueryRow(ctx, "INSERT INTO site.tutorials(name, slug, content, visibility, active, metakeywords, user_id, tutorial_create_date) "+
		"VALUES ($1,$2,$3,$4,$5,$6,$7,$8) RETURNING id",
		f.Name, f.Slug, f.Content, f.Visibility, f.Active, f.Keywords, f.UserID, f.CreatedAt).Scan(&id)
	if err != nil {
		log.Panicf("err inserting tutorial, %v", err)
	}
	for _, website := range f.Websites {
		_, err = Pool.Exec(ctx, "INSERT INTO site.tutorials_websites(tutorial_id, website_id) VALUES ($1,$2)", id, website)
		if err != nil {
			log.Panicf("err linking tutorial to website, %v", err)
		}
	}
	return id
}
