package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Builder-Lawyers/tutorials-backend/internal/application/dto"
	"github.com/Builder-Lawyers/tutorials-backend/internal/application/errs"
	"github.com/Builder-Lawyers/tutorials-backend/internal/application/interfaces"
	"github.com/Builder-Lawyers/tutorials-backend/internal/domain/consts"
	"github.com/Builder-Lawyers/tutorials-backend/internal/domain/entity"
	shared "github.com/Builder-Lawyers/tutorials-backend/pkg/interfaces"
	"github.com/jackc/pgx/v5"
)

type WebsiteRepo struct {
	tx pgx.Tx
}

var _ interfaces.WebsiteRepo = (*WebsiteRepo)(nil)

func NewWebsiteRepo(tx pgx.Tx) *WebsiteRepo {
	return &WebsiteRepo{tx: tx}
}

func (w *WebsiteRepo) GetWebsiteByID(ctx context.Context, id int64) (*entity.Website, error) {
	var website entity.Website
	query := "SELECT id, name, tutorial_comment, tutorial_anonymous, tutorial_anonymous_user FROM site.websites WHERE id = $1 LIMIT 1"
	err := w.tx.QueryRow(ctx, query, id).Scan(&website.ID, &website.Name, &website.TutorialComment,
		&website.TutorialAnonymous, &website.TutorialAnonymousUserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NotFound("website")
		}
		return nil, fmt.Errorf("err getting website, %v", err)
	}

	return &website, nil
}

type UserRepo struct {
	tx pgx.Tx
}

var _ interfaces.UserRepo = (*UserRepo)(nil)

func NewUserRepo(tx pgx.Tx) *UserRepo {
	return &UserRepo{tx: tx}
}

func (u *UserRepo) GetUserByID(ctx context.Context, id int64) (*entity.User, error) {
	var user entity.User
	var email *string
	err := u.tx.QueryRow(ctx, "SELECT id, name, email FROM site.users WHERE id = $1 LIMIT 1", id).Scan(&user.ID, &user.Name, &email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NotFound("user")
		}
		return nil, fmt.Errorf("err getting user, %v", err)
	}
	if email != nil {
		user.Email = *email
	}

	return &user, nil
}

type TutorialRepo struct {
	tx pgx.Tx
}

var _ interfaces.TutorialRepo = (*TutorialRepo)(nil)

func NewTutorialRepo(tx pgx.Tx) *TutorialRepo {
	return &TutorialRepo{tx: tx}
}

const tutorialColumns = "t.id, t.name, t.slug, t.description, t.content, t.visibility, t.active, t.metakeywords, " +
	"t.metadescription, t.user_id, COALESCE(u.name, ''), t.tutorial_create_date"

const tutorialOrder = " ORDER BY t.tutorial_create_date DESC, t.id DESC"

// SearchTutorials returns the tutorials matching filter, newest first. A limit
// of 0 means no limit.
func (r *TutorialRepo) SearchTutorials(ctx context.Context, filter dto.TutorialFilter, offset, limit int) ([]entity.Tutorial, error) {
	where, args := BuildTutorialWhere(filter)
	query := "SELECT " + tutorialColumns + " FROM site.tutorials t LEFT JOIN site.users u ON u.id = t.user_id WHERE " +
		where + tutorialOrder
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if offset > 0 {
		args = append(args, offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.tx.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("err querying tutorials, %v", err)
	}
	return scanTutorials(rows)
}

func (r *TutorialRepo) CountTutorials(ctx context.Context, filter dto.TutorialFilter) (int, error) {
	where, args := BuildTutorialWhere(filter)
	var total int
	err := r.tx.QueryRow(ctx, "SELECT count(*) FROM site.tutorials t WHERE "+where, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("err counting tutorials, %v", err)
	}
	return total, nil
}

// ListActiveTutorials feeds the search indexer, it ignores visibility and websites.
func (r *TutorialRepo) ListActiveTutorials(ctx context.Context) ([]entity.Tutorial, error) {
	rows, err := r.tx.Query(ctx, "SELECT "+tutorialColumns+
		" FROM site.tutorials t LEFT JOIN site.users u ON u.id = t.user_id WHERE t.active = TRUE ORDER BY t.id")
	if err != nil {
		return nil, fmt.Errorf("err querying active tutorials, %v", err)
	}
	return scanTutorials(rows)
}

func scanTutorials(rows pgx.Rows) ([]entity.Tutorial, error) {
	defer rows.Close()
	var tutorials []entity.Tutorial
	for rows.Next() {
		var t entity.Tutorial
		var visibility string
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.Description, &t.Content, &visibility, &t.Active,
			&t.Metakeywords, &t.Metadescription, &t.UserID, &t.UserName, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("err scanning tutorial, %v", err)
		}
		t.Visibility = consts.Visibility(visibility)
		tutorials = append(tutorials, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading result sets, %v", err)
	}
	return tutorials, nil
}

// BuildTutorialWhere assembles the WHERE clause for a tutorial filter. Active
// and visibility conditions are always present.
func BuildTutorialWhere(filter dto.TutorialFilter) (string, []any) {
	var args []any
	conds := []string{"t.active = TRUE"}
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	visibility := make([]string, 0, len(filter.Visibility))
	for _, v := range filter.Visibility {
		visibility = append(visibility, string(v))
	}
	add("t.visibility = ANY($%d)", visibility)

	if filter.IDs != nil {
		add("t.id = ANY($%d)", filter.IDs)
	}
	if filter.Slug != "" {
		add("t.slug = $%d", filter.Slug)
	}
	if filter.Key != "" {
		add(`t.metakeywords ILIKE $%d ESCAPE '\'`, "%"+EscapeLike(filter.Key)+"%")
	}
	if filter.UserID != 0 {
		add("t.user_id = $%d", filter.UserID)
	}
	if filter.WebsiteID != 0 {
		add("EXISTS (SELECT 1 FROM site.tutorials_websites tw WHERE tw.tutorial_id = t.id AND tw.website_id = $%d)", filter.WebsiteID)
	}

	return strings.Join(conds, " AND "), args
}

func EscapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

type CommentRepo struct {
	tx pgx.Tx
}

var _ interfaces.CommentRepo = (*CommentRepo)(nil)

func NewCommentRepo(tx pgx.Tx) *CommentRepo {
	return &CommentRepo{tx: tx}
}

func (c *CommentRepo) InsertComment(ctx context.Context, comment *entity.Comment) error {
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	err := c.tx.QueryRow(ctx, "INSERT INTO site.tutorial_comments(tutorial_id, user_id, description, created_at) VALUES ($1,$2,$3,$4) RETURNING id",
		comment.TutorialID, comment.UserID, comment.Description, comment.CreatedAt).Scan(&comment.ID)
	if err != nil {
		return fmt.Errorf("err inserting comment, %v", err)
	}
	return nil
}

func (c *CommentRepo) ListComments(ctx context.Context, tutorialID int64) ([]entity.Comment, error) {
	rows, err := c.tx.Query(ctx, "SELECT c.id, c.tutorial_id, c.user_id, u.name, c.description, c.created_at "+
		"FROM site.tutorial_comments c JOIN site.users u ON u.id = c.user_id "+
		"WHERE c.tutorial_id = $1 ORDER BY c.created_at, c.id", tutorialID)
	if err != nil {
		return nil, fmt.Errorf("err querying comments, %v", err)
	}
	defer rows.Close()

	var comments []entity.Comment
	for rows.Next() {
		var comment entity.Comment
		if err = rows.Scan(&comment.ID, &comment.TutorialID, &comment.UserID, &comment.UserName,
			&comment.Description, &comment.CreatedAt); err != nil {
			return nil, fmt.Errorf("err scanning comment, %v", err)
		}
		comments = append(comments, comment)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading result sets, %v", err)
	}
	return comments, nil
}

type EventRepo struct {
	tx pgx.Tx
}

var _ interfaces.EventRepo = (*EventRepo)(nil)

func NewEventRepo(tx pgx.Tx) *EventRepo {
	return &EventRepo{tx: tx}
}

func (e *EventRepo) InsertEvent(ctx context.Context, event shared.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("err marshalling event payload, %v", err)
	}
	_, err = e.tx.Exec(ctx, "INSERT INTO site.outbox (event, status, payload, created_at) VALUES ($1,$2,$3,$4)",
		event.GetType(), int(consts.NotProcessed), json.RawMessage(payload), time.Now())
	if err != nil {
		return fmt.Errorf("err inserting a new event, %v", err)
	}

	return nil
}

type MailRepo struct {
	tx pgx.Tx
}

var _ interfaces.MailRepo = (*MailRepo)(nil)

func NewMailRepo(tx pgx.Tx) *MailRepo {
	return &MailRepo{tx: tx}
}

func (m *MailRepo) InsertMail(ctx context.Context, mail interfaces.MailRecord) error {
	_, err := m.tx.Exec(ctx, "INSERT INTO site.mails(type, recipients, subject, content, sent_at) VALUES ($1,$2,$3,$4,$5)",
		mail.Type, mail.Recipients, mail.Subject, mail.Content, time.Now())
	if err != nil {
		return fmt.Errorf("err archiving mail, %v", err)
	}
	return nil
}
