package entity_test

import (
	"testing"

	"github.com/Builder-Lawyers/tutorials-backend/internal/domain/consts"
	"github.com/Builder-Lawyers/tutorials-backend/internal/domain/entity"
	"github.com/stretchr/testify/require"
)

func TestVisibilityGrowsWithSessionFlags(t *testing.T) {
	require.Equal(t, []consts.Visibility{consts.VisibilityPublic}, entity.Identity{}.Visibility())
	require.Equal(t,
		[]consts.Visibility{consts.VisibilityPublic, consts.VisibilityRegister},
		entity.Identity{LoggedIn: true}.Visibility())
	require.Equal(t,
		[]consts.Visibility{consts.VisibilityPublic, consts.VisibilityRegister, consts.VisibilityManager},
		entity.Identity{LoggedIn: true, Manager: true}.Visibility())
	require.Equal(t,
		[]consts.Visibility{consts.VisibilityPublic, consts.VisibilityManager},
		entity.Identity{Manager: true}.Visibility())
}

func TestCommentAuthor(t *testing.T) {
	anonymous := int64(7)
	user := int64(3)

	site := entity.Website{TutorialAnonymous: true, TutorialAnonymousUserID: &anonymous}
	id, ok := site.CommentAuthor(&user)
	require.True(t, ok)
	require.Equal(t, user, id)

	id, ok = site.CommentAuthor(nil)
	require.True(t, ok)
	require.Equal(t, anonymous, id)

	site.TutorialAnonymous = false
	_, ok = site.CommentAuthor(nil)
	require.False(t, ok)

	site = entity.Website{TutorialAnonymous: true}
	_, ok = site.CommentAuthor(nil)
	require.False(t, ok)
}

func TestKeywords(t *testing.T) {
	tutorial := entity.Tutorial{Metakeywords: "go, web ,, fiber"}
	require.Equal(t, []string{"go", "web", "fiber"}, tutorial.Keywords())
	require.Empty(t, (&entity.Tutorial{}).Keywords())
}
