package web

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestViewsContainPages(t *testing.T) {
	views := Views()
	for _, name := range []string{"layouts/main.html", "tutorials.html", "tutorial-key.html", "tutorial-user.html",
		"tutorial-tutorial.html", "tutorial-search.html", "error.html"} {
		_, err := fs.Stat(views, name)
		require.NoError(t, err, name)
	}
}

func TestCommentMailTemplatesParse(t *testing.T) {
	html, text, err := CommentMailTemplates()
	require.NoError(t, err)
	require.NotNil(t, html)
	require.NotNil(t, text)
}
