package commands_test

import (
	"testing"

	"github.com/Builder-Lawyers/tutorials-backend/internal/application/commands"
	"github.com/Builder-Lawyers/tutorials-backend/internal/application/consts"
	"github.com/Builder-Lawyers/tutorials-backend/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

func TestCheckCommentOrder(t *testing.T) {
	anon := int64(7)
	user := int64(3)

	// disabled wins over an empty comment
	_, flash := commands.CheckComment(&entity.Website{}, true, nil, "")
	assert.Equal(t, consts.MsgCommentsDisabled, flash.Message)

	// anonymous refusal wins over an empty comment
	_, flash = commands.CheckComment(&entity.Website{TutorialComment: true}, true, nil, "")
	assert.Equal(t, consts.MsgAnonymousDisabled, flash.Message)

	website := &entity.Website{TutorialComment: true, TutorialAnonymous: true, TutorialAnonymousUserID: &anon}
	_, flash = commands.CheckComment(website, true, &user, "")
	assert.Equal(t, consts.MsgCommentEmpty, flash.Message)

	author, flash := commands.CheckComment(website, true, nil, "hi")
	assert.Nil(t, flash)
	assert.Equal(t, anon, author)

	author, flash = commands.CheckComment(website, true, &user, "hi")
	assert.Nil(t, flash)
	assert.Equal(t, user, author)
}
