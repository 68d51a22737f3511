package discord

import (
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/ferdian3456/leaguebot/internal/constant"
	"github.com/ferdian3456/leaguebot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCustomIDValue(t *testing.T) {
	value, ok := customIDValue("nickname_modal:Ohio State Buckeyes", constant.NICKNAME_MODAL_ID)
	require.True(t, ok)
	assert.Equal(t, "Ohio State Buckeyes", value)

	value, ok = customIDValue("nickname_retry:Texas A&M Aggies", constant.NICKNAME_RETRY_ID)
	require.True(t, ok)
	assert.Equal(t, "Texas A&M Aggies", value)

	_, ok = customIDValue("nickname_modal:", constant.NICKNAME_MODAL_ID)
	assert.False(t, ok, "empty team")

	_, ok = customIDValue("team_select", constant.NICKNAME_MODAL_ID)
	assert.False(t, ok, "other component")
}

func TestNicknameModal(t *testing.T) {
	data := NicknameModal("Ohio State Buckeyes", "louis | Ohio State Buckeyes")

	assert.Equal(t, "nickname_modal:Ohio State Buckeyes", data.CustomID)
	assert.Equal(t, "Set Your Nickname", data.Title)

	require.Len(t, data.Components, 1)
	row, ok := data.Components[0].(discordgo.ActionsRow)
	require.True(t, ok)
	require.Len(t, row.Components, 1)
	input, ok := row.Components[0].(discordgo.TextInput)
	require.True(t, ok)

	assert.Equal(t, constant.NICKNAME_INPUT_ID, input.CustomID)
	assert.Equal(t, "louis | Ohio State Buckeyes", input.Value)
	assert.Equal(t, constant.MIN_NICKNAME, input.MinLength)
	assert.Equal(t, constant.MAX_NICKNAME, input.MaxLength)
	assert.True(t, input.Required)
}

func TestModalValue(t *testing.T) {
	data := discordgo.ModalSubmitInteractionData{
		CustomID: "nickname_modal:Ohio State Buckeyes",
		Components: []discordgo.MessageComponent{
			&discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					&discordgo.TextInput{CustomID: constant.NICKNAME_INPUT_ID, Value: "Go Buckeyes!"},
				},
			},
		},
	}

	assert.Equal(t, "Go Buckeyes!", modalValue(data, constant.NICKNAME_INPUT_ID))
	assert.Empty(t, modalValue(data, "other_input"))
}

func TestInteractionUser(t *testing.T) {
	guild := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Member: &discordgo.Member{User: &discordgo.User{ID: "42"}},
	}}
	assert.Equal(t, "42", interactionUser(guild).ID)

	direct := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		User: &discordgo.User{ID: "43"},
	}}
	assert.Equal(t, "43", interactionUser(direct).ID)
}

func TestToReply(t *testing.T) {
	log := zap.NewNop()
	modal := model.Reply{Kind: model.ReplyNicknameModal, TeamName: "Ohio State Buckeyes"}

	t.Run("success passes through", func(t *testing.T) {
		reply, components := toReply(log, modal, nil, "")
		assert.Equal(t, modal, reply)
		assert.Nil(t, components)
	})

	t.Run("nickname validation offers a retry", func(t *testing.T) {
		err := &model.ValidationError{Code: constant.ERR_VALIDATION_CODE, Message: "Your nickname must include at least one word from 'Ohio State Buckeyes'. Please try again.", Param: "nickname"}

		reply, components := toReply(log, model.Reply{}, err, "Ohio State Buckeyes")
		assert.Equal(t, model.ReplyMessage, reply.Kind)
		assert.Equal(t, err.Message, reply.Content)
		require.Len(t, components, 1)

		row := components[0].(discordgo.ActionsRow)
		button := row.Components[0].(discordgo.Button)
		assert.Equal(t, "nickname_retry:Ohio State Buckeyes", button.CustomID)
	})

	t.Run("team validation has no retry", func(t *testing.T) {
		err := &model.ValidationError{Code: constant.ERR_VALIDATION_CODE, Message: "You no longer have the 'Ohio State Buckeyes' role. Please pick your team again.", Param: "team"}

		reply, components := toReply(log, model.Reply{}, err, "Ohio State Buckeyes")
		assert.Equal(t, err.Message, reply.Content)
		assert.Nil(t, components)
	})

	t.Run("guild not resolved", func(t *testing.T) {
		reply, _ := toReply(log, model.Reply{}, model.ErrGuildNotResolved, "")
		assert.Equal(t, guildNotResolvedMessage, reply.Content)
	})

	t.Run("anything else is generic", func(t *testing.T) {
		reply, components := toReply(log, model.Reply{}, errors.New("gateway closed"), "Ohio State Buckeyes")
		assert.Equal(t, constant.ERR_INTENRAL_SERVER_ERROR_MESSAGE, reply.Content)
		assert.Nil(t, components)
	})
}
