package discord

import (
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/ferdian3456/leaguebot/internal/constant"
)

func customID(prefix string, value string) string {
	return prefix + constant.CUSTOM_ID_SEPARATOR + value
}

// customIDValue returns the value carried after prefix, or false when id belongs to another component.
func customIDValue(id string, prefix string) (string, bool) {
	value, ok := strings.CutPrefix(id, prefix+constant.CUSTOM_ID_SEPARATOR)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// NicknameModal asks for the nickname. The team rides along in the modal custom id so the submit
// handler never depends on in-memory state.
func NicknameModal(teamName string, defaultNickname string) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: customID(constant.NICKNAME_MODAL_ID, teamName),
		Title:    "Set Your Nickname",
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:  constant.NICKNAME_INPUT_ID,
						Label:     "Nickname (must include team name)",
						Style:     discordgo.TextInputShort,
						Value:     defaultNickname,
						MinLength: constant.MIN_NICKNAME,
						MaxLength: constant.MAX_NICKNAME,
						Required:  true,
					},
				},
			},
		},
	}
}

func retryComponents(teamName string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					CustomID: customID(constant.NICKNAME_RETRY_ID, teamName),
					Label:    "Try another nickname",
					Style:    discordgo.PrimaryButton,
				},
			},
		},
	}
}

// modalValue finds a text input value in a submitted modal.
func modalValue(data discordgo.ModalSubmitInteractionData, inputID string) string {
	for _, component := range data.Components {
		row, ok := component.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, inner := range row.Components {
			input, ok := inner.(*discordgo.TextInput)
			if ok && input.CustomID == inputID {
				return input.Value
			}
		}
	}
	return ""
}

func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}
