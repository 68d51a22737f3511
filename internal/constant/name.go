package constant

const (
	WELCOME_CHANNEL        = "welcome"
	RULES_CHANNEL          = "rules"
	TEAM_SELECTION_CHANNEL = "team-selection"
	BOT_LOGS_CHANNEL       = "bot-logs"
	STAFF_VOICE_CHANNEL    = "staff only VC"
	ADMIN_CHANNEL_MARKER   = "admin"
	TICKET_CHANNEL_PREFIX  = "ticket-"

	LEAGUE_MEMBER_ROLE = "League Member"
	ADMIN_ROLE         = "Admin"
	MEDIA_ROLE         = "Media Team"

	RULES_EMOJI = "✅"

	COMMAND_PREFIX = "!"
)

// Discord hard limits.
const (
	MAX_SELECT_OPTIONS = 25
	MAX_MESSAGE_LENGTH = 2000
	MAX_NICKNAME       = 32
	MIN_NICKNAME       = 3
)

// Component custom ids. The nickname modal and retry button carry the chosen team after the separator.
const (
	TEAM_SELECT_ID      = "team_select"
	TEAM_CHANGE_ID      = "team_change"
	NICKNAME_MODAL_ID   = "nickname_modal"
	NICKNAME_INPUT_ID   = "nickname_input"
	NICKNAME_RETRY_ID   = "nickname_retry"
	CUSTOM_ID_SEPARATOR = ":"
)

var MEDIA_CHANNELS = []string{
	"247sports-recruits-crystal-ball",
	"pre-season-all-americans",
	"trophy-room",
}

var READ_ONLY_CHANNELS = []string{
	WELCOME_CHANNEL,
	RULES_CHANNEL,
	BOT_LOGS_CHANNEL,
	TEAM_SELECTION_CHANNEL,
}

var STRUCTURAL_ROLES = []string{
	LEAGUE_MEMBER_ROLE,
	ADMIN_ROLE,
	MEDIA_ROLE,
}
