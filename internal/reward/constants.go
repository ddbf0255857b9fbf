package reward

// Error messages
const (
	ErrMsgListRewardsFailed  = "failed to list rewards"
	ErrMsgGetRewardFailed    = "failed to get reward"
	ErrMsgCreateRewardFailed = "failed to create reward"
	ErrMsgUpdateRewardFailed = "failed to update reward"
	ErrMsgDeleteRewardFailed = "failed to delete reward"
	ErrMsgGetUsageFailed     = "failed to count reward usage"
	ErrMsgGetCharacterFailed = "failed to get character"
	ErrMsgBeginTxFailed      = "failed to begin transaction"
	ErrMsgCommitTxFailed     = "failed to commit transaction"
	ErrMsgRedeemFailed       = "failed to redeem reward"

	ErrMsgNameRequired     = "name is required"
	ErrMsgCostRequired     = "goldCost must be positive"
	ErrMsgInvalidCategory  = "unknown category"
	ErrMsgInvalidDailyCap  = "dailyLimit cannot be negative"
	ErrMsgGoldShortfallFmt = "need %d gold, have %d"
)

// Log messages
const (
	LogMsgRewardCreated  = "Reward created"
	LogMsgRewardUpdated  = "Reward updated"
	LogMsgRewardDeleted  = "Reward deleted"
	LogMsgRewardRedeemed = "Reward redeemed"
)

// Categories are the reward groupings shown in the shop
var Categories = []string{"LEISURE", "HEALTH", "SOCIAL", "TREAT"}

func validCategory(c string) bool {
	for _, known := range Categories {
		if known == c {
			return true
		}
	}
	return false
}
