package protocol

const (
	// Play (S→C)
	S2CPlayerChatMessage = 0x3f
	S2CSystemChatMessage = 0x77
)
