package telegram

import "strconv"

// editableMessage points Edit at a day message sent earlier.
type editableMessage struct {
	messageID int
	chatID    int64
}

func (e *editableMessage) MessageSig() (string, int64) {
	return strconv.Itoa(e.messageID), e.chatID
}
