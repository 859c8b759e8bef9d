package enums

const (
	SOCKET_EVENT_SEND_MESSAGE     = "send_message"
	SOCKET_EVENT_SEEN_MESSAGE     = "seen_message"
	SOCKET_EVENT_MESSAGE_APPENDED = "message_appended"
)
