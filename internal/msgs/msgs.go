package msgs

const (
	MsgOperationSuccessful     = "operation successful"
	MsgOperationFailed         = "operation failed"
	MsgUserCreatedSuccessfully = "user created successfully"
	MsgYouMustLoginFirst       = "you must login first"
	MsgConversationReady       = "conversation ready"
	MsgMessagesMarkedRead      = "messages marked read"
)
