package messaging

import (
	"net/http"

	"github.com/incluempleo/vinculo/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("MESSAGING")

// Error codes
var (
	CodeConversationNotFound = ErrRegistry.Register("CONVERSATION_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Conversation not found")
	CodeMessageNotFound      = ErrRegistry.Register("MESSAGE_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Message not found")
	CodeNotParticipant       = ErrRegistry.Register("NOT_PARTICIPANT", errx.TypeAuthorization, http.StatusForbidden, "User is not a participant of this conversation")
	CodeInvalidConversation  = ErrRegistry.Register("INVALID_CONVERSATION", errx.TypeValidation, http.StatusBadRequest, "Invalid conversation data")
	CodeInvalidMessage       = ErrRegistry.Register("INVALID_MESSAGE", errx.TypeValidation, http.StatusBadRequest, "Invalid message data")
)

// Helper functions
func ErrConversationNotFound() *errx.Error {
	return ErrRegistry.New(CodeConversationNotFound)
}

func ErrMessageNotFound() *errx.Error {
	return ErrRegistry.New(CodeMessageNotFound)
}

func ErrNotParticipant() *errx.Error {
	return ErrRegistry.New(CodeNotParticipant)
}

func ErrInvalidConversation() *errx.Error {
	return ErrRegistry.New(CodeInvalidConversation)
}

func ErrInvalidMessage() *errx.Error {
	return ErrRegistry.New(CodeInvalidMessage)
}
