package messaging_test

import (
	"testing"
	"time"

	"github.com/incluempleo/vinculo/inclusion/messaging"
	"github.com/incluempleo/vinculo/pkg/kernel"
)

var (
	candidateID = kernel.UserID("cand-1")
	companyID   = kernel.UserID("com-1")
)

func conversation() *messaging.Conversation {
	return &messaging.Conversation{
		ID:          kernel.ConversationID("conv-1"),
		CandidateID: candidateID,
		CompanyID:   companyID,
		Subject:     "Proceso de selección",
	}
}

func TestConversation_Participants(t *testing.T) {
	c := conversation()
	if !c.IsParticipant(candidateID) || !c.IsParticipant(companyID) {
		t.Error("both sides must be participants")
	}
	if c.IsParticipant(kernel.UserID("otro")) {
		t.Error("outsiders must not be participants")
	}
	if got := c.OtherParticipant(candidateID); got != companyID {
		t.Errorf("OtherParticipant(candidate) = %s, want %s", got, companyID)
	}
	if got := c.OtherParticipant(companyID); got != candidateID {
		t.Errorf("OtherParticipant(company) = %s, want %s", got, candidateID)
	}
}

func TestConversation_Validate(t *testing.T) {
	if err := conversation().Validate(); err != nil {
		t.Fatalf("valid conversation rejected: %v", err)
	}

	c := conversation()
	c.CompanyID = candidateID
	if err := c.Validate(); err == nil {
		t.Error("a user cannot converse with themselves")
	}

	c = conversation()
	c.Subject = "   "
	if err := c.Validate(); err == nil {
		t.Error("blank subject must be rejected")
	}
}

func TestConversation_ReadMarkers(t *testing.T) {
	c := conversation()
	at := time.Now()
	c.MarkReadBy(candidateID, at)

	if got := c.LastReadBy(candidateID); got == nil || !got.Equal(at) {
		t.Error("candidate read marker was not stored")
	}
	if c.LastReadBy(companyID) != nil {
		t.Error("company read marker must stay nil")
	}
}

func TestConversation_ArchivePerSide(t *testing.T) {
	c := conversation()
	c.SetArchivedBy(companyID, true)

	if !c.IsArchivedBy(companyID) {
		t.Error("company archive flag not set")
	}
	if c.IsArchivedBy(candidateID) {
		t.Error("archiving one side must not touch the other")
	}

	c.SetArchivedBy(companyID, false)
	if c.IsArchivedBy(companyID) {
		t.Error("unarchive did not clear the flag")
	}
}

func TestMessage_Validate(t *testing.T) {
	m := &messaging.Message{Content: "Hola, gracias por postularte"}
	if err := m.Validate(); err != nil {
		t.Fatalf("text message rejected: %v", err)
	}

	empty := &messaging.Message{}
	if err := empty.Validate(); err == nil {
		t.Error("a message needs content or an attachment")
	}
}

func TestMessage_AttachmentRequiresAltText(t *testing.T) {
	m := &messaging.Message{AttachmentPath: "messaging/attachments/c1/f.pdf"}
	if err := m.Validate(); err == nil {
		t.Error("attachment without alt text must be rejected")
	}

	m.AttachmentAltText = "Descripción del cargo en PDF"
	if err := m.Validate(); err != nil {
		t.Errorf("attachment with alt text rejected: %v", err)
	}
	if !m.HasAttachment() {
		t.Error("HasAttachment() should be true")
	}
}

func TestMessage_MarkRead(t *testing.T) {
	m := &messaging.Message{Content: "hola"}
	at := time.Now()
	m.MarkRead(at)
	if !m.IsRead || m.ReadAt == nil {
		t.Error("MarkRead must set the flag and timestamp")
	}

	later := at.Add(time.Hour)
	m.MarkRead(later)
	if !m.ReadAt.Equal(at) {
		t.Error("a second MarkRead must not move the original timestamp")
	}
}
