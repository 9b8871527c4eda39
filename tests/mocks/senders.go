package mocks

import (
	"context"
	"strings"
	"sync"
	"testing"

	"gitlab.com/tmsv2/tms-backend/internal/domain/valueobject/mails"
)

type MockMailSender struct {
	mu        sync.Mutex
	sentMails []mails.Payload
}

func NewMockMailSender() *MockMailSender {
	return &MockMailSender{
		sentMails: make([]mails.Payload, 0),
	}
}

func (m *MockMailSender) SendMail(ctx context.Context, payload mails.Payload) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sentMails = append(m.sentMails, payload)
	return nil
}

func (m *MockMailSender) GetSentMails() []mails.Payload {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]mails.Payload{}, m.sentMails...)
}

func (m *MockMailSender) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sentMails = make([]mails.Payload, 0)
}

func (m *MockMailSender) AssertMailSent(t *testing.T, to, bodyPart string) {
	t.Helper()

	for _, mail := range m.GetSentMails() {
		if mail.To == to && strings.Contains(mail.Body, bodyPart) {
			return
		}
	}
	t.Errorf("expected mail to %s with body containing %q not found", to, bodyPart)
}

type SentMessage struct {
	To      string
	Message string
}

type MockSMSSender struct {
	mu   sync.Mutex
	sent []SentMessage
}

func NewMockSMSSender() *MockSMSSender {
	return &MockSMSSender{sent: make([]SentMessage, 0)}
}

func (m *MockSMSSender) SendSMS(ctx context.Context, phone, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sent = append(m.sent, SentMessage{To: phone, Message: message})
	return nil
}

func (m *MockSMSSender) GetSent() []SentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]SentMessage{}, m.sent...)
}

func (m *MockSMSSender) AssertSMSSent(t *testing.T, phone, messagePart string) {
	t.Helper()

	for _, sms := range m.GetSent() {
		if sms.To == phone && strings.Contains(sms.Message, messagePart) {
			return
		}
	}
	t.Errorf("expected sms to %s with message containing %q not found", phone, messagePart)
}

type MockTelegramSender struct {
	mu   sync.Mutex
	sent []SentMessage
}

func NewMockTelegramSender() *MockTelegramSender {
	return &MockTelegramSender{sent: make([]SentMessage, 0)}
}

func (m *MockTelegramSender) SendTelegram(ctx context.Context, handle, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sent = append(m.sent, SentMessage{To: handle, Message: message})
	return nil
}

func (m *MockTelegramSender) GetSent() []SentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]SentMessage{}, m.sent...)
}

func (m *MockTelegramSender) AssertTelegramSent(t *testing.T, handle, messagePart string) {
	t.Helper()

	for _, msg := range m.GetSent() {
		if msg.To == handle && strings.Contains(msg.Message, messagePart) {
			return
		}
	}
	t.Errorf("expected telegram message to %s containing %q not found", handle, messagePart)
}
