package mocks

import (
	"sync"

	"github.com/abdullahsadik00/craftconnect/domain"
)

// MockNotificationService implements domain.NotificationService interface for testing.
// Sent messages are recorded so tests can assert on delivery.
type MockNotificationService struct {
	SendSMSFunc   func(to, message string) error
	SendEmailFunc func(to, subject, body string) error

	mu         sync.Mutex
	SentSMS    []SentSMS
	SentEmails []SentEmail
}

// SentSMS records one SMS delivery
type SentSMS struct {
	To      string
	Message string
}

// SentEmail records one email delivery
type SentEmail struct {
	To      string
	Subject string
	Body    string
}

// NewMockNotificationService creates a new MockNotificationService with default behaviors
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

// SendSMS sends an SMS
func (m *MockNotificationService) SendSMS(to, message string) error {
	if m.SendSMSFunc != nil {
		return m.SendSMSFunc(to, message)
	}
	// Default behavior: record and succeed
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SentSMS = append(m.SentSMS, SentSMS{To: to, Message: message})
	return nil
}

// SendEmail sends an email
func (m *MockNotificationService) SendEmail(to, subject, body string) error {
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(to, subject, body)
	}
	// Default behavior: record and succeed
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SentEmails = append(m.SentEmails, SentEmail{To: to, Subject: subject, Body: body})
	return nil
}

// Compile-time interface compliance verification
var _ domain.NotificationService = (*MockNotificationService)(nil)
