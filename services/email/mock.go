package emailsvc

import (
	"sync"

	"github.com/tmalu/studyhub/core"
)

// mockService records messages synchronously for tests.
type mockService struct {
	mu   sync.Mutex
	sent []core.EmailMessage
}

var _ core.EmailService = (*mockService)(nil)

func NewMockService() *mockService {
	return &mockService{}
}

func (svc *mockService) SendMessages(messages ...*core.EmailMessage) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	for _, msg := range messages {
		if msg.HasRecipients() && msg.HasContent() {
			svc.sent = append(svc.sent, *msg)
		}
	}
}

func (svc *mockService) SentMessages() []core.EmailMessage {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return append([]core.EmailMessage(nil), svc.sent...)
}
