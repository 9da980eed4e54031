package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/yukikurage/trip-planner-api/internal/models"
)

type memoryNotifier struct {
	mu     sync.Mutex
	tokens map[string]string
}

func (n *memoryNotifier) SendPasswordReset(_ context.Context, user *models.User, token string, _ time.Time) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.tokens == nil {
		n.tokens = map[string]string{}
	}
	n.tokens[user.Email] = token
	return nil
}

func (n *memoryNotifier) last(email string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.tokens[email]
}
