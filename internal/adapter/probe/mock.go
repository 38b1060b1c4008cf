package probe

import (
	"context"

	"github.com/stretchr/testify/mock"

	"conn-hub/internal/model"
)

// MockProber 模拟探测器
type MockProber struct {
	mock.Mock
}

func NewMockProber() *MockProber {
	return &MockProber{}
}

func (m *MockProber) Test(ctx context.Context, conn *model.Connection) (bool, string) {
	args := m.Called(ctx, conn)
	return args.Bool(0), args.String(1)
}
