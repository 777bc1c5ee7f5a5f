package book_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mjarosz/budgetmd/internal/book"
	"github.com/mjarosz/budgetmd/internal/ledger"
	"github.com/mjarosz/budgetmd/internal/locale"
	"github.com/mjarosz/budgetmd/internal/settings"
	"github.com/mjarosz/budgetmd/internal/storage"
)

type staticSource []ledger.Transaction

func (s staticSource) TransactionsForMonth(year, month int) []ledger.Transaction {
	return s
}

func TestWriter_WriteMonth(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(m *storage.MockStore)
		wantErr   bool
	}{
		{
			name: "renders into the document path",
			setupMock: func(m *storage.MockStore) {
				m.EXPECT().EnsureDir("Budget/2024").Return(nil)
				m.EXPECT().Write("Budget/2024/03-March.md", gomock.Any()).
					DoAndReturn(func(_ string, data []byte) error {
						assert.Contains(t, string(data), "Groceries")
						return nil
					})
			},
		},
		{
			name: "directory failure",
			setupMock: func(m *storage.MockStore) {
				m.EXPECT().EnsureDir("Budget/2024").Return(errors.New("read-only vault"))
			},
			wantErr: true,
		},
		{
			name: "write failure",
			setupMock: func(m *storage.MockStore) {
				m.EXPECT().EnsureDir("Budget/2024").Return(nil)
				m.EXPECT().Write("Budget/2024/03-March.md", gomock.Any()).
					Return(errors.New("disk full"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			docs := storage.NewMockStore(ctrl)
			tt.setupMock(docs)

			writer := book.NewWriter(staticSource(marchTransactions()), docs, settings.Default(locale.EN))

			err := writer.WriteMonth(2024, 3)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
