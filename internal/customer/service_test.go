package customer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/stockpile/backend/internal/apperror"
	"github.com/stockpile/backend/internal/customer"
)

func TestService_Create_Validation(t *testing.T) {
	tests := []struct {
		name     string
		params   customer.Params
		wantKind apperror.Kind
	}{
		{
			name:     "missing name",
			params:   customer.Params{Email: "a@b.com", PhoneNumber: "+39 0123456789"},
			wantKind: apperror.Invalid,
		},
		{
			name:     "missing email",
			params:   customer.Params{Name: "Mario", PhoneNumber: "+39 0123456789"},
			wantKind: apperror.Invalid,
		},
		{
			name:     "missing phone",
			params:   customer.Params{Name: "Mario", Email: "a@b.com"},
			wantKind: apperror.Invalid,
		},
		{
			name:     "malformed email",
			params:   customer.Params{Name: "Mario", Email: "not-an-email", PhoneNumber: "+39 0123456789"},
			wantKind: apperror.Unprocessable,
		},
		{
			name:     "malformed phone",
			params:   customer.Params{Name: "Mario", Email: "a@b.com", PhoneNumber: "0123456789"},
			wantKind: apperror.Unprocessable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := customer.NewMockRepository(ctrl)

			svc := customer.NewService(repo)
			_, err := svc.Create(context.Background(), tt.params)

			require.Error(t, err)
			kind, ok := apperror.KindOf(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantKind, kind)
		})
	}
}

func TestService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := customer.NewMockRepository(ctrl)

	repo.EXPECT().
		CreateCustomer(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *customer.Customer) error {
			c.ID = 12
			return nil
		})

	svc := customer.NewService(repo)
	c, err := svc.Create(context.Background(), customer.Params{
		Name:        "Mario",
		Email:       "mario@example.com",
		PhoneNumber: "+39 0123456789",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(12), c.ID)
	assert.Equal(t, "Mario", c.Name)
}

func TestService_Update_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := customer.NewMockRepository(ctrl)

	repo.EXPECT().
		UpdateCustomer(gomock.Any(), gomock.Any()).
		Return(customer.ErrNotFound)

	svc := customer.NewService(repo)
	_, err := svc.Update(context.Background(), 99, customer.Params{
		Name:        "Mario",
		Email:       "mario@example.com",
		PhoneNumber: "+39 0123456789",
	})

	assert.ErrorIs(t, err, customer.ErrNotFound)
}
