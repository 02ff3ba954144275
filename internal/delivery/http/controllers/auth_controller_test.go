package controllers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"organizaai/internal/delivery/http/helpers"
	"organizaai/internal/domain"
)

func TestAuthController_Login(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		svc         *fakeUserService
		wantStatus  int
		wantErrCode string
		wantErrMsg  string
	}{
		{
			name: "success",
			body: `{"email":"maria@example.com","password":"secret1"}`,
			svc: &fakeUserService{
				loginToken: "jwt-token",
				loginUser:  &domain.User{ID: "user-1", Email: "maria@example.com"},
			},
			wantStatus: http.StatusOK,
		},
		{
			name:        "unknown email",
			body:        `{"email":"ninguem@example.com","password":"secret1"}`,
			svc:         &fakeUserService{loginErr: domain.ErrUserNotFound},
			wantStatus:  http.StatusNotFound,
			wantErrCode: helpers.ErrCodeNotFound,
			wantErrMsg:  "Nenhum usuário encontrado com o email ninguem@example.com",
		},
		{
			name:        "wrong password reads as unknown email",
			body:        `{"email":"maria@example.com","password":"wrong"}`,
			svc:         &fakeUserService{loginErr: domain.ErrUserNotFound},
			wantStatus:  http.StatusNotFound,
			wantErrCode: helpers.ErrCodeNotFound,
		},
		{
			name:        "missing password",
			body:        `{"email":"maria@example.com"}`,
			svc:         &fakeUserService{},
			wantStatus:  http.StatusBadRequest,
			wantErrCode: helpers.ErrCodeBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewAuthController(testLogger(), tt.svc)
			req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			ctrl.Login(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			resp := decodeResponse(t, rec)
			if tt.wantErrCode != "" {
				require.NotNil(t, resp.Error)
				assert.Equal(t, tt.wantErrCode, resp.Error.Code)
				if tt.wantErrMsg != "" {
					assert.Equal(t, tt.wantErrMsg, resp.Error.Message)
				}
				return
			}
			require.Nil(t, resp.Error)
			data, ok := resp.Data.(map[string]any)
			require.True(t, ok)
			assert.Equal(t, "jwt-token", data["token"])
			assert.Equal(t, "Bearer", data["tokenType"])
			require.NotNil(t, data["user"])
		})
	}
}

func TestAuthController_Logout(t *testing.T) {
	ctrl := NewAuthController(testLogger(), &fakeUserService{})
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()

	ctrl.Logout(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	require.Nil(t, resp.Error)
}
