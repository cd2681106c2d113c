package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
)

func TestParseActor(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    domain.Actor
		ok      bool
	}{
		{
			name:    "customer",
			headers: map[string]string{HeaderUserID: "7", HeaderUserRole: "user"},
			want:    domain.Actor{ID: 7, Role: domain.RoleUser},
			ok:      true,
		},
		{
			name:    "advisor role",
			headers: map[string]string{HeaderUserID: "3", HeaderUserRole: "advisor"},
			want:    domain.Actor{ID: 3, Role: domain.RoleAdvisor},
			ok:      true,
		},
		{
			name:    "dispatcher",
			headers: map[string]string{HeaderUserID: "1", HeaderUserRole: "Admin", HeaderAdminRole: "super_admin"},
			want:    domain.Actor{ID: 1, Role: domain.RoleAdmin, AdminRole: domain.AdminRoleSuperAdmin},
			ok:      true,
		},
		{
			name:    "missing id",
			headers: map[string]string{HeaderUserRole: "user"},
		},
		{
			name:    "negative id",
			headers: map[string]string{HeaderUserID: "-1", HeaderUserRole: "user"},
		},
		{
			name:    "unknown role",
			headers: map[string]string{HeaderUserID: "1", HeaderUserRole: "root"},
		},
		{
			name:    "admin without admin role",
			headers: map[string]string{HeaderUserID: "1", HeaderUserRole: "admin"},
		},
		{
			name:    "unknown admin role",
			headers: map[string]string{HeaderUserID: "1", HeaderUserRole: "admin", HeaderAdminRole: "OWNER"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			actor, ok := ParseActor(req)

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, actor)
		})
	}
}

func TestAuth(t *testing.T) {
	var got domain.Actor
	h := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := GetActor(r.Context())
		require.True(t, ok)
		got = actor
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("unauthorized", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("authorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderUserID, "5")
		req.Header.Set(HeaderUserRole, "advisor")

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, domain.Actor{ID: 5, Role: domain.RoleAdvisor}, got)
	})
}

func TestOptionalAuth(t *testing.T) {
	var present bool
	h := OptionalAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present = GetActor(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, present)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set(HeaderUserID, "9")
	req.Header.Set(HeaderUserRole, "user")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.True(t, present)
}
