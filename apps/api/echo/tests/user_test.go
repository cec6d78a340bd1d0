package tests

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	echoapi "github.com/trainhub/trainhub/apps/api/echo"
	"github.com/trainhub/trainhub/core/user"
)

func Test_authApi_login(t *testing.T) {
	server := setup(t)

	usr := createUser(t, "john_doe", "John", "Doe", user.RoleUser, "password123")

	tests := []httpTest{
		{
			name: "missing fields", body: []byte(`{}`), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"username": "this field is required", "password": "this field is required"}),
		},
		{
			name: "unknown user", body: []byte(`{"username": "lol", "password": "password123"}`),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, httpErr{Error: "invalid username or password"}),
		},
		{
			name: "wrong password", body: []byte(`{"username": "john_doe", "password": "lol"}`),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, httpErr{Error: "invalid username or password"}),
		},
		{name: "ok", body: []byte(`{"username": "john_doe", "password": "password123"}`), wantCode: http.StatusOK},
		{name: "username case-insensitive", body: []byte(`{"username": "John_Doe", "password": "password123"}`), wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/api/auth/login", tt.body)
			server.ServeHTTP(rec, req)

			if tt.wantCode != http.StatusOK {
				checkCodeAndData(t, tt, rec)
				return
			}

			if rec.Code != http.StatusOK {
				t.Fatalf("failed! code = %v; want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
			}
			var resp echoapi.LoginResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decoding LoginResponse: %v", err)
			}
			if resp.Token == "" {
				t.Error("expected a token")
			}
			if resp.ID != usr.ID || resp.Username != usr.Username ||
				resp.FirstName != usr.FirstName || resp.LastName != usr.LastName || resp.Role != usr.Role {
				t.Errorf("unexpected identity: %+v", resp)
			}
		})
	}
}

func Test_userApi_query(t *testing.T) {
	server := setup(t)

	admin := createUser(t, "admin", "Admin", "User", user.RoleAdmin, "admin123")
	manager := createUser(t, "sarah_m", "Sarah", "Miller", user.RoleManager, "password123")
	usr := createUser(t, "john_doe", "John", "Doe", user.RoleUser, "password123")

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "Admin required", token: getToken(t, usr), wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)},
		{name: "Admin required (manager)", token: getToken(t, manager), wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)},
		{name: "Get all", token: getToken(t, admin), wantData: marchallList(t, admin, manager, usr)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, "/api/users", tt.token)
			server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_userApi_create(t *testing.T) {
	server := setup(t)

	admin := createUser(t, "admin", "Admin", "User", user.RoleAdmin, "admin123")
	adminToken := getToken(t, admin)

	tests := []httpTest{
		{
			name: "missing fields", body: []byte(`{}`), token: adminToken, wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"username":  "this field is required",
				"firstName": "this field is required",
				"lastName":  "this field is required",
				"role":      "this field is required",
				"password":  "this field is required",
			}),
		},
		{
			name:  "unknown role",
			body:  []byte(`{"username": "lol", "firstName": "Lo", "lastName": "L", "role": "SUPERADMIN", "password": "password123"}`),
			token: adminToken, wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"role": "unknown role"}),
		},
		{
			name:  "duplicate username",
			body:  []byte(`{"username": "admin", "firstName": "Admin", "lastName": "Again", "role": "ADMIN", "password": "password123"}`),
			token: adminToken, wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"username": "a user with this username already exists"}),
		},
		{
			name:  "ok",
			body:  []byte(`{"username": "maria_g", "firstName": "Maria", "lastName": "Garcia", "role": "ADMIN", "password": "password123"}`),
			token: adminToken, wantCode: http.StatusCreated,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/api/users", tt.token, tt.body)
			server.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusCreated {
				if rec.Code != http.StatusCreated {
					t.Fatalf("failed! code = %v; want %v; body %s", rec.Code, http.StatusCreated, rec.Body.String())
				}
				var created user.User
				if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
					t.Fatalf("decoding User: %v", err)
				}
				if created.Username != "maria_g" || created.Role != user.RoleAdmin {
					t.Errorf("unexpected user: %+v", created)
				}
				if _, err := usrSvc.Authenticate(context.Background(), "maria_g", "password123"); err != nil {
					t.Errorf("new user cannot authenticate: %v", err)
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_userApi_detail(t *testing.T) {
	server := setup(t)

	admin := createUser(t, "admin", "Admin", "User", user.RoleAdmin, "admin123")
	usr := createUser(t, "john_doe", "John", "Doe", user.RoleUser, "password123")
	other := createUser(t, "sarah_m", "Sarah", "Miller", user.RoleManager, "password123")

	adminToken := getToken(t, admin)
	usrToken := getToken(t, usr)

	path := func(id int) string { return fmt.Sprintf("/api/users/%d", id) }

	tests := []httpTest{
		{
			name: "Auth required", method: http.MethodGet, path: path(usr.ID),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "Self retrieve", method: http.MethodGet, path: path(usr.ID), token: usrToken,
			wantData: marchallObj(t, usr),
		},
		{
			name: "Other user hidden", method: http.MethodGet, path: path(other.ID), token: usrToken,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound),
		},
		{
			name: "Admin retrieves anyone", method: http.MethodGet, path: path(other.ID), token: adminToken,
			wantData: marchallObj(t, other),
		},
		{
			name: "Non-admin cannot change role", method: http.MethodPut, path: path(usr.ID), token: usrToken,
			body: []byte(`{"role": "ADMIN"}`), wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{
			name: "Admin deletes", method: http.MethodDelete, path: path(other.ID), token: adminToken,
			wantCode: http.StatusNoContent, wantData: nil,
		},
		{
			name: "No suicide", method: http.MethodDelete, path: path(admin.ID), token: adminToken,
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			server.ServeHTTP(rec, req)

			if tt.wantData == nil {
				if rec.Code != tt.wantCode {
					t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}

	// deleted user is gone from queries
	if _, err := usrSvc.GetByID(context.Background(), other.ID); err == nil {
		t.Error("expected deleted user to be gone")
	}
}

func Test_userApi_update(t *testing.T) {
	server := setup(t)

	admin := createUser(t, "admin", "Admin", "User", user.RoleAdmin, "admin123")
	usr := createUser(t, "john_doe", "John", "Doe", user.RoleUser, "password123")

	req, rec := newAuthRequest(http.MethodPut, fmt.Sprintf("/api/users/%d", usr.ID), getToken(t, admin),
		[]byte(`{"firstName": "Johnny", "role": "MANAGER"}`))
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
	}
	var updated user.User
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decoding User: %v", err)
	}
	if updated.FirstName != "Johnny" {
		t.Errorf("FirstName = %q; want %q", updated.FirstName, "Johnny")
	}
	if updated.Role != user.RoleManager {
		t.Errorf("Role = %v; want %v", updated.Role, user.RoleManager)
	}
	if updated.LastName != "Doe" {
		t.Errorf("LastName = %q; want %q (unchanged)", updated.LastName, "Doe")
	}
}

func Test_userApi_changePassword(t *testing.T) {
	server := setup(t)

	usr := createUser(t, "john_doe", "John", "Doe", user.RoleUser, "password123")
	token := getToken(t, usr)
	path := fmt.Sprintf("/api/users/%d/password", usr.ID)

	tests := []httpTest{
		{
			name: "wrong current password", body: []byte(`{"currentPassword": "lol", "newPassword": "newpass123"}`),
			token: token, wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"currentPassword": "current password is incorrect"}),
		},
		{
			name: "ok", body: []byte(`{"currentPassword": "password123", "newPassword": "newpass123"}`),
			token: token, wantCode: http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPut, path, tt.token, tt.body)
			server.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusOK {
				if rec.Code != http.StatusOK {
					t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
				}
				if _, err := usrSvc.Authenticate(context.Background(), usr.Username, "newpass123"); err != nil {
					t.Errorf("new password rejected: %v", err)
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}
