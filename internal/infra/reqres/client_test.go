package reqres

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaciL4/Shop-Website/internal/config"
)

func newTestClient(baseURL string) *Client {
	return NewClient(&config.AuthAPIConfig{
		BaseURL:        baseURL,
		ProfileUserID:  2,
		TimeoutSeconds: 5,
	})
}

func TestLoginSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "eve.holt@reqres.in", body["email"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"QpwL5tke4Pnpja7X4"}`))
	}))
	defer srv.Close()

	token, err := newTestClient(srv.URL).Login(context.Background(), "eve.holt@reqres.in", "cityslicka")
	require.NoError(t, err)
	assert.Equal(t, "QpwL5tke4Pnpja7X4", token)
}

func TestLoginRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Missing password"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Login(context.Background(), "eve.holt@reqres.in", "")
	var rerr *RemoteError
	require.ErrorAs(t, err, &rerr)
	// error 字段原样作为用户可见消息
	assert.Equal(t, "Missing password", rerr.Message)
}

func TestLoginMalformedErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Login(context.Background(), "a@b.c", "pass")
	var rerr *RemoteError
	require.ErrorAs(t, err, &rerr)
	assert.Contains(t, rerr.Message, "502")
}

func TestRegisterUsesRegisterPath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"token":"t0k"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Register(context.Background(), "a@b.c", "pass")
	require.NoError(t, err)
	assert.Equal(t, "/api/register", gotPath)
}

func TestProxyPrefixPrepended(t *testing.T) {
	// 代理约定：前缀 + 完整目标 URL，这里用测试服务器自身当代理
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.String()
		_, _ = w.Write([]byte(`{"token":"t0k"}`))
	}))
	defer srv.Close()

	c := NewClient(&config.AuthAPIConfig{
		BaseURL:        "https://reqres.example/upstream",
		ProxyPrefix:    srv.URL + "/proxy?u=",
		ProfileUserID:  2,
		TimeoutSeconds: 5,
	})
	_, err := c.Login(context.Background(), "a@b.c", "pass")
	require.NoError(t, err)
	assert.Contains(t, gotPath, "/proxy")
}

func TestFetchUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/users/2", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":{"id":2,"email":"janet.weaver@reqres.in","first_name":"Janet","last_name":"Weaver","avatar":"https://reqres.in/img/faces/2-image.jpg"}}`))
	}))
	defer srv.Close()

	u, err := newTestClient(srv.URL).FetchUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Janet", u.FirstName)
	assert.Equal(t, "Weaver", u.LastName)
	assert.Equal(t, "janet.weaver@reqres.in", u.Email)
}

func TestFetchUserNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchUser(context.Background())
	var rerr *RemoteError
	assert.ErrorAs(t, err, &rerr)
}
