package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_RegisterLogsIn(t *testing.T) {
	fc := &fakeClient{}
	a := NewAuthService(fc)

	_, ok := a.Current()
	assert.False(t, ok)

	u, err := a.Register(context.Background(), "Ana", "Lopez", "ana", []byte("pw"))
	require.NoError(t, err)
	assert.Equal(t, "pw", fc.password)

	cur, ok := a.Current()
	require.True(t, ok)
	assert.Equal(t, u, cur)
}

func TestAuthService_LoginLogout(t *testing.T) {
	fc := &fakeClient{}
	a := NewAuthService(fc)

	_, err := a.Login(context.Background(), "bob", []byte("secret"))
	require.NoError(t, err)
	cur, ok := a.Current()
	require.True(t, ok)
	assert.Equal(t, "bob", cur.Username)

	a.Logout()
	_, ok = a.Current()
	assert.False(t, ok)
}

func TestAuthService_FailedLoginKeepsPreviousSession(t *testing.T) {
	fc := &fakeClient{}
	a := NewAuthService(fc)

	_, err := a.Login(context.Background(), "bob", []byte("pw"))
	require.NoError(t, err)

	fc.err = errors.New("invalid credentials")
	_, err = a.Login(context.Background(), "eve", []byte("pw"))
	require.Error(t, err)

	cur, ok := a.Current()
	require.True(t, ok)
	assert.Equal(t, "bob", cur.Username)
}

func TestAuthService_Passthrough(t *testing.T) {
	fc := &fakeClient{pingErr: errors.New("down"), connectErr: errors.New("refused")}
	a := NewAuthService(fc)

	assert.EqualError(t, a.Ping(context.Background()), "down")
	assert.EqualError(t, a.Reconnect(context.Background()), "refused")
	require.NoError(t, a.Close())
	assert.True(t, fc.closed)
	assert.Equal(t, []string{"ping", "connect"}, fc.calls)
}
