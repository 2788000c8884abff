package auth

import (
	"context"
	"testing"

	"github.com/jiheejiheekim/monarch-Mobile/internal/core"

	"github.com/stretchr/testify/assert"
)

func TestLocalAuthProvider_VerifyCredential(t *testing.T) {
	p := NewLocalAuthProvider()
	user := &core.UserRecord{Identifier: "alice", CredentialHash: hashPassword(t, "secret")}

	assert.NoError(t, p.VerifyCredential(context.Background(), user, "secret"))
	assert.ErrorIs(t, p.VerifyCredential(context.Background(), user, "Secret"), ErrCredentialMismatch)
	assert.ErrorIs(t, p.VerifyCredential(context.Background(), user, ""), ErrCredentialMismatch)
	assert.ErrorIs(
		t,
		p.VerifyCredential(context.Background(), &core.UserRecord{Identifier: "bob"}, "secret"),
		ErrCredentialMismatch,
	)
	assert.ErrorIs(t, p.VerifyCredential(context.Background(), nil, "secret"), ErrCredentialMismatch)
	assert.Equal(t, "local", p.Name())
}
