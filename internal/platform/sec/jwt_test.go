// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mangaverse/internal/platform/sec"
)

func newKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

/*
TestTokenService_RoundTrip verifies that a signed token is accepted and its claims recovered.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	key := newKey(t)
	service := sec.NewTokenServiceFromKeys(key, &key.PublicKey, "mangaverse.app")

	token, err := service.GenerateAccessToken("op-1", "ops", string(sec.RoleOperator), time.Minute)
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "op-1", claims.UserID)
	assert.Equal(t, "operator", claims.Role)
}

/*
TestTokenService_WrongIssuer rejects tokens minted for another issuer.
*/
func TestTokenService_WrongIssuer(t *testing.T) {
	key := newKey(t)
	minter := sec.NewTokenServiceFromKeys(key, &key.PublicKey, "elsewhere")
	verifier := sec.NewTokenServiceFromKeys(nil, &key.PublicKey, "mangaverse.app")

	token, err := minter.GenerateAccessToken("op-1", "ops", string(sec.RoleAdmin), time.Minute)
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestTokenService_VerifyOnly refuses to sign without a private key.
*/
func TestTokenService_VerifyOnly(t *testing.T) {
	key := newKey(t)
	service := sec.NewTokenServiceFromKeys(nil, &key.PublicKey, "mangaverse.app")

	_, err := service.GenerateAccessToken("op-1", "ops", string(sec.RoleAdmin), time.Minute)
	assert.ErrorIs(t, err, sec.ErrSigningDisabled)
}

/*
TestUserRole_AtLeast checks the role hierarchy.
*/
func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleOperator))
	assert.True(t, sec.RoleOperator.AtLeast(sec.RoleOperator))
	assert.False(t, sec.RoleReader.AtLeast(sec.RoleOperator))
	assert.False(t, sec.UserRole("guest").AtLeast(sec.RoleReader))
}
