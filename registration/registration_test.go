package registration

import (
	"encoding/json"
	"errors"
	"sort"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/signal-golang/signup/axolotl"
	"github.com/signal-golang/signup/config"
	"github.com/signal-golang/signup/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIdentityKeys(t *testing.T, id uint32) *IdentityKeys {
	identity, err := axolotl.GenerateIdentityKeyPair()
	require.NoError(t, err)
	spk, err := axolotl.GenerateSignedPreKey(identity, id)
	require.NoError(t, err)
	kpk, err := axolotl.GenerateKyberPreKey(identity, id+1)
	require.NoError(t, err)
	return &IdentityKeys{IdentityKeyPair: identity, SignedPreKey: spk, LastResortKey: kpk}
}

func testBundle(t *testing.T) *KeyBundle {
	return &KeyBundle{
		RegistrationID:    42,
		PNIRegistrationID: 4242,
		ACI:               testIdentityKeys(t, 100),
		PNI:               testIdentityKeys(t, 200),
	}
}

func testParams() Params {
	return Params{
		SessionID: "session-1",
		Number:    "+18005550125",
		Password:  "your_password_here",
		Capabilities: config.AccountCapabilities{
			PNI: true,
		},
		DiscoverableByPhoneNumber: true,
	}
}

func keysOf(m map[string]interface{}) []string {
	var keys []string
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func TestBuildRequestIsDeterministic(t *testing.T) {
	b := testBundle(t)
	p := testParams()

	r1, err := BuildRequest(p, b)
	require.NoError(t, err)
	r2, err := BuildRequest(p, b)
	require.NoError(t, err)

	j1, err := json.Marshal(r1)
	require.NoError(t, err)
	j2, err := json.Marshal(r2)
	require.NoError(t, err)
	assert.Equal(t, j1, j2)
}

func TestBuildRequestFieldNames(t *testing.T) {
	r, err := BuildRequest(testParams(), testBundle(t))
	require.NoError(t, err)
	j, err := json.Marshal(r)
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(j, &m))
	assert.Equal(t, []string{
		"accountAttributes",
		"aciIdentityKey",
		"aciPqLastResortPreKey",
		"aciSignedPreKey",
		"deviceId",
		"number",
		"password",
		"pniIdentityKey",
		"pniPqLastResortPreKey",
		"pniSignedPreKey",
		"sessionId",
		"skipDeviceTransfer",
	}, keysOf(m))

	attrs := m["accountAttributes"].(map[string]interface{})
	assert.Equal(t, []string{
		"capabilities",
		"discoverableByPhoneNumber",
		"fetchesMessages",
		"name",
		"pniRegistrationId",
		"registrationId",
	}, keysOf(attrs))
	assert.Equal(t, map[string]interface{}{"pni": true, "paymentActivation": false}, attrs["capabilities"])
	assert.Equal(t, true, attrs["fetchesMessages"])
	assert.Nil(t, attrs["name"])

	for _, k := range []string{"aciSignedPreKey", "pniSignedPreKey", "aciPqLastResortPreKey", "pniPqLastResortPreKey"} {
		assert.Equal(t, []string{"keyId", "publicKey", "signature"}, keysOf(m[k].(map[string]interface{})), k)
	}
	assert.Equal(t, float64(PrimaryDeviceID), m["deviceId"])
	assert.Equal(t, "your_password_here", m["password"])
}

func TestBuildRequestCopiesKeys(t *testing.T) {
	b := testBundle(t)
	r, err := BuildRequest(testParams(), b)
	require.NoError(t, err)

	assert.Equal(t, uint32(42), r.AccountAttributes.RegistrationID)
	assert.Equal(t, uint32(4242), r.AccountAttributes.PNIRegistrationID)
	assert.Equal(t, uint32(100), r.AciSignedPreKey.ID)
	assert.Equal(t, uint32(101), r.AciPqLastResortPreKey.ID)
	assert.Equal(t, uint32(200), r.PniSignedPreKey.ID)
	assert.Equal(t, uint32(201), r.PniPqLastResortPreKey.ID)

	ik, err := helpers.Base64DecodeNonPadded(r.AciIdentityKey)
	require.NoError(t, err)
	identity, err := axolotl.DecodeECPublicKey(ik)
	require.NoError(t, err)

	spk, err := helpers.Base64DecodeNonPadded(r.AciSignedPreKey.PublicKey)
	require.NoError(t, err)
	sig, err := helpers.Base64DecodeNonPadded(r.AciSignedPreKey.Signature)
	require.NoError(t, err)
	assert.True(t, axolotl.VerifySignature(identity, spk, sig))

	kpk, err := helpers.Base64DecodeNonPadded(r.AciPqLastResortPreKey.PublicKey)
	require.NoError(t, err)
	assert.Equal(t, byte(axolotl.KyberType), kpk[0])
	sig, err = helpers.Base64DecodeNonPadded(r.AciPqLastResortPreKey.Signature)
	require.NoError(t, err)
	assert.True(t, axolotl.VerifySignature(identity, kpk, sig))
}

func TestBuildRequestPushToken(t *testing.T) {
	p := testParams()
	p.PushToken = "fcm-token"
	p.Password = ""
	p.Name = "ZW5jcnlwdGVk"

	r, err := BuildRequest(p, testBundle(t))
	require.NoError(t, err)
	assert.False(t, r.AccountAttributes.FetchesMessages)
	assert.Equal(t, "fcm-token", r.AccountAttributes.FcmRegistrationID)
	require.NotNil(t, r.GcmToken)
	assert.Equal(t, "fcm-token", r.GcmToken.GcmRegistrationID)
	assert.Nil(t, r.Password)
	require.NotNil(t, r.AccountAttributes.Name)
	assert.Equal(t, "ZW5jcnlwdGVk", *r.AccountAttributes.Name)

	j, err := json.Marshal(r)
	require.NoError(t, err)
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(j, &m))
	assert.Nil(t, m["password"])
	assert.Contains(t, m, "password")
	assert.Equal(t, map[string]interface{}{"gcmRegistrationId": "fcm-token"}, m["gcmToken"])
}

func TestBuildRequestRejectsBadNumber(t *testing.T) {
	p := testParams()
	p.Number = "08005550125"

	_, err := BuildRequest(p, testBundle(t))
	require.Error(t, err)
	var ve validator.ValidationErrors
	assert.True(t, errors.As(err, &ve))
}

func TestBuildRequestRejectsMissingKeys(t *testing.T) {
	b := testBundle(t)
	b.PNI.SignedPreKey.Signature = nil

	_, err := BuildRequest(testParams(), b)
	assert.True(t, errors.Is(err, ErrMissingKeyMaterial))
	assert.Contains(t, err.Error(), "pni")

	_, err = BuildRequest(testParams(), nil)
	assert.True(t, errors.Is(err, ErrMissingKeyMaterial))

	b = testBundle(t)
	b.ACI.LastResortKey = nil
	_, err = BuildRequest(testParams(), b)
	assert.True(t, errors.Is(err, ErrMissingKeyMaterial))
}

func TestParseRegistrationLockFailure(t *testing.T) {
	v, err := ParseRegistrationLockFailure([]byte(`{"timeRemaining":86400000,"svr2Credentials":{"username":"u","password":"p"}}`))
	require.NoError(t, err)
	assert.Equal(t, uint64(86400000), v.TimeRemaining)
	assert.Equal(t, "u", v.Credentials.Username)
	assert.Equal(t, "p", v.Credentials.Password)

	_, err = ParseRegistrationLockFailure([]byte(`not json`))
	assert.Error(t, err)
}

func TestResponseDecodesUUIDs(t *testing.T) {
	var r Response
	err := json.Unmarshal([]byte(`{"uuid":"5f9e9d4e-7d1b-4b8e-9d5c-2f0e6a4b3c21","number":"+18005550125","pni":"0c6b1f2a-3d4e-4f50-8a6b-7c8d9e0f1a2b","storageCapable":true}`), &r)
	require.NoError(t, err)
	assert.Equal(t, "5f9e9d4e-7d1b-4b8e-9d5c-2f0e6a4b3c21", r.UUID.String())
	assert.Equal(t, "0c6b1f2a-3d4e-4f50-8a6b-7c8d9e0f1a2b", r.PNI.String())
	assert.True(t, r.StorageCapable)
}
