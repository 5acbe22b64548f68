package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func testCodec(t *testing.T, clock func() time.Time) *Codec {
	t.Helper()
	codec, err := NewCodec(CodecConfig{
		Secret: "test-secret-test-secret-32bytes!",
		Clock:  clock,
	})
	require.NoError(t, err)
	return codec
}

func testSession() Session {
	return Session{
		ID:    "sess-1",
		Token: "upstream-token",
		User: User{
			FirstName: "Maya",
			LastName:  "Okafor",
			Email:     "maya@example.com",
			Role:      RoleEmployer,
		},
	}
}

func TestCodecRoundTrip(t *testing.T) {
	codec := testCodec(t, nil)

	value, err := codec.Encode(testSession())
	require.NoError(t, err)

	decoded, err := codec.Decode(value)
	require.NoError(t, err)
	require.Equal(t, testSession(), decoded)
}

func TestCodecRejectsPartialSession(t *testing.T) {
	codec := testCodec(t, nil)

	_, err := codec.Encode(Session{ID: "x", Token: "tok-only"})
	require.Error(t, err)

	_, err = codec.Encode(Session{ID: "x", User: User{Email: "a@b.c"}})
	require.Error(t, err)
}

func TestCodecDecodeFailsClosed(t *testing.T) {
	codec := testCodec(t, nil)

	_, err := codec.Decode("")
	require.ErrorIs(t, err, ErrNoSession)

	_, err = codec.Decode("not-a-token")
	require.ErrorIs(t, err, ErrCorrupted)

	// A token signed with a different secret must not verify.
	other, err := NewCodec(CodecConfig{Secret: "another-secret-entirely-here!!!!"})
	require.NoError(t, err)
	value, err := other.Encode(testSession())
	require.NoError(t, err)

	_, err = codec.Decode(value)
	require.ErrorIs(t, err, ErrCorrupted)
}

func TestCodecSessionExpiresAfterTTL(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	codec := testCodec(t, clock)

	value, err := codec.Encode(testSession())
	require.NoError(t, err)

	// Still valid one hour before the seven day boundary.
	now = now.Add(7*24*time.Hour - time.Hour)
	_, err = codec.Decode(value)
	require.NoError(t, err)

	// Expired once the boundary passes.
	now = now.Add(2 * time.Hour)
	_, err = codec.Decode(value)
	require.ErrorIs(t, err, ErrCorrupted)
}

func TestCodecDecodeNormalisesRole(t *testing.T) {
	codec := testCodec(t, nil)

	sess := testSession()
	sess.User.Role = Role("EMPLOYER")
	// Encode requires a logged-in session only; the role is free-form here.
	value, err := codec.Encode(sess)
	require.NoError(t, err)

	decoded, err := codec.Decode(value)
	require.NoError(t, err)
	require.Equal(t, RoleEmployer, decoded.User.Role)
}

func TestCodecWriteAndClear(t *testing.T) {
	gin.SetMode(gin.TestMode)
	codec := testCodec(t, nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	require.NoError(t, codec.Write(c, testSession()))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "careergate_session", cookies[0].Name)
	require.True(t, cookies[0].HttpOnly)
	require.InDelta(t, (7 * 24 * time.Hour).Seconds(), float64(cookies[0].MaxAge), 1)

	// Round trip through a real request.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	decoded, err := codec.FromRequest(req)
	require.NoError(t, err)
	require.Equal(t, "maya@example.com", decoded.User.Email)

	// Clear expires the session cookie and the legacy cookie names.
	rec = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	codec.Clear(c)

	cleared := rec.Result().Cookies()
	names := make(map[string]int, len(cleared))
	for _, ck := range cleared {
		names[ck.Name] = ck.MaxAge
		require.Negative(t, ck.MaxAge)
	}
	require.Contains(t, names, "careergate_session")
	require.Contains(t, names, "AuthToken")
	require.Contains(t, names, "user")
	require.Contains(t, names, "Role")
}

func TestCodecFromRequestWithoutCookie(t *testing.T) {
	codec := testCodec(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, err := codec.FromRequest(req)
	require.ErrorIs(t, err, ErrNoSession)
}
