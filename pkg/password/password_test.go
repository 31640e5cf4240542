package password_test

import (
	"testing"

	"go-social-backend/pkg/password"

	"github.com/stretchr/testify/assert"
)

func TestIsComplex(t *testing.T) {
	cases := []struct {
		name     string
		password string
		want     bool
	}{
		{"meets all requirements", "Str0ng!pass", true},
		{"exactly eight characters", "Aa1!aaaa", true},
		{"too short", "Aa1!aaa", false},
		{"missing uppercase", "str0ng!pass", false},
		{"missing lowercase", "STR0NG!PASS", false},
		{"missing digit", "Strong!pass", false},
		{"missing symbol", "Str0ngpass", false},
		{"whitespace is not a symbol", "Str0ng pass", false},
		{"empty", "", false},
		{"unicode letters count", "Pässw0rd!", true},
		{"multibyte runes count once toward the length", "Aa1!ääa", false},
		{"eight runes with multibyte letters", "Aa1!ääaa", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, password.IsComplex(tc.password))
		})
	}
}

func TestHashAndCheck(t *testing.T) {
	hash, err := password.Hash("Str0ng!pass")
	assert.NoError(t, err)
	assert.NotEqual(t, "Str0ng!pass", hash)

	assert.True(t, password.Check(hash, "Str0ng!pass"))
	assert.False(t, password.Check(hash, "wrong-password"))
	assert.False(t, password.Check("not-a-hash", "Str0ng!pass"))
}
