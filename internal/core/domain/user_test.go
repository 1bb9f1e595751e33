package domain

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser_Validate(t *testing.T) {
	tests := []struct {
		name    string
		user    NewUser
		wantErr bool
	}{
		{name: "regular name", user: NewUser{Name: "Name", Age: 100}},
		{name: "single character", user: NewUser{Name: "a"}},
		{name: "whitespace is not trimmed", user: NewUser{Name: " "}},
		{name: "multibyte name", user: NewUser{Name: "名前"}},
		{name: "long name", user: NewUser{Name: strings.Repeat("x", 4096)}},
		{name: "zero age", user: NewUser{Name: "Name", Age: 0}},
		{name: "max age", user: NewUser{Name: "Name", Age: math.MaxUint32}},
		{name: "empty name", user: NewUser{Name: "", Age: 99}, wantErr: true},
		{name: "empty name with max age", user: NewUser{Name: "", Age: math.MaxUint32}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, HasFieldError(err, "name"), "Actual err: %v", err)
			assert.False(t, HasFieldError(err, "age"))
			assert.Equal(t, KindValidation, KindOf(err))
		})
	}
}

func TestUser_Validate(t *testing.T) {
	assert.NoError(t, User{ID: 1, Name: "Name", Age: 1}.Validate())

	err := User{ID: 1}.Validate()

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)
	assert.Equal(t, "min", verr.Rule)
}

func TestUser_DeserializeFromJSON(t *testing.T) {
	data := `{"id": 1234567890, "name": "Name Name", "age": 100}`

	var user User
	err := json.Unmarshal([]byte(data), &user)

	require.NoError(t, err)
	assert.Equal(t, User{ID: UserID(1234567890), Name: "Name Name", Age: 100}, user)
}

func TestUser_SerializeIDAsBareInteger(t *testing.T) {
	out, err := json.Marshal(User{ID: 42, Name: "name", Age: 7})

	require.NoError(t, err)
	assert.JSONEq(t, `{"id":42,"name":"name","age":7}`, string(out))
}

func TestParseUserID(t *testing.T) {
	id, err := ParseUserID("-12")
	require.NoError(t, err)
	assert.Equal(t, UserID(-12), id)
	assert.Equal(t, "-12", id.String())

	_, err = ParseUserID("abc")
	assert.Error(t, err)

	_, err = ParseUserID("99999999999999999999")
	assert.Error(t, err)
}

func TestNewUser_WithID(t *testing.T) {
	user := NewUser{Name: "Name", Age: 3}.WithID(9)

	assert.Equal(t, User{ID: 9, Name: "Name", Age: 3}, user)
}
