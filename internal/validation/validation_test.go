package validation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type sample struct {
	Username string  `json:"username" validate:"required,min=3,max=8"`
	Language string  `json:"language" validate:"required,oneof=Urdu English"`
	Note     *string `json:"note" validate:"omitempty,max=4"`
}

func TestStruct_Valid(t *testing.T) {
	require.NoError(t, Struct(&sample{Username: "ali", Language: "Urdu"}))
}

func TestStruct_FieldQualifiedErrors(t *testing.T) {
	long := "too long"
	cases := []struct {
		in      sample
		field   string
		message string
	}{
		{sample{Language: "English"}, "username", "username is required"},
		{sample{Username: "al", Language: "English"}, "username", "username must be at least 3 characters"},
		{sample{Username: "ali", Language: "French"}, "language", "language must be one of: Urdu, English"},
		{sample{Username: "ali", Language: "Urdu", Note: &long}, "note", "note must be at most 4 characters"},
	}
	for _, tc := range cases {
		err := Struct(&tc.in)
		var fe *FieldError
		require.True(t, errors.As(err, &fe), "expected FieldError, got %v", err)
		require.Equal(t, tc.field, fe.Field)
		require.Equal(t, tc.message, fe.Message)
	}
}

func TestDecodeError(t *testing.T) {
	var s sample
	err := json.Unmarshal([]byte(`{"username": 5}`), &s)
	require.Error(t, err)
	fe := DecodeError(err)
	require.Equal(t, "username", fe.Field)

	err = json.Unmarshal([]byte(`{not json`), &s)
	require.Error(t, err)
	fe = DecodeError(err)
	require.Empty(t, fe.Field)
	require.Equal(t, "invalid request body", fe.Message)
}

func TestCheck(t *testing.T) {
	var s sample
	require.Nil(t, Check(nil, &sample{Username: "ali", Language: "Urdu"}))

	fe := Check(errors.New("EOF"), &s)
	require.NotNil(t, fe)
	require.Equal(t, "invalid request body", fe.Message)

	fe = Check(nil, &sample{Username: "ali"})
	require.NotNil(t, fe)
	require.Equal(t, "language", fe.Field)
}
