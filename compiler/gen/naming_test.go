package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnake(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Username", "username"},
		{"FullName", "full_name"},
		{"HTTPCode", "http_code"},
		{"UserID", "user_id"},
		{"XMLParser", "xml_parser"},
		{"getHTTPResponse", "get_http_response"},
		{"already_snake", "already_snake"},
		{"A", "a"},
		{"AB", "ab"},
		{"ABC", "abc"},
		{"", ""},
		{"userInfo", "user_info"},
		{"BirthDate", "birth_date"},
		{"UserIDs", "user_ids"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := snake(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestPascal(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"user_info", "UserInfo"},
		{"full_name", "FullName"},
		{"user_id", "UserID"},
		{"http_code", "HTTPCode"},
		{"full-admin", "FullAdmin"},
		{"already", "Already"},
		{"a", "A"},
		{"ab", "Ab"},
		{"a_b", "AB"},
		{"xml_parser", "XMLParser"},
		{"api_url", "APIURL"},
		{"address", "Address"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := pascal(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestCamel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"user_info", "userInfo"},
		{"full_name", "fullName"},
		{"user_id", "userID"},
		{"http_code", "httpCode"},
		{"full-admin", "fullAdmin"},
		{"already", "already"},
		{"a", "a"},
		{"user", "user"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := camel(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestReceiver(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"User", "u"},
		{"QUser", "qu"},
		{"QBase", "qb"},
		{"QCustomer_Address", "qca"},
		{"[]User", "u"},
		{"[1]User", "u"},
		{"*User", "u"},
		{"HTTPClient", "hc"},
		{"A", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := receiver(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestCompanionName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"User", "QUser"},
		{"Order", "QOrder"},
		{"HTTPLog", "QHTTPLog"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := companionName(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestNestedCompanionName(t *testing.T) {
	tests := []struct {
		owner    string
		inner    string
		expected string
	}{
		{"QCustomer", "address", "QCustomer_Address"},
		{"QUser", "settings", "QUser_Settings"},
		{"QCustomer_Address", "geo", "QCustomer_Address_Geo"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := nestedCompanionName(tt.owner, tt.inner)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestCompanionFile(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"User", "quser.go"},
		{"Order", "qorder.go"},
		{"HTTPLog", "qhttplog.go"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := companionFile(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestDecapitalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Email", "email"},
		{"BirthDate", "birthDate"},
		{"ID", "ID"},
		{"URL", "URL"},
		{"IPAddress", "IPAddress"},
		{"name", "name"},
		{"x", "x"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := decapitalize(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestBackingName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Manager", "manager"},
		{"Email", "email"},
		{"UserID", "userID"},
		{"Type", "type_"},
		{"Range", "range_"},
		{"Map", "map_"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := backingName(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestAddAcronym(t *testing.T) {
	// Add a custom acronym
	AddAcronym("TYPEDQ")

	// Now pascal should treat TYPEDQ as an acronym
	result := pascal("typedq_test")
	assert.Equal(t, "TYPEDQTest", result)
}

func TestIsSeparator(t *testing.T) {
	assert.True(t, isSeparator('_'))
	assert.True(t, isSeparator('-'))
	assert.True(t, isSeparator(' '))
	assert.True(t, isSeparator('\t'))
	assert.False(t, isSeparator('a'))
	assert.False(t, isSeparator('1'))
}
