package document

import (
	"testing"

	"github.com/selim-ammari/user-management/internal/core/domain"
)

func TestEncode_Indented(t *testing.T) {
	data, err := Encode([]domain.User{{ID: "1", Lastname: "Dupont", Firstname: "Jean", Role: domain.RoleUser}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := "[\n  {\n    \"id\": \"1\",\n    \"lastname\": \"Dupont\",\n    \"firstname\": \"Jean\",\n    \"role\": \"user\"\n  }\n]"
	if string(data) != want {
		t.Fatalf("unexpected encoding:\n%s", data)
	}
}

func TestEncode_NilIsEmptyArray(t *testing.T) {
	data, err := Encode(nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(data) != "[]" {
		t.Fatalf("expected [], got %s", data)
	}
}

func TestRoundTripIsByteIdentical(t *testing.T) {
	// A role-less record written by an older server must survive untouched.
	stored := "[\n  {\n    \"id\": \"1\",\n    \"lastname\": \"Dupont\",\n    \"firstname\": \"Jean\"\n  },\n  {\n    \"id\": \"2\",\n    \"lastname\": \"Tom & Jerry\",\n    \"firstname\": \"<Jean>\",\n    \"role\": \"user\"\n  },\n  {\n    \"id\": \"superadmin\",\n    \"lastname\": \"Admin\",\n    \"firstname\": \"Super\",\n    \"role\": \"admin\"\n  }\n]"

	users, err := Decode([]byte(stored))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	again, err := Encode(users)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(again) != stored {
		t.Fatalf("round trip changed the document:\n%s", again)
	}
}

func TestDecode_Invalid(t *testing.T) {
	for _, in := range []string{"", "{", "{\"id\":1}", "not json"} {
		if _, err := Decode([]byte(in)); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestDecode_NullIsEmpty(t *testing.T) {
	users, err := Decode([]byte("null"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if users == nil || len(users) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", users)
	}
}
